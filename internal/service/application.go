package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobtracker/internal/analytics"
	"jobtracker/internal/cache"
	"jobtracker/internal/export"
	"jobtracker/internal/llm"
	"jobtracker/internal/logger"
	"jobtracker/internal/model"
	"jobtracker/internal/repository"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrNoBackup        = errors.New("no backup found")
	ErrUnavailable     = errors.New("feature is not configured")

	ErrApplicationNotFound = fmt.Errorf("application %w", ErrNotFound)
	ErrNoteNotFound        = fmt.Errorf("note %w", ErrNotFound)
	ErrReminderNotFound    = fmt.Errorf("reminder %w", ErrNotFound)
)

// UpdateInput is a partial edit of an application's own fields. Nil means unchanged.
type UpdateInput struct {
	ResumeDetails        *string
	JobDescription       *string
	CompanyName          *string
	Position             *string
	GeneratedResume      *string
	GeneratedCoverLetter *string
	Status               *model.Status
	Tags                 *[]string
}

// ApplicationService defines the use cases of the tracker for one signed-in owner.
// Reads are served from an in-memory snapshot per owner, loaded from the store on first use.
type ApplicationService interface {
	// Save creates a record with a single "Application Created" timeline event.
	Save(ctx context.Context, ownerID string, in model.NewApplication) (*model.Application, error)
	// Load replaces the owner's snapshot with the store's records, soft-deleted ones included.
	Load(ctx context.Context, ownerID string) ([]model.Application, error)
	Get(ctx context.Context, ownerID, id string) (*model.Application, error)
	// Update writes the set fields; a status change appends exactly one timeline event.
	Update(ctx context.Context, ownerID, id string, in UpdateInput) (*model.Application, error)
	UpdateStatus(ctx context.Context, ownerID, id string, status model.Status) (*model.Application, error)
	Delete(ctx context.Context, ownerID, id string) error

	AddNote(ctx context.Context, ownerID, id, content string) (*model.Note, error)
	DeleteNote(ctx context.Context, ownerID, id, noteID string) error
	AddReminder(ctx context.Context, ownerID, id, title string, due time.Time) (*model.Reminder, error)
	ToggleReminder(ctx context.Context, ownerID, id, reminderID string) (*model.Reminder, error)
	DeleteReminder(ctx context.Context, ownerID, id, reminderID string) error
	AddTag(ctx context.Context, ownerID, id, tag string) ([]string, error)
	// RemoveTag succeeds when the tag is absent.
	RemoveTag(ctx context.Context, ownerID, id, tag string) ([]string, error)
	AddTimelineEvent(ctx context.Context, ownerID, id, title, description string) (*model.TimelineEvent, error)

	// BulkUpdateStatus and BulkDelete run independent updates concurrently. They never roll back.
	BulkUpdateStatus(ctx context.Context, ownerID string, ids []string, status model.Status) (BatchResult, error)
	BulkDelete(ctx context.Context, ownerID string, ids []string) (BatchResult, error)

	Query(ctx context.Context, ownerID string, q analytics.Query) ([]model.Application, error)
	Summary(ctx context.Context, ownerID string, r analytics.TimeRange) (analytics.Stats, error)
	Trend(ctx context.Context, ownerID string, r analytics.TimeRange) ([]analytics.TrendPoint, error)
	AvailableTags(ctx context.Context, ownerID string) ([]string, error)

	Backup(ctx context.Context, ownerID string, prefs model.Preferences) (*model.Backup, error)
	Restore(ctx context.Context, ownerID string) (*RestoreResult, error)
	SavePreferences(ctx context.Context, ownerID string, p model.Preferences) error
	// LoadPreferences returns the defaults when nothing was saved.
	LoadPreferences(ctx context.Context, ownerID string) (model.Preferences, error)

	// Generate stores an AI-written résumé and cover letter on the record.
	Generate(ctx context.Context, ownerID, id string) (*model.Application, error)
	ExportApplication(ctx context.Context, ownerID, id string) (*export.Link, error)
	ExportAnalytics(ctx context.Context, ownerID string, q analytics.Query, r analytics.TimeRange, f export.Format) (*export.Link, error)
}

// Deps bundles the collaborators of the application service. Generator and Publisher may be nil.
type Deps struct {
	Repo      repository.ApplicationRepository
	Cache     cache.Cache
	Generator llm.Generator
	Publisher export.Publisher
	Log       logger.Logger
	// Now is the clock; its location decides calendar days in analytics. Defaults to time.Now.
	Now func() time.Time
	// BulkConcurrency caps in-flight store calls per bulk operation. Defaults to 8.
	BulkConcurrency int
}

// applicationService is a concrete implementation of ApplicationService.
type applicationService struct {
	repo      repository.ApplicationRepository
	cache     cache.Cache
	gen       llm.Generator
	publisher export.Publisher
	log       logger.Logger
	now       func() time.Time
	newID     func() string
	bulkLimit int

	mu        sync.Mutex
	snapshots map[string][]model.Application
	locks     map[string]*recordLock
}

// recordLock serializes mutations of one record; refs counts holders and waiters.
type recordLock struct {
	mu   sync.Mutex
	refs int
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(d Deps) ApplicationService {
	s := &applicationService{
		repo:      d.Repo,
		cache:     d.Cache,
		gen:       d.Generator,
		publisher: d.Publisher,
		log:       d.Log,
		now:       d.Now,
		newID:     uuid.NewString,
		bulkLimit: d.BulkConcurrency,
		snapshots: make(map[string][]model.Application),
		locks:     make(map[string]*recordLock),
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.bulkLimit <= 0 {
		s.bulkLimit = 8
	}
	return s
}

func (s *applicationService) Save(ctx context.Context, ownerID string, in model.NewApplication) (*model.Application, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	status := in.Status
	if status == "" {
		status = model.StatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	now := s.now()
	app := &model.Application{
		OwnerID:        ownerID,
		ResumeDetails:  in.ResumeDetails,
		JobDescription: in.JobDescription,
		CompanyName:    in.CompanyName,
		Position:       in.Position,
		Status:         status,
		Notes:          []model.Note{},
		Reminders:      []model.Reminder{},
		Tags:           model.DedupeTags(in.Tags),
		Timeline: []model.TimelineEvent{{
			ID:          s.newID(),
			Type:        model.EventStatusChange,
			Title:       model.TitleApplicationCreated,
			Description: "Created as " + string(status),
			Date:        now,
			CreatedAt:   now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.repo.Create(ctx, ownerID, app)
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	app.ID = id

	s.mu.Lock()
	if recs, ok := s.snapshots[ownerID]; ok {
		s.snapshots[ownerID] = append(recs, app.Clone())
	}
	s.mu.Unlock()
	return app, nil
}

func (s *applicationService) Load(ctx context.Context, ownerID string) ([]model.Application, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	recs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load applications: %w", err)
	}
	if recs == nil {
		recs = []model.Application{}
	}

	s.mu.Lock()
	s.snapshots[ownerID] = recs
	out := cloneAll(recs)
	s.mu.Unlock()
	return out, nil
}

// records returns a private copy of the owner's snapshot, loading it on first use.
func (s *applicationService) records(ctx context.Context, ownerID string) ([]model.Application, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	s.mu.Lock()
	recs, ok := s.snapshots[ownerID]
	if ok {
		out := cloneAll(recs)
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()
	return s.Load(ctx, ownerID)
}

// find returns a private copy of a live (not soft-deleted) record.
func (s *applicationService) find(ctx context.Context, ownerID, id string) (*model.Application, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.records(ctx, ownerID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.snapshots[ownerID] {
		if a.ID == id && !a.Deleted {
			out := a.Clone()
			return &out, nil
		}
	}
	return nil, ErrApplicationNotFound
}

// lockRecord blocks until no other mutation of the record is in flight and returns the
// release func. Different records never contend.
func (s *applicationService) lockRecord(ownerID, id string) func() {
	key := ownerID + "/" + id
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &recordLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
		s.mu.Unlock()
	}
}

// mutate derives a patch from a private copy of the record, writes it to the store and
// only then folds it into the snapshot. A failed store call leaves the snapshot untouched.
// The record stays locked from read to fold so overlapping mutations see each other's writes.
func (s *applicationService) mutate(ctx context.Context, ownerID, id string,
	build func(cur *model.Application, now time.Time) (model.ApplicationPatch, error),
) (*model.Application, error) {
	if ownerID != "" && id != "" {
		defer s.lockRecord(ownerID, id)()
	}
	cur, err := s.find(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	patch, err := build(cur, now)
	if err != nil {
		return nil, err
	}
	patch.UpdatedAt = now
	if now.Before(cur.CreatedAt) {
		patch.UpdatedAt = cur.CreatedAt
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("update application %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.snapshots[ownerID]
	for i := range recs {
		if recs[i].ID == id {
			patch.Apply(&recs[i])
			out := recs[i].Clone()
			return &out, nil
		}
	}
	// The snapshot was reloaded while the store call was in flight.
	patch.Apply(cur)
	return cur, nil
}

func (s *applicationService) Get(ctx context.Context, ownerID, id string) (*model.Application, error) {
	return s.find(ctx, ownerID, id)
}

func (s *applicationService) Update(ctx context.Context, ownerID, id string, in UpdateInput) (*model.Application, error) {
	if in.Status != nil && !in.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *in.Status)
	}
	return s.mutate(ctx, ownerID, id, func(cur *model.Application, now time.Time) (model.ApplicationPatch, error) {
		p := model.ApplicationPatch{
			ResumeDetails:        in.ResumeDetails,
			JobDescription:       in.JobDescription,
			CompanyName:          in.CompanyName,
			Position:             in.Position,
			GeneratedResume:      in.GeneratedResume,
			GeneratedCoverLetter: in.GeneratedCoverLetter,
		}
		if in.Tags != nil {
			p.Tags = model.DedupeTags(*in.Tags)
			p.SetTags = true
		}
		if in.Status != nil {
			s.changeStatus(&p, cur, *in.Status, now)
		}
		return p, nil
	})
}

func (s *applicationService) UpdateStatus(ctx context.Context, ownerID, id string, status model.Status) (*model.Application, error) {
	return s.Update(ctx, ownerID, id, UpdateInput{Status: &status})
}

// changeStatus sets the status on p and appends one "Status Updated" event, unless
// cur already has that status.
func (s *applicationService) changeStatus(p *model.ApplicationPatch, cur *model.Application, to model.Status, now time.Time) {
	if cur.Status == to {
		return
	}
	p.Status = &to
	p.Timeline = append(cur.Timeline, model.TimelineEvent{
		ID:          s.newID(),
		Type:        model.EventStatusChange,
		Title:       model.TitleStatusUpdated,
		Description: fmt.Sprintf("Changed from %s to %s", cur.Status, to),
		Date:        now,
		CreatedAt:   now,
		Transition:  &model.StatusTransition{From: cur.Status, To: to},
	})
	p.SetTimeline = true
}

func (s *applicationService) Delete(ctx context.Context, ownerID, id string) error {
	_, err := s.mutate(ctx, ownerID, id, func(*model.Application, time.Time) (model.ApplicationPatch, error) {
		deleted := true
		return model.ApplicationPatch{Deleted: &deleted}, nil
	})
	return err
}

func (s *applicationService) Query(ctx context.Context, ownerID string, q analytics.Query) ([]model.Application, error) {
	recs, err := s.records(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return analytics.Select(recs, q), nil
}

func (s *applicationService) Summary(ctx context.Context, ownerID string, r analytics.TimeRange) (analytics.Stats, error) {
	recs, err := s.records(ctx, ownerID)
	if err != nil {
		return analytics.Stats{}, err
	}
	return analytics.Summarize(recs, r, s.now()), nil
}

func (s *applicationService) Trend(ctx context.Context, ownerID string, r analytics.TimeRange) ([]analytics.TrendPoint, error) {
	recs, err := s.records(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return analytics.BuildTrend(recs, r, s.now()), nil
}

func (s *applicationService) AvailableTags(ctx context.Context, ownerID string) ([]string, error) {
	recs, err := s.records(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	live := recs[:0]
	for _, a := range recs {
		if !a.Deleted {
			live = append(live, a)
		}
	}
	return analytics.AvailableTags(live), nil
}

func cloneAll(recs []model.Application) []model.Application {
	out := make([]model.Application, len(recs))
	for i, a := range recs {
		out[i] = a.Clone()
	}
	return out
}
