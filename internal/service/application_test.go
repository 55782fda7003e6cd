package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jobtracker/internal/analytics"
	"jobtracker/internal/cache"
	cacheMocks "jobtracker/internal/cache/mocks"
	"jobtracker/internal/export"
	exportMocks "jobtracker/internal/export/mocks"
	"jobtracker/internal/llm"
	llmMocks "jobtracker/internal/llm/mocks"
	"jobtracker/internal/logger"
	"jobtracker/internal/model"
	"jobtracker/internal/repository"
	repoMocks "jobtracker/internal/repository/mocks"
	"jobtracker/internal/schemas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const owner = "u1"

var t0 = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type harness struct {
	repo  *repoMocks.MockApplicationRepository
	cache *cacheMocks.MockCache
	gen   *llmMocks.MockGenerator
	pub   *exportMocks.MockPublisher
	clock time.Time
	svc   *applicationService
}

func newHarness(t *testing.T, seed ...model.Application) *harness {
	t.Helper()
	h := &harness{
		repo:  new(repoMocks.MockApplicationRepository),
		cache: new(cacheMocks.MockCache),
		gen:   new(llmMocks.MockGenerator),
		pub:   new(exportMocks.MockPublisher),
		clock: t0,
	}
	if seed == nil {
		seed = []model.Application{}
	}
	h.repo.On("ListByOwner", mock.Anything, owner).Return(seed, nil)

	h.svc = NewApplicationService(Deps{
		Repo:            h.repo,
		Cache:           h.cache,
		Generator:       h.gen,
		Publisher:       h.pub,
		Log:             logger.Nop(),
		Now:             func() time.Time { return h.clock },
		BulkConcurrency: 2,
	}).(*applicationService)

	var seq atomic.Int64
	h.svc.newID = func() string { return fmt.Sprintf("id-%d", seq.Add(1)) }
	return h
}

func seedApp(id string, status model.Status, created time.Time) model.Application {
	return model.Application{
		ID:        id,
		OwnerID:   owner,
		Status:    status,
		Notes:     []model.Note{{ID: "n1", Content: "first call"}},
		Reminders: []model.Reminder{{ID: "r1", Title: "send thanks"}},
		Tags:      []string{},
		Timeline: []model.TimelineEvent{{
			ID: "e0", Type: model.EventStatusChange, Title: model.TitleApplicationCreated,
			Description: "Created as " + string(status), Date: created, CreatedAt: created,
		}},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestApplicationService_Save(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		owner      string
		in         model.NewApplication
		setupMocks func(repo *repoMocks.MockApplicationRepository)
		wantStatus model.Status
		wantErr    error
		wantErrMsg string
	}{
		{
			name:  "defaults to draft",
			owner: owner,
			in:    model.NewApplication{CompanyName: "Acme", Tags: []string{"go", "go", "remote"}},
			setupMocks: func(repo *repoMocks.MockApplicationRepository) {
				repo.On("Create", ctx, owner, mock.MatchedBy(func(a *model.Application) bool {
					return a.Status == model.StatusDraft && len(a.Timeline) == 1 && a.CreatedAt.Equal(t0)
				})).Return("a1", nil)
			},
			wantStatus: model.StatusDraft,
		},
		{
			name:  "caller status",
			owner: owner,
			in:    model.NewApplication{Status: model.StatusApplied},
			setupMocks: func(repo *repoMocks.MockApplicationRepository) {
				repo.On("Create", ctx, owner, mock.Anything).Return("a1", nil)
			},
			wantStatus: model.StatusApplied,
		},
		{
			name:    "unknown status",
			owner:   owner,
			in:      model.NewApplication{Status: "ghosted"},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "signed out",
			in:      model.NewApplication{},
			wantErr: ErrUnauthenticated,
		},
		{
			name:  "store error",
			owner: owner,
			setupMocks: func(repo *repoMocks.MockApplicationRepository) {
				repo.On("Create", ctx, owner, mock.Anything).Return("", errors.New("db down"))
			},
			wantErrMsg: "create application: db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if tt.setupMocks != nil {
				tt.setupMocks(h.repo)
			}

			app, err := h.svc.Save(ctx, tt.owner, tt.in)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, app)
				h.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, "a1", app.ID)
				assert.Equal(t, tt.wantStatus, app.Status)
				require.Len(t, app.Timeline, 1)
				assert.Equal(t, model.TitleApplicationCreated, app.Timeline[0].Title)
				assert.Equal(t, "Created as "+string(tt.wantStatus), app.Timeline[0].Description)
				assert.Empty(t, app.Notes)
				assert.NotNil(t, app.Reminders)
			}
			h.repo.AssertExpectations(t)
		})
	}
}

func TestApplicationService_StatusChangeScenario(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.repo.On("Create", ctx, owner, mock.Anything).Return("a1", nil)
	h.repo.On("Update", ctx, "a1", mock.Anything).Return(nil)

	_, err := h.svc.Load(ctx, owner)
	require.NoError(t, err)

	app, err := h.svc.Save(ctx, owner, model.NewApplication{CompanyName: "Acme"})
	require.NoError(t, err)
	require.Len(t, app.Timeline, 1)

	t1 := t0.Add(time.Hour)
	h.clock = t1
	app, err = h.svc.UpdateStatus(ctx, owner, "a1", model.StatusApplied)
	require.NoError(t, err)
	require.Len(t, app.Timeline, 2)
	ev := app.Timeline[1]
	assert.Equal(t, model.EventStatusChange, ev.Type)
	assert.Equal(t, model.TitleStatusUpdated, ev.Title)
	assert.Equal(t, "Changed from draft to applied", ev.Description)
	assert.Equal(t, &model.StatusTransition{From: model.StatusDraft, To: model.StatusApplied}, ev.Transition)
	assert.Equal(t, t1, ev.Date)
	assert.Equal(t, t1, app.UpdatedAt)

	h.clock = t1.Add(time.Hour)
	app, err = h.svc.UpdateStatus(ctx, owner, "a1", model.StatusApplied)
	require.NoError(t, err)
	assert.Len(t, app.Timeline, 2)

	got, err := h.svc.Get(ctx, owner, "a1")
	require.NoError(t, err)
	assert.Len(t, got.Timeline, 2)
	assert.Equal(t, model.StatusApplied, got.Status)
}

func TestApplicationService_StoreFailureLeavesSnapshot(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, seedApp("a1", model.StatusDraft, t0.Add(-time.Hour)))
	h.repo.On("Update", ctx, "a1", mock.Anything).Return(errors.New("network down"))

	_, err := h.svc.UpdateStatus(ctx, owner, "a1", model.StatusApplied)
	assert.EqualError(t, err, "update application a1: network down")

	got, err := h.svc.Get(ctx, owner, "a1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, got.Status)
	assert.Len(t, got.Timeline, 1)
}

func TestApplicationService_StoreNotFound(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, seedApp("a1", model.StatusDraft, t0))
	h.repo.On("Update", ctx, "a1", mock.Anything).Return(repository.ErrNotFound)

	err := h.svc.Delete(ctx, owner, "a1")
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestApplicationService_NotFoundBeforeStoreCall(t *testing.T) {
	ctx := context.Background()
	deleted := seedApp("gone", model.StatusDraft, t0)
	deleted.Deleted = true

	tests := []struct {
		name    string
		call    func(s ApplicationService) error
		wantErr error
	}{
		{
			name: "missing record",
			call: func(s ApplicationService) error {
				_, err := s.AddNote(ctx, owner, "nope", "x")
				return err
			},
			wantErr: ErrApplicationNotFound,
		},
		{
			name: "soft-deleted record",
			call: func(s ApplicationService) error {
				_, err := s.UpdateStatus(ctx, owner, "gone", model.StatusOffer)
				return err
			},
			wantErr: ErrApplicationNotFound,
		},
		{
			name:    "missing note",
			call:    func(s ApplicationService) error { return s.DeleteNote(ctx, owner, "a1", "nope") },
			wantErr: ErrNoteNotFound,
		},
		{
			name: "missing reminder toggle",
			call: func(s ApplicationService) error {
				_, err := s.ToggleReminder(ctx, owner, "a1", "nope")
				return err
			},
			wantErr: ErrReminderNotFound,
		},
		{
			name:    "missing reminder delete",
			call:    func(s ApplicationService) error { return s.DeleteReminder(ctx, owner, "a1", "nope") },
			wantErr: ErrNotFound,
		},
		{
			name: "empty id",
			call: func(s ApplicationService) error {
				_, err := s.Get(ctx, owner, "")
				return err
			},
			wantErr: ErrIDRequired,
		},
		{
			name: "signed out",
			call: func(s ApplicationService) error {
				_, err := s.AddTag(ctx, "", "a1", "go")
				return err
			},
			wantErr: ErrUnauthenticated,
		},
		{
			name: "invalid status",
			call: func(s ApplicationService) error {
				_, err := s.UpdateStatus(ctx, owner, "a1", "ghosted")
				return err
			},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, seedApp("a1", model.StatusDraft, t0), deleted)

			err := tt.call(h.svc)

			assert.ErrorIs(t, err, tt.wantErr)
			h.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestApplicationService_Update(t *testing.T) {
	ctx := context.Background()
	created := t0.Add(time.Hour)
	h := newHarness(t, seedApp("a1", model.StatusDraft, created))
	h.repo.On("Update", ctx, "a1", mock.MatchedBy(func(p model.ApplicationPatch) bool {
		return p.SetTags && p.Status == nil && !p.SetTimeline
	})).Return(nil)

	company := "Beta"
	tags := []string{"remote", "go", "remote"}
	app, err := h.svc.Update(ctx, owner, "a1", UpdateInput{CompanyName: &company, Tags: &tags})

	require.NoError(t, err)
	assert.Equal(t, "Beta", app.CompanyName)
	assert.Equal(t, []string{"remote", "go"}, app.Tags)
	// clock is behind createdAt, so updatedAt is held at createdAt
	assert.Equal(t, created, app.UpdatedAt)
	h.repo.AssertExpectations(t)
}

func TestApplicationService_NotesAndReminders(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, seedApp("a1", model.StatusApplied, t0.Add(-time.Hour)))
	h.repo.On("Update", ctx, "a1", mock.Anything).Return(nil)

	note, err := h.svc.AddNote(ctx, owner, "a1", "recruiter replied")
	require.NoError(t, err)
	assert.Equal(t, "id-1", note.ID)

	app, err := h.svc.Get(ctx, owner, "a1")
	require.NoError(t, err)
	require.Len(t, app.Notes, 2)
	last := app.Timeline[len(app.Timeline)-1]
	assert.Equal(t, model.EventNoteAdded, last.Type)
	assert.Equal(t, "recruiter replied", last.Description)

	require.NoError(t, h.svc.DeleteNote(ctx, owner, "a1", "n1"))
	app, _ = h.svc.Get(ctx, owner, "a1")
	require.Len(t, app.Notes, 1)
	assert.Equal(t, "id-1", app.Notes[0].ID)

	due := t0.Add(48 * time.Hour)
	rem, err := h.svc.AddReminder(ctx, owner, "a1", "follow up", due)
	require.NoError(t, err)
	assert.Equal(t, due, rem.DueDate)
	assert.False(t, rem.Completed)

	rem, err = h.svc.ToggleReminder(ctx, owner, "a1", rem.ID)
	require.NoError(t, err)
	assert.True(t, rem.Completed)
	app, _ = h.svc.Get(ctx, owner, "a1")
	assert.Equal(t, model.TitleReminderCompleted, app.Timeline[len(app.Timeline)-1].Title)

	_, err = h.svc.ToggleReminder(ctx, owner, "a1", rem.ID)
	require.NoError(t, err)
	app, _ = h.svc.Get(ctx, owner, "a1")
	assert.Equal(t, model.TitleReminderReopened, app.Timeline[len(app.Timeline)-1].Title)
	assert.Equal(t, model.EventReminderCompleted, app.Timeline[len(app.Timeline)-1].Type)

	require.NoError(t, h.svc.DeleteReminder(ctx, owner, "a1", "r1"))
	app, _ = h.svc.Get(ctx, owner, "a1")
	require.Len(t, app.Reminders, 1)

	ev, err := h.svc.AddTimelineEvent(ctx, owner, "a1", "Phone screen", "30 minutes")
	require.NoError(t, err)
	assert.Equal(t, model.EventCustom, ev.Type)
}

func TestApplicationService_OverlappingMutationsKeepEveryWrite(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, seedApp("a1", model.StatusApplied, t0.Add(-time.Hour)))

	var calls atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})
	h.repo.On("Update", ctx, "a1", mock.Anything).Run(func(mock.Arguments) {
		if calls.Add(1) == 1 {
			close(entered)
			<-release
		}
	}).Return(nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[0] = h.svc.AddNote(ctx, owner, "a1", "first")
	}()
	<-entered

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[1] = h.svc.AddNote(ctx, owner, "a1", "second")
	}()
	assert.Never(t, func() bool { return calls.Load() > 1 }, 50*time.Millisecond, 5*time.Millisecond)
	close(release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	app, err := h.svc.Get(ctx, owner, "a1")
	require.NoError(t, err)
	assert.Len(t, app.Notes, 3)
	assert.Len(t, app.Timeline, 3)

	last := h.repo.Calls[len(h.repo.Calls)-1].Arguments.Get(2).(model.ApplicationPatch)
	assert.Len(t, last.Notes, 3)
	assert.Empty(t, h.svc.locks)
}

func TestApplicationService_DifferentRecordsMutateConcurrently(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t,
		seedApp("a1", model.StatusApplied, t0.Add(-time.Hour)),
		seedApp("a2", model.StatusApplied, t0.Add(-time.Hour)),
	)

	var inFlight atomic.Int32
	h.repo.On("Update", ctx, mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		inFlight.Add(1)
		assert.Eventually(t, func() bool { return inFlight.Load() == 2 }, time.Second, 5*time.Millisecond)
	}).Return(nil)

	var wg sync.WaitGroup
	for _, id := range []string{"a1", "a2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := h.svc.AddNote(ctx, owner, id, "parallel")
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()
}

func TestApplicationService_AddThenRemoveTag(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, seedApp("a1", model.StatusDraft, t0))
	h.repo.On("Update", ctx, "a1", mock.Anything).Return(nil)

	tags, err := h.svc.AddTag(ctx, owner, "a1", "remote")
	require.NoError(t, err)
	assert.Equal(t, []string{"remote"}, tags)

	tags, err = h.svc.AddTag(ctx, owner, "a1", "remote")
	require.NoError(t, err)
	assert.Equal(t, []string{"remote"}, tags)

	tags, err = h.svc.RemoveTag(ctx, owner, "a1", "remote")
	require.NoError(t, err)
	assert.Empty(t, tags)

	tags, err = h.svc.RemoveTag(ctx, owner, "a1", "remote")
	assert.NoError(t, err)
	assert.Empty(t, tags)
}

func TestApplicationService_BulkUpdateStatus(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t,
		seedApp("a1", model.StatusDraft, t0),
		seedApp("a2", model.StatusDraft, t0),
		seedApp("a3", model.StatusDraft, t0),
	)
	h.repo.On("Update", ctx, "a1", mock.Anything).Return(nil)
	h.repo.On("Update", ctx, "a2", mock.Anything).Return(errors.New("boom"))
	h.repo.On("Update", ctx, "a3", mock.Anything).Return(nil)

	res, err := h.svc.BulkUpdateStatus(ctx, owner, []string{"a1", "a2", "missing", "a3"}, model.StatusApplied)
	require.NoError(t, err)

	require.Len(t, res.Items, 4)
	assert.Equal(t, []string{"a1", "a2", "missing", "a3"},
		[]string{res.Items[0].ID, res.Items[1].ID, res.Items[2].ID, res.Items[3].ID})
	assert.NoError(t, res.Items[0].Err)
	assert.EqualError(t, res.Items[1].Err, "update application a2: boom")
	assert.ErrorIs(t, res.Items[2].Err, ErrApplicationNotFound)
	assert.EqualError(t, res.FirstError(), "update application a2: boom")
	assert.Equal(t, 2, res.Succeeded())
	assert.Equal(t, 2, res.Failed())

	list, err := h.svc.Query(ctx, owner, analytics.Query{SortOrder: analytics.SortAsc})
	require.NoError(t, err)
	statuses := map[string]model.Status{}
	for _, a := range list {
		statuses[a.ID] = a.Status
	}
	assert.Equal(t, map[string]model.Status{"a1": "applied", "a2": "draft", "a3": "applied"}, statuses)

	_, err = h.svc.BulkUpdateStatus(ctx, owner, []string{"a1"}, "ghosted")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestApplicationService_BulkDelete(t *testing.T) {
	ctx := context.Background()
	a1 := seedApp("a1", model.StatusDraft, t0)
	a1.Tags = []string{"go"}
	a2 := seedApp("a2", model.StatusDraft, t0)
	a2.Tags = []string{"remote"}
	h := newHarness(t, a1, a2)
	h.repo.On("Update", ctx, "a1", mock.MatchedBy(func(p model.ApplicationPatch) bool {
		return p.Deleted != nil && *p.Deleted
	})).Return(nil)

	res, err := h.svc.BulkDelete(ctx, owner, []string{"a1"})
	require.NoError(t, err)
	assert.NoError(t, res.FirstError())

	list, err := h.svc.Query(ctx, owner, analytics.Query{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a2", list[0].ID)

	tags, err := h.svc.AvailableTags(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"remote"}, tags)

	_, err = h.svc.Get(ctx, owner, "a1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = h.svc.BulkDelete(ctx, "", []string{"a1"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestApplicationService_SummaryAndTrend(t *testing.T) {
	ctx := context.Background()
	recs := []model.Application{
		seedApp("a1", model.StatusApplied, t0.Add(-time.Hour)),
		seedApp("a2", model.StatusInterview, t0.Add(-50*time.Hour)),
	}
	recs[0].CompanyName = "Acme"
	recs[1].CompanyName = "Acme"
	h := newHarness(t, recs...)

	stats, err := h.svc.Summary(ctx, owner, analytics.RangeWeek)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalApplications)
	assert.Equal(t, float64(100), stats.ResponseRate)
	assert.Equal(t, []analytics.CompanyCount{{Name: "Acme", Count: 2}}, stats.TopCompanies)

	trend, err := h.svc.Trend(ctx, owner, analytics.RangeWeek)
	require.NoError(t, err)
	require.Len(t, trend, 7)
	assert.Equal(t, 1, trend[6].Applications)
	assert.Equal(t, 1, trend[4].Applications)

	// snapshot is loaded once
	h.repo.AssertNumberOfCalls(t, "ListByOwner", 1)
}

func TestApplicationService_BackupRestore(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t,
		seedApp("a1", model.StatusApplied, t0.Add(-time.Hour)),
		seedApp("a2", model.StatusDraft, t0.Add(-time.Hour)),
	)

	var saved []byte
	h.cache.On("SaveBackup", ctx, owner, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(2).([]byte) }).
		Return(nil)

	prefs := model.DefaultPreferences()
	prefs.ViewMode = "grid"
	prefs.SelectedTags = []string{"go", "go"}

	b, err := h.svc.Backup(ctx, owner, prefs)
	require.NoError(t, err)
	assert.Len(t, b.Applications, 2)
	assert.Equal(t, []string{"go"}, b.Settings.SelectedTags)
	require.NoError(t, schemas.ValidateBackup(saved))

	h.cache.On("LoadBackup", ctx, owner).Return(saved, nil)
	h.repo.On("Update", ctx, "a1", mock.MatchedBy(func(p model.ApplicationPatch) bool {
		return p.Status != nil && *p.Status == model.StatusApplied && p.SetTimeline && len(p.Timeline) == 1
	})).Return(nil)
	h.repo.On("Update", ctx, "a2", mock.Anything).Return(errors.New("boom"))
	h.cache.On("SavePreferences", ctx, owner, b.Settings).Return(nil)

	res, err := h.svc.Restore(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "grid", res.Preferences.ViewMode)
	assert.Equal(t, 1, res.Batch.Succeeded())
	assert.EqualError(t, res.Batch.FirstError(), "restore application a2: boom")
	assert.True(t, res.Timestamp.Equal(t0))

	h.cache.AssertExpectations(t)
	h.repo.AssertExpectations(t)
}

func TestApplicationService_RestoreErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("no backup", func(t *testing.T) {
		h := newHarness(t)
		h.cache.On("LoadBackup", ctx, owner).Return(nil, cache.ErrMiss)
		_, err := h.svc.Restore(ctx, owner)
		assert.ErrorIs(t, err, ErrNoBackup)
	})

	t.Run("invalid blob", func(t *testing.T) {
		h := newHarness(t)
		h.cache.On("LoadBackup", ctx, owner).Return([]byte(`{"timestamp":"2025-01-01T00:00:00Z","settings":{}}`), nil)
		_, err := h.svc.Restore(ctx, owner)
		var ve *schemas.ValidationError
		assert.ErrorAs(t, err, &ve)
		h.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("foreign record", func(t *testing.T) {
		h := newHarness(t)
		blob := []byte(`{"timestamp":"2025-01-01T00:00:00Z","settings":{},"applications":[
			{"id":"other","status":"draft","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}]}`)
		h.cache.On("LoadBackup", ctx, owner).Return(blob, nil)
		h.cache.On("SavePreferences", ctx, owner, mock.Anything).Return(nil)

		res, err := h.svc.Restore(ctx, owner)
		require.NoError(t, err)
		assert.ErrorIs(t, res.Batch.FirstError(), ErrApplicationNotFound)
		assert.Equal(t, "list", res.Preferences.ViewMode)
		h.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestApplicationService_Preferences(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.cache.On("LoadPreferences", ctx, owner).Return(model.Preferences{}, cache.ErrMiss).Once()

	p, err := h.svc.LoadPreferences(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPreferences(), p)

	h.cache.On("SavePreferences", ctx, owner, mock.MatchedBy(func(p model.Preferences) bool {
		return p.ViewMode == "list" && p.TimeRange == "week"
	})).Return(errors.New("redis down"))
	err = h.svc.SavePreferences(ctx, owner, model.Preferences{TimeRange: "week"})
	assert.EqualError(t, err, "save preferences: redis down")

	_, err = h.svc.LoadPreferences(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestApplicationService_Generate(t *testing.T) {
	ctx := context.Background()
	app := seedApp("a1", model.StatusDraft, t0)
	app.ResumeDetails = "Go developer"
	app.JobDescription = "Build APIs"
	h := newHarness(t, app)

	h.gen.On("GenerateDocuments", ctx, llm.Input{ResumeDetails: "Go developer", JobDescription: "Build APIs"}).
		Return(llm.Documents{Resume: "R", CoverLetter: "C"}, nil)
	h.repo.On("Update", ctx, "a1", mock.MatchedBy(func(p model.ApplicationPatch) bool {
		return p.GeneratedResume != nil && *p.GeneratedResume == "R"
	})).Return(nil)

	got, err := h.svc.Generate(ctx, owner, "a1")
	require.NoError(t, err)
	assert.Equal(t, "R", got.GeneratedResume)
	assert.Equal(t, "C", got.GeneratedCoverLetter)

	t.Run("generator error", func(t *testing.T) {
		h := newHarness(t, app)
		h.gen.On("GenerateDocuments", ctx, mock.Anything).Return(llm.Documents{}, errors.New("quota"))
		_, err := h.svc.Generate(ctx, owner, "a1")
		assert.EqualError(t, err, "generate documents: quota")
		h.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not configured", func(t *testing.T) {
		svc := NewApplicationService(Deps{Repo: new(repoMocks.MockApplicationRepository)})
		_, err := svc.Generate(ctx, owner, "a1")
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestApplicationService_Exports(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, seedApp("a1", model.StatusApplied, t0))
	link := &export.Link{Filename: "f", URL: "https://s3/f"}

	h.pub.On("Publish", ctx, owner, mock.MatchedBy(func(f export.File) bool {
		return f.Filename == "application_a1.pdf" && len(f.Body) > 0
	})).Return(link, nil)
	got, err := h.svc.ExportApplication(ctx, owner, "a1")
	require.NoError(t, err)
	assert.Equal(t, link, got)

	h.pub.On("Publish", ctx, owner, mock.MatchedBy(func(f export.File) bool {
		return f.Filename == "jobgenie-analytics-2025-06-15.json" && f.ContentType == "application/json"
	})).Return(link, nil)
	_, err = h.svc.ExportAnalytics(ctx, owner, analytics.Query{}, analytics.RangeMonth, export.FormatJSON)
	require.NoError(t, err)

	_, err = h.svc.ExportApplication(ctx, owner, "missing")
	assert.ErrorIs(t, err, ErrApplicationNotFound)
	h.pub.AssertExpectations(t)
}
