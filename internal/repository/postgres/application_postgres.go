package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"jobtracker/internal/model"
	"jobtracker/internal/repository"
)

const applicationColumns = `id, owner_id, resume_details, job_description, company_name, position,
		generated_resume, generated_cover_letter, status, notes, reminders, tags, timeline,
		deleted, created_at, updated_at`

// ApplicationPostgres is a PostgreSQL implementation of repository.ApplicationRepository.
// Collections are stored as JSONB arrays.
type ApplicationPostgres struct {
	db *sql.DB
}

// NewApplicationPostgres creates a new ApplicationPostgres repository.
func NewApplicationPostgres(db *sql.DB) *ApplicationPostgres {
	return &ApplicationPostgres{db: db}
}

var _ repository.ApplicationRepository = (*ApplicationPostgres)(nil)

// Create inserts a row and lets the database assign the id.
func (r *ApplicationPostgres) Create(ctx context.Context, ownerID string, app *model.Application) (string, error) {
	const q = `
		INSERT INTO applications (owner_id, resume_details, job_description, company_name, position,
			generated_resume, generated_cover_letter, status, notes, reminders, tags, timeline,
			deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	notes, reminders, tags, timeline, err := encodeCollections(app.Notes, app.Reminders, app.Tags, app.Timeline)
	if err != nil {
		return "", err
	}

	var id string
	err = r.db.QueryRowContext(ctx, q,
		ownerID,
		app.ResumeDetails,
		app.JobDescription,
		app.CompanyName,
		app.Position,
		app.GeneratedResume,
		app.GeneratedCoverLetter,
		string(app.Status),
		notes,
		reminders,
		tags,
		timeline,
		app.Deleted,
		app.CreatedAt,
		app.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert application: %w", err)
	}
	return id, nil
}

// ListByOwner returns all rows of owner in insertion order.
func (r *ApplicationPostgres) ListByOwner(ctx context.Context, ownerID string) ([]model.Application, error) {
	q := `SELECT ` + applicationColumns + ` FROM applications WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	items := make([]model.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return items, nil
}

// FindByID fetches a single row.
func (r *ApplicationPostgres) FindByID(ctx context.Context, id string) (*model.Application, error) {
	q := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	a, err := scanApplication(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Update builds a SET clause from the fields present in patch.
func (r *ApplicationPostgres) Update(ctx context.Context, id string, patch model.ApplicationPatch) error {
	sets, args, err := patchAssignments(patch)
	if err != nil {
		return err
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	q := fmt.Sprintf("UPDATE applications SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func patchAssignments(p model.ApplicationPatch) ([]string, []any, error) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	addJSON := func(col string, v any) error {
		b, err := encodeJSONArray(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", col, err)
		}
		add(col, b)
		return nil
	}

	if p.ResumeDetails != nil {
		add("resume_details", *p.ResumeDetails)
	}
	if p.JobDescription != nil {
		add("job_description", *p.JobDescription)
	}
	if p.CompanyName != nil {
		add("company_name", *p.CompanyName)
	}
	if p.Position != nil {
		add("position", *p.Position)
	}
	if p.GeneratedResume != nil {
		add("generated_resume", *p.GeneratedResume)
	}
	if p.GeneratedCoverLetter != nil {
		add("generated_cover_letter", *p.GeneratedCoverLetter)
	}
	if p.Status != nil {
		add("status", string(*p.Status))
	}
	if p.SetNotes || p.Notes != nil {
		if err := addJSON("notes", p.Notes); err != nil {
			return nil, nil, err
		}
	}
	if p.SetReminders || p.Reminders != nil {
		if err := addJSON("reminders", p.Reminders); err != nil {
			return nil, nil, err
		}
	}
	if p.SetTags || p.Tags != nil {
		if err := addJSON("tags", p.Tags); err != nil {
			return nil, nil, err
		}
	}
	if p.SetTimeline || p.Timeline != nil {
		if err := addJSON("timeline", p.Timeline); err != nil {
			return nil, nil, err
		}
	}
	if p.Deleted != nil {
		add("deleted", *p.Deleted)
	}
	if !p.UpdatedAt.IsZero() {
		add("updated_at", p.UpdatedAt)
	}
	return sets, args, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(s rowScanner) (*model.Application, error) {
	var (
		a                                 model.Application
		status                            string
		notes, reminders, tags, timeline []byte
	)
	if err := s.Scan(
		&a.ID,
		&a.OwnerID,
		&a.ResumeDetails,
		&a.JobDescription,
		&a.CompanyName,
		&a.Position,
		&a.GeneratedResume,
		&a.GeneratedCoverLetter,
		&status,
		&notes,
		&reminders,
		&tags,
		&timeline,
		&a.Deleted,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.Status = model.Status(status)

	if err := decodeJSONArray(notes, &a.Notes); err != nil {
		return nil, fmt.Errorf("decode notes of %s: %w", a.ID, err)
	}
	if err := decodeJSONArray(reminders, &a.Reminders); err != nil {
		return nil, fmt.Errorf("decode reminders of %s: %w", a.ID, err)
	}
	if err := decodeJSONArray(tags, &a.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of %s: %w", a.ID, err)
	}
	if err := decodeJSONArray(timeline, &a.Timeline); err != nil {
		return nil, fmt.Errorf("decode timeline of %s: %w", a.ID, err)
	}
	return &a, nil
}

func encodeCollections(notes []model.Note, reminders []model.Reminder, tags []string, timeline []model.TimelineEvent) (n, r, t, tl []byte, err error) {
	if n, err = encodeJSONArray(notes); err != nil {
		return
	}
	if r, err = encodeJSONArray(reminders); err != nil {
		return
	}
	if t, err = encodeJSONArray(tags); err != nil {
		return
	}
	tl, err = encodeJSONArray(timeline)
	return
}

// encodeJSONArray marshals v, writing nil slices as [] so the column never holds null.
func encodeJSONArray(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return []byte("[]"), nil
	}
	return b, nil
}

func decodeJSONArray[T any](raw []byte, dst *[]T) error {
	*dst = make([]T, 0)
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
