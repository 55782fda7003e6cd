package model

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Status is the lifecycle state of an application. Any status may move to any other.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusAccepted  Status = "accepted"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusDraft,
	StatusApplied,
	StatusInterview,
	StatusOffer,
	StatusRejected,
	StatusAccepted,
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// ParseStatus converts a raw string to a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return s, nil
}

// EventType classifies a timeline event.
type EventType string

const (
	EventStatusChange      EventType = "status_change"
	EventNoteAdded         EventType = "note_added"
	EventReminderAdded     EventType = "reminder_added"
	EventReminderCompleted EventType = "reminder_completed"
	EventCustom            EventType = "custom"
)

// Timeline titles written by the service. "Application Created" is also used by
// analytics to locate the creation instant.
const (
	TitleApplicationCreated = "Application Created"
	TitleStatusUpdated      = "Status Updated"
	TitleNoteAdded          = "Note Added"
	TitleReminderAdded      = "Reminder Added"
	TitleReminderCompleted  = "Reminder Completed"
	TitleReminderReopened   = "Reminder Reopened"
)

// Note is a free-text note attached to an application.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Reminder is a dated to-do attached to an application.
type Reminder struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	DueDate   time.Time `json:"dueDate"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatusTransition is the structured payload of a status_change event.
type StatusTransition struct {
	From Status `json:"from"`
	To   Status `json:"to"`
}

// TimelineEvent is an immutable audit entry.
type TimelineEvent struct {
	ID          string            `json:"id"`
	Type        EventType         `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Date        time.Time         `json:"date"`
	CreatedAt   time.Time         `json:"createdAt"`
	Transition  *StatusTransition `json:"transition,omitempty"`
}

// IsTransitionTo reports whether the event records a status change into target.
// Events written before transitions were recorded are matched on their description.
func (e TimelineEvent) IsTransitionTo(target Status) bool {
	if e.Type != EventStatusChange {
		return false
	}
	if e.Transition != nil {
		return e.Transition.To == target
	}
	return strings.Contains(e.Description, "to "+string(target))
}

// IsCreation reports whether the event is the initial "Application Created" entry.
func (e TimelineEvent) IsCreation() bool {
	return e.Type == EventStatusChange && e.Title == TitleApplicationCreated
}

// Application is a single tracked job application.
type Application struct {
	ID                   string          `json:"id"`
	OwnerID              string          `json:"userId"`
	ResumeDetails        string          `json:"resumeDetails"`
	JobDescription       string          `json:"jobDescription"`
	CompanyName          string          `json:"companyName,omitempty"`
	Position             string          `json:"position,omitempty"`
	GeneratedResume      string          `json:"generatedResume,omitempty"`
	GeneratedCoverLetter string          `json:"generatedCoverLetter,omitempty"`
	Status               Status          `json:"status"`
	Notes                []Note          `json:"notes"`
	Reminders            []Reminder      `json:"reminders"`
	Tags                 []string        `json:"tags"`
	Timeline             []TimelineEvent `json:"timeline"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
	Deleted              bool            `json:"deleted,omitempty"`
}

// FirstEvent returns the first timeline event matching fn.
func (a *Application) FirstEvent(fn func(TimelineEvent) bool) (TimelineEvent, bool) {
	for _, e := range a.Timeline {
		if fn(e) {
			return e, true
		}
	}
	return TimelineEvent{}, false
}

// HasTag reports whether the application carries tag (case-sensitive).
func (a *Application) HasTag(tag string) bool {
	return slices.Contains(a.Tags, tag)
}

// Clone returns a deep copy so callers can mutate collections without aliasing.
func (a Application) Clone() Application {
	out := a
	out.Notes = slices.Clone(a.Notes)
	out.Reminders = slices.Clone(a.Reminders)
	out.Tags = slices.Clone(a.Tags)
	out.Timeline = make([]TimelineEvent, len(a.Timeline))
	for i, e := range a.Timeline {
		if e.Transition != nil {
			t := *e.Transition
			e.Transition = &t
		}
		out.Timeline[i] = e
	}
	return out
}

// DedupeTags returns tags with duplicates removed, keeping first occurrences in order.
func DedupeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
