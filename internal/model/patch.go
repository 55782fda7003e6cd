package model

import "time"

// NewApplication holds caller-supplied fields for creating an application.
type NewApplication struct {
	ResumeDetails  string
	JobDescription string
	CompanyName    string
	Position       string
	Status         Status
	Tags           []string
}

// ApplicationPatch is a partial update. Nil fields are left untouched by the store.
type ApplicationPatch struct {
	ResumeDetails        *string
	JobDescription       *string
	CompanyName          *string
	Position             *string
	GeneratedResume      *string
	GeneratedCoverLetter *string
	Status               *Status
	Notes                []Note
	Reminders            []Reminder
	Tags                 []string
	Timeline             []TimelineEvent
	Deleted              *bool
	UpdatedAt            time.Time

	// The collection fields use nil for "unchanged"; these flags allow writing an empty list.
	SetNotes     bool
	SetReminders bool
	SetTags      bool
	SetTimeline  bool
}

// Apply copies every set field of p onto a.
func (p ApplicationPatch) Apply(a *Application) {
	if p.ResumeDetails != nil {
		a.ResumeDetails = *p.ResumeDetails
	}
	if p.JobDescription != nil {
		a.JobDescription = *p.JobDescription
	}
	if p.CompanyName != nil {
		a.CompanyName = *p.CompanyName
	}
	if p.Position != nil {
		a.Position = *p.Position
	}
	if p.GeneratedResume != nil {
		a.GeneratedResume = *p.GeneratedResume
	}
	if p.GeneratedCoverLetter != nil {
		a.GeneratedCoverLetter = *p.GeneratedCoverLetter
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.SetNotes || p.Notes != nil {
		a.Notes = p.Notes
	}
	if p.SetReminders || p.Reminders != nil {
		a.Reminders = p.Reminders
	}
	if p.SetTags || p.Tags != nil {
		a.Tags = p.Tags
	}
	if p.SetTimeline || p.Timeline != nil {
		a.Timeline = p.Timeline
	}
	if p.Deleted != nil {
		a.Deleted = *p.Deleted
	}
	if !p.UpdatedAt.IsZero() {
		a.UpdatedAt = p.UpdatedAt
	}
}

// FullPatch returns a patch that overwrites every mutable field with a's values.
func FullPatch(a Application) ApplicationPatch {
	deleted := a.Deleted
	status := a.Status
	return ApplicationPatch{
		ResumeDetails:        &a.ResumeDetails,
		JobDescription:       &a.JobDescription,
		CompanyName:          &a.CompanyName,
		Position:             &a.Position,
		GeneratedResume:      &a.GeneratedResume,
		GeneratedCoverLetter: &a.GeneratedCoverLetter,
		Status:               &status,
		Notes:                a.Notes,
		Reminders:            a.Reminders,
		Tags:                 a.Tags,
		Timeline:             a.Timeline,
		Deleted:              &deleted,
		UpdatedAt:            a.UpdatedAt,
		SetNotes:             true,
		SetReminders:         true,
		SetTags:              true,
		SetTimeline:          true,
	}
}
