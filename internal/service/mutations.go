package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"jobtracker/internal/model"
)

func (s *applicationService) event(t model.EventType, title, description string, now time.Time) model.TimelineEvent {
	return model.TimelineEvent{
		ID:          s.newID(),
		Type:        t,
		Title:       title,
		Description: description,
		Date:        now,
		CreatedAt:   now,
	}
}

func (s *applicationService) AddNote(ctx context.Context, ownerID, id, content string) (*model.Note, error) {
	var note model.Note
	_, err := s.mutate(ctx, ownerID, id, func(cur *model.Application, now time.Time) (model.ApplicationPatch, error) {
		note = model.Note{ID: s.newID(), Content: content, CreatedAt: now, UpdatedAt: now}
		return model.ApplicationPatch{
			Notes:       append(cur.Notes, note),
			Timeline:    append(cur.Timeline, s.event(model.EventNoteAdded, model.TitleNoteAdded, content, now)),
			SetNotes:    true,
			SetTimeline: true,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *applicationService) DeleteNote(ctx context.Context, ownerID, id, noteID string) error {
	_, err := s.mutate(ctx, ownerID, id, func(cur *model.Application, _ time.Time) (model.ApplicationPatch, error) {
		i := slices.IndexFunc(cur.Notes, func(n model.Note) bool { return n.ID == noteID })
		if i < 0 {
			return model.ApplicationPatch{}, ErrNoteNotFound
		}
		return model.ApplicationPatch{Notes: slices.Delete(cur.Notes, i, i+1), SetNotes: true}, nil
	})
	return err
}

func (s *applicationService) AddReminder(ctx context.Context, ownerID, id, title string, due time.Time) (*model.Reminder, error) {
	var rem model.Reminder
	_, err := s.mutate(ctx, ownerID, id, func(cur *model.Application, now time.Time) (model.ApplicationPatch, error) {
		rem = model.Reminder{ID: s.newID(), Title: title, DueDate: due, CreatedAt: now, UpdatedAt: now}
		return model.ApplicationPatch{
			Reminders:    append(cur.Reminders, rem),
			Timeline:     append(cur.Timeline, s.event(model.EventReminderAdded, model.TitleReminderAdded, title, now)),
			SetReminders: true,
			SetTimeline:  true,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &rem, nil
}

func (s *applicationService) ToggleReminder(ctx context.Context, ownerID, id, reminderID string) (*model.Reminder, error) {
	var rem model.Reminder
	_, err := s.mutate(ctx, ownerID, id, func(cur *model.Application, now time.Time) (model.ApplicationPatch, error) {
		i := slices.IndexFunc(cur.Reminders, func(r model.Reminder) bool { return r.ID == reminderID })
		if i < 0 {
			return model.ApplicationPatch{}, ErrReminderNotFound
		}
		title := model.TitleReminderCompleted
		if cur.Reminders[i].Completed {
			title = model.TitleReminderReopened
		}
		cur.Reminders[i].Completed = !cur.Reminders[i].Completed
		cur.Reminders[i].UpdatedAt = now
		rem = cur.Reminders[i]
		return model.ApplicationPatch{
			Reminders:    cur.Reminders,
			Timeline:     append(cur.Timeline, s.event(model.EventReminderCompleted, title, rem.Title, now)),
			SetReminders: true,
			SetTimeline:  true,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &rem, nil
}

func (s *applicationService) DeleteReminder(ctx context.Context, ownerID, id, reminderID string) error {
	_, err := s.mutate(ctx, ownerID, id, func(cur *model.Application, _ time.Time) (model.ApplicationPatch, error) {
		i := slices.IndexFunc(cur.Reminders, func(r model.Reminder) bool { return r.ID == reminderID })
		if i < 0 {
			return model.ApplicationPatch{}, ErrReminderNotFound
		}
		return model.ApplicationPatch{Reminders: slices.Delete(cur.Reminders, i, i+1), SetReminders: true}, nil
	})
	return err
}

func (s *applicationService) AddTag(ctx context.Context, ownerID, id, tag string) ([]string, error) {
	tag = strings.TrimSpace(tag)
	app, err := s.mutate(ctx, ownerID, id, func(cur *model.Application, _ time.Time) (model.ApplicationPatch, error) {
		return model.ApplicationPatch{Tags: model.DedupeTags(append(cur.Tags, tag)), SetTags: true}, nil
	})
	if err != nil {
		return nil, err
	}
	return app.Tags, nil
}

func (s *applicationService) RemoveTag(ctx context.Context, ownerID, id, tag string) ([]string, error) {
	tag = strings.TrimSpace(tag)
	app, err := s.mutate(ctx, ownerID, id, func(cur *model.Application, _ time.Time) (model.ApplicationPatch, error) {
		tags := make([]string, 0, len(cur.Tags))
		for _, t := range cur.Tags {
			if t != tag {
				tags = append(tags, t)
			}
		}
		return model.ApplicationPatch{Tags: tags, SetTags: true}, nil
	})
	if err != nil {
		return nil, err
	}
	return app.Tags, nil
}

func (s *applicationService) AddTimelineEvent(ctx context.Context, ownerID, id, title, description string) (*model.TimelineEvent, error) {
	var ev model.TimelineEvent
	_, err := s.mutate(ctx, ownerID, id, func(cur *model.Application, now time.Time) (model.ApplicationPatch, error) {
		ev = s.event(model.EventCustom, title, description, now)
		return model.ApplicationPatch{Timeline: append(cur.Timeline, ev), SetTimeline: true}, nil
	})
	if err != nil {
		return nil, err
	}
	return &ev, nil
}
