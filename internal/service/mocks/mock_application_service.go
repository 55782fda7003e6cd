package mocks

import (
	"context"
	"time"

	"jobtracker/internal/analytics"
	"jobtracker/internal/export"
	"jobtracker/internal/model"
	"jobtracker/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockApplicationService struct {
	mock.Mock
}

var _ service.ApplicationService = (*MockApplicationService)(nil)

func (m *MockApplicationService) app(args mock.Arguments) (*model.Application, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) link(args mock.Arguments) (*export.Link, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.Link), args.Error(1)
}

func (m *MockApplicationService) tags(args mock.Arguments) ([]string, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockApplicationService) Save(ctx context.Context, ownerID string, in model.NewApplication) (*model.Application, error) {
	return m.app(m.Called(ctx, ownerID, in))
}

func (m *MockApplicationService) Load(ctx context.Context, ownerID string) ([]model.Application, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationService) Get(ctx context.Context, ownerID, id string) (*model.Application, error) {
	return m.app(m.Called(ctx, ownerID, id))
}

func (m *MockApplicationService) Update(ctx context.Context, ownerID, id string, in service.UpdateInput) (*model.Application, error) {
	return m.app(m.Called(ctx, ownerID, id, in))
}

func (m *MockApplicationService) UpdateStatus(ctx context.Context, ownerID, id string, status model.Status) (*model.Application, error) {
	return m.app(m.Called(ctx, ownerID, id, status))
}

func (m *MockApplicationService) Delete(ctx context.Context, ownerID, id string) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *MockApplicationService) AddNote(ctx context.Context, ownerID, id, content string) (*model.Note, error) {
	args := m.Called(ctx, ownerID, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockApplicationService) DeleteNote(ctx context.Context, ownerID, id, noteID string) error {
	return m.Called(ctx, ownerID, id, noteID).Error(0)
}

func (m *MockApplicationService) AddReminder(ctx context.Context, ownerID, id, title string, due time.Time) (*model.Reminder, error) {
	args := m.Called(ctx, ownerID, id, title, due)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reminder), args.Error(1)
}

func (m *MockApplicationService) ToggleReminder(ctx context.Context, ownerID, id, reminderID string) (*model.Reminder, error) {
	args := m.Called(ctx, ownerID, id, reminderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reminder), args.Error(1)
}

func (m *MockApplicationService) DeleteReminder(ctx context.Context, ownerID, id, reminderID string) error {
	return m.Called(ctx, ownerID, id, reminderID).Error(0)
}

func (m *MockApplicationService) AddTag(ctx context.Context, ownerID, id, tag string) ([]string, error) {
	return m.tags(m.Called(ctx, ownerID, id, tag))
}

func (m *MockApplicationService) RemoveTag(ctx context.Context, ownerID, id, tag string) ([]string, error) {
	return m.tags(m.Called(ctx, ownerID, id, tag))
}

func (m *MockApplicationService) AddTimelineEvent(ctx context.Context, ownerID, id, title, description string) (*model.TimelineEvent, error) {
	args := m.Called(ctx, ownerID, id, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TimelineEvent), args.Error(1)
}

func (m *MockApplicationService) BulkUpdateStatus(ctx context.Context, ownerID string, ids []string, status model.Status) (service.BatchResult, error) {
	args := m.Called(ctx, ownerID, ids, status)
	return args.Get(0).(service.BatchResult), args.Error(1)
}

func (m *MockApplicationService) BulkDelete(ctx context.Context, ownerID string, ids []string) (service.BatchResult, error) {
	args := m.Called(ctx, ownerID, ids)
	return args.Get(0).(service.BatchResult), args.Error(1)
}

func (m *MockApplicationService) Query(ctx context.Context, ownerID string, q analytics.Query) ([]model.Application, error) {
	args := m.Called(ctx, ownerID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationService) Summary(ctx context.Context, ownerID string, r analytics.TimeRange) (analytics.Stats, error) {
	args := m.Called(ctx, ownerID, r)
	return args.Get(0).(analytics.Stats), args.Error(1)
}

func (m *MockApplicationService) Trend(ctx context.Context, ownerID string, r analytics.TimeRange) ([]analytics.TrendPoint, error) {
	args := m.Called(ctx, ownerID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.TrendPoint), args.Error(1)
}

func (m *MockApplicationService) AvailableTags(ctx context.Context, ownerID string) ([]string, error) {
	return m.tags(m.Called(ctx, ownerID))
}

func (m *MockApplicationService) Backup(ctx context.Context, ownerID string, prefs model.Preferences) (*model.Backup, error) {
	args := m.Called(ctx, ownerID, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Backup), args.Error(1)
}

func (m *MockApplicationService) Restore(ctx context.Context, ownerID string) (*service.RestoreResult, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RestoreResult), args.Error(1)
}

func (m *MockApplicationService) SavePreferences(ctx context.Context, ownerID string, p model.Preferences) error {
	return m.Called(ctx, ownerID, p).Error(0)
}

func (m *MockApplicationService) LoadPreferences(ctx context.Context, ownerID string) (model.Preferences, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(model.Preferences), args.Error(1)
}

func (m *MockApplicationService) Generate(ctx context.Context, ownerID, id string) (*model.Application, error) {
	return m.app(m.Called(ctx, ownerID, id))
}

func (m *MockApplicationService) ExportApplication(ctx context.Context, ownerID, id string) (*export.Link, error) {
	return m.link(m.Called(ctx, ownerID, id))
}

func (m *MockApplicationService) ExportAnalytics(ctx context.Context, ownerID string, q analytics.Query, r analytics.TimeRange, f export.Format) (*export.Link, error) {
	return m.link(m.Called(ctx, ownerID, q, r, f))
}
