package mocks

import (
	"context"

	"jobtracker/internal/model"
	"jobtracker/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockApplicationRepository struct {
	mock.Mock
}

var _ repository.ApplicationRepository = (*MockApplicationRepository)(nil)

func (m *MockApplicationRepository) Create(ctx context.Context, ownerID string, app *model.Application) (string, error) {
	args := m.Called(ctx, ownerID, app)
	return args.String(0), args.Error(1)
}

func (m *MockApplicationRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Application, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) Update(ctx context.Context, id string, patch model.ApplicationPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}
