package mocks

import (
	"context"

	"jobtracker/internal/export"

	"github.com/stretchr/testify/mock"
)

type MockPublisher struct {
	mock.Mock
}

var _ export.Publisher = (*MockPublisher)(nil)

func (m *MockPublisher) Publish(ctx context.Context, ownerID string, f export.File) (*export.Link, error) {
	args := m.Called(ctx, ownerID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.Link), args.Error(1)
}
