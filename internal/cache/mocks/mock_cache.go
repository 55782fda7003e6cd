package mocks

import (
	"context"
	"time"

	"jobtracker/internal/cache"
	"jobtracker/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockCache struct {
	mock.Mock
}

var _ cache.Cache = (*MockCache)(nil)

func (m *MockCache) SaveBackup(ctx context.Context, ownerID string, blob []byte) error {
	args := m.Called(ctx, ownerID, blob)
	return args.Error(0)
}

func (m *MockCache) LoadBackup(ctx context.Context, ownerID string) ([]byte, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) SavePreferences(ctx context.Context, ownerID string, p model.Preferences) error {
	args := m.Called(ctx, ownerID, p)
	return args.Error(0)
}

func (m *MockCache) LoadPreferences(ctx context.Context, ownerID string) (model.Preferences, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(model.Preferences), args.Error(1)
}

type MockRevoker struct {
	mock.Mock
}

var _ cache.Revoker = (*MockRevoker)(nil)

func (m *MockRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
