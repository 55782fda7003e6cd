// Package cache is the durable key/value side channel: backup snapshots, view
// preferences and revoked tokens, all kept in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobtracker/internal/model"
)

// ErrMiss is returned when the key holds nothing.
var ErrMiss = errors.New("cache miss")

// Cache is what the service layer needs from the durable cache.
type Cache interface {
	// SaveBackup overwrites the owner's snapshot blob.
	SaveBackup(ctx context.Context, ownerID string, blob []byte) error
	// LoadBackup returns the blob verbatim, or ErrMiss.
	LoadBackup(ctx context.Context, ownerID string) ([]byte, error)
	SavePreferences(ctx context.Context, ownerID string, p model.Preferences) error
	// LoadPreferences returns ErrMiss when nothing was saved.
	LoadPreferences(ctx context.Context, ownerID string) (model.Preferences, error)
}

// Revoker tracks signed-out tokens until they would have expired anyway.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Store implements Cache and Revoker on a Redis client.
type Store struct {
	client *redis.Client
}

var (
	_ Cache   = (*Store)(nil)
	_ Revoker = (*Store)(nil)
)

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) SaveBackup(ctx context.Context, ownerID string, blob []byte) error {
	if err := s.client.Set(ctx, BackupKey(ownerID), blob, 0).Err(); err != nil {
		return fmt.Errorf("failed to save backup: %w", err)
	}
	return nil
}

func (s *Store) LoadBackup(ctx context.Context, ownerID string) ([]byte, error) {
	b, err := s.client.Get(ctx, BackupKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to load backup: %w", err)
	}
	return b, nil
}

func (s *Store) SavePreferences(ctx context.Context, ownerID string, p model.Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := s.client.Set(ctx, PreferencesKey(ownerID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

func (s *Store) LoadPreferences(ctx context.Context, ownerID string) (model.Preferences, error) {
	data, err := s.client.Get(ctx, PreferencesKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Preferences{}, ErrMiss
		}
		return model.Preferences{}, fmt.Errorf("failed to load preferences: %w", err)
	}

	var p model.Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Preferences{}, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	return p, nil
}

// Revoke marks tokenID as signed out for ttl. A non-positive ttl is a no-op.
func (s *Store) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, RevokedKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, RevokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return n > 0, nil
}
