package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"jobtracker/internal/cache"
	"jobtracker/internal/logger"
	"jobtracker/internal/model"
	"jobtracker/internal/schemas"
)

// RestoreResult reports a restore: the preferences read back and one result per record.
type RestoreResult struct {
	Timestamp   time.Time
	Preferences model.Preferences
	Batch       BatchResult
}

func (s *applicationService) Backup(ctx context.Context, ownerID string, prefs model.Preferences) (*model.Backup, error) {
	recs, err := s.records(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	b := &model.Backup{
		Timestamp:    s.now().UTC(),
		Applications: recs,
		Settings:     normalizePreferences(prefs),
	}
	blob, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	if err := s.cache.SaveBackup(ctx, ownerID, blob); err != nil {
		return nil, fmt.Errorf("save backup: %w", err)
	}
	s.log.Info("backup saved",
		logger.String("owner_id", ownerID),
		logger.Int("applications", len(recs)),
		logger.Int("bytes", len(blob)),
	)
	return b, nil
}

// Restore reads the owner's backup, validates it, then writes every record back as a
// full update with bulk semantics and reloads the snapshot.
func (s *applicationService) Restore(ctx context.Context, ownerID string) (*RestoreResult, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	blob, err := s.cache.LoadBackup(ctx, ownerID)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, ErrNoBackup
		}
		return nil, fmt.Errorf("load backup: %w", err)
	}
	if err := schemas.ValidateBackup(blob); err != nil {
		return nil, err
	}
	var b model.Backup
	if err := json.Unmarshal(blob, &b); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}

	current, err := s.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]bool, len(current))
	for _, a := range current {
		owned[a.ID] = true
	}

	byID := make(map[string]model.Application, len(b.Applications))
	ids := make([]string, 0, len(b.Applications))
	for _, a := range b.Applications {
		if _, dup := byID[a.ID]; !dup {
			ids = append(ids, a.ID)
		}
		byID[a.ID] = a
	}

	batch := s.runBatch(ctx, "restore", ids, func(ctx context.Context, id string) error {
		if !owned[id] {
			return fmt.Errorf("restore application %s: %w", id, ErrApplicationNotFound)
		}
		defer s.lockRecord(ownerID, id)()
		if err := s.repo.Update(ctx, id, model.FullPatch(byID[id])); err != nil {
			return fmt.Errorf("restore application %s: %w", id, err)
		}
		return nil
	})

	prefs := normalizePreferences(b.Settings)
	if err := s.cache.SavePreferences(ctx, ownerID, prefs); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	if _, err := s.Load(ctx, ownerID); err != nil {
		return nil, err
	}
	return &RestoreResult{Timestamp: b.Timestamp, Preferences: prefs, Batch: batch}, nil
}

func (s *applicationService) SavePreferences(ctx context.Context, ownerID string, p model.Preferences) error {
	if ownerID == "" {
		return ErrUnauthenticated
	}
	if err := s.cache.SavePreferences(ctx, ownerID, normalizePreferences(p)); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func (s *applicationService) LoadPreferences(ctx context.Context, ownerID string) (model.Preferences, error) {
	if ownerID == "" {
		return model.Preferences{}, ErrUnauthenticated
	}
	p, err := s.cache.LoadPreferences(ctx, ownerID)
	if errors.Is(err, cache.ErrMiss) {
		return model.DefaultPreferences(), nil
	}
	if err != nil {
		return model.Preferences{}, fmt.Errorf("load preferences: %w", err)
	}
	return normalizePreferences(p), nil
}

// normalizePreferences fills unset fields with defaults and drops duplicate tags.
func normalizePreferences(p model.Preferences) model.Preferences {
	def := model.DefaultPreferences()
	if p.ViewMode == "" {
		p.ViewMode = def.ViewMode
	}
	if p.TimeRange == "" {
		p.TimeRange = def.TimeRange
	}
	if p.InsightFilter == "" {
		p.InsightFilter = def.InsightFilter
	}
	p.SelectedTags = model.DedupeTags(slices.Clone(p.SelectedTags))
	return p
}
