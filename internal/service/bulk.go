package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"jobtracker/internal/logger"
	"jobtracker/internal/model"
)

// ItemResult is the outcome of one sub-operation of a batch.
type ItemResult struct {
	ID  string
	Err error
}

// BatchResult holds per-item outcomes in input order. Successful items are never rolled back.
type BatchResult struct {
	Items []ItemResult
}

// FirstError returns the error of the first failed item in input order, or nil.
func (b BatchResult) FirstError() error {
	for _, it := range b.Items {
		if it.Err != nil {
			return it.Err
		}
	}
	return nil
}

// Failed counts the items that did not apply.
func (b BatchResult) Failed() int {
	n := 0
	for _, it := range b.Items {
		if it.Err != nil {
			n++
		}
	}
	return n
}

// Succeeded counts the items that applied.
func (b BatchResult) Succeeded() int {
	return len(b.Items) - b.Failed()
}

// runBatch calls fn for every id with at most s.bulkLimit calls in flight.
// A failing item does not cancel its siblings.
func (s *applicationService) runBatch(ctx context.Context, op string, ids []string, fn func(ctx context.Context, id string) error) BatchResult {
	start := time.Now()
	res := BatchResult{Items: make([]ItemResult, len(ids))}

	var g errgroup.Group
	g.SetLimit(s.bulkLimit)
	for i, id := range ids {
		g.Go(func() error {
			res.Items[i] = ItemResult{ID: id, Err: fn(ctx, id)}
			return nil
		})
	}
	_ = g.Wait()

	fields := []logger.Field{
		logger.String("op", op),
		logger.Int("total", len(ids)),
		logger.Int("failed", res.Failed()),
		logger.Duration("elapsed", time.Since(start)),
	}
	if err := res.FirstError(); err != nil {
		s.log.Warn("batch finished with failures", append(fields, logger.Error(err))...)
	} else {
		s.log.Info("batch finished", fields...)
	}
	return res
}

func (s *applicationService) BulkUpdateStatus(ctx context.Context, ownerID string, ids []string, status model.Status) (BatchResult, error) {
	if ownerID == "" {
		return BatchResult{}, ErrUnauthenticated
	}
	if !status.Valid() {
		return BatchResult{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if _, err := s.records(ctx, ownerID); err != nil {
		return BatchResult{}, err
	}
	return s.runBatch(ctx, "bulk_update_status", ids, func(ctx context.Context, id string) error {
		_, err := s.UpdateStatus(ctx, ownerID, id, status)
		return err
	}), nil
}

func (s *applicationService) BulkDelete(ctx context.Context, ownerID string, ids []string) (BatchResult, error) {
	if ownerID == "" {
		return BatchResult{}, ErrUnauthenticated
	}
	if _, err := s.records(ctx, ownerID); err != nil {
		return BatchResult{}, err
	}
	return s.runBatch(ctx, "bulk_delete", ids, func(ctx context.Context, id string) error {
		return s.Delete(ctx, ownerID, id)
	}), nil
}
