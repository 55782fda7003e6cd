package service

import (
	"context"
	"fmt"
	"time"

	"jobtracker/internal/analytics"
	"jobtracker/internal/export"
	"jobtracker/internal/llm"
	"jobtracker/internal/logger"
	"jobtracker/internal/model"
)

func (s *applicationService) Generate(ctx context.Context, ownerID, id string) (*model.Application, error) {
	if s.gen == nil {
		return nil, fmt.Errorf("document generation: %w", ErrUnavailable)
	}
	cur, err := s.find(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	docs, err := s.gen.GenerateDocuments(ctx, llm.Input{
		ResumeDetails:  cur.ResumeDetails,
		JobDescription: cur.JobDescription,
		CompanyName:    cur.CompanyName,
		Position:       cur.Position,
	})
	if err != nil {
		return nil, fmt.Errorf("generate documents: %w", err)
	}
	s.log.Info("documents generated",
		logger.String("application_id", id),
		logger.Duration("elapsed", time.Since(start)),
	)

	return s.Update(ctx, ownerID, id, UpdateInput{
		GeneratedResume:      &docs.Resume,
		GeneratedCoverLetter: &docs.CoverLetter,
	})
}

func (s *applicationService) ExportApplication(ctx context.Context, ownerID, id string) (*export.Link, error) {
	if s.publisher == nil {
		return nil, fmt.Errorf("export: %w", ErrUnavailable)
	}
	app, err := s.find(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	f, err := export.RenderApplication(*app, s.now())
	if err != nil {
		return nil, err
	}
	return s.publisher.Publish(ctx, ownerID, f)
}

// ExportAnalytics renders the window's statistics next to the records q selects.
func (s *applicationService) ExportAnalytics(ctx context.Context, ownerID string, q analytics.Query, r analytics.TimeRange, f export.Format) (*export.Link, error) {
	if s.publisher == nil {
		return nil, fmt.Errorf("export: %w", ErrUnavailable)
	}
	recs, err := s.records(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	rep := export.NewReport(now, r, analytics.Summarize(recs, r, now), analytics.Select(recs, q))
	file, err := export.RenderAnalytics(rep, f)
	if err != nil {
		return nil, err
	}
	return s.publisher.Publish(ctx, ownerID, file)
}
