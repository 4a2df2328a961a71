package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/okian/braincap/internal/domain/dedupe"
	"github.com/okian/braincap/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// AssessBatch scores many assessments with at most WorkerCount in flight.
// Results keep input order. A submission ID seen earlier in the batch is
// skipped as a duplicate; assessments without an ID get a generated one.
// Invalid assessments fail individually and do not stop the batch, and their
// ID stays free for a later corrected resubmission. Only context
// cancellation fails the call as a whole.
func (s *Service) AssessBatch(ctx context.Context, items []Assessment) ([]BatchResult, error) {
	start := time.Now()
	results := make([]BatchResult, len(items))
	seen := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))

	type job struct {
		idx int
		a   Assessment
	}
	jobs := make([]job, 0, len(items))
	// Sequential so the first occurrence of an ID always wins.
	for i, a := range items {
		results[i].Index = i
		if a.SubmissionID == "" {
			a.SubmissionID = uuid.NewString()
		}
		if seen.SeenAndRecord(ctx, a.SubmissionID) {
			results[i].Duplicate = true
			s.metrics.RecordDuplicate()
			s.logger.Debug(ctx, "duplicate submission skipped",
				logger.String("submission_id", a.SubmissionID),
				logger.Int("index", i),
			)
			continue
		}
		if err := s.check(ctx, a); err != nil {
			seen.Unrecord(ctx, a.SubmissionID)
			results[i].Err = err
			results[i].Error = err.Error()
			continue
		}
		jobs = append(jobs, job{idx: i, a: a})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerCount)
	for _, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[j.idx].Report = s.score(gctx, j.a)
			return nil
		})
	}
	err := g.Wait()

	elapsed := time.Since(start)
	s.metrics.ObserveBatchDuration(elapsed)
	s.logger.Info(ctx, "batch scored",
		logger.Int("items", len(items)),
		logger.Int("scored", len(jobs)),
		logger.Int("dedupe_size", seen.Size()),
		logger.Duration("elapsed", elapsed),
	)
	if err != nil {
		return results, fmt.Errorf("service.AssessBatch: %w", err)
	}
	return results, nil
}
