package verifier

import (
	"context"
	"sync"
	"verifier/pkg/domain"
	"verifier/pkg/logger"
	"verifier/pkg/serrors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// VerifyBatch fans the address list out over a bounded worker pool and
// collects exactly one result per input entry, keeping input order even when
// probes complete out of order. A list above the configured ceiling is
// rejected before any address is processed. Individual failures never abort
// the batch.
func (v *verifier) VerifyBatch(ctx context.Context, emails []string, skipProbe bool) (*domain.BatchReport, error) {
	if len(emails) > v.options.BatchLimit {
		return nil, serrors.With(serrors.ErrTooLarge,
			"batch too large: %d > %d", len(emails), v.options.BatchLimit)
	}

	ctx, span := v.tracer.Start(ctx, "verifier.VerifyBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("batch.size", len(emails)))

	results := make([]domain.Result, len(emails))

	workers := v.options.BatchConcurrency
	if workers > len(emails) {
		workers = len(emails)
	}

	type task struct {
		idx   int
		email string
	}

	tasks := make(chan task)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				outcome := v.Verify(ctx, t.email, skipProbe)
				results[t.idx] = domain.Result{
					Email:  t.email,
					Status: outcome.Status,
					Reason: outcome.Reason,
				}
			}
		}()
	}

	for i, email := range emails {
		tasks <- task{idx: i, email: email}
	}
	close(tasks)
	wg.Wait()

	report := &domain.BatchReport{
		Summary: domain.Tally(results),
		Results: results,
	}
	logger.Debug(ctx, "batch settled",
		zap.Int("total", report.Summary.Total),
		zap.Int("valid", report.Summary.Valid),
		zap.Int("invalid", report.Summary.Invalid),
		zap.Int("unknown", report.Summary.Unknown))

	return report, nil
}
