package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/scamguard/internal/model"
)

// DefaultConcurrency is the number of scans a BatchProcessor runs at once.
const DefaultConcurrency = 5

// BatchProcessor scans many URLs concurrently.
// Each job gets a fresh Pipeline from the factory, so no step state is
// shared between goroutines.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each scan.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent scans.
	concurrency int

	// source is stamped on every job.
	source model.ScanSource

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent scans.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithSource sets the scan source recorded for every job.
func WithSource(source model.ScanSource) BatchOption {
	return func(b *BatchProcessor) {
		b.source = source
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
		source:          model.SourceBatch,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch scans targets and returns one job per target, in input order.
// A failed scan does not stop the others; its error is kept in Job.Err.
// The returned error is non-nil only when ctx was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, targets []string) ([]*Job, error) {
	jobs := make([]*Job, len(targets))
	err := bp.ProcessBatchWithCallback(ctx, targets, func(job *Job, index int) {
		jobs[index] = job
	})
	return jobs, err
}

// ProcessBatchWithCallback scans targets and calls callback as each scan
// finishes. The callback runs on the scanning goroutine, so it must be safe
// for concurrent use unless it only writes to its own index.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	targets []string,
	callback func(job *Job, index int),
) error {
	bp.logger.Debug("starting batch",
		"targets", len(targets),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, target := range targets {
		g.Go(func() error {
			job := NewJob(target, bp.source)

			select {
			case <-ctx.Done():
				job.Err = ctx.Err()
				callback(job, i)
				return ctx.Err()
			default:
			}

			if err := bp.pipelineFactory().Execute(ctx, job); err != nil {
				bp.logger.Warn("scan failed", "target", target, "error", err)
			}
			callback(job, i)
			return nil
		})
	}

	err := g.Wait()
	bp.logger.Debug("batch complete",
		"targets", len(targets),
		"elapsed", time.Since(startTime),
	)
	return err
}
