package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/logging"
)

const (
	defaultIngestWorkers   = 4
	defaultIngestBatchSize = 500
)

// TaskError accumulates multiple errors produced during bulk ingestion.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d batches failed: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Ingestor is the write side of the graph repository.
type Ingestor interface {
	UpsertPeople(ctx context.Context, people []domain.Person) error
	UpsertMovies(ctx context.Context, movies []domain.Movie) error
	LinkCast(ctx context.Context, cast []domain.CastLink) (int, error)
}

// BulkIngestor writes a dataset to the graph in batches using a worker pool.
type BulkIngestor struct {
	repo      Ingestor
	workers   int
	batchSize int
	logger    *slog.Logger
}

// NewBulkIngestor creates a BulkIngestor. Non-positive workers or batchSize
// fall back to defaults.
func NewBulkIngestor(repo Ingestor, workers, batchSize int, logger *slog.Logger) *BulkIngestor {
	if workers <= 0 {
		workers = defaultIngestWorkers
	}
	if batchSize <= 0 {
		batchSize = defaultIngestBatchSize
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &BulkIngestor{
		repo:      repo,
		workers:   workers,
		batchSize: batchSize,
		logger:    logger,
	}
}

// IngestDataset writes people and movies first, then links the cast once
// both node sets exist.
func (bi *BulkIngestor) IngestDataset(ctx context.Context, ds dataset.Dataset) (IngestReport, error) {
	report := IngestReport{
		People:    len(ds.People),
		Movies:    len(ds.Movies),
		CastLinks: len(ds.Cast),
	}

	if err := bi.IngestPeople(ctx, ds.People); err != nil {
		return report, fmt.Errorf("ingest people: %w", err)
	}
	bi.logger.Info("people ingested", "count", len(ds.People))

	if err := bi.IngestMovies(ctx, ds.Movies); err != nil {
		return report, fmt.Errorf("ingest movies: %w", err)
	}
	bi.logger.Info("movies ingested", "count", len(ds.Movies))

	linked, err := bi.IngestCast(ctx, ds.Cast)
	report.LinkedCast = linked
	if err != nil {
		return report, fmt.Errorf("ingest cast: %w", err)
	}
	bi.logger.Info("cast linked", "rows", len(ds.Cast), "linked", linked)
	return report, nil
}

// IngestPeople upserts people in batches.
func (bi *BulkIngestor) IngestPeople(ctx context.Context, people []domain.Person) error {
	return bi.run(ctx, batchCount(len(people), bi.batchSize), func(idx int) error {
		lo, hi := batchBounds(idx, bi.batchSize, len(people))
		return bi.repo.UpsertPeople(ctx, people[lo:hi])
	})
}

// IngestMovies upserts movies in batches.
func (bi *BulkIngestor) IngestMovies(ctx context.Context, movies []domain.Movie) error {
	return bi.run(ctx, batchCount(len(movies), bi.batchSize), func(idx int) error {
		lo, hi := batchBounds(idx, bi.batchSize, len(movies))
		return bi.repo.UpsertMovies(ctx, movies[lo:hi])
	})
}

// IngestCast links cast rows in batches and returns how many matched
// existing nodes.
func (bi *BulkIngestor) IngestCast(ctx context.Context, cast []domain.CastLink) (int, error) {
	var linked atomic.Int64
	err := bi.run(ctx, batchCount(len(cast), bi.batchSize), func(idx int) error {
		lo, hi := batchBounds(idx, bi.batchSize, len(cast))
		n, err := bi.repo.LinkCast(ctx, cast[lo:hi])
		linked.Add(int64(n))
		return err
	})
	return int(linked.Load()), err
}

func batchCount(total, size int) int {
	return (total + size - 1) / size
}

func batchBounds(idx, size, total int) (int, int) {
	lo := idx * size
	return lo, min(lo+size, total)
}

func (bi *BulkIngestor) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				errCh <- err
			}
		}
	}

	for range min(bi.workers, total) {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	if err := ctx.Err(); err != nil {
		return err
	}

	var taskErr TaskError
	for err := range errCh {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
