package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vanshika/degrees/internal/catalog"
	"github.com/vanshika/degrees/internal/config"
	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/graph"
	"github.com/vanshika/degrees/internal/logging"
	"github.com/vanshika/degrees/internal/repository"
	"github.com/vanshika/degrees/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	var (
		datasetDir = flag.String("dataset-dir", cfg.Dataset.Dir, "directory containing people.csv, movies.csv and stars.csv")
		workers    = flag.Int("workers", 4, "number of concurrent workers for ingestion")
		batchSize  = flag.Int("batch-size", 500, "rows per UNWIND batch")
	)
	flag.Parse()

	logger := logging.New(cfg.Logging).With("component", "ingest")

	if cfg.Graph.URI == "" {
		logger.Error("GRAPH_URI must be set", "error", graph.ErrMissingURI)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ds, err := dataset.LoadDir(ctx, *datasetDir)
	if err != nil {
		logger.Error("failed to load dataset", "error", err, "dir", *datasetDir)
		os.Exit(1)
	}
	if len(ds.People) == 0 {
		logger.Error("people dataset empty", "dir", *datasetDir)
		os.Exit(1)
	}
	if ds.InvalidBirths > 0 {
		logger.Warn("unparseable birth years loaded as unknown", "people", ds.InvalidBirths)
	}
	if _, stats := catalog.Load(ds.People, ds.Movies, ds.Cast); stats.SkippedCastLinks > 0 {
		logger.Warn("cast rows reference unknown records and will not be linked", "skipped", stats.SkippedCastLinks)
	}

	graphClient, err := graph.NewNeo4jClient(ctx, graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
		QueryTimeout:   cfg.Graph.QueryTimeout,
	})
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	repo := repository.New(graphClient)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("failed to apply graph schema", "error", err)
		os.Exit(1)
	}
	ingestor := service.NewBulkIngestor(repo, *workers, *batchSize, logger)

	start := time.Now()
	logger.Info("ingesting dataset", "dir", *datasetDir, "people", len(ds.People), "movies", len(ds.Movies), "cast", len(ds.Cast), "workers", *workers)
	report, err := ingestor.IngestDataset(ctx, ds)
	if err != nil {
		var taskErr *service.TaskError
		if errors.As(err, &taskErr) {
			logger.Error("ingestion failed", "failed_batches", len(taskErr.Errors), "error", err)
		} else {
			logger.Error("ingestion failed", "error", err)
		}
		os.Exit(1)
	}

	logger.Info("ingestion complete",
		"duration", time.Since(start).String(),
		"people", report.People,
		"movies", report.Movies,
		"cast_rows", report.CastLinks,
		"cast_linked", report.LinkedCast,
	)
}
