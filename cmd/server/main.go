package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vanshika/degrees/internal/catalog"
	"github.com/vanshika/degrees/internal/config"
	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/graph"
	"github.com/vanshika/degrees/internal/logging"
	"github.com/vanshika/degrees/internal/metrics"
	"github.com/vanshika/degrees/internal/repository"
	"github.com/vanshika/degrees/internal/search"
	"github.com/vanshika/degrees/internal/server"
	"github.com/vanshika/degrees/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	graphClient, err := buildGraphClient(ctx, cfg)
	if err != nil && !errors.Is(err, graph.ErrMissingURI) {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if graphClient != nil {
			if err := graphClient.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
	}()

	ds, err := loadDataset(ctx, logger, cfg, graphClient)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}

	if ds.InvalidBirths > 0 {
		logger.Warn("unparseable birth years loaded as unknown", "people", ds.InvalidBirths)
	}

	store, stats := catalog.Load(ds.People, ds.Movies, ds.Cast)
	if stats.SkippedCastLinks > 0 {
		logger.Warn("skipped cast rows referencing unknown records", "skipped", stats.SkippedCastLinks)
	}
	logger.Info("catalog loaded", "people", stats.People, "movies", stats.Movies, "cast", stats.CastLinks)

	var (
		recorder       service.SearchRecorder
		metricsHandler http.Handler
	)
	if cfg.HTTP.MetricsEnabled {
		m := metrics.New()
		m.SetCatalog(stats)
		recorder = m
		metricsHandler = m.Handler()
	}

	degreesService := service.NewDegreesService(store, search.Options{MaxDepth: cfg.Search.MaxDepth}, recorder)
	apiHandlers := server.NewAPIHandlers(logger.With("component", "api"), degreesService)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health: server.HealthChecks{
			server.GraphHealthService{Client: graphClient},
			server.CatalogHealthService{Catalog: store},
		},
		API:              apiHandlers,
		Metrics:          metricsHandler,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped unexpectedly", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// loadDataset reads the catalog from Neo4j when a graph client is
// configured, otherwise from the CSV directory.
func loadDataset(ctx context.Context, logger *slog.Logger, cfg config.Config, client graph.Client) (dataset.Dataset, error) {
	if client != nil {
		logger.Info("loading catalog from graph", "uri", cfg.Graph.URI)
		return repository.New(client).Export(ctx)
	}
	logger.Info("loading catalog from csv", "dir", cfg.Dataset.Dir)
	return dataset.LoadDir(ctx, cfg.Dataset.Dir)
}

func buildGraphClient(ctx context.Context, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, graph.ErrMissingURI
	}

	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
		QueryTimeout:   cfg.Graph.QueryTimeout,
	}
	return graph.NewNeo4jClient(ctx, opts)
}

func parseAllowedOrigins(csv string) []string {
	var origins []string
	for _, part := range strings.Split(csv, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
