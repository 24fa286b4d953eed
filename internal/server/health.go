package server

import (
	"context"
	"errors"

	"github.com/vanshika/degrees/internal/catalog"
	"github.com/vanshika/degrees/internal/graph"
)

// ErrEmptyCatalog is reported by CatalogHealthService when no people are loaded.
var ErrEmptyCatalog = errors.New("catalog has no people loaded")

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// GraphHealthService verifies graph connectivity when the catalog was read
// from Neo4j. A nil client means the CSV dataset was used and always passes.
type GraphHealthService struct {
	Client graph.Client
}

// Probe implements the HealthService interface.
func (s GraphHealthService) Probe(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.VerifyConnectivity(ctx)
}

// CatalogHealthService fails while the in-memory catalog is empty.
type CatalogHealthService struct {
	Catalog interface{ Stats() catalog.LoadStats }
}

// Probe implements the HealthService interface.
func (s CatalogHealthService) Probe(context.Context) error {
	if s.Catalog == nil || s.Catalog.Stats().People == 0 {
		return ErrEmptyCatalog
	}
	return nil
}

// HealthChecks runs every probe and joins the failures.
type HealthChecks []HealthService

// Probe implements the HealthService interface.
func (hc HealthChecks) Probe(ctx context.Context) error {
	var errs []error
	for _, check := range hc {
		if err := check.Probe(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
