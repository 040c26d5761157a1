package service

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/madhuka-dev/dataclaim-service/internal/domain"
	"github.com/madhuka-dev/dataclaim-service/internal/observability"
)

// catalogListLimit caps a catalog read. Fixed, no paging.
const catalogListLimit = 10

// LocationStore is the persistence surface the catalog needs.
type LocationStore interface {
	List(ctx context.Context, limit int64) ([]domain.LocationPoint, error)
	Insert(ctx context.Context, p domain.LocationPoint) (domain.LocationPoint, error)
	InsertMany(ctx context.Context, points []domain.LocationPoint) error
}

// LocationCatalog reads and extends the named-point catalog, seeding it on
// first read while empty.
type LocationCatalog struct {
	store   LocationStore
	logger  *slog.Logger
	metrics *observability.Metrics

	// seeding coalesces concurrent bootstrap attempts: two requests that both
	// observe an empty catalog must not both insert the seed set.
	seeding singleflight.Group
}

// NewLocationCatalog creates the catalog service.
func NewLocationCatalog(store LocationStore, logger *slog.Logger, metrics *observability.Metrics) *LocationCatalog {
	return &LocationCatalog{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// List returns up to 10 points in store order. An empty catalog is seeded
// with the fixed example set before re-reading; the emptiness check and seed
// insert run behind a single-flight gate, and the check repeats inside the
// gate so a request that waited on a racer's seed does not seed again.
func (s *LocationCatalog) List(ctx context.Context) ([]domain.LocationPoint, error) {
	points, err := s.store.List(ctx, catalogListLimit)
	if err != nil {
		return nil, err
	}
	if len(points) > 0 {
		return points, nil
	}

	if _, err, _ := s.seeding.Do("bootstrap", func() (any, error) {
		return nil, s.bootstrap(ctx)
	}); err != nil {
		return nil, err
	}

	return s.store.List(ctx, catalogListLimit)
}

func (s *LocationCatalog) bootstrap(ctx context.Context) error {
	points, err := s.store.List(ctx, catalogListLimit)
	if err != nil {
		return err
	}
	if len(points) > 0 {
		return nil
	}

	seeds := domain.SeedLocations()
	if err := s.store.InsertMany(ctx, seeds); err != nil {
		return err
	}

	s.metrics.CatalogBootstraps.Inc()
	s.logger.Info("location catalog seeded", "count", len(seeds))
	return nil
}

// Add validates and inserts one point, returning it with the store-assigned
// id and a server-assigned creation time. Coordinates are accepted unranged.
func (s *LocationCatalog) Add(ctx context.Context, name string, latitude, longitude float64, description string) (domain.LocationPoint, error) {
	if strings.TrimSpace(name) == "" {
		return domain.LocationPoint{}, &domain.ValidationError{Message: "Missing required fields: name, latitude, longitude"}
	}
	if !isFinite(latitude) || !isFinite(longitude) {
		return domain.LocationPoint{}, &domain.ValidationError{Message: "Missing required fields: name, latitude, longitude"}
	}

	point := domain.NewLocationPoint(name, latitude, longitude, description)
	stored, err := s.store.Insert(ctx, point)
	if err != nil {
		return domain.LocationPoint{}, err
	}

	s.logger.Info("location added", "location_id", stored.ID.Hex(), "name", stored.Name)
	return stored, nil
}
