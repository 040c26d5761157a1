// Package service holds the claim ingestion and location catalog business
// logic. Services validate before any store interaction, assign server-side
// timestamps, and wrap store failures without retrying.
package service

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/madhuka-dev/dataclaim-service/internal/domain"
	"github.com/madhuka-dev/dataclaim-service/internal/observability"
)

// recentClaimsLimit caps the administrative read. Fixed, no paging.
const recentClaimsLimit = 100

// ClaimStore is the persistence surface ingestion needs.
type ClaimStore interface {
	Insert(ctx context.Context, rec domain.ClaimRecord) (domain.ClaimRecord, error)
	Recent(ctx context.Context, limit int64) ([]domain.ClaimRecord, error)
}

// ClaimPublisher forwards stored claims to downstream consumers.
type ClaimPublisher interface {
	PublishClaim(ctx context.Context, rec domain.ClaimRecord) error
}

// ClaimIngestion validates and persists claim submissions.
type ClaimIngestion struct {
	store     ClaimStore
	publisher ClaimPublisher // nil when publishing is disabled
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewClaimIngestion creates the ingestion service. publisher may be nil.
func NewClaimIngestion(store ClaimStore, publisher ClaimPublisher, logger *slog.Logger, metrics *observability.Metrics) *ClaimIngestion {
	return &ClaimIngestion{
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// SubmitClaimInput carries one claim submission. SourceIP and UserAgent are
// best-effort transport metadata.
type SubmitClaimInput struct {
	PhoneNumber string
	SelectedGB  string
	Location    *domain.Position
	SourceIP    string
	UserAgent   string
}

// Submit validates the input, persists a new claim with a server-assigned
// submission time, and returns the stored record including its id. When a
// publisher is configured the stored record is forwarded best-effort: a
// publish failure is logged and counted, never surfaced to the caller.
func (s *ClaimIngestion) Submit(ctx context.Context, in SubmitClaimInput) (domain.ClaimRecord, error) {
	phone := strings.TrimSpace(in.PhoneNumber)
	gb := strings.TrimSpace(in.SelectedGB)
	if phone == "" || gb == "" {
		return domain.ClaimRecord{}, &domain.ValidationError{Message: "Phone number and GB selection are required"}
	}
	if in.Location != nil && (!isFinite(in.Location.Latitude) || !isFinite(in.Location.Longitude)) {
		return domain.ClaimRecord{}, &domain.ValidationError{Message: "Location coordinates must be finite numbers"}
	}

	rec := domain.NewClaimRecord(phone, gb, in.Location, in.SourceIP, in.UserAgent)
	stored, err := s.store.Insert(ctx, rec)
	if err != nil {
		return domain.ClaimRecord{}, err
	}

	// Diagnostic entry: tier and location presence only, no extra PII.
	s.logger.Info("new data claim stored",
		"claim_id", stored.ID.Hex(),
		"selected_gb", gb,
		"has_location", in.Location != nil,
	)
	s.metrics.ClaimsSubmitted.Inc()

	if s.publisher != nil {
		if err := s.publisher.PublishClaim(ctx, stored); err != nil {
			s.logger.Warn("claim event publish failed", "claim_id", stored.ID.Hex(), "error", err)
			s.metrics.ClaimPublishFailures.Inc()
		}
	}

	return stored, nil
}

// Recent returns the most recent claims, newest first, capped at 100.
func (s *ClaimIngestion) Recent(ctx context.Context) ([]domain.ClaimRecord, error) {
	return s.store.Recent(ctx, recentClaimsLimit)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
