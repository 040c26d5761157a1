package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/madhuka-dev/dataclaim-service/internal/domain"
	"github.com/madhuka-dev/dataclaim-service/internal/service"
)

// StoreStatus reports the state of the cached store connection.
type StoreStatus interface {
	Connected() bool
	CheckReadiness(ctx context.Context) error
}

// Handler carries the services behind the HTTP surface.
type Handler struct {
	claims  *service.ClaimIngestion
	catalog *service.LocationCatalog
	store   StoreStatus
	logger  *slog.Logger
}

// NewHandler wires the services into the HTTP handlers.
func NewHandler(claims *service.ClaimIngestion, catalog *service.LocationCatalog, store StoreStatus, logger *slog.Logger) *Handler {
	return &Handler{
		claims:  claims,
		catalog: catalog,
		store:   store,
		logger:  logger,
	}
}

// Request bodies: one explicit schema per endpoint, validated before any
// business logic runs.

type positionRequest struct {
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	Accuracy   float64   `json:"accuracy"`
	CapturedAt time.Time `json:"capturedAt"`
}

type claimRequest struct {
	PhoneNumber string           `json:"phoneNumber"`
	SelectedGB  string           `json:"selectedGB"`
	Location    *positionRequest `json:"location"`
}

type addLocationRequest struct {
	Name        string   `json:"name"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Description string   `json:"description"`
}

// SubmitClaim handles POST /claim-data.
func (h *Handler) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Success: false, Error: "Invalid request body"})
		return
	}

	var pos *domain.Position
	if req.Location != nil {
		if req.Location.Latitude == nil || req.Location.Longitude == nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Success: false, Error: "Location must carry latitude and longitude"})
			return
		}
		pos = &domain.Position{
			Latitude:   *req.Location.Latitude,
			Longitude:  *req.Location.Longitude,
			Accuracy:   req.Location.Accuracy,
			CapturedAt: req.Location.CapturedAt,
		}
	}

	rec, err := h.claims.Submit(r.Context(), service.SubmitClaimInput{
		PhoneNumber: req.PhoneNumber,
		SelectedGB:  req.SelectedGB,
		Location:    pos,
		SourceIP:    clientIP(r),
		UserAgent:   r.UserAgent(),
	})
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, errorBody{Success: false, Error: ve.Message})
			return
		}
		h.logger.Error("claim submission failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Success: false, Error: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool               `json:"success"`
		Message string             `json:"message"`
		ClaimID string             `json:"claimId"`
		Data    domain.ClaimRecord `json:"data"`
	}{
		Success: true,
		Message: "Data claim submitted successfully",
		ClaimID: rec.ID.Hex(),
		Data:    rec,
	})
}

// ListClaims handles GET /claims: the administrative read, newest first.
func (h *Handler) ListClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.claims.Recent(r.Context())
	if err != nil {
		h.logger.Error("fetching claims failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Success: false, Error: "Internal server error"})
		return
	}
	if claims == nil {
		claims = []domain.ClaimRecord{}
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool                 `json:"success"`
		Data    []domain.ClaimRecord `json:"data"`
	}{Success: true, Data: claims})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	status := "disconnected"
	if h.store.Connected() {
		status = "connected"
	}

	writeJSON(w, http.StatusOK, struct {
		Success   bool      `json:"success"`
		Message   string    `json:"message"`
		MongoDB   string    `json:"mongodb"`
		Timestamp time.Time `json:"timestamp"`
	}{
		Success:   true,
		Message:   "Server is running",
		MongoDB:   status,
		Timestamp: domain.Now().UTC(),
	})
}

// Readiness handles GET /readyz: ready once the store answers, establishing
// the connection if this is the first store-backed call.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// ListLocations handles GET /locations, seeding the catalog when empty.
func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	points, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("fetching locations failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Success: false, Error: err.Error(), Message: "Failed to fetch locations"})
		return
	}
	if points == nil {
		points = []domain.LocationPoint{}
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool                   `json:"success"`
		Data    []domain.LocationPoint `json:"data"`
		Message string                 `json:"message"`
	}{Success: true, Data: points, Message: "Locations retrieved successfully"})
}

// AddLocation handles POST /locations.
func (h *Handler) AddLocation(w http.ResponseWriter, r *http.Request) {
	var req addLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Success: false, Message: "Missing required fields: name, latitude, longitude"})
		return
	}
	if req.Name == "" || req.Latitude == nil || req.Longitude == nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Success: false, Message: "Missing required fields: name, latitude, longitude"})
		return
	}

	point, err := h.catalog.Add(r.Context(), req.Name, *req.Latitude, *req.Longitude, req.Description)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, errorBody{Success: false, Message: ve.Message})
			return
		}
		h.logger.Error("adding location failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Success: false, Error: err.Error(), Message: "Failed to add location"})
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Success bool                 `json:"success"`
		Data    domain.LocationPoint `json:"data"`
		Message string               `json:"message"`
	}{Success: true, Data: point, Message: "Location added successfully"})
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the peer
// address without its port.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
