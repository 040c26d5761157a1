package geolocate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/madhuka-dev/dataclaim-service/internal/domain"
)

// IP-geolocation fixes are city-level at best; reported when the provider
// gives no accuracy of its own.
const (
	defaultAccuracyMeters      = 25000
	highAccuracyFallbackMeters = 5000
)

// HTTPProvider resolves the caller's position from an IP-geolocation
// endpoint that answers with {status, lat, lon, accuracy} JSON
// (ip-api.com/json compatible).
type HTTPProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPProvider creates a provider against the given endpoint. The client
// timeout is a safety net; the Acquirer's context deadline is the real bound.
func NewHTTPProvider(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// CurrentPosition fetches a single fix. Refusals (401/403) classify as
// permission denied, unusable payloads as position unavailable; transport
// errors are left for the Acquirer to classify.
func (p *HTTPProvider) CurrentPosition(ctx context.Context, highAccuracy bool) (domain.Position, error) {
	params := url.Values{
		"fields": {"status,message,lat,lon,accuracy"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Position{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domain.Position{}, fmt.Errorf("position request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.Position{}, &Error{Kind: KindPermissionDenied, Err: fmt.Errorf("provider refused request: status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return domain.Position{}, &Error{Kind: KindPositionUnavailable, Err: fmt.Errorf("provider error: status %d: %s", resp.StatusCode, body)}
	}

	var geoResp response
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		return domain.Position{}, &Error{Kind: KindPositionUnavailable, Err: fmt.Errorf("decode response: %w", err)}
	}
	if geoResp.Status == "fail" {
		return domain.Position{}, &Error{Kind: KindPositionUnavailable, Err: fmt.Errorf("provider reported failure: %s", geoResp.Message)}
	}

	accuracy := geoResp.Accuracy
	if accuracy == 0 {
		accuracy = defaultAccuracyMeters
		if highAccuracy {
			accuracy = highAccuracyFallbackMeters
		}
	}

	return domain.Position{
		Latitude:  geoResp.Lat,
		Longitude: geoResp.Lon,
		Accuracy:  accuracy,
	}, nil
}

// Provider response types.

type response struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Accuracy float64 `json:"accuracy"`
}
