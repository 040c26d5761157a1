// Package client is a small HTTP client for the data claim service API,
// used by the claimctl command.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/madhuka-dev/dataclaim-service/internal/domain"
)

// Client talks to one data claim service instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a service client for the given base URL, e.g.
// "http://localhost:3001".
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// APIError is a non-2xx response from the service, carrying the body's
// message and error fields when the body was a recognizable envelope.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("service returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("service returned status %d", e.StatusCode)
}

// ClaimSubmission is the POST /claim-data request payload.
type ClaimSubmission struct {
	PhoneNumber string           `json:"phoneNumber"`
	SelectedGB  string           `json:"selectedGB"`
	Location    *domain.Position `json:"location,omitempty"`
}

// ClaimReceipt is the successful submission response.
type ClaimReceipt struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	ClaimID string             `json:"claimId"`
	Data    domain.ClaimRecord `json:"data"`
}

// HealthReport is the GET /health response.
type HealthReport struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	MongoDB   string    `json:"mongodb"`
	Timestamp time.Time `json:"timestamp"`
}

// SubmitClaim submits one data claim.
func (c *Client) SubmitClaim(ctx context.Context, sub ClaimSubmission) (ClaimReceipt, error) {
	var receipt ClaimReceipt
	if err := c.doRequest(ctx, http.MethodPost, "/claim-data", sub, &receipt); err != nil {
		return ClaimReceipt{}, err
	}
	return receipt, nil
}

// Claims lists recent claims, newest first.
func (c *Client) Claims(ctx context.Context) ([]domain.ClaimRecord, error) {
	var envelope struct {
		Data []domain.ClaimRecord `json:"data"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/claims", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// Locations lists the named point catalog.
func (c *Client) Locations(ctx context.Context) ([]domain.LocationPoint, error) {
	var envelope struct {
		Data []domain.LocationPoint `json:"data"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/locations", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// AddLocation adds a named point to the catalog.
func (c *Client) AddLocation(ctx context.Context, name string, latitude, longitude float64, description string) (domain.LocationPoint, error) {
	payload := struct {
		Name        string  `json:"name"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		Description string  `json:"description,omitempty"`
	}{Name: name, Latitude: latitude, Longitude: longitude, Description: description}

	var envelope struct {
		Data domain.LocationPoint `json:"data"`
	}
	if err := c.doRequest(ctx, http.MethodPost, "/locations", payload, &envelope); err != nil {
		return domain.LocationPoint{}, err
	}
	return envelope.Data, nil
}

// Health fetches the service health summary.
func (c *Client) Health(ctx context.Context) (HealthReport, error) {
	var report HealthReport
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, &report); err != nil {
		return HealthReport{}, err
	}
	return report, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return readAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func readAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return apiErr
	}
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		apiErr.Message = envelope.Message
		apiErr.Detail = envelope.Error
		if apiErr.Message == "" {
			apiErr.Message = envelope.Error
		}
	}
	return apiErr
}
