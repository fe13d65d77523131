package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/guber-mobility/service-trips/internal/clients/transport"
	"github.com/guber-mobility/service-trips/internal/domain/errs"
	"github.com/guber-mobility/service-trips/internal/domain/trip"
)

// Config holds the geocoding provider settings.
type Config struct {
	BaseURL       string
	UserAgent     string
	Timeout       time.Duration
	MaxAttempts   int
	RetryInterval time.Duration
}

// Client resolves free-text addresses against a Nominatim-compatible search
// endpoint. Transient provider failures are retried transparently.
type Client struct {
	baseURL   string
	userAgent string
	retryer   *transport.Retryer
	logger    *zap.Logger
}

// NewClient creates a geocoding client for the configured provider.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		retryer: transport.NewRetryer(
			&http.Client{Timeout: cfg.Timeout},
			cfg.MaxAttempts,
			cfg.RetryInterval,
		),
		logger: logger,
	}
}

// candidate is one entry of the provider's search response. Coordinates
// arrive as strings and are parsed defensively.
type candidate struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Geocode resolves a query to its best match. An empty candidate list or
// unparsable coordinates yield a NotFoundError rather than a failure.
func (c *Client) Geocode(ctx context.Context, query string) (*trip.GeocodeResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocoding: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.retryer.Do(req)
	if err != nil {
		return nil, errs.NewUnavailableError("geocoding service", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding: unexpected status %d", resp.StatusCode)
	}

	var candidates []candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, errs.NewDecodingError(fmt.Sprintf("geocoding: malformed response: %v", err))
	}

	if len(candidates) == 0 {
		return nil, errs.NewNotFoundError(fmt.Sprintf("geocode match for %q", query))
	}

	first := candidates[0]
	lat, latErr := strconv.ParseFloat(first.Lat, 64)
	lon, lonErr := strconv.ParseFloat(first.Lon, 64)
	if latErr != nil || lonErr != nil {
		c.logger.Warn("geocoding candidate has unparsable coordinates",
			zap.String("query", query),
			zap.String("lat", first.Lat),
			zap.String("lon", first.Lon),
		)
		return nil, errs.NewNotFoundError(fmt.Sprintf("geocode match for %q", query))
	}

	displayName := first.DisplayName
	if displayName == "" {
		displayName = query
	}

	return &trip.GeocodeResult{
		Point:       trip.GeoPoint{Latitude: lat, Longitude: lon},
		DisplayName: displayName,
	}, nil
}
