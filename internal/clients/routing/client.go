package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/guber-mobility/service-trips/internal/clients/transport"
	"github.com/guber-mobility/service-trips/internal/domain/errs"
	"github.com/guber-mobility/service-trips/internal/domain/trip"
)

// Config holds the routing provider settings.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	MaxAttempts   int
	RetryInterval time.Duration
}

// Client requests driving routes from an OSRM-compatible endpoint. Route
// geometry is requested as full-overview polyline6. Transient provider
// failures are retried transparently.
type Client struct {
	baseURL string
	retryer *transport.Retryer
	logger  *zap.Logger
}

// NewClient creates a routing client for the configured provider.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		retryer: transport.NewRetryer(
			&http.Client{Timeout: cfg.Timeout},
			cfg.MaxAttempts,
			cfg.RetryInterval,
		),
		logger: logger,
	}
}

type osrmRoute struct {
	Geometry string  `json:"geometry"`
	Distance float64 `json:"distance"` // meters
	Duration float64 `json:"duration"` // seconds
}

type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

// Route requests a driving route from a to b. A non-Ok provider code, an
// empty route list or empty geometry yield a NotFoundError. Distance is
// reported in kilometers (3 decimals), duration in minutes (2 decimals).
func (c *Client) Route(ctx context.Context, a, b trip.GeoPoint) (*trip.Route, error) {
	// The provider wants lon,lat order.
	path := fmt.Sprintf("%s/route/v1/driving/%s,%s;%s,%s?overview=full&geometries=polyline6",
		c.baseURL,
		formatCoord(a.Longitude), formatCoord(a.Latitude),
		formatCoord(b.Longitude), formatCoord(b.Latitude),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("routing: build request: %w", err)
	}

	resp, err := c.retryer.Do(req)
	if err != nil {
		return nil, errs.NewUnavailableError("routing service", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing: unexpected status %d", resp.StatusCode)
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errs.NewDecodingError(fmt.Sprintf("routing: malformed response: %v", err))
	}

	if parsed.Code != "Ok" || len(parsed.Routes) == 0 || parsed.Routes[0].Geometry == "" {
		c.logger.Debug("routing provider reported no usable route",
			zap.String("code", parsed.Code),
			zap.Int("routes", len(parsed.Routes)),
		)
		return nil, errs.NewNotFoundError("route")
	}

	route := parsed.Routes[0]
	return &trip.Route{
		DistanceKm:      round(route.Distance/1000.0, 3),
		DurationMinutes: round(route.Duration/60.0, 2),
		EncodedPath:     route.Geometry,
	}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func round(v float64, decimals int) float64 {
	factor := math.Pow10(decimals)
	return math.Round(v*factor) / factor
}
