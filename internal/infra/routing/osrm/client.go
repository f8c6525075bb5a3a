// Package osrm implements the routing oracle on top of an OSRM HTTP server.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"routereel/internal/domain/entity"
	"routereel/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

const defaultTimeout = 10 * time.Second

var (
	// ErrUnsupportedMode is returned for modes OSRM has no profile for.
	ErrUnsupportedMode = errors.New("transport mode has no osrm profile")
	// ErrNoRoute is returned when OSRM answers without a usable route.
	ErrNoRoute = errors.New("osrm returned no route")
)

var profiles = map[entity.TransportMode]string{
	entity.TransportModeCar:  "driving",
	entity.TransportModeBus:  "driving",
	entity.TransportModeWalk: "foot",
	entity.TransportModeBike: "cycling",
}

// Client queries the OSRM route service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Geometry json.RawMessage `json:"geometry"`
		Distance float64         `json:"distance"` // metres
		Duration float64         `json:"duration"` // seconds
	} `json:"routes"`
}

// NewClient creates an OSRM client. A zero timeout uses 10s.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Route implements service.RoutingOracle.
func (c *Client) Route(ctx context.Context, start, end orb.Point, mode entity.TransportMode) (*service.RoutedPath, error) {
	profile, ok := profiles[mode]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedMode, "mode %q", mode)
	}

	endpoint := fmt.Sprintf("%s/route/v1/%s/%s;%s?%s",
		c.baseURL, profile, coordinate(start), coordinate(end),
		url.Values{"overview": {"full"}, "geometries": {"geojson"}}.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()

	var body routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrapf(err, "failed to decode osrm response (status %d)", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK || body.Code != "Ok" {
		return nil, errors.Errorf("osrm returned %d %s: %s", resp.StatusCode, body.Code, body.Message)
	}
	if len(body.Routes) == 0 {
		return nil, ErrNoRoute
	}

	route := body.Routes[0]
	geometry, err := geojson.UnmarshalGeometry(route.Geometry)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse osrm geometry")
	}

	line, ok := geometry.Geometry().(orb.LineString)
	if !ok || len(line) < 2 {
		return nil, ErrNoRoute
	}

	distance := route.Distance / 1000
	duration := route.Duration

	c.logger.Debug("OSRM route resolved",
		slog.String("profile", profile),
		slog.Int("points", len(line)),
		slog.Float64("distance_km", distance),
	)

	return &service.RoutedPath{
		Path:     line,
		Distance: &distance,
		Duration: &duration,
	}, nil
}

func coordinate(p orb.Point) string {
	return fmt.Sprintf("%f,%f", p.Lon(), p.Lat())
}
