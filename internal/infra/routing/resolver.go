// Package routing resolves segment paths: it selects the configured routing
// oracle and degrades to synthetic paths when the oracle cannot help.
package routing

import (
	"context"
	"log/slog"

	"routereel/config"
	"routereel/internal/domain/entity"
	"routereel/internal/domain/service"
	"routereel/internal/geometry"

	"github.com/paulmach/orb"
)

// modeSpeedsKmh estimate durations for synthetic paths.
var modeSpeedsKmh = map[entity.TransportMode]float64{
	entity.TransportModeCar:    60,
	entity.TransportModeWalk:   5,
	entity.TransportModeBike:   15,
	entity.TransportModeBus:    40,
	entity.TransportModeTrain:  120,
	entity.TransportModeFerry:  30,
	entity.TransportModeFlight: 800,
}

// Resolver wraps a routing oracle. Flights become arcs, and oracle failures
// become straight lines flagged as fallbacks, so Route never fails.
type Resolver struct {
	oracle       service.RoutingOracle
	defaultSpeed float64
	logger       *slog.Logger
}

// NewResolver wraps oracle. A nil oracle resolves everything synthetically.
func NewResolver(oracle service.RoutingOracle, cfg *config.RoutingConfig, logger *slog.Logger) *Resolver {
	speed := modeSpeedsKmh[entity.TransportModeCar]
	if cfg != nil && cfg.DefaultSpeedKmh > 0 {
		speed = cfg.DefaultSpeedKmh
	}

	return &Resolver{
		oracle:       oracle,
		defaultSpeed: speed,
		logger:       logger,
	}
}

// Route implements service.RoutingOracle.
func (r *Resolver) Route(ctx context.Context, start, end orb.Point, mode entity.TransportMode) (*service.RoutedPath, error) {
	if mode.IsArc() {
		return r.synthetic(geometry.ArcPath(start, end, geometry.DefaultArcPoints), start, end, mode), nil
	}

	if r.oracle == nil {
		return r.synthetic(geometry.StraightPath(start, end), start, end, mode), nil
	}

	routed, err := r.oracle.Route(ctx, start, end, mode)
	if err == nil && routed != nil && len(routed.Path) >= 2 {
		if routed.Duration == nil && routed.Distance != nil {
			duration := *routed.Distance / r.speed(mode) * 3600
			routed.Duration = &duration
		}

		return routed, nil
	}

	if err != nil {
		r.logger.Warn("Routing oracle failed, using straight line",
			slog.String("mode", string(mode)),
			slog.Any("error", err),
		)
	} else {
		r.logger.Warn("Routing oracle returned no path, using straight line", slog.String("mode", string(mode)))
	}

	return r.synthetic(geometry.StraightPath(start, end), start, end, mode), nil
}

func (r *Resolver) synthetic(path orb.LineString, start, end orb.Point, mode entity.TransportMode) *service.RoutedPath {
	distance := geometry.Length(orb.LineString{start, end})

	duration := distance / r.speed(mode) * 3600

	return &service.RoutedPath{
		Path:     path,
		Distance: &distance,
		Duration: &duration,
		Fallback: true,
	}
}

func (r *Resolver) speed(mode entity.TransportMode) float64 {
	speed, ok := modeSpeedsKmh[mode]
	if !ok || mode == entity.TransportModeCar {
		return r.defaultSpeed
	}

	return speed
}

// StraightOracle always answers with the straight line between the endpoints.
type StraightOracle struct{}

// Route implements service.RoutingOracle.
func (StraightOracle) Route(_ context.Context, start, end orb.Point, _ entity.TransportMode) (*service.RoutedPath, error) {
	distance := geometry.Length(orb.LineString{start, end})

	return &service.RoutedPath{
		Path:     geometry.StraightPath(start, end),
		Distance: &distance,
		Fallback: true,
	}, nil
}
