package service

import (
	"context"

	"routereel/internal/domain/entity"

	"github.com/paulmach/orb"
)

// RoutedPath is a polyline returned by a routing oracle
type RoutedPath struct {
	Path     orb.LineString
	Distance *float64 // kilometres
	Duration *float64 // seconds
	Fallback bool     // true when the path is a synthetic straight line or arc
}

// RoutingOracle resolves the travel path between two points
type RoutingOracle interface {
	Route(ctx context.Context, start, end orb.Point, mode entity.TransportMode) (*RoutedPath, error)
}
