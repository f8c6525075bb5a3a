// Package codec converts routes to and from the supported document formats.
package codec

import (
	"sort"

	"routereel/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ErrEmptyDocument is returned when a document holds no usable waypoints.
var ErrEmptyDocument = errors.New("document contains no waypoints")

// newRoute assembles a route from decoded parts, numbering waypoints in order.
func newRoute(name string, points []orb.Point, labels []string) *entity.Route {
	route := &entity.Route{
		ID:        uuid.New(),
		Name:      name,
		Waypoints: make([]entity.Waypoint, len(points)),
		Segments:  []entity.Segment{},
	}

	for i, point := range points {
		route.Waypoints[i] = entity.Waypoint{
			ID:          uuid.New(),
			Coordinates: point,
			Label:       labels[i],
			Order:       i,
		}
	}

	return route
}

// linkSegments connects consecutive waypoints with the given paths, pinning
// each path's endpoints to its waypoints.
func linkSegments(route *entity.Route, paths []orb.LineString, modes []entity.TransportMode) {
	route.Segments = make([]entity.Segment, len(paths))
	for i, path := range paths {
		start, end := route.Waypoints[i], route.Waypoints[i+1]

		pinned := append(orb.LineString(nil), path...)
		pinned[0] = start.Coordinates
		pinned[len(pinned)-1] = end.Coordinates

		route.Segments[i] = entity.Segment{
			ID:              uuid.New(),
			StartWaypointID: start.ID,
			EndWaypointID:   end.ID,
			TransportMode:   modes[i],
			Path:            pinned,
		}
	}
}

func sortWaypoints(waypoints []entity.Waypoint) {
	sort.SliceStable(waypoints, func(i, j int) bool {
		return waypoints[i].Order < waypoints[j].Order
	})
}

func modeOrDefault(raw string) entity.TransportMode {
	if mode, ok := entity.ParseTransportMode(raw); ok {
		return mode
	}

	return entity.DefaultTransportMode
}
