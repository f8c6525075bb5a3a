package timeline

import (
	"routereel/internal/domain/entity"
	"routereel/internal/geometry"

	"github.com/paulmach/orb"
)

// SampleFrame maps a route and an animation state to the frame to render. It
// returns nil when there is nothing to draw: no route, no segments, or a
// current segment without at least two path points. It never mutates its
// arguments.
func SampleFrame(route *entity.Route, state entity.AnimationState) *entity.Frame {
	if route == nil || len(route.Segments) == 0 {
		return nil
	}

	index := min(max(state.CurrentSegmentIndex, 0), len(route.Segments)-1)
	current := route.Segments[index]
	if len(current.Path) < 2 {
		return nil
	}

	smoothed := DisplayPath(current)
	target := geometry.Length(smoothed) * state.SegmentProgress

	var drawn orb.LineString
	for _, segment := range route.Segments[:index] {
		drawn = appendPath(drawn, DisplayPath(segment))
	}
	drawn = appendPath(drawn, geometry.SliceAlong(smoothed, 0, target))

	return &entity.Frame{
		MarkerPosition:      geometry.PointAtDistance(smoothed, target),
		CurrentSegmentIndex: index,
		DrawnPath:           drawn,
		Progress:            state.CurrentProgress,
	}
}

// appendPath concatenates paths, dropping the shared joint between
// consecutive segments.
func appendPath(dst, path orb.LineString) orb.LineString {
	if len(dst) > 0 && len(path) > 0 && dst[len(dst)-1] == path[0] {
		path = path[1:]
	}

	return append(dst, path...)
}

// DisplayPath is the path as drawn: ground paths are smoothed into a spline,
// arc paths are already smooth and kept as they are.
func DisplayPath(segment entity.Segment) orb.LineString {
	if segment.TransportMode.IsArc() {
		return segment.Path
	}

	return geometry.Smooth(segment.Path)
}
