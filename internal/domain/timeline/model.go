// Package timeline holds the route timeline engine: the route model with its
// structural edit rules, the playback state machine and the frame sampler.
//
// None of the types here are safe for concurrent use. The owning session
// serializes access.
package timeline

import (
	"sort"
	"time"

	"routereel/internal/domain/entity"
	domainerrors "routereel/internal/domain/errors"
	"routereel/internal/geometry"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Model owns a single route and applies edits to it. Every edit either
// commits a fully rebuilt route or leaves the previous one untouched.
//
// AddWaypoint, RemoveWaypoint, ReorderWaypoints, Create and Replace are
// structural: callers must reset playback after they succeed.
type Model struct {
	route *entity.Route
	now   func() time.Time
	newID func() uuid.UUID
}

// ModelOption customises a Model.
type ModelOption func(*Model)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithIDGenerator overrides the identity source for new waypoints and segments.
func WithIDGenerator(newID func() uuid.UUID) ModelOption {
	return func(m *Model) {
		m.newID = newID
	}
}

// NewModel creates a model without a route.
func NewModel(opts ...ModelOption) *Model {
	m := &Model{
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Route returns a deep copy of the current route, or nil.
func (m *Model) Route() *entity.Route {
	return m.route.Clone()
}

// SegmentCount returns the number of segments of the current route.
func (m *Model) SegmentCount() int {
	if m.route == nil {
		return 0
	}

	return len(m.route.Segments)
}

// Create replaces the current route with a new empty one.
func (m *Model) Create(name string) *entity.Route {
	now := m.now()
	m.route = &entity.Route{
		ID:        m.newID(),
		Name:      name,
		Waypoints: []entity.Waypoint{},
		Segments:  []entity.Segment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	return m.route.Clone()
}

// Replace loads a route document. Waypoints are reindexed by their order,
// segment connectivity is checked, segment path endpoints are pinned to their
// waypoints and both timestamps are regenerated.
func (m *Model) Replace(route *entity.Route) error {
	if route == nil {
		return domainerrors.ErrRouteNotFound
	}

	next := route.Clone()
	if next.ID == uuid.Nil {
		next.ID = m.newID()
	}

	sort.SliceStable(next.Waypoints, func(i, j int) bool {
		return next.Waypoints[i].Order < next.Waypoints[j].Order
	})
	reindex(next.Waypoints)

	if len(next.Segments) != expectedSegments(len(next.Waypoints)) {
		return domainerrors.ErrInvalidRoute.WithDetails("segment count does not match waypoint count")
	}

	for i := range next.Segments {
		segment := &next.Segments[i]
		start, end := next.Waypoints[i], next.Waypoints[i+1]
		if !segment.Connects(start.ID, end.ID) {
			return domainerrors.ErrInvalidRoute.WithDetails("segment " + segment.ID.String() + " is not connected to consecutive waypoints")
		}
		if segment.TransportMode == "" {
			segment.TransportMode = entity.DefaultTransportMode
		}
		if !segment.TransportMode.IsValid() {
			return domainerrors.ErrInvalidTransportMode.WithDetails(string(segment.TransportMode))
		}
		if segment.ID == uuid.Nil {
			segment.ID = m.newID()
		}
		if len(segment.Path) < 2 {
			*segment = m.placeholder(segment.ID, start, end, segment.TransportMode)

			continue
		}
		pinEndpoints(segment.Path, start, end)
	}

	now := m.now()
	next.CreatedAt = now
	next.UpdatedAt = now
	m.route = next

	return nil
}

// AddWaypoint appends a waypoint and, when a previous waypoint exists, a
// pending straight segment connecting them.
func (m *Model) AddWaypoint(coord orb.Point, label string) (entity.Waypoint, error) {
	if m.route == nil {
		return entity.Waypoint{}, domainerrors.ErrRouteNotFound
	}

	waypoint := entity.Waypoint{
		ID:          m.newID(),
		Coordinates: coord,
		Label:       label,
		Order:       len(m.route.Waypoints),
	}

	waypoints := append(cloneWaypoints(m.route.Waypoints), waypoint)
	segments := cloneSegments(m.route.Segments)
	if len(waypoints) > 1 {
		previous := waypoints[len(waypoints)-2]
		segments = append(segments, m.placeholder(m.newID(), previous, waypoint, entity.DefaultTransportMode))
	}

	m.commit(waypoints, segments)

	return waypoint, nil
}

// RemoveWaypoint removes a waypoint and rebuilds every segment. Segments are
// only reused when they connect the same pair in the same direction.
func (m *Model) RemoveWaypoint(id uuid.UUID) error {
	if m.route == nil {
		return domainerrors.ErrRouteNotFound
	}

	idx := m.route.WaypointIndex(id)
	if idx < 0 {
		return domainerrors.ErrWaypointNotFound.WithDetails(id.String())
	}

	waypoints := make([]entity.Waypoint, 0, len(m.route.Waypoints)-1)
	waypoints = append(waypoints, m.route.Waypoints[:idx]...)
	waypoints = append(waypoints, m.route.Waypoints[idx+1:]...)
	reindex(waypoints)

	m.commit(waypoints, m.rebuildSegments(waypoints, false))

	return nil
}

// ReorderWaypoints moves the waypoint at position from to position to and
// rebuilds every segment, reusing segments that connect the same pair in
// either direction.
func (m *Model) ReorderWaypoints(from, to int) error {
	if m.route == nil {
		return domainerrors.ErrRouteNotFound
	}

	count := len(m.route.Waypoints)
	if from < 0 || from >= count || to < 0 || to >= count {
		return domainerrors.ErrInvalidReorder
	}

	waypoints := cloneWaypoints(m.route.Waypoints)
	moved := waypoints[from]
	waypoints = append(waypoints[:from], waypoints[from+1:]...)
	waypoints = append(waypoints[:to], append([]entity.Waypoint{moved}, waypoints[to:]...)...)
	reindex(waypoints)

	m.commit(waypoints, m.rebuildSegments(waypoints, true))

	return nil
}

// MoveWaypoint relocates a waypoint. Adjacent segments get a fresh
// placeholder path since their geometry no longer ends at the waypoint.
func (m *Model) MoveWaypoint(id uuid.UUID, coord orb.Point) error {
	if m.route == nil {
		return domainerrors.ErrRouteNotFound
	}

	idx := m.route.WaypointIndex(id)
	if idx < 0 {
		return domainerrors.ErrWaypointNotFound.WithDetails(id.String())
	}

	waypoints := cloneWaypoints(m.route.Waypoints)
	waypoints[idx].Coordinates = coord

	segments := cloneSegments(m.route.Segments)
	for _, si := range []int{idx - 1, idx} {
		if si < 0 || si >= len(segments) {
			continue
		}
		segments[si] = m.placeholder(segments[si].ID, waypoints[si], waypoints[si+1], segments[si].TransportMode)
	}

	m.commit(waypoints, segments)

	return nil
}

// SetWaypointLabel changes the label of a waypoint.
func (m *Model) SetWaypointLabel(id uuid.UUID, label string) error {
	if m.route == nil {
		return domainerrors.ErrRouteNotFound
	}

	idx := m.route.WaypointIndex(id)
	if idx < 0 {
		return domainerrors.ErrWaypointNotFound.WithDetails(id.String())
	}

	waypoints := cloneWaypoints(m.route.Waypoints)
	waypoints[idx].Label = label
	m.commit(waypoints, m.route.Segments)

	return nil
}

// SetSegmentTransportMode changes the mode of a segment. Switching into or out
// of the arc mode swaps the path for the matching placeholder; switching
// between ground modes keeps the path but marks it pending.
func (m *Model) SetSegmentTransportMode(id uuid.UUID, mode entity.TransportMode) error {
	if !mode.IsValid() {
		return domainerrors.ErrInvalidTransportMode.WithDetails(string(mode))
	}

	segments, idx, err := m.segmentForEdit(id)
	if err != nil {
		return err
	}

	segment := &segments[idx]
	if segment.TransportMode == mode {
		return nil
	}

	if segment.TransportMode.IsArc() || mode.IsArc() {
		*segment = m.placeholder(segment.ID, m.route.Waypoints[idx], m.route.Waypoints[idx+1], mode)
	} else {
		segment.TransportMode = mode
		segment.Pending = true
		segment.Distance = nil
		segment.Duration = nil
	}

	m.commit(m.route.Waypoints, segments)

	return nil
}

// SetSegmentPath stores a resolved or manually edited path. The first and
// last points are pinned to the segment's waypoints.
func (m *Model) SetSegmentPath(id uuid.UUID, path orb.LineString, distance, duration *float64) error {
	if len(path) < 2 {
		return domainerrors.ErrInvalidPath
	}

	segments, idx, err := m.segmentForEdit(id)
	if err != nil {
		return err
	}

	segment := &segments[idx]
	segment.Path = append(orb.LineString(nil), path...)
	pinEndpoints(segment.Path, m.route.Waypoints[idx], m.route.Waypoints[idx+1])
	segment.Distance = copyFloat(distance)
	segment.Duration = copyFloat(duration)
	segment.Pending = false

	m.commit(m.route.Waypoints, segments)

	return nil
}

// InsertPathNode inserts coord into the segment path on the edge closest to
// it and returns the index of the new node.
func (m *Model) InsertPathNode(id uuid.UUID, coord orb.Point) (int, error) {
	segments, idx, err := m.segmentForEdit(id)
	if err != nil {
		return 0, err
	}

	segment := &segments[idx]
	if len(segment.Path) < 2 {
		return 0, domainerrors.ErrInvalidPath
	}

	edge, best := 0, -1.0
	for i := 1; i < len(segment.Path); i++ {
		_, d := geometry.NearestPointOnSegment(segment.Path[i-1], segment.Path[i], coord)
		if best < 0 || d < best {
			edge, best = i-1, d
		}
	}

	at := edge + 1
	path := make(orb.LineString, 0, len(segment.Path)+1)
	path = append(path, segment.Path[:at]...)
	path = append(path, coord)
	path = append(path, segment.Path[at:]...)
	segment.Path = path
	segment.Pending = false

	m.commit(m.route.Waypoints, segments)

	return at, nil
}

// MovePathNode relocates an interior path node.
func (m *Model) MovePathNode(id uuid.UUID, index int, coord orb.Point) error {
	segments, idx, err := m.segmentForEdit(id)
	if err != nil {
		return err
	}

	segment := &segments[idx]
	if index <= 0 || index >= len(segment.Path)-1 {
		return domainerrors.ErrInvalidPathNode
	}
	segment.Path[index] = coord
	segment.Pending = false

	m.commit(m.route.Waypoints, segments)

	return nil
}

// RemovePathNode deletes an interior path node. Endpoints cannot be removed.
func (m *Model) RemovePathNode(id uuid.UUID, index int) error {
	segments, idx, err := m.segmentForEdit(id)
	if err != nil {
		return err
	}

	segment := &segments[idx]
	if index <= 0 || index >= len(segment.Path)-1 {
		return domainerrors.ErrInvalidPathNode
	}
	segment.Path = append(segment.Path[:index], segment.Path[index+1:]...)
	segment.Pending = false

	m.commit(m.route.Waypoints, segments)

	return nil
}

func (m *Model) segmentForEdit(id uuid.UUID) ([]entity.Segment, int, error) {
	if m.route == nil {
		return nil, 0, domainerrors.ErrRouteNotFound
	}

	idx := m.route.SegmentIndex(id)
	if idx < 0 {
		return nil, 0, domainerrors.ErrSegmentNotFound.WithDetails(id.String())
	}

	return cloneSegments(m.route.Segments), idx, nil
}

// rebuildSegments derives the segment list for a new waypoint order from the
// current segments.
func (m *Model) rebuildSegments(waypoints []entity.Waypoint, eitherDirection bool) []entity.Segment {
	old := m.route.Segments
	segments := make([]entity.Segment, 0, expectedSegments(len(waypoints)))

	for i := 0; i+1 < len(waypoints); i++ {
		start, end := waypoints[i], waypoints[i+1]

		if existing, ok := findSegment(old, start.ID, end.ID); ok {
			segments = append(segments, existing.Clone())

			continue
		}
		if eitherDirection {
			if existing, ok := findSegment(old, end.ID, start.ID); ok {
				segments = append(segments, existing.Reversed())

				continue
			}
		}

		segments = append(segments, m.placeholder(m.newID(), start, end, inheritMode(old, start.ID, end.ID)))
	}

	return segments
}

// placeholder builds a segment whose path still has to be resolved. Arc mode
// paths are synthetic and therefore final.
func (m *Model) placeholder(id uuid.UUID, start, end entity.Waypoint, mode entity.TransportMode) entity.Segment {
	segment := entity.Segment{
		ID:              id,
		StartWaypointID: start.ID,
		EndWaypointID:   end.ID,
		TransportMode:   mode,
	}

	if mode.IsArc() {
		segment.Path = geometry.ArcPath(start.Coordinates, end.Coordinates, geometry.DefaultArcPoints)
	} else {
		segment.Path = geometry.StraightPath(start.Coordinates, end.Coordinates)
		segment.Pending = true
	}

	return segment
}

func (m *Model) commit(waypoints []entity.Waypoint, segments []entity.Segment) {
	next := *m.route
	next.Waypoints = waypoints
	next.Segments = segments
	next.UpdatedAt = m.now()
	m.route = &next
}

func findSegment(segments []entity.Segment, start, end uuid.UUID) (entity.Segment, bool) {
	for _, segment := range segments {
		if segment.Connects(start, end) {
			return segment, true
		}
	}

	return entity.Segment{}, false
}

// inheritMode picks the mode for a synthesized segment: a segment that left
// from the same start or arrived at the same end wins, then any segment
// touching either endpoint, then the default mode.
func inheritMode(segments []entity.Segment, start, end uuid.UUID) entity.TransportMode {
	for _, segment := range segments {
		if segment.StartWaypointID == start || segment.EndWaypointID == end {
			return segment.TransportMode
		}
	}
	for _, segment := range segments {
		if segment.Touches(start) || segment.Touches(end) {
			return segment.TransportMode
		}
	}

	return entity.DefaultTransportMode
}

func pinEndpoints(path orb.LineString, start, end entity.Waypoint) {
	path[0] = start.Coordinates
	path[len(path)-1] = end.Coordinates
}

func reindex(waypoints []entity.Waypoint) {
	for i := range waypoints {
		waypoints[i].Order = i
	}
}

func expectedSegments(waypoints int) int {
	return max(waypoints-1, 0)
}

func cloneWaypoints(waypoints []entity.Waypoint) []entity.Waypoint {
	return append(make([]entity.Waypoint, 0, len(waypoints)+1), waypoints...)
}

func cloneSegments(segments []entity.Segment) []entity.Segment {
	out := make([]entity.Segment, len(segments), len(segments)+1)
	for i, segment := range segments {
		out[i] = segment.Clone()
	}

	return out
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v

	return &out
}
