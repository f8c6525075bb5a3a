package timeline

import (
	"math/rand"
	"testing"
	"time"

	"routereel/internal/domain/entity"
	domainerrors "routereel/internal/domain/errors"
	"routereel/internal/errors"
	"routereel/internal/geometry"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	madrid    = orb.Point{-3.70, 40.42}
	paris     = orb.Point{2.35, 48.86}
	barcelona = orb.Point{2.17, 41.39}
	lyon      = orb.Point{4.84, 45.76}
)

func newTestModel(t *testing.T, points ...orb.Point) (*Model, []entity.Waypoint) {
	t.Helper()

	model := NewModel()
	model.Create("trip")

	waypoints := make([]entity.Waypoint, 0, len(points))
	for _, p := range points {
		wp, err := model.AddWaypoint(p, "")
		require.NoError(t, err)
		waypoints = append(waypoints, wp)
	}

	return model, waypoints
}

func assertRouteInvariants(t *testing.T, route *entity.Route) {
	t.Helper()

	require.NotNil(t, route)
	require.Len(t, route.Segments, max(len(route.Waypoints)-1, 0))

	for i, wp := range route.Waypoints {
		assert.Equal(t, i, wp.Order)
	}
	for i, segment := range route.Segments {
		start, end := route.Waypoints[i], route.Waypoints[i+1]
		assert.Equal(t, start.ID, segment.StartWaypointID, "segment %d start", i)
		assert.Equal(t, end.ID, segment.EndWaypointID, "segment %d end", i)
		require.GreaterOrEqual(t, len(segment.Path), 2)
		assert.Equal(t, start.Coordinates, segment.Path[0], "segment %d path start", i)
		assert.Equal(t, end.Coordinates, segment.Path[len(segment.Path)-1], "segment %d path end", i)
	}
}

func TestModel_AddWaypoint(t *testing.T) {
	model, waypoints := newTestModel(t, madrid, paris)

	route := model.Route()
	assertRouteInvariants(t, route)
	require.Len(t, route.Segments, 1)

	segment := route.Segments[0]
	assert.Equal(t, entity.DefaultTransportMode, segment.TransportMode)
	assert.Equal(t, orb.LineString{madrid, paris}, segment.Path)
	assert.True(t, segment.Pending)
	assert.Equal(t, waypoints[0].ID, segment.StartWaypointID)
	assert.Equal(t, waypoints[1].ID, segment.EndWaypointID)
}

func TestModel_AddWaypoint_NoRoute(t *testing.T) {
	model := NewModel()

	_, err := model.AddWaypoint(madrid, "Madrid")
	assert.True(t, errors.Is(err, domainerrors.ErrRouteNotFound))
	assert.Nil(t, model.Route())
}

func TestModel_SegmentCountInvariantUnderRandomEdits(t *testing.T) {
	model, _ := newTestModel(t)
	rng := rand.New(rand.NewSource(42))

	for step := 0; step < 300; step++ {
		route := model.Route()
		count := len(route.Waypoints)

		switch op := rng.Intn(3); {
		case op == 0 || count < 2:
			_, err := model.AddWaypoint(orb.Point{rng.Float64()*20 - 10, rng.Float64()*20 + 35}, "")
			require.NoError(t, err)
		case op == 1:
			require.NoError(t, model.RemoveWaypoint(route.Waypoints[rng.Intn(count)].ID))
		default:
			require.NoError(t, model.ReorderWaypoints(rng.Intn(count), rng.Intn(count)))
		}

		assertRouteInvariants(t, model.Route())
	}
}

func TestModel_RemoveMiddleWaypointInheritsMode(t *testing.T) {
	model, waypoints := newTestModel(t, madrid, barcelona, paris)

	route := model.Route()
	require.NoError(t, model.SetSegmentTransportMode(route.Segments[0].ID, entity.TransportModeTrain))
	require.NoError(t, model.SetSegmentTransportMode(route.Segments[1].ID, entity.TransportModeBus))

	require.NoError(t, model.RemoveWaypoint(waypoints[1].ID))

	route = model.Route()
	assertRouteInvariants(t, route)
	require.Len(t, route.Segments, 1)

	segment := route.Segments[0]
	assert.Equal(t, waypoints[0].ID, segment.StartWaypointID)
	assert.Equal(t, waypoints[2].ID, segment.EndWaypointID)
	assert.Equal(t, entity.TransportModeTrain, segment.TransportMode)
	assert.Equal(t, orb.LineString{madrid, paris}, segment.Path)
	assert.True(t, segment.Pending)
}

func TestModel_RemoveWaypointReusesSameDirectionSegments(t *testing.T) {
	model, waypoints := newTestModel(t, madrid, barcelona, lyon, paris)
	before := model.Route()

	require.NoError(t, model.RemoveWaypoint(waypoints[0].ID))

	route := model.Route()
	assertRouteInvariants(t, route)
	require.Len(t, route.Segments, 2)
	assert.Equal(t, before.Segments[1].ID, route.Segments[0].ID)
	assert.Equal(t, before.Segments[2].ID, route.Segments[1].ID)
}

func TestModel_ReorderReusesReversedSegment(t *testing.T) {
	model, waypoints := newTestModel(t, madrid, paris)

	segmentID := model.Route().Segments[0].ID
	resolved := orb.LineString{madrid, {-1, 43}, paris}
	require.NoError(t, model.SetSegmentPath(segmentID, resolved, nil, nil))

	require.NoError(t, model.ReorderWaypoints(0, 1))

	route := model.Route()
	assertRouteInvariants(t, route)
	assert.Equal(t, waypoints[1].ID, route.Waypoints[0].ID)

	segment := route.Segments[0]
	assert.Equal(t, segmentID, segment.ID, "reorder reuses the segment in either direction")
	assert.Equal(t, orb.LineString{paris, {-1, 43}, madrid}, segment.Path)
	assert.False(t, segment.Pending)
}

func TestModel_ReorderWaypoints_Invalid(t *testing.T) {
	model, _ := newTestModel(t, madrid, paris)
	before := model.Route()

	for _, tc := range [][2]int{{-1, 0}, {0, 2}, {5, 1}} {
		err := model.ReorderWaypoints(tc[0], tc[1])
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidReorder), "reorder %v", tc)
	}
	assert.Equal(t, before, model.Route())
}

func TestModel_UnknownIDsAreNoOps(t *testing.T) {
	model, _ := newTestModel(t, madrid, paris)
	before := model.Route()
	unknown := uuid.New()

	assert.True(t, errors.Is(model.RemoveWaypoint(unknown), domainerrors.ErrWaypointNotFound))
	assert.True(t, errors.Is(model.MoveWaypoint(unknown, lyon), domainerrors.ErrWaypointNotFound))
	assert.True(t, errors.Is(model.SetWaypointLabel(unknown, "x"), domainerrors.ErrWaypointNotFound))
	assert.True(t, errors.Is(model.SetSegmentTransportMode(unknown, entity.TransportModeBus), domainerrors.ErrSegmentNotFound))
	assert.True(t, errors.Is(model.SetSegmentPath(unknown, orb.LineString{madrid, paris}, nil, nil), domainerrors.ErrSegmentNotFound))
	_, err := model.InsertPathNode(unknown, lyon)
	assert.True(t, errors.Is(err, domainerrors.ErrSegmentNotFound))
	assert.True(t, errors.Is(model.RemovePathNode(unknown, 1), domainerrors.ErrSegmentNotFound))

	assert.Equal(t, before, model.Route())
}

func TestModel_MoveWaypointResetsAdjacentPaths(t *testing.T) {
	model, waypoints := newTestModel(t, madrid, barcelona, paris)
	route := model.Route()
	for _, segment := range route.Segments {
		require.NoError(t, model.SetSegmentPath(segment.ID, orb.LineString{{0, 0}, {1, 1}, {2, 2}}, nil, nil))
	}

	require.NoError(t, model.MoveWaypoint(waypoints[1].ID, lyon))

	route = model.Route()
	assertRouteInvariants(t, route)
	assert.Equal(t, lyon, route.Waypoints[1].Coordinates)
	assert.Equal(t, orb.LineString{madrid, lyon}, route.Segments[0].Path)
	assert.Equal(t, orb.LineString{lyon, paris}, route.Segments[1].Path)
	assert.True(t, route.Segments[0].Pending)
	assert.True(t, route.Segments[1].Pending)
}

func TestModel_SetSegmentTransportMode(t *testing.T) {
	model, _ := newTestModel(t, madrid, paris)
	segmentID := model.Route().Segments[0].ID

	require.NoError(t, model.SetSegmentTransportMode(segmentID, entity.TransportModeFlight))
	segment := model.Route().Segments[0]
	assert.Equal(t, entity.TransportModeFlight, segment.TransportMode)
	assert.Len(t, segment.Path, geometry.DefaultArcPoints+1)
	assert.False(t, segment.Pending)

	require.NoError(t, model.SetSegmentTransportMode(segmentID, entity.TransportModeWalk))
	segment = model.Route().Segments[0]
	assert.Equal(t, orb.LineString{madrid, paris}, segment.Path)
	assert.True(t, segment.Pending)

	err := model.SetSegmentTransportMode(segmentID, entity.TransportMode("teleport"))
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransportMode))
	assert.Equal(t, entity.TransportModeWalk, model.Route().Segments[0].TransportMode)

	assertRouteInvariants(t, model.Route())
}

func TestModel_SetSegmentPath(t *testing.T) {
	model, _ := newTestModel(t, madrid, paris)
	segmentID := model.Route().Segments[0].ID
	distance, duration := 1270.5, 45000.0

	// endpoints slightly off get pinned to the waypoints
	path := orb.LineString{{-3.7001, 40.4201}, {0, 44}, {2.3499, 48.8599}}
	require.NoError(t, model.SetSegmentPath(segmentID, path, &distance, &duration))

	segment := model.Route().Segments[0]
	assert.Equal(t, orb.LineString{madrid, {0, 44}, paris}, segment.Path)
	require.NotNil(t, segment.Distance)
	assert.Equal(t, distance, *segment.Distance)
	assert.False(t, segment.Pending)
	assert.Equal(t, orb.Point{-3.7001, 40.4201}, path[0], "caller's path is not modified")

	err := model.SetSegmentPath(segmentID, orb.LineString{madrid}, nil, nil)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidPath))
}

func TestModel_PathNodes(t *testing.T) {
	a, b := orb.Point{0, 0}, orb.Point{2, 0}
	model, _ := newTestModel(t, a, b)
	segmentID := model.Route().Segments[0].ID
	require.NoError(t, model.SetSegmentPath(segmentID, orb.LineString{a, {1, 0}, b}, nil, nil))

	at, err := model.InsertPathNode(segmentID, orb.Point{1.5, 0.1})
	require.NoError(t, err)
	assert.Equal(t, 2, at)
	assert.Equal(t, orb.LineString{a, {1, 0}, {1.5, 0.1}, b}, model.Route().Segments[0].Path)

	require.NoError(t, model.MovePathNode(segmentID, 1, orb.Point{1, 0.2}))
	require.NoError(t, model.RemovePathNode(segmentID, 2))
	assert.Equal(t, orb.LineString{a, {1, 0.2}, b}, model.Route().Segments[0].Path)

	assert.True(t, errors.Is(model.RemovePathNode(segmentID, 0), domainerrors.ErrInvalidPathNode))
	assert.True(t, errors.Is(model.RemovePathNode(segmentID, 2), domainerrors.ErrInvalidPathNode))
	assert.True(t, errors.Is(model.MovePathNode(segmentID, 2, a), domainerrors.ErrInvalidPathNode))
	assertRouteInvariants(t, model.Route())
}

func TestModel_Replace(t *testing.T) {
	created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	source, _ := newTestModel(t, madrid, barcelona, paris)
	document := source.Route()
	document.CreatedAt = created
	document.UpdatedAt = created
	// shuffle storage order, order field stays authoritative
	document.Waypoints[0], document.Waypoints[2] = document.Waypoints[2], document.Waypoints[0]

	model := NewModel(WithClock(func() time.Time { return now }))
	require.NoError(t, model.Replace(document))

	route := model.Route()
	assertRouteInvariants(t, route)
	assert.Equal(t, now, route.CreatedAt)
	assert.Equal(t, now, route.UpdatedAt)
	assert.Equal(t, madrid, route.Waypoints[0].Coordinates)
	assert.Equal(t, document.Segments, route.Segments)
}

func TestModel_Replace_Invalid(t *testing.T) {
	model, _ := newTestModel(t, madrid, paris)
	before := model.Route()

	broken := before.Clone()
	broken.Segments = nil
	assert.True(t, errors.Is(model.Replace(broken), domainerrors.ErrInvalidRoute))

	swapped := before.Clone()
	swapped.Segments[0] = swapped.Segments[0].Reversed()
	assert.True(t, errors.Is(model.Replace(swapped), domainerrors.ErrInvalidRoute))

	assert.True(t, errors.Is(model.Replace(nil), domainerrors.ErrRouteNotFound))
	assert.Equal(t, before, model.Route())
}

func TestModel_RouteIsACopy(t *testing.T) {
	model, _ := newTestModel(t, madrid, paris)

	route := model.Route()
	route.Segments[0].Path[0] = orb.Point{99, 99}
	route.Waypoints[0].Label = "mutated"

	fresh := model.Route()
	assert.Equal(t, madrid, fresh.Segments[0].Path[0])
	assert.Empty(t, fresh.Waypoints[0].Label)
}
