package timeline

import (
	"math"
	"testing"
	"time"

	"routereel/internal/domain/entity"
	"routereel/internal/geometry"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nan() float64 {
	return math.NaN()
}

func TestSampleFrame_MadridToParisHalfway(t *testing.T) {
	model, _ := newTestModel(t, madrid, paris)
	route := model.Route()

	engine := NewPlayback(10*time.Second, 1)
	engine.Reset(model.SegmentCount())
	require.NoError(t, engine.Scrub(0.5))

	state := engine.State()
	assert.Equal(t, 0, state.CurrentSegmentIndex)
	assert.InDelta(t, 0.5, state.SegmentProgress, 1e-12)

	frame := SampleFrame(route, state)
	require.NotNil(t, frame)

	smoothed := DisplayPath(route.Segments[0])
	half := geometry.Length(smoothed) / 2
	want := geometry.PointAtDistance(smoothed, half)

	assert.InDelta(t, want[0], frame.MarkerPosition[0], 1e-9)
	assert.InDelta(t, want[1], frame.MarkerPosition[1], 1e-9)
	// the trail is measured with haversine over a lon/lat interpolated point
	assert.InDelta(t, half, geometry.Length(frame.DrawnPath), half*0.01)
	assert.Equal(t, madrid, frame.DrawnPath[0])
	assert.Equal(t, frame.MarkerPosition, frame.DrawnPath[len(frame.DrawnPath)-1])
	assert.Equal(t, 0.5, frame.Progress)
}

func TestSampleFrame_TrailSpansCompletedSegments(t *testing.T) {
	model, _ := newTestModel(t, orb.Point{0, 0}, orb.Point{1, 0}, orb.Point{2, 0})
	route := model.Route()

	engine := NewPlayback(10*time.Second, 1)
	engine.Reset(2)
	require.NoError(t, engine.Scrub(0.75))

	frame := SampleFrame(route, engine.State())
	require.NotNil(t, frame)

	assert.Equal(t, 1, frame.CurrentSegmentIndex)
	require.Len(t, frame.DrawnPath, 3)
	assert.Equal(t, orb.Point{0, 0}, frame.DrawnPath[0])
	assert.Equal(t, orb.Point{1, 0}, frame.DrawnPath[1])
	assert.InDelta(t, 1.5, frame.DrawnPath[2][0], 1e-9)
	assert.InDelta(t, 1.5, frame.MarkerPosition[0], 1e-9)
}

func TestSampleFrame_SmoothedSegment(t *testing.T) {
	model, _ := newTestModel(t, orb.Point{0, 0}, orb.Point{2, 0})
	segmentID := model.Route().Segments[0].ID
	require.NoError(t, model.SetSegmentPath(segmentID, orb.LineString{{0, 0}, {1, 1}, {2, 0}}, nil, nil))

	frame := SampleFrame(model.Route(), entity.AnimationState{SegmentProgress: 1, CurrentProgress: 1})
	require.NotNil(t, frame)

	assert.InDelta(t, 2.0, frame.MarkerPosition[0], 1e-9)
	assert.InDelta(t, 0.0, frame.MarkerPosition[1], 1e-9)
	assert.Greater(t, len(frame.DrawnPath), 3, "trail follows the smoothed curve")
}

func TestSampleFrame_NothingToDraw(t *testing.T) {
	assert.Nil(t, SampleFrame(nil, entity.AnimationState{}))
	assert.Nil(t, SampleFrame(&entity.Route{}, entity.AnimationState{}))

	degenerate := &entity.Route{
		Segments: []entity.Segment{{ID: uuid.New(), Path: orb.LineString{{1, 1}}}},
	}
	assert.Nil(t, SampleFrame(degenerate, entity.AnimationState{}))
}

func TestSampleFrame_DoesNotMutateRoute(t *testing.T) {
	model, _ := newTestModel(t, madrid, barcelona, paris)
	route := model.Route()
	before := route.Clone()

	for _, p := range []float64{0, 0.3, 0.5, 0.99, 1} {
		engine := NewPlayback(time.Second, 1)
		engine.Reset(len(route.Segments))
		require.NoError(t, engine.Scrub(p))

		require.NotNil(t, SampleFrame(route, engine.State()))
	}

	assert.Equal(t, before, route)
}

func TestDisplayPath(t *testing.T) {
	path := orb.LineString{{0, 0}, {1, 1}, {2, 0}}

	flight := entity.Segment{TransportMode: entity.TransportModeFlight, Path: path}
	assert.Equal(t, path, DisplayPath(flight))

	car := entity.Segment{TransportMode: entity.TransportModeCar, Path: path}
	smoothed := DisplayPath(car)
	assert.Greater(t, len(smoothed), len(path))
	assert.Equal(t, path[0], smoothed[0])
	assert.Equal(t, path[2], smoothed[len(smoothed)-1])
}
