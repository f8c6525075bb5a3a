package pmtiles

import (
	"bytes"
	"compress/gzip"
	"testing"

	"routereel/internal/domain/entity"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTile covers central Paris at the default routing zoom.
func testTile() maptile.Tile {
	return maptile.At(orb.Point{2.3522, 48.8566}, defaultZoomLevel)
}

// tilePoint returns the point at fractional position (fx, fy) of the tile.
func tilePoint(tile maptile.Tile, fx, fy float64) orb.Point {
	b := tile.Bound()

	return orb.Point{
		b.Min.Lon() + fx*(b.Max.Lon()-b.Min.Lon()),
		b.Max.Lat() - fy*(b.Max.Lat()-b.Min.Lat()),
	}
}

// encodeTile projects WGS84 features into tile space and marshals them.
func encodeTile(t *testing.T, tile maptile.Tile, layerName string, features ...*geojson.Feature) []byte {
	t.Helper()

	layers := mvt.Layers{&mvt.Layer{Name: layerName, Version: 2, Extent: mvt.DefaultExtent, Features: features}}
	layers.ProjectToTile(tile)

	data, err := mvt.Marshal(layers)
	require.NoError(t, err)

	return data
}

func road(class string, oneway bool, points ...orb.Point) *geojson.Feature {
	feature := geojson.NewFeature(orb.LineString(points))
	feature.Properties["class"] = class
	if oneway {
		feature.Properties["oneway"] = int64(1)
	}

	return feature
}

func TestMVTParser_ParseTile(t *testing.T) {
	tile := testTile()
	named := road("primary", true, tilePoint(tile, 0.1, 0.5), tilePoint(tile, 0.9, 0.5))
	named.Properties["name"] = "Rue de Rivoli"

	data := encodeTile(t, tile, "transportation",
		named,
		road("footway", false, tilePoint(tile, 0.2, 0.2), tilePoint(tile, 0.3, 0.3), tilePoint(tile, 0.4, 0.2)),
		geojson.NewFeature(tilePoint(tile, 0.5, 0.5)),
	)

	segments, err := NewMVTParser("transportation").ParseTile(data, tile)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, "primary", segments[0].Class)
	assert.Equal(t, "Rue de Rivoli", segments[0].Name)
	assert.True(t, segments[0].OneWay)
	assert.InDelta(t, 60.0, segments[0].MaxSpeed, 1e-9)
	assert.InDelta(t, tilePoint(tile, 0.1, 0.5).Lon(), segments[0].Points[0].Lon(), 1e-4)
	assert.InDelta(t, tilePoint(tile, 0.1, 0.5).Lat(), segments[0].Points[0].Lat(), 1e-4)

	assert.Equal(t, "footway", segments[1].Class)
	assert.False(t, segments[1].OneWay)
	assert.Len(t, segments[1].Points, 3)
	assert.InDelta(t, defaultSpeedKmh, segments[1].MaxSpeed, 1e-9)
}

func TestMVTParser_ParseTile_Gzipped(t *testing.T) {
	tile := testTile()
	data := encodeTile(t, tile, "roads", road("residential", false, tilePoint(tile, 0.1, 0.1), tilePoint(tile, 0.2, 0.2)))

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	segments, err := NewMVTParser("roads").ParseTile(buf.Bytes(), tile)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, "residential", segments[0].Class)
}

func TestMVTParser_ParseTile_MultiLineStaysSplit(t *testing.T) {
	tile := testTile()
	feature := geojson.NewFeature(orb.MultiLineString{
		{tilePoint(tile, 0.1, 0.1), tilePoint(tile, 0.2, 0.1)},
		{tilePoint(tile, 0.6, 0.6), tilePoint(tile, 0.7, 0.6)},
	})
	feature.Properties["class"] = "secondary"

	segments, err := NewMVTParser("transportation").ParseTile(encodeTile(t, tile, "transportation", feature), tile)
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Len(t, segments[0].Points, 2)
	assert.Len(t, segments[1].Points, 2)
}

func TestMVTParser_ParseTile_LayerNotFound(t *testing.T) {
	tile := testTile()
	data := encodeTile(t, tile, "water", road("primary", false, tilePoint(tile, 0.1, 0.1), tilePoint(tile, 0.2, 0.2)))

	segments, err := NewMVTParser("transportation").ParseTile(data, tile)
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestMVTParser_ParseTile_InvalidData(t *testing.T) {
	_, err := NewMVTParser("transportation").ParseTile([]byte("not valid mvt data"), testTile())
	assert.Error(t, err)
}

func TestBoolProperty(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{true, true},
		{false, false},
		{int64(1), true},
		{int64(0), false},
		{uint64(1), true},
		{float64(1), true},
		{"yes", true},
		{"no", false},
		{nil, false},
	}

	for _, tt := range tests {
		feature := geojson.NewFeature(orb.Point{})
		feature.Properties["oneway"] = tt.value
		assert.Equal(t, tt.want, boolProperty(feature, "oneway"), "value %v", tt.value)
	}
}

func TestProfile(t *testing.T) {
	car, ok := ProfileFor("car")
	require.True(t, ok)
	assert.False(t, car.Allows("footway"))
	assert.True(t, car.Allows("motorway"))
	assert.InDelta(t, 110.0, car.Speed(&RoadSegment{MaxSpeed: 110}), 1e-9)

	bus, ok := ProfileFor("bus")
	require.True(t, ok)
	assert.InDelta(t, 48.0, bus.Speed(&RoadSegment{MaxSpeed: 60}), 1e-9)

	walk, ok := ProfileFor("walk")
	require.True(t, ok)
	assert.False(t, walk.Allows("motorway"))
	assert.True(t, walk.Allows("footway"))
	assert.True(t, walk.IgnoreOneWay)
	assert.InDelta(t, 5.0, walk.Speed(&RoadSegment{MaxSpeed: 60}), 1e-9)

	for _, mode := range []string{"train", "ferry", "flight"} {
		_, ok := ProfileFor(entity.TransportMode(mode))
		assert.False(t, ok, mode)
	}
}
