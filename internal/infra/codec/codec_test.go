package codec

import (
	"encoding/json"
	"strings"
	"testing"

	"routereel/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeStopRoute builds Paris -> Lyon (train, routed) -> Nice (car, pending).
func threeStopRoute() *entity.Route {
	paris := entity.Waypoint{ID: uuid.New(), Coordinates: orb.Point{2.35, 48.85}, Label: "Paris", Order: 0}
	lyon := entity.Waypoint{ID: uuid.New(), Coordinates: orb.Point{4.83, 45.76}, Label: "Lyon", Order: 1}
	nice := entity.Waypoint{ID: uuid.New(), Coordinates: orb.Point{7.26, 43.7}, Label: "Nice", Order: 2}
	distance, duration := 465.0, 7200.0

	return &entity.Route{
		ID:        uuid.New(),
		Name:      "Riviera",
		Waypoints: []entity.Waypoint{paris, lyon, nice},
		Segments: []entity.Segment{
			{
				ID:              uuid.New(),
				StartWaypointID: paris.ID,
				EndWaypointID:   lyon.ID,
				TransportMode:   entity.TransportModeTrain,
				Path:            orb.LineString{paris.Coordinates, {3.5, 47.3}, lyon.Coordinates},
				Distance:        &distance,
				Duration:        &duration,
			},
			{
				ID:              uuid.New(),
				StartWaypointID: lyon.ID,
				EndWaypointID:   nice.ID,
				TransportMode:   entity.TransportModeCar,
				Path:            orb.LineString{lyon.Coordinates, nice.Coordinates},
				Pending:         true,
			},
		},
	}
}

func TestCodecs_Metadata(t *testing.T) {
	assert.Equal(t, "json", NewJSONCodec().Format())
	assert.Equal(t, "application/json", NewJSONCodec().ContentType())
	assert.Equal(t, "geojson", NewGeoJSONCodec().Format())
	assert.Equal(t, "application/geo+json", NewGeoJSONCodec().ContentType())
	assert.Equal(t, "gpx", NewGPXCodec().Format())
	assert.Equal(t, "application/gpx+xml", NewGPXCodec().ContentType())
}

func TestJSONCodec_RoundTrip(t *testing.T) {
	route := threeStopRoute()
	codec := NewJSONCodec()

	data, err := codec.Encode(route)
	require.NoError(t, err)

	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, route.ID, decoded.ID)
	assert.Equal(t, route.Waypoints, decoded.Waypoints)
	require.Len(t, decoded.Segments, 2)
	assert.Equal(t, route.Segments[0].Path, decoded.Segments[0].Path)
	assert.True(t, decoded.Segments[1].Pending)
}

func TestJSONCodec_DecodeSortsWaypoints(t *testing.T) {
	data := `{"name":"x","waypoints":[
		{"id":"` + uuid.NewString() + `","coordinates":[1,1],"order":1},
		{"id":"` + uuid.NewString() + `","coordinates":[0,0],"order":0}
	]}`

	route, err := NewJSONCodec().Decode([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, orb.Point{0, 0}, route.Waypoints[0].Coordinates)
	assert.NotNil(t, route.Segments)
}

func TestJSONCodec_DecodeErrors(t *testing.T) {
	_, err := NewJSONCodec().Decode([]byte("{"))
	assert.Error(t, err)

	_, err = NewJSONCodec().Decode([]byte(`{"name":"empty","waypoints":[]}`))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestGeoJSONCodec_Encode(t *testing.T) {
	route := threeStopRoute()

	data, err := NewGeoJSONCodec().Encode(route)
	require.NoError(t, err)

	var doc struct {
		Type     string `json:"type"`
		Name     string `json:"name"`
		Features []struct {
			ID       string `json:"id"`
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "FeatureCollection", doc.Type)
	assert.Equal(t, "Riviera", doc.Name)
	require.Len(t, doc.Features, 5)
	assert.Equal(t, "Point", doc.Features[0].Geometry.Type)
	assert.Equal(t, "Paris", doc.Features[0].Properties["label"])
	assert.Equal(t, "LineString", doc.Features[3].Geometry.Type)
	assert.Equal(t, "train", doc.Features[3].Properties["transportMode"])
	assert.Equal(t, 465.0, doc.Features[3].Properties["distance"])
	assert.Equal(t, true, doc.Features[4].Properties["pending"])
}

func TestGeoJSONCodec_RoundTrip(t *testing.T) {
	route := threeStopRoute()
	codec := NewGeoJSONCodec()

	data, err := codec.Encode(route)
	require.NoError(t, err)

	decoded, err := codec.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, route.ID, decoded.ID)
	assert.Equal(t, route.Name, decoded.Name)
	assert.Equal(t, route.Waypoints, decoded.Waypoints)
	require.Len(t, decoded.Segments, 2)
	assert.Equal(t, route.Segments[0].ID, decoded.Segments[0].ID)
	assert.Equal(t, entity.TransportModeTrain, decoded.Segments[0].TransportMode)
	assert.Equal(t, route.Segments[0].Path, decoded.Segments[0].Path)
	assert.Equal(t, 7200.0, *decoded.Segments[0].Duration)
	assert.True(t, decoded.Segments[1].Pending)
	assert.Nil(t, decoded.Segments[1].Distance)
}

func TestGeoJSONCodec_DecodeWithoutSegments(t *testing.T) {
	data := `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{"label":"A"}},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[3,4]},"properties":null},
		{"type":"Feature","geometry":{"type":"LineString","coordinates":[[1,2],[3,4]]},"properties":{"startWaypointId":"bogus"}}
	]}`

	route, err := NewGeoJSONCodec().Decode([]byte(data))
	require.NoError(t, err)

	require.Len(t, route.Waypoints, 2)
	assert.Equal(t, "A", route.Waypoints[0].Label)
	assert.Equal(t, orb.Point{3, 4}, route.Waypoints[1].Coordinates)
	assert.Equal(t, 1, route.Waypoints[1].Order)
	assert.Empty(t, route.Segments)
	assert.NotEqual(t, uuid.Nil, route.ID)
}

func TestGeoJSONCodec_DecodeErrors(t *testing.T) {
	_, err := NewGeoJSONCodec().Decode([]byte(`not json`))
	assert.Error(t, err)

	_, err = NewGeoJSONCodec().Decode([]byte(`{"type":"FeatureCollection","features":[]}`))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestGPXCodec_Encode(t *testing.T) {
	data, err := NewGPXCodec().Encode(threeStopRoute())
	require.NoError(t, err)

	doc := string(data)
	assert.Equal(t, 3, strings.Count(doc, "<wpt "))
	assert.Equal(t, 3, strings.Count(doc, "<rtept "))
	assert.Equal(t, 2, strings.Count(doc, "<trk>"))
	assert.Contains(t, doc, "<name>Paris</name>")
	assert.Contains(t, doc, "<type>train</type>")
}

func TestGPXCodec_RoundTrip(t *testing.T) {
	route := threeStopRoute()
	codec := NewGPXCodec()

	data, err := codec.Encode(route)
	require.NoError(t, err)

	decoded, err := codec.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, "Riviera", decoded.Name)
	require.Len(t, decoded.Waypoints, 3)
	assert.Equal(t, "Lyon", decoded.Waypoints[1].Label)
	assert.InDelta(t, 4.83, decoded.Waypoints[1].Coordinates.Lon(), 1e-6)

	require.Len(t, decoded.Segments, 2)
	assert.Equal(t, entity.TransportModeTrain, decoded.Segments[0].TransportMode)
	assert.Len(t, decoded.Segments[0].Path, 3)
	assert.Equal(t, decoded.Waypoints[0].ID, decoded.Segments[0].StartWaypointID)
	assert.Equal(t, decoded.Waypoints[2].ID, decoded.Segments[1].EndWaypointID)
	assert.Equal(t, decoded.Waypoints[2].Coordinates, decoded.Segments[1].Path[1])
}

func TestGPXCodec_DecodeWaypointsOnly(t *testing.T) {
	data := `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <wpt lat="46.0" lon="7.0"><name>Zermatt</name></wpt>
  <wpt lat="46.5" lon="8.0"><name>Grindelwald</name></wpt>
</gpx>`

	route, err := NewGPXCodec().Decode([]byte(data))
	require.NoError(t, err)

	require.Len(t, route.Waypoints, 2)
	assert.Equal(t, "Zermatt", route.Waypoints[0].Label)
	assert.Equal(t, orb.Point{8, 46.5}, route.Waypoints[1].Coordinates)
	assert.Empty(t, route.Segments)
}

func TestGPXCodec_DecodeRecording(t *testing.T) {
	data := `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><name>Morning ride</name>
    <trkseg>
      <trkpt lat="0" lon="0"></trkpt><trkpt lat="0" lon="0.01"></trkpt><trkpt lat="0" lon="0.02"></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="0.001" lon="0.02"></trkpt><trkpt lat="0.01" lon="0.02"></trkpt>
    </trkseg>
  </trk>
</gpx>`

	route, err := NewGPXCodec().Decode([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "Morning ride", route.Name)
	require.Len(t, route.Waypoints, 3)
	assert.Equal(t, orb.Point{0.02, 0}, route.Waypoints[1].Coordinates)
	require.Len(t, route.Segments, 2)
	assert.Len(t, route.Segments[0].Path, 3)
	// The second leg starts where the first ended.
	assert.Equal(t, orb.Point{0.02, 0}, route.Segments[1].Path[0])
	assert.Equal(t, entity.DefaultTransportMode, route.Segments[1].TransportMode)
}

func TestGPXCodec_DecodeErrors(t *testing.T) {
	_, err := NewGPXCodec().Decode([]byte("not xml"))
	assert.Error(t, err)

	_, err = NewGPXCodec().Decode([]byte(`<?xml version="1.0"?><gpx version="1.1" creator="t"></gpx>`))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}
