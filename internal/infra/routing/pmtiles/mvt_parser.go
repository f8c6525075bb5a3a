package pmtiles

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/pkg/errors"
)

// RoadSegment is one road polyline extracted from a vector tile
type RoadSegment struct {
	Points   []orb.Point
	Class    string  // e.g. "primary", "residential", "footway"
	MaxSpeed float64 // km/h derived from the class
	OneWay   bool
	Name     string
}

// MVTParser extracts road segments from Mapbox vector tiles
type MVTParser struct {
	roadLayerName string
}

// NewMVTParser creates a new MVT parser
func NewMVTParser(roadLayerName string) *MVTParser {
	return &MVTParser{roadLayerName: roadLayerName}
}

// classSpeeds are default km/h per OpenMapTiles class
var classSpeeds = map[string]float64{
	"motorway":       110,
	"motorway_link":  80,
	"trunk":          80,
	"trunk_link":     60,
	"primary":        60,
	"primary_link":   50,
	"secondary":      50,
	"secondary_link": 40,
	"tertiary":       40,
	"tertiary_link":  30,
	"minor":          30,
	"residential":    30,
	"unclassified":   30,
	"living_street":  20,
	"service":        20,
	"track":          15,
}

// ParseTile decodes (optionally gzipped) tile data and returns the road
// segments of the road layer in WGS84.
func (p *MVTParser) ParseTile(data []byte, tile maptile.Tile) ([]RoadSegment, error) {
	layers, err := mvt.UnmarshalGzipped(data)
	if err != nil {
		layers, err = mvt.Unmarshal(data)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	var roads *mvt.Layer
	for _, layer := range layers {
		if layer.Name == p.roadLayerName {
			roads = layer

			break
		}
	}
	if roads == nil {
		return []RoadSegment{}, nil
	}

	roads.ProjectToWGS84(tile)

	segments := make([]RoadSegment, 0, len(roads.Features))
	for _, feature := range roads.Features {
		segments = append(segments, extractSegments(feature)...)
	}

	return segments, nil
}

// extractSegments keeps the parts of a multi-line separate so that they are
// not joined by a phantom edge.
func extractSegments(feature *geojson.Feature) []RoadSegment {
	var lines []orb.LineString
	switch geom := feature.Geometry.(type) {
	case orb.LineString:
		lines = []orb.LineString{geom}
	case orb.MultiLineString:
		lines = geom
	default:
		return nil
	}

	class := stringProperty(feature, "class", "highway", "type")
	speed, ok := classSpeeds[class]
	if !ok {
		speed = defaultSpeedKmh
	}

	segments := make([]RoadSegment, 0, len(lines))
	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		segments = append(segments, RoadSegment{
			Points:   append([]orb.Point(nil), line...),
			Class:    class,
			MaxSpeed: speed,
			OneWay:   boolProperty(feature, "oneway"),
			Name:     stringProperty(feature, "name"),
		})
	}

	return segments
}

func stringProperty(feature *geojson.Feature, keys ...string) string {
	for _, key := range keys {
		if str, ok := feature.Properties[key].(string); ok {
			return str
		}
	}

	return ""
}

func boolProperty(feature *geojson.Feature, key string) bool {
	switch value := feature.Properties[key].(type) {
	case bool:
		return value
	case int:
		return value != 0
	case int64:
		return value != 0
	case uint64:
		return value != 0
	case float64:
		return value != 0
	case string:
		return value == "yes" || value == "true" || value == "1"
	}

	return false
}
