package codec

import (
	"routereel/internal/domain/constants"
	"routereel/internal/domain/entity"
	"routereel/internal/domain/service"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

const (
	kindWaypoint = "waypoint"
	kindSegment  = "segment"
)

// GeoJSONCodec writes a FeatureCollection with one Point feature per waypoint
// and one LineString feature per segment.
type GeoJSONCodec struct{}

// NewGeoJSONCodec creates the GeoJSON codec.
func NewGeoJSONCodec() service.RouteCodec {
	return GeoJSONCodec{}
}

func (GeoJSONCodec) Format() string { return constants.FormatGeoJSON }

func (GeoJSONCodec) ContentType() string { return "application/geo+json" }

func (GeoJSONCodec) Encode(route *entity.Route) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = geojson.Properties{
		"id":   route.ID.String(),
		"name": route.Name,
	}

	for _, waypoint := range route.Waypoints {
		feature := geojson.NewFeature(waypoint.Coordinates)
		feature.ID = waypoint.ID.String()
		feature.Properties["kind"] = kindWaypoint
		feature.Properties["label"] = waypoint.Label
		feature.Properties["order"] = waypoint.Order
		fc.Append(feature)
	}

	for _, segment := range route.Segments {
		feature := geojson.NewFeature(segment.Path)
		feature.ID = segment.ID.String()
		feature.Properties["kind"] = kindSegment
		feature.Properties["startWaypointId"] = segment.StartWaypointID.String()
		feature.Properties["endWaypointId"] = segment.EndWaypointID.String()
		feature.Properties["transportMode"] = string(segment.TransportMode)
		if segment.Distance != nil {
			feature.Properties["distance"] = *segment.Distance
		}
		if segment.Duration != nil {
			feature.Properties["duration"] = *segment.Duration
		}
		if segment.Pending {
			feature.Properties["pending"] = true
		}
		fc.Append(feature)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}

// Decode reads waypoints from Point features. Segment features are kept only
// when every one of them references the decoded waypoints; otherwise the
// route comes back without segments.
func (GeoJSONCodec) Decode(data []byte) (*entity.Route, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "invalid geojson document")
	}

	route := &entity.Route{
		ID:        parseUUIDOrNew(fc.ExtraMembers.MustString("id", "")),
		Name:      fc.ExtraMembers.MustString("name", ""),
		Waypoints: []entity.Waypoint{},
		Segments:  []entity.Segment{},
	}

	var segmentFeatures []*geojson.Feature
	for _, feature := range fc.Features {
		switch geometry := feature.Geometry.(type) {
		case orb.Point:
			route.Waypoints = append(route.Waypoints, entity.Waypoint{
				ID:          parseUUIDOrNew(featureID(feature)),
				Coordinates: geometry,
				Label:       feature.Properties.MustString("label", ""),
				Order:       feature.Properties.MustInt("order", len(route.Waypoints)),
			})
		case orb.LineString:
			if feature.Properties.MustString("kind", kindSegment) == kindSegment {
				segmentFeatures = append(segmentFeatures, feature)
			}
		}
	}

	if len(route.Waypoints) == 0 {
		return nil, ErrEmptyDocument
	}
	sortWaypoints(route.Waypoints)
	for i := range route.Waypoints {
		route.Waypoints[i].Order = i
	}

	if segments, ok := decodeSegments(route.Waypoints, segmentFeatures); ok {
		route.Segments = segments
	}

	return route, nil
}

func decodeSegments(waypoints []entity.Waypoint, features []*geojson.Feature) ([]entity.Segment, bool) {
	if len(features) == 0 || len(features) != len(waypoints)-1 {
		return nil, false
	}

	known := make(map[uuid.UUID]bool, len(waypoints))
	for _, waypoint := range waypoints {
		known[waypoint.ID] = true
	}

	segments := make([]entity.Segment, 0, len(features))
	for _, feature := range features {
		start, err := uuid.Parse(feature.Properties.MustString("startWaypointId", ""))
		if err != nil || !known[start] {
			return nil, false
		}
		end, err := uuid.Parse(feature.Properties.MustString("endWaypointId", ""))
		if err != nil || !known[end] {
			return nil, false
		}

		segment := entity.Segment{
			ID:              parseUUIDOrNew(featureID(feature)),
			StartWaypointID: start,
			EndWaypointID:   end,
			TransportMode:   modeOrDefault(feature.Properties.MustString("transportMode", "")),
			Path:            feature.Geometry.(orb.LineString),
			Pending:         feature.Properties.MustBool("pending", false),
		}
		if v, ok := feature.Properties["distance"].(float64); ok {
			segment.Distance = &v
		}
		if v, ok := feature.Properties["duration"].(float64); ok {
			segment.Duration = &v
		}
		segments = append(segments, segment)
	}

	return segments, true
}

func featureID(feature *geojson.Feature) string {
	id, _ := feature.ID.(string)

	return id
}

func parseUUIDOrNew(raw string) uuid.UUID {
	if id, err := uuid.Parse(raw); err == nil {
		return id
	}

	return uuid.New()
}
