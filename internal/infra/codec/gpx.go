package codec

import (
	"routereel/internal/domain/constants"
	"routereel/internal/domain/entity"
	"routereel/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/tkrajina/gpxgo/gpx"
)

const gpxCreator = "routereel"

// GPXCodec writes waypoints, a route through them and one track per segment.
// Importing prefers the route and reuses the tracks as segment paths when
// they line up with it.
type GPXCodec struct{}

// NewGPXCodec creates the GPX codec.
func NewGPXCodec() service.RouteCodec {
	return GPXCodec{}
}

func (GPXCodec) Format() string { return constants.FormatGPX }

func (GPXCodec) ContentType() string { return "application/gpx+xml" }

func (GPXCodec) Encode(route *entity.Route) ([]byte, error) {
	doc := &gpx.GPX{
		Version: "1.1",
		Creator: gpxCreator,
		Name:    route.Name,
	}

	rte := gpx.GPXRoute{Name: route.Name}
	for _, waypoint := range route.Waypoints {
		point := gpxPoint(waypoint.Coordinates)
		point.Name = waypoint.Label
		doc.Waypoints = append(doc.Waypoints, point)
		rte.Points = append(rte.Points, point)
	}
	doc.Routes = []gpx.GPXRoute{rte}

	for _, segment := range route.Segments {
		trackSegment := gpx.GPXTrackSegment{}
		for _, p := range segment.Path {
			trackSegment.Points = append(trackSegment.Points, gpxPoint(p))
		}
		doc.Tracks = append(doc.Tracks, gpx.GPXTrack{
			Type:     string(segment.TransportMode),
			Segments: []gpx.GPXTrackSegment{trackSegment},
		})
	}

	data, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}

func (GPXCodec) Decode(data []byte) (*entity.Route, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "invalid gpx document")
	}

	switch {
	case len(doc.Routes) > 0 && len(doc.Routes[0].Points) > 0:
		route := routeFromPoints(doc.Name, doc.Routes[0].Points)
		if paths, modes, ok := trackPaths(doc.Tracks, len(route.Waypoints)-1); ok {
			linkSegments(route, paths, modes)
		}

		return route, nil
	case len(doc.Waypoints) > 0:
		return routeFromPoints(doc.Name, doc.Waypoints), nil
	default:
		return routeFromRecording(doc)
	}
}

func routeFromPoints(name string, points []gpx.GPXPoint) *entity.Route {
	coords := make([]orb.Point, len(points))
	labels := make([]string, len(points))
	for i, p := range points {
		coords[i] = orb.Point{p.Longitude, p.Latitude}
		labels[i] = p.Name
	}

	return newRoute(name, coords, labels)
}

// trackPaths returns one path per track when the document holds exactly
// want single-segment tracks.
func trackPaths(tracks []gpx.GPXTrack, want int) ([]orb.LineString, []entity.TransportMode, bool) {
	if want <= 0 || len(tracks) != want {
		return nil, nil, false
	}

	paths := make([]orb.LineString, want)
	modes := make([]entity.TransportMode, want)
	for i, track := range tracks {
		if len(track.Segments) != 1 || len(track.Segments[0].Points) < 2 {
			return nil, nil, false
		}
		paths[i] = lineString(track.Segments[0].Points)
		modes[i] = modeOrDefault(track.Type)
	}

	return paths, modes, true
}

// routeFromRecording turns a recorded track into a route: every track
// segment becomes one leg, and the waypoints sit where the legs meet.
func routeFromRecording(doc *gpx.GPX) (*entity.Route, error) {
	var paths []orb.LineString
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			if len(segment.Points) >= 2 {
				paths = append(paths, lineString(segment.Points))
			}
		}
	}
	if len(paths) == 0 {
		return nil, ErrEmptyDocument
	}

	coords := []orb.Point{paths[0][0]}
	for _, path := range paths {
		coords = append(coords, path[len(path)-1])
	}

	name := doc.Name
	if name == "" && len(doc.Tracks) > 0 {
		name = doc.Tracks[0].Name
	}

	route := newRoute(name, coords, make([]string, len(coords)))
	modes := make([]entity.TransportMode, len(paths))
	for i := range modes {
		modes[i] = entity.DefaultTransportMode
	}
	linkSegments(route, paths, modes)

	return route, nil
}

func gpxPoint(p orb.Point) gpx.GPXPoint {
	return gpx.GPXPoint{Point: gpx.Point{Latitude: p.Lat(), Longitude: p.Lon()}}
}

func lineString(points []gpx.GPXPoint) orb.LineString {
	line := make(orb.LineString, len(points))
	for i, p := range points {
		line[i] = orb.Point{p.Longitude, p.Latitude}
	}

	return line
}
