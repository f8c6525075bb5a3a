package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// LinePosition is the projection of a point onto a polyline.
type LinePosition struct {
	Index    int       // index of the path vertex that starts the matched edge
	Point    orb.Point // projected point on the path
	Distance float64   // km between the query point and Point
	Along    float64   // km from the start of the path to Point
}

// StraightPath returns the two-point line between a and b.
func StraightPath(a, b orb.Point) orb.LineString {
	return orb.LineString{a, b}
}

// Length returns the total length of the path in kilometres.
func Length(path orb.LineString) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += distanceKm(path[i-1], path[i])
	}

	return total
}

// PointAtDistance returns the coordinate reached after travelling d km along
// the path. d is clamped to [0, Length(path)]. An empty path yields the zero
// point.
func PointAtDistance(path orb.LineString, d float64) orb.Point {
	switch len(path) {
	case 0:
		return orb.Point{}
	case 1:
		return path[0]
	}

	if d <= 0 || math.IsNaN(d) {
		return path[0]
	}

	var travelled float64
	for i := 1; i < len(path); i++ {
		step := distanceKm(path[i-1], path[i])
		if step > 0 && travelled+step >= d {
			return interpolate(path[i-1], path[i], (d-travelled)/step)
		}
		travelled += step
	}

	return path[len(path)-1]
}

// SliceAlong returns the part of the path between the start and stop
// distances (km). Distances are clamped and swapped when reversed.
func SliceAlong(path orb.LineString, start, stop float64) orb.LineString {
	if len(path) < 2 {
		return append(orb.LineString(nil), path...)
	}

	total := Length(path)
	start = clamp(start, 0, total)
	stop = clamp(stop, 0, total)
	if start > stop {
		start, stop = stop, start
	}

	out := orb.LineString{PointAtDistance(path, start)}
	var travelled float64
	for i := 1; i < len(path); i++ {
		travelled += distanceKm(path[i-1], path[i])
		if travelled <= start {
			continue
		}
		if travelled >= stop {
			break
		}
		out = append(out, path[i])
	}

	return append(out, PointAtDistance(path, stop))
}

// Slice returns the sub-polyline between the projections of from and to onto
// the path, in path order.
func Slice(path orb.LineString, from, to orb.Point) orb.LineString {
	if len(path) < 2 {
		return append(orb.LineString(nil), path...)
	}

	startPos := NearestPointOnLine(path, from)
	endPos := NearestPointOnLine(path, to)
	if startPos.Along > endPos.Along {
		startPos, endPos = endPos, startPos
	}

	out := orb.LineString{startPos.Point}
	for i := startPos.Index + 1; i <= endPos.Index; i++ {
		out = append(out, path[i])
	}

	return append(out, endPos.Point)
}

// NearestPointOnSegment returns the point on segment ab closest to p and the
// distance (km) between p and that point.
func NearestPointOnSegment(a, b, p orb.Point) (orb.Point, float64) {
	q, _ := projectOnSegment(a, b, p)

	return q, distanceKm(p, q)
}

// NearestPointOnLine projects p onto the path. For an empty path the zero
// LinePosition is returned.
func NearestPointOnLine(path orb.LineString, p orb.Point) LinePosition {
	switch len(path) {
	case 0:
		return LinePosition{}
	case 1:
		return LinePosition{Point: path[0], Distance: distanceKm(p, path[0])}
	}

	best := LinePosition{Distance: math.Inf(1)}
	var along float64
	for i := 1; i < len(path); i++ {
		q, t := projectOnSegment(path[i-1], path[i], p)
		step := distanceKm(path[i-1], path[i])
		if d := distanceKm(p, q); d < best.Distance {
			best = LinePosition{Index: i - 1, Point: q, Distance: d, Along: along + step*t}
		}
		along += step
	}

	return best
}

// Bounds returns the bounding box of all given paths.
func Bounds(paths ...orb.LineString) orb.Bound {
	var (
		bound orb.Bound
		seen  bool
	)
	for _, path := range paths {
		if len(path) == 0 {
			continue
		}
		if !seen {
			bound = path.Bound()
			seen = true

			continue
		}
		bound = bound.Union(path.Bound())
	}

	return bound
}

// projectOnSegment projects p onto ab using an equirectangular approximation
// around the segment. t is the clamped position along ab in [0, 1].
func projectOnSegment(a, b, p orb.Point) (orb.Point, float64) {
	kx := math.Cos((a[1] + b[1]) / 2 * math.Pi / 180)
	dx := (b[0] - a[0]) * kx
	dy := b[1] - a[1]

	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 || math.IsNaN(lengthSq) {
		return a, 0
	}

	t := clamp(((p[0]-a[0])*kx*dx+(p[1]-a[1])*dy)/lengthSq, 0, 1)

	return interpolate(a, b, t), t
}

func distanceKm(a, b orb.Point) float64 {
	d := geo.DistanceHaversine(a, b) / 1000
	if math.IsNaN(d) {
		return 0
	}

	return d
}

func interpolate(a, b orb.Point, t float64) orb.Point {
	return orb.Point{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

func finite(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsNaN(p[1]) && !math.IsInf(p[0], 0) && !math.IsInf(p[1], 0)
}
