package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	// DefaultArcPoints is the number of intervals used for flight arcs.
	DefaultArcPoints = 50

	arcHeightRatio = 0.1
)

// ArcPath approximates a flight path between start and end with numPoints+1
// samples. Both axes are interpolated linearly and the latitude gets a
// sinusoidal lift that peaks at 10% of the straight-line distance (in degrees)
// halfway along and is zero at both ends. numPoints <= 0 uses DefaultArcPoints.
func ArcPath(start, end orb.Point, numPoints int) orb.LineString {
	if numPoints <= 0 {
		numPoints = DefaultArcPoints
	}

	dx := end[0] - start[0]
	dy := end[1] - start[1]
	height := math.Hypot(dx, dy) * arcHeightRatio

	out := make(orb.LineString, numPoints+1)
	for i := 0; i <= numPoints; i++ {
		t := float64(i) / float64(numPoints)
		out[i] = orb.Point{
			start[0] + dx*t,
			start[1] + dy*t + math.Sin(math.Pi*t)*height,
		}
	}

	// pin the far end exactly; sin(π) is not quite zero
	out[numPoints] = end

	return out
}
