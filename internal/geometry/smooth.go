package geometry

import (
	"github.com/paulmach/orb"
)

const (
	smoothSamples   = 1000
	smoothSharpness = 0.85
)

// Smooth returns a bezier-spline version of the path. Paths with two or fewer
// points are returned unchanged, as is the input whenever the spline produces
// a non-finite coordinate.
func Smooth(path orb.LineString) orb.LineString {
	if len(path) <= 2 {
		return path
	}

	controls := splineControls(path, smoothSharpness)
	legs := len(path) - 1

	out := make(orb.LineString, 0, smoothSamples+1)
	for i := 0; i < smoothSamples; i++ {
		t := float64(i) / smoothSamples * float64(legs)
		n := int(t)
		if n >= legs {
			n = legs - 1
		}

		p := cubic(path[n], controls[n][1], controls[n+1][0], path[n+1], t-float64(n))
		if !finite(p) {
			return path
		}
		out = append(out, p)
	}

	return append(out, path[len(path)-1])
}

// splineControls computes the incoming and outgoing control points of every
// vertex. Endpoints use themselves as controls.
func splineControls(path orb.LineString, sharpness float64) [][2]orb.Point {
	centers := make([]orb.Point, len(path)-1)
	for i := range centers {
		centers[i] = interpolate(path[i], path[i+1], 0.5)
	}

	controls := make([][2]orb.Point, len(path))
	controls[0] = [2]orb.Point{path[0], path[0]}
	for i := 0; i < len(centers)-1; i++ {
		vertex := path[i+1]
		mid := interpolate(centers[i], centers[i+1], 0.5)
		dx, dy := vertex[0]-mid[0], vertex[1]-mid[1]

		controls[i+1] = [2]orb.Point{
			{
				(1-sharpness)*vertex[0] + sharpness*(centers[i][0]+dx),
				(1-sharpness)*vertex[1] + sharpness*(centers[i][1]+dy),
			},
			{
				(1-sharpness)*vertex[0] + sharpness*(centers[i+1][0]+dx),
				(1-sharpness)*vertex[1] + sharpness*(centers[i+1][1]+dy),
			},
		}
	}
	last := path[len(path)-1]
	controls[len(path)-1] = [2]orb.Point{last, last}

	return controls
}

func cubic(p0, c0, c1, p1 orb.Point, t float64) orb.Point {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t

	return orb.Point{
		b0*p0[0] + b1*c0[0] + b2*c1[0] + b3*p1[0],
		b0*p0[1] + b1*c0[1] + b2*c1[1] + b3*p1[1],
	}
}
