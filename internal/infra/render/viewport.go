package render

import (
	"math"

	"routereel/config"
	"routereel/internal/geometry"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// viewport fits a Web Mercator bound into the canvas, keeping aspect ratio.
type viewport struct {
	scale   float64
	offsetX float64
	offsetY float64
	minX    float64
	maxY    float64
}

func newViewport(cfg config.RenderConfig, paths []orb.LineString) viewport {
	bound := geometry.Bounds(paths...)
	lo := project.WGS84.ToMercator(bound.Min)
	hi := project.WGS84.ToMercator(bound.Max)

	width := float64(cfg.Width) - 2*cfg.Padding
	height := float64(cfg.Height) - 2*cfg.Padding
	spanX := hi.X() - lo.X()
	spanY := hi.Y() - lo.Y()

	scale := 1.0
	if spanX > 0 || spanY > 0 {
		scale = math.Min(safeRatio(width, spanX), safeRatio(height, spanY))
	}

	return viewport{
		scale:   scale,
		offsetX: cfg.Padding + (width-spanX*scale)/2,
		offsetY: cfg.Padding + (height-spanY*scale)/2,
		minX:    lo.X(),
		maxY:    hi.Y(),
	}
}

// project maps lon/lat to pixel coordinates, y growing downwards.
func (v viewport) project(p orb.Point) (float64, float64) {
	m := project.WGS84.ToMercator(p)

	return v.offsetX + (m.X()-v.minX)*v.scale, v.offsetY + (v.maxY-m.Y())*v.scale
}

func safeRatio(pixels, span float64) float64 {
	if span <= 0 {
		return math.Inf(1)
	}

	return pixels / span
}
