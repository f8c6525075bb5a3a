package service

import (
	"image"

	"routereel/internal/domain/entity"
)

// Surface is a drawable bitmap that reflects the latest rendered frame
type Surface interface {
	// Render redraws the surface for the route and frame. A nil frame draws
	// the route without a marker.
	Render(route *entity.Route, frame *entity.Frame) error

	// Snapshot returns a copy of the current bitmap
	Snapshot() image.Image

	// Size returns the bitmap dimensions in pixels
	Size() (width, height int)
}
