// Package entity contains the core business objects of the project.
package entity

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Waypoint is a user-placed point on the route with a stable identity.
type Waypoint struct {
	ID          uuid.UUID `json:"id"`          // Stable identity, survives reorders and edits.
	Coordinates orb.Point `json:"coordinates"` // [lon, lat]
	Label       string    `json:"label,omitempty"`
	Order       int       `json:"order"` // Zero-based position in the route.
}
