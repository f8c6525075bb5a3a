// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"routereel/internal/domain/entity"
	"routereel/internal/domain/service"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// AddWaypointInput represents the input for appending a waypoint
type AddWaypointInput struct {
	Longitude float64 `json:"lon"`
	Latitude  float64 `json:"lat"`
	Label     string  `json:"label"`
}

// UpdateWaypointInput represents a partial waypoint update. A coordinate
// change requires both axes.
type UpdateWaypointInput struct {
	Longitude *float64 `json:"lon,omitempty"`
	Latitude  *float64 `json:"lat,omitempty"`
	Label     *string  `json:"label,omitempty"`
}

// SetSegmentPathInput represents a resolved or manually edited segment path
type SetSegmentPathInput struct {
	Path     orb.LineString `json:"path"`
	Distance *float64       `json:"distance,omitempty"`
	Duration *float64       `json:"duration,omitempty"`
}

// PendingSegment is a segment whose path still has to be resolved, together
// with the endpoints and path it had when it was read. A result is only
// applied while all of them are unchanged.
type PendingSegment struct {
	SegmentID uuid.UUID
	Start     orb.Point
	End       orb.Point
	Mode      entity.TransportMode
	Path      orb.LineString

	// Force applies the result to a segment that is no longer pending
	Force bool
}

// Snapshot is a consistent view of the session at one instant
type Snapshot struct {
	Route       *entity.Route
	State       entity.AnimationState
	Frame       *entity.Frame
	Revision    uint64 // increases on every change
	Completions int    // number of runs that reached the end
}

// SessionUsecase is the single owner of the route and its playback engine.
// Every mutation is serialized; readers get deep copies.
type SessionUsecase interface {
	// Route management
	CreateRoute(ctx context.Context, name string) (*entity.Route, error)
	GetRoute(ctx context.Context) (*entity.Route, error)
	ReplaceRoute(ctx context.Context, route *entity.Route) (*entity.Route, error)

	// Waypoints
	AddWaypoint(ctx context.Context, input *AddWaypointInput) (*entity.Waypoint, error)
	UpdateWaypoint(ctx context.Context, id uuid.UUID, input *UpdateWaypointInput) (*entity.Waypoint, error)
	RemoveWaypoint(ctx context.Context, id uuid.UUID) error
	ReorderWaypoints(ctx context.Context, from, to int) error

	// Segments
	SetSegmentTransportMode(ctx context.Context, id uuid.UUID, mode entity.TransportMode) error
	SetSegmentPath(ctx context.Context, id uuid.UUID, input *SetSegmentPathInput) error
	InsertPathNode(ctx context.Context, id uuid.UUID, coord orb.Point) (int, error)
	MovePathNode(ctx context.Context, id uuid.UUID, index int, coord orb.Point) error
	RemovePathNode(ctx context.Context, id uuid.UUID, index int) error
	PendingSegments(ctx context.Context) []PendingSegment
	ApplyResolvedPath(ctx context.Context, pending PendingSegment, routed *service.RoutedPath) (bool, error)

	// Playback
	Play(ctx context.Context) error
	Pause(ctx context.Context) entity.AnimationState
	Stop(ctx context.Context) entity.AnimationState
	Scrub(ctx context.Context, progress float64) (entity.AnimationState, error)
	SetSpeed(ctx context.Context, speed float64) (entity.AnimationState, error)
	SetDuration(ctx context.Context, duration time.Duration) (entity.AnimationState, error)
	Tick(elapsed time.Duration) bool
	State() entity.AnimationState
	Frame() *entity.Frame
	Snapshot() Snapshot
}
