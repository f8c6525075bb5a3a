package entity

import (
	"time"

	"github.com/google/uuid"
)

// Route is a named, ordered list of waypoints and the segments between them.
type Route struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Waypoints []Waypoint `json:"waypoints"`
	Segments  []Segment  `json:"segments"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Clone returns a deep copy of the route. A nil route clones to nil.
func (r *Route) Clone() *Route {
	if r == nil {
		return nil
	}

	out := *r
	out.Waypoints = make([]Waypoint, len(r.Waypoints))
	copy(out.Waypoints, r.Waypoints)
	out.Segments = make([]Segment, len(r.Segments))
	for i, segment := range r.Segments {
		out.Segments[i] = segment.Clone()
	}

	return &out
}

// WaypointIndex returns the position of the waypoint with the given ID, or -1.
func (r *Route) WaypointIndex(id uuid.UUID) int {
	for i := range r.Waypoints {
		if r.Waypoints[i].ID == id {
			return i
		}
	}

	return -1
}

// SegmentIndex returns the position of the segment with the given ID, or -1.
func (r *Route) SegmentIndex(id uuid.UUID) int {
	for i := range r.Segments {
		if r.Segments[i].ID == id {
			return i
		}
	}

	return -1
}

// Waypoint looks up a waypoint by ID.
func (r *Route) Waypoint(id uuid.UUID) (Waypoint, bool) {
	if idx := r.WaypointIndex(id); idx >= 0 {
		return r.Waypoints[idx], true
	}

	return Waypoint{}, false
}
