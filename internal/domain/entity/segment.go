package entity

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Segment is the travel leg between two consecutive waypoints.
type Segment struct {
	ID              uuid.UUID      `json:"id"`
	StartWaypointID uuid.UUID      `json:"startWaypointId"`
	EndWaypointID   uuid.UUID      `json:"endWaypointId"`
	TransportMode   TransportMode  `json:"transportMode"`
	Path            orb.LineString `json:"path"`
	Distance        *float64       `json:"distance,omitempty"` // kilometres
	Duration        *float64       `json:"duration,omitempty"` // seconds

	// Pending marks a straight-line placeholder that still has to be resolved
	// through the routing oracle.
	Pending bool `json:"pending,omitempty"`
}

// Clone returns a deep copy of the segment.
func (s Segment) Clone() Segment {
	out := s
	out.Path = append(orb.LineString(nil), s.Path...)
	if s.Distance != nil {
		distance := *s.Distance
		out.Distance = &distance
	}
	if s.Duration != nil {
		duration := *s.Duration
		out.Duration = &duration
	}

	return out
}

// Reversed returns a copy travelling in the opposite direction.
func (s Segment) Reversed() Segment {
	out := s.Clone()
	out.StartWaypointID, out.EndWaypointID = s.EndWaypointID, s.StartWaypointID
	out.Path.Reverse()

	return out
}

// Connects reports whether the segment runs from start to end.
func (s Segment) Connects(start, end uuid.UUID) bool {
	return s.StartWaypointID == start && s.EndWaypointID == end
}

// Touches reports whether either endpoint of the segment is the given waypoint.
func (s Segment) Touches(waypointID uuid.UUID) bool {
	return s.StartWaypointID == waypointID || s.EndWaypointID == waypointID
}
