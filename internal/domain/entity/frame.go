package entity

import "github.com/paulmach/orb"

// Frame is the renderable snapshot of one playback moment.
type Frame struct {
	MarkerPosition      orb.Point      `json:"markerPosition"`
	CurrentSegmentIndex int            `json:"currentSegmentIndex"`
	DrawnPath           orb.LineString `json:"drawnPath"` // trail travelled so far
	Progress            float64        `json:"progress"`
}
