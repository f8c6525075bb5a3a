package entity

import "time"

// PlaybackStatus names the three states of the playback state machine.
type PlaybackStatus string

const (
	PlaybackStopped PlaybackStatus = "stopped"
	PlaybackPlaying PlaybackStatus = "playing"
	PlaybackPaused  PlaybackStatus = "paused"
)

// AnimationState is the observable state of the playback engine.
type AnimationState struct {
	IsPlaying           bool          `json:"isPlaying"`
	IsPaused            bool          `json:"isPaused"`
	CurrentProgress     float64       `json:"currentProgress"`     // [0, 1] across the whole route
	CurrentSegmentIndex int           `json:"currentSegmentIndex"` // index into Route.Segments
	SegmentProgress     float64       `json:"segmentProgress"`     // [0, 1] within the current segment
	Speed               float64       `json:"speed"`               // playback rate multiplier
	Duration            time.Duration `json:"duration"`            // length of a full run at speed 1
}

// Status derives the state machine state from the flags.
func (s AnimationState) Status() PlaybackStatus {
	switch {
	case s.IsPlaying:
		return PlaybackPlaying
	case s.IsPaused:
		return PlaybackPaused
	default:
		return PlaybackStopped
	}
}
