package entity

import (
	"time"

	"github.com/google/uuid"
)

// CaptureState is the lifecycle state of a video capture.
type CaptureState string

const (
	CaptureIdle       CaptureState = "idle"
	CaptureRecording  CaptureState = "recording"
	CaptureFinalizing CaptureState = "finalizing"
	CaptureCompleted  CaptureState = "completed"
	CaptureCancelled  CaptureState = "cancelled"
	CaptureFailed     CaptureState = "failed"
)

// IsTerminal reports whether the capture has finished one way or another.
func (s CaptureState) IsTerminal() bool {
	return s == CaptureCompleted || s == CaptureCancelled || s == CaptureFailed
}

// Capture describes one capture run.
type Capture struct {
	ID             uuid.UUID    `json:"id"`
	RouteID        uuid.UUID    `json:"routeId"`
	State          CaptureState `json:"state"`
	FrameRate      int          `json:"frameRate"`
	FramesCaptured int          `json:"framesCaptured"`
	Progress       float64      `json:"progress"`
	ArtifactKey    string       `json:"artifactKey,omitempty"`
	ArtifactSize   int64        `json:"artifactSize,omitempty"`
	Truncated      bool         `json:"truncated,omitempty"` // stopped before playback completed
	Error          string       `json:"error,omitempty"`
	StartedAt      time.Time    `json:"startedAt"`
	FinishedAt     *time.Time   `json:"finishedAt,omitempty"`
}
