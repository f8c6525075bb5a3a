package service

import (
	"context"
)

// CaptureEvent is published whenever a capture reaches a terminal state
type CaptureEvent struct {
	RequestID    string  `json:"request_id,omitempty"` // For distributed tracing
	CaptureID    string  `json:"capture_id"`
	RouteID      string  `json:"route_id"`
	State        string  `json:"state"`
	ArtifactKey  string  `json:"artifact_key,omitempty"`
	ArtifactSize int64   `json:"artifact_size,omitempty"`
	Frames       int     `json:"frames"`
	Progress     float64 `json:"progress"`
	Truncated    bool    `json:"truncated,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishCaptureEvent announces a finished capture
	PublishCaptureEvent(ctx context.Context, event *CaptureEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
