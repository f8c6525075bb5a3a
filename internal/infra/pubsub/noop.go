package pubsub

import (
	"context"
	"log/slog"

	"routereel/internal/domain/service"
)

type noopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher returns a publisher that drops events after a debug log.
func NewNoopPublisher(logger *slog.Logger) service.EventPublisher {
	return &noopPublisher{logger: logger}
}

func (p *noopPublisher) PublishCaptureEvent(_ context.Context, event *service.CaptureEvent) error {
	p.logger.Debug("[NoopPubSub] Capture event dropped",
		slog.String("capture_id", event.CaptureID),
		slog.String("state", event.State),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}
