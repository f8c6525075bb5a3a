package usecase

import (
	"context"
	"io"

	"routereel/internal/domain/entity"
)

// CaptureUsecase records the animation into a video artifact
type CaptureUsecase interface {
	// Start begins a capture. Only one capture may run at a time.
	Start(ctx context.Context) (*entity.Capture, error)

	// Stop ends the running capture and finalizes what was recorded so far.
	// Stopping an already finished capture returns it unchanged.
	Stop(ctx context.Context) (*entity.Capture, error)

	// Status returns the latest capture
	Status(ctx context.Context) (*entity.Capture, error)

	// Wait blocks until the current capture reaches a terminal state
	Wait(ctx context.Context) (*entity.Capture, error)

	// OpenArtifact streams the artifact of a completed capture
	OpenArtifact(ctx context.Context, key string) (io.ReadCloser, error)
}
