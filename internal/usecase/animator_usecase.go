package usecase

import "context"

// AnimatorUsecase keeps the drawing surface in sync with the session
type AnimatorUsecase interface {
	// Run consumes ticks until ctx is done
	Run(ctx context.Context) error

	// Redraw renders the current session state immediately
	Redraw(ctx context.Context) error
}
