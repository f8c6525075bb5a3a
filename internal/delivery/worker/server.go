// Package worker runs the background loops that keep the session moving.
package worker

import (
	"context"
	"log/slog"
	"sync"

	"routereel/internal/delivery"
	domainerrors "routereel/internal/domain/errors"
	"routereel/internal/domain/lifecycle"
	"routereel/internal/errors"
	"routereel/internal/usecase"

	"go.uber.org/fx"
)

type animatorWorker struct {
	animator usecase.AnimatorUsecase
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// ServerParams holds dependencies for the animator worker
type ServerParams struct {
	fx.In

	Lc       fx.Lifecycle
	Logger   *slog.Logger
	Animator usecase.AnimatorUsecase
}

// NewServer creates the worker that drives the animator from the tick source
func NewServer(params ServerParams) (delivery.Delivery, error) {
	w := newAnimatorWorker(params.Animator, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: w.stop,
	})

	return w, nil
}

func newAnimatorWorker(animator usecase.AnimatorUsecase, logger *slog.Logger) *animatorWorker {
	return &animatorWorker{
		animator: animator,
		logger:   logger,
	}
}

// Serve draws the first frame and consumes ticks until ctx is done or the
// worker is stopped. Without a drawing surface the worker idles.
func (w *animatorWorker) Serve(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	w.mu.Lock()
	w.cancel, w.done = cancel, done
	w.mu.Unlock()

	defer close(done)
	defer cancel()

	if err := w.animator.Redraw(runCtx); err != nil {
		if errors.Is(err, domainerrors.ErrNoSurface) {
			w.logger.Warn("No drawing surface configured, animator disabled")

			return nil
		}
		w.logger.Warn("Failed to draw initial frame", slog.Any("error", err))
	}

	w.logger.Info("Starting animator worker")
	if err := w.animator.Run(runCtx); err != nil && !errors.IsCanceled(err) {
		return errors.Wrap(err, "run animator")
	}

	return nil
}

// stop cancels the loop and waits for it to return
func (w *animatorWorker) stop(ctx context.Context) error {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	if cancel == nil {
		return nil
	}

	w.logger.Info("Shutting down animator worker")
	cancel()

	waitCtx, waitCancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer waitCancel()

	select {
	case <-done:
		return nil
	case <-waitCtx.Done():
		return errors.WithStack(waitCtx.Err())
	}
}
