package impl

import (
	"context"
	"log/slog"
	"sync"

	domainerrors "routereel/internal/domain/errors"
	"routereel/internal/domain/service"
	"routereel/internal/usecase"

	"github.com/pkg/errors"
)

// animatorService ticks the session from a tick source and redraws the
// surface whenever the session changed.
type animatorService struct {
	session usecase.SessionUsecase
	surface service.Surface
	ticks   service.TickSource
	logger  *slog.Logger

	mu           sync.Mutex
	lastRevision uint64
	drawn        bool
}

// NewAnimatorService creates a new animator.
func NewAnimatorService(
	session usecase.SessionUsecase,
	surface service.Surface,
	ticks service.TickSource,
	logger *slog.Logger,
) usecase.AnimatorUsecase {
	return &animatorService{
		session: session,
		surface: surface,
		ticks:   ticks,
		logger:  logger,
	}
}

// Run consumes ticks until ctx is done.
func (srv *animatorService) Run(ctx context.Context) error {
	if srv.surface == nil {
		return domainerrors.ErrNoSurface
	}

	srv.logger.Info("Animator started")
	defer srv.logger.Info("Animator stopped")

	for elapsed := range srv.ticks.Ticks(ctx) {
		if srv.session.Tick(elapsed) {
			srv.logger.Debug("Playback completed")
		}
		if err := srv.render(false); err != nil {
			srv.logger.Warn("Failed to render frame", slog.Any("error", err))
		}
	}

	return nil
}

// Redraw renders the current state regardless of whether it changed.
func (srv *animatorService) Redraw(_ context.Context) error {
	if srv.surface == nil {
		return domainerrors.ErrNoSurface
	}

	return srv.render(true)
}

func (srv *animatorService) render(force bool) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	snapshot := srv.session.Snapshot()
	if !force && srv.drawn && snapshot.Revision == srv.lastRevision {
		return nil
	}

	if err := srv.surface.Render(snapshot.Route, snapshot.Frame); err != nil {
		return errors.Wrap(err, "render surface")
	}
	srv.lastRevision = snapshot.Revision
	srv.drawn = true

	return nil
}
