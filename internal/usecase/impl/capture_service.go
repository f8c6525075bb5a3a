package impl

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"routereel/config"
	deliverycontext "routereel/internal/delivery/context"
	"routereel/internal/domain/constants"
	"routereel/internal/domain/entity"
	domainerrors "routereel/internal/domain/errors"
	"routereel/internal/domain/repository"
	"routereel/internal/domain/service"
	"routereel/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultFrameRate           = 30
	defaultBitrate             = "4M"
	defaultCompletionThreshold = 0.99
	defaultGracePeriod         = 500 * time.Millisecond
	defaultCaptureTimeout      = 5 * time.Minute
	finalizeTimeout            = 30 * time.Second
)

// CaptureServiceParams holds dependencies for the capture service, injected by Fx.
type CaptureServiceParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Session   usecase.SessionUsecase
	Surface   service.Surface `optional:"true"`
	Encoder   service.Encoder `optional:"true"`
	Artifacts repository.ArtifactRepository
	Publisher service.EventPublisher
}

// captureService implements CaptureUsecase. Its sampling loop only reads the
// session and the surface; playback is mutated solely at start and stop.
type captureService struct {
	session   usecase.SessionUsecase
	surface   service.Surface
	encoder   service.Encoder
	artifacts repository.ArtifactRepository
	publisher service.EventPublisher
	logger    *slog.Logger

	frameRate int
	bitrate   string
	threshold float64
	grace     time.Duration
	timeout   time.Duration

	mu      sync.Mutex
	current *entity.Capture
	stop    chan struct{}
	done    chan struct{}
	stopped bool
}

// NewCaptureService creates a new capture orchestrator.
func NewCaptureService(params CaptureServiceParams) usecase.CaptureUsecase {
	srv := &captureService{
		session:   params.Session,
		surface:   params.Surface,
		encoder:   params.Encoder,
		artifacts: params.Artifacts,
		publisher: params.Publisher,
		logger:    params.Logger,
		frameRate: defaultFrameRate,
		bitrate:   defaultBitrate,
		threshold: defaultCompletionThreshold,
		grace:     defaultGracePeriod,
		timeout:   defaultCaptureTimeout,
	}

	if params.Config != nil && params.Config.Capture != nil {
		cfg := params.Config.Capture
		if cfg.FrameRate > 0 {
			srv.frameRate = cfg.FrameRate
		}
		if cfg.Bitrate != "" {
			srv.bitrate = cfg.Bitrate
		}
		if cfg.CompletionThreshold > 0 {
			srv.threshold = cfg.CompletionThreshold
		}
		if cfg.GracePeriod >= 0 {
			srv.grace = cfg.GracePeriod
		}
		if cfg.Timeout > 0 {
			srv.timeout = cfg.Timeout
		}
	}

	return srv
}

// Start validates the collaborators, starts the encoder, rewinds and starts
// playback, then samples frames in the background. Setup failures leave
// playback untouched.
func (srv *captureService) Start(ctx context.Context) (*entity.Capture, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.current != nil && !srv.current.State.IsTerminal() {
		return nil, domainerrors.ErrCaptureInProgress
	}
	if srv.surface == nil {
		return nil, domainerrors.ErrNoSurface
	}
	if srv.encoder == nil {
		return nil, domainerrors.ErrUnsupportedEncoder
	}
	if err := srv.encoder.Supported(); err != nil {
		return nil, domainerrors.ErrUnsupportedEncoder.WithDetails(err.Error())
	}

	snapshot := srv.session.Snapshot()
	if snapshot.Route == nil || len(snapshot.Route.Segments) == 0 {
		return nil, domainerrors.ErrEmptyRoute
	}

	width, height := srv.surface.Size()
	runCtx, cancel := context.WithTimeout(deliverycontext.Detach(ctx), srv.timeout)
	if err := srv.encoder.Start(runCtx, service.EncoderOptions{
		Width:     width,
		Height:    height,
		FrameRate: srv.frameRate,
		Bitrate:   srv.bitrate,
	}); err != nil {
		cancel()

		return nil, errors.Wrap(err, "start encoder")
	}

	srv.session.Stop(ctx)
	if err := srv.session.Play(ctx); err != nil {
		cancel()
		if _, stopErr := srv.encoder.Stop(context.Background()); stopErr != nil {
			srv.log(ctx).Warn("Failed to release encoder", slog.Any("error", stopErr))
		}

		return nil, errors.Wrap(err, "start playback")
	}

	capture := &entity.Capture{
		ID:        uuid.New(),
		RouteID:   snapshot.Route.ID,
		State:     entity.CaptureRecording,
		FrameRate: srv.frameRate,
		StartedAt: time.Now(),
	}
	srv.current = capture
	srv.stop = make(chan struct{})
	srv.done = make(chan struct{})
	srv.stopped = false

	srv.log(ctx).Info("Capture started",
		slog.String("capture_id", capture.ID.String()),
		slog.Int("frame_rate", srv.frameRate),
		slog.Int("width", width),
		slog.Int("height", height),
	)

	go srv.run(runCtx, cancel, capture.ID, snapshot.Completions, srv.stop, srv.done)

	out := *capture

	return &out, nil
}

// Stop ends the running capture and waits for finalization. Stopping a
// finished capture returns it unchanged.
func (srv *captureService) Stop(ctx context.Context) (*entity.Capture, error) {
	srv.mu.Lock()
	if srv.current == nil {
		srv.mu.Unlock()

		return nil, domainerrors.ErrCaptureNotRunning
	}
	if !srv.stopped && !srv.current.State.IsTerminal() {
		srv.stopped = true
		close(srv.stop)
		srv.log(ctx).Info("Capture stop requested", slog.String("capture_id", srv.current.ID.String()))
	}
	srv.mu.Unlock()

	return srv.Wait(ctx)
}

// Status returns the latest capture, or an idle placeholder.
func (srv *captureService) Status(_ context.Context) (*entity.Capture, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.current == nil {
		return &entity.Capture{State: entity.CaptureIdle}, nil
	}
	out := *srv.current

	return &out, nil
}

// Wait blocks until the current capture is terminal.
func (srv *captureService) Wait(ctx context.Context) (*entity.Capture, error) {
	srv.mu.Lock()
	done := srv.done
	srv.mu.Unlock()

	if done == nil {
		return nil, domainerrors.ErrCaptureNotRunning
	}

	select {
	case <-done:
	case <-ctx.Done():
		return nil, errors.WithStack(ctx.Err())
	}

	return srv.Status(ctx)
}

// OpenArtifact streams a stored artifact.
func (srv *captureService) OpenArtifact(ctx context.Context, key string) (io.ReadCloser, error) {
	reader, err := srv.artifacts.Open(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrArtifactNotFound) {
			return nil, domainerrors.ErrArtifactNotFound.WithDetails(key)
		}

		return nil, errors.Wrap(err, "open artifact")
	}

	return reader, nil
}

// run is the sampling loop. It copies the surface into the encoder every
// frame interval until playback nears completion (plus the grace period),
// the user stops or the hard timeout expires.
func (srv *captureService) run(
	ctx context.Context,
	cancel context.CancelFunc,
	id uuid.UUID,
	baseCompletions int,
	stop <-chan struct{},
	done chan<- struct{},
) {
	defer close(done)
	defer cancel()

	logger := srv.log(ctx).With(slog.String("capture_id", id.String()))

	ticker := time.NewTicker(time.Second / time.Duration(srv.frameRate))
	defer ticker.Stop()

	var (
		grace     <-chan time.Time
		frames    int
		progress  float64
		cancelled bool
		timedOut  bool
		feedErr   error
	)

loop:
	for {
		select {
		case <-stop:
			cancelled = true

			break loop
		case <-ctx.Done():
			timedOut = true

			break loop
		case <-grace:
			break loop
		case <-ticker.C:
			snapshot := srv.session.Snapshot()
			if err := srv.encoder.Feed(srv.surface.Snapshot()); err != nil {
				feedErr = err

				break loop
			}
			frames++

			// completion rewinds the engine, so count it as the end
			progress = snapshot.State.CurrentProgress
			if snapshot.Completions > baseCompletions {
				progress = 1
			}

			srv.update(func(c *entity.Capture) {
				c.FramesCaptured = frames
				c.Progress = progress
			})

			if grace == nil && progress >= srv.threshold {
				logger.Debug("Capture reached completion threshold", slog.Int("frames", frames))
				grace = time.After(srv.grace)
			}
		}
	}

	srv.update(func(c *entity.Capture) {
		c.State = entity.CaptureFinalizing
	})

	if state := srv.session.State(); state.Status() != entity.PlaybackStopped {
		srv.session.Stop(context.Background())
	}

	finalizeCtx, finalizeCancel := context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
	defer finalizeCancel()

	artifact, stopErr := srv.encoder.Stop(finalizeCtx)

	var (
		key  string
		size int64
		err  = feedErr
	)
	if err == nil {
		err = stopErr
	}
	if err == nil && artifact == nil {
		err = errors.New("encoder finished without an artifact")
	}
	if err == nil {
		key = "captures/" + id.String() + artifactExtension(artifact)
		size, err = srv.artifacts.Save(finalizeCtx, key, artifactContentType(artifact), bytes.NewReader(artifact.Data))
	}

	now := time.Now()
	final := srv.update(func(c *entity.Capture) {
		c.FinishedAt = &now
		c.Truncated = cancelled || timedOut
		switch {
		case err != nil:
			c.State = entity.CaptureFailed
			c.Error = err.Error()
		case cancelled:
			c.State = entity.CaptureCancelled
		default:
			c.State = entity.CaptureCompleted
			if timedOut {
				c.Error = domainerrors.ErrCaptureTimeout.Error()
			}
		}
		if err == nil {
			c.ArtifactKey = key
			c.ArtifactSize = size
		}
	})

	if err != nil {
		logger.Error("Capture failed", slog.Any("error", err), slog.Int("frames", frames))
	} else {
		logger.Info("Capture finished",
			slog.String("state", string(final.State)),
			slog.Int("frames", frames),
			slog.String("artifact_key", key),
			slog.Int64("artifact_size", size),
			slog.Bool("truncated", final.Truncated),
		)
	}

	srv.publish(finalizeCtx, logger, final)
}

// update mutates the current capture under the lock and returns a copy.
func (srv *captureService) update(fn func(c *entity.Capture)) entity.Capture {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	fn(srv.current)

	return *srv.current
}

func (srv *captureService) publish(ctx context.Context, logger *slog.Logger, capture entity.Capture) {
	if srv.publisher == nil {
		return
	}

	event := &service.CaptureEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		CaptureID:    capture.ID.String(),
		RouteID:      capture.RouteID.String(),
		State:        string(capture.State),
		ArtifactKey:  capture.ArtifactKey,
		ArtifactSize: capture.ArtifactSize,
		Frames:       capture.FramesCaptured,
		Progress:     capture.Progress,
		Truncated:    capture.Truncated,
		Error:        capture.Error,
	}
	if err := srv.publisher.PublishCaptureEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish capture event", slog.Any("error", err))
	}
}

func (srv *captureService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func artifactExtension(artifact *service.Artifact) string {
	if artifact != nil && artifact.Extension != "" {
		return artifact.Extension
	}

	return constants.ArtifactExtension
}

func artifactContentType(artifact *service.Artifact) string {
	if artifact != nil && artifact.ContentType != "" {
		return artifact.ContentType
	}

	return constants.ArtifactContentType
}
