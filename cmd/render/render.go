package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"routereel/internal/domain/entity"
	"routereel/internal/domain/service"
	"routereel/internal/geometry"
	"routereel/internal/infra/clock"
	"routereel/internal/infra/codec"
	"routereel/internal/infra/encoder"
	logs "routereel/internal/infra/log"
	"routereel/internal/infra/persistence/blobstore"
	"routereel/internal/infra/pubsub"
	"routereel/internal/infra/render"
	"routereel/internal/infra/routing"
	"routereel/internal/usecase"
	"routereel/internal/usecase/impl"
	"routereel/internal/util"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
)

const statusPollInterval = 100 * time.Millisecond

// run imports the document, resolves its pending paths and records one
// full playback into opts.output.
func run(ctx context.Context, opts *renderOptions) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}

	logger, err := logs.NewWithWriter(cfg.Env.Log, os.Stderr)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(opts.input)
	if err != nil {
		return errors.Wrap(err, "read route document")
	}

	buckets, err := blobstore.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := buckets.Close(); err != nil {
			logger.Warn("Failed to close buckets", slog.Any("error", err))
		}
	}()

	oracle, err := routing.NewRoutingOracle(routing.OracleParams{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}

	session := impl.NewSessionService(cfg, logger)
	paths := impl.NewPathService(impl.PathServiceParams{
		Config:  cfg,
		Logger:  logger,
		Session: session,
		Oracle:  oracle,
	})
	documents := impl.NewDocumentService(impl.DocumentServiceParams{
		Logger:  logger,
		Session: session,
		Routes:  blobstore.NewRouteRepository(buckets),
		Codecs:  []service.RouteCodec{codec.NewJSONCodec(), codec.NewGeoJSONCodec(), codec.NewGPXCodec()},
	})

	route, err := documents.Import(ctx, opts.format, data)
	if err != nil {
		return errors.Wrap(err, "import route")
	}
	if len(route.Segments) == 0 {
		return errors.New("the route needs at least two waypoints")
	}

	refreshed, err := paths.RefreshPending(ctx)
	if err != nil {
		return errors.Wrap(err, "resolve segment paths")
	}
	logger.Info("Segment paths resolved",
		slog.Int("requested", refreshed.Requested),
		slog.Int("applied", refreshed.Applied),
		slog.Int("fallbacks", refreshed.Fallbacks),
	)

	surface, err := render.NewSurface(cfg)
	if err != nil {
		return err
	}

	captures := impl.NewCaptureService(impl.CaptureServiceParams{
		Config:    cfg,
		Logger:    logger,
		Session:   session,
		Surface:   surface,
		Encoder:   encoder.NewFFmpeg(cfg, logger),
		Artifacts: blobstore.NewArtifactRepository(buckets),
		Publisher: pubsub.NewNoopPublisher(logger),
	})
	animator := impl.NewAnimatorService(session, surface, clock.NewTickSource(cfg), logger)

	animCtx, stopAnimator := context.WithCancel(context.Background())
	animDone := make(chan struct{})
	go func() {
		defer close(animDone)
		if err := animator.Run(animCtx); err != nil {
			logger.Error("Animator stopped", slog.Any("error", err))
		}
	}()
	defer func() {
		stopAnimator()
		<-animDone
	}()

	if err := animator.Redraw(ctx); err != nil {
		return errors.Wrap(err, "draw first frame")
	}

	if _, err := captures.Start(ctx); err != nil {
		return errors.Wrap(err, "start capture")
	}

	finished, err := track(ctx, captures)
	if err != nil {
		return err
	}

	switch finished.State {
	case entity.CaptureCompleted, entity.CaptureCancelled:
	default:
		return errors.Errorf("capture %s: %s", finished.State, finished.Error)
	}

	if err := writeArtifact(captures, finished.ArtifactKey, opts.output); err != nil {
		return err
	}

	final, err := session.GetRoute(ctx)
	if err != nil {
		return err
	}
	fmt.Println(summary(final, finished, opts))

	return nil
}

// summary is the one line report printed after a successful render.
func summary(route *entity.Route, capture *entity.Capture, opts *renderOptions) string {
	var km float64
	for _, seg := range route.Segments {
		if seg.Distance != nil {
			km += *seg.Distance
		} else {
			km += geometry.Length(seg.Path)
		}
	}

	line := fmt.Sprintf("Wrote %s (%s, %d frames, %s) for %q: %d waypoints, %s",
		opts.output,
		util.FormatBytes(capture.ArtifactSize),
		capture.FramesCaptured,
		util.FormatDuration(opts.duration),
		route.Name,
		len(route.Waypoints),
		util.FormatDistance(km),
	)
	if capture.Truncated {
		line += " [stopped early]"
	}

	return line
}

// track draws the progress bar until the capture is terminal. An interrupt
// stops the capture early, the partial video is still finalized.
func track(ctx context.Context, captures usecase.CaptureUsecase) (*entity.Capture, error) {
	bar := progressbar.Default(100, "Rendering")
	defer func() { _ = bar.Finish() }()

	ticker := time.NewTicker(statusPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return captures.Stop(context.Background())
		case <-ticker.C:
			status, err := captures.Status(ctx)
			if err != nil {
				return nil, err
			}
			_ = bar.Set(int(status.Progress * 100))
			if status.State.IsTerminal() {
				return status, nil
			}
		}
	}
}

func writeArtifact(captures usecase.CaptureUsecase, key, path string) error {
	reader, err := captures.OpenArtifact(context.Background(), key)
	if err != nil {
		return err
	}
	defer reader.Close()

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}

	if _, err := io.Copy(file, reader); err != nil {
		_ = file.Close()

		return errors.Wrap(err, "write output")
	}

	return errors.Wrap(file.Close(), "close output")
}
