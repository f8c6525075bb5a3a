package main

import (
	"context"
	"log/slog"
	"os"

	"routereel/config"
	"routereel/internal/delivery"
	"routereel/internal/delivery/http"
	"routereel/internal/delivery/http/router/handler"
	"routereel/internal/delivery/worker"
	"routereel/internal/domain/service"
	"routereel/internal/infra/clock"
	"routereel/internal/infra/codec"
	"routereel/internal/infra/encoder"
	logs "routereel/internal/infra/log"
	"routereel/internal/infra/persistence/blobstore"
	"routereel/internal/infra/pubsub"
	"routereel/internal/infra/render"
	"routereel/internal/infra/routing"
	"routereel/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		blobstore.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			blobstore.NewRouteRepository,
			blobstore.NewArtifactRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			routing.NewRoutingOracle,
			clock.NewTickSource,
			newEncoder,
			fx.Annotate(
				render.NewSurface,
				fx.As(new(service.Surface)),
			),
			annotateCodec(codec.NewJSONCodec),
			annotateCodec(codec.NewGeoJSONCodec),
			annotateCodec(codec.NewGPXCodec),
		),
		pubsub.Module,
	)
}

func annotateCodec(constructor func() service.RouteCodec) any {
	return fx.Annotate(
		constructor,
		fx.ResultTags(`group:"codecs"`),
	)
}

// newEncoder builds the ffmpeg encoder. A missing binary is only logged here,
// capture requests report it when they start.
func newEncoder(cfg *config.Config, logger *slog.Logger) service.Encoder {
	ffmpeg := encoder.NewFFmpeg(cfg, logger)
	if err := ffmpeg.Supported(); err != nil {
		logger.Warn("Video encoder unavailable, capture disabled", slog.Any("error", err))
	}

	return ffmpeg
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewPathService,
			impl.NewDocumentService,
			impl.NewCaptureService,
			impl.NewAnimatorService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewRouteHandler,
			handler.NewPlaybackHandler,
			handler.NewCaptureHandler,
			handler.NewDocumentHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
