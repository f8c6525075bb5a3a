package impl

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	deliverycontext "routereel/internal/delivery/context"
	"routereel/internal/domain/constants"
	"routereel/internal/domain/entity"
	domainerrors "routereel/internal/domain/errors"
	"routereel/internal/domain/repository"
	"routereel/internal/domain/service"
	"routereel/internal/domain/timeline"
	"routereel/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DocumentServiceParams holds dependencies for DocumentService, injected by Fx.
type DocumentServiceParams struct {
	fx.In

	Logger  *slog.Logger
	Session usecase.SessionUsecase
	Routes  repository.RouteRepository
	Codecs  []service.RouteCodec `group:"codecs"`
}

type documentService struct {
	session usecase.SessionUsecase
	routes  repository.RouteRepository
	codecs  map[string]service.RouteCodec
	logger  *slog.Logger
}

// NewDocumentService creates a new document service.
func NewDocumentService(params DocumentServiceParams) usecase.DocumentUsecase {
	codecs := make(map[string]service.RouteCodec, len(params.Codecs))
	for _, codec := range params.Codecs {
		codecs[codec.Format()] = codec
	}

	return &documentService{
		session: params.Session,
		routes:  params.Routes,
		codecs:  codecs,
		logger:  params.Logger,
	}
}

func (srv *documentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Save stores the current route under name.
func (srv *documentService) Save(ctx context.Context, name string) (*repository.DocumentInfo, error) {
	route, err := srv.session.GetRoute(ctx)
	if err != nil {
		return nil, err
	}

	if err := srv.routes.Save(ctx, name, route); err != nil {
		return nil, srv.mapRepositoryError(err, name)
	}

	srv.log(ctx).Info("Route document saved", slog.String("name", name), slog.String("route_id", route.ID.String()))

	docs, err := srv.routes.List(ctx)
	if err == nil {
		for i := range docs {
			if docs[i].Name == name {
				return &docs[i], nil
			}
		}
	}

	return &repository.DocumentInfo{Name: name, UpdatedAt: time.Now()}, nil
}

// Load replaces the current route with a stored document.
func (srv *documentService) Load(ctx context.Context, name string) (*entity.Route, error) {
	route, err := srv.routes.Find(ctx, name)
	if err != nil {
		return nil, srv.mapRepositoryError(err, name)
	}

	loaded, err := srv.session.ReplaceRoute(ctx, route)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Route document loaded", slog.String("name", name), slog.Int("waypoints", len(loaded.Waypoints)))

	return loaded, nil
}

// List returns every stored document.
func (srv *documentService) List(ctx context.Context) ([]repository.DocumentInfo, error) {
	docs, err := srv.routes.List(ctx)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "list documents")
	}

	return docs, nil
}

// Delete removes a stored document.
func (srv *documentService) Delete(ctx context.Context, name string) error {
	if err := srv.routes.Delete(ctx, name); err != nil {
		return srv.mapRepositoryError(err, name)
	}

	srv.log(ctx).Info("Route document deleted", slog.String("name", name))

	return nil
}

// Export serializes the current route.
func (srv *documentService) Export(ctx context.Context, format string) (*usecase.ExportedDocument, error) {
	codec, err := srv.codec(format)
	if err != nil {
		return nil, err
	}

	route, err := srv.session.GetRoute(ctx)
	if err != nil {
		return nil, err
	}

	data, err := codec.Encode(route)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", codec.Format())
	}

	return &usecase.ExportedDocument{
		Format:      codec.Format(),
		ContentType: codec.ContentType(),
		Filename:    exportFilename(route.Name, codec.Format()),
		Data:        data,
	}, nil
}

// Import parses a document and makes it the current route. Documents without
// segments are rebuilt waypoint by waypoint.
func (srv *documentService) Import(ctx context.Context, format string, data []byte) (*entity.Route, error) {
	codec, err := srv.codec(format)
	if err != nil {
		return nil, err
	}

	route, err := codec.Decode(data)
	if err != nil {
		return nil, domainerrors.ErrInvalidDocument.WithDetails(err.Error())
	}

	if len(route.Segments) > 0 || len(route.Waypoints) < 2 {
		imported, err := srv.session.ReplaceRoute(ctx, route)
		if err != nil {
			return nil, err
		}
		srv.log(ctx).Info("Route imported", slog.String("format", codec.Format()), slog.Int("waypoints", len(imported.Waypoints)))

		return imported, nil
	}

	rebuilt, err := rebuildFromWaypoints(route)
	if err != nil {
		return nil, errors.Wrap(err, "rebuild imported route")
	}

	imported, err := srv.session.ReplaceRoute(ctx, rebuilt)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Info("Route rebuilt from waypoints", slog.String("format", codec.Format()), slog.Int("waypoints", len(imported.Waypoints)))

	return imported, nil
}

// rebuildFromWaypoints builds a route with pending segments on a scratch model
// so the session only sees the finished result.
func rebuildFromWaypoints(route *entity.Route) (*entity.Route, error) {
	name := route.Name
	if name == "" {
		name = defaultRouteName
	}

	scratch := timeline.NewModel()
	scratch.Create(name)
	for _, wp := range route.Waypoints {
		if err := validateCoordinate(wp.Coordinates); err != nil {
			return nil, err
		}
		if _, err := scratch.AddWaypoint(wp.Coordinates, wp.Label); err != nil {
			return nil, err
		}
	}

	return scratch.Route(), nil
}

func (srv *documentService) codec(format string) (service.RouteCodec, error) {
	codec, ok := srv.codecs[strings.ToLower(format)]
	if !ok {
		formats := make([]string, 0, len(srv.codecs))
		for name := range srv.codecs {
			formats = append(formats, name)
		}
		sort.Strings(formats)

		return nil, domainerrors.ErrUnsupportedFormat.WithDetails("supported: " + strings.Join(formats, ", "))
	}

	return codec, nil
}

func (srv *documentService) mapRepositoryError(err error, name string) error {
	switch {
	case errors.Is(err, repository.ErrDocumentNotFound):
		return domainerrors.ErrDocumentNotFound.WithDetails(name)
	case errors.Is(err, repository.ErrInvalidName):
		return domainerrors.ErrValidationFailed.WithDetails("invalid document name: " + name)
	default:
		return domainerrors.NewStorageError(err, name)
	}
}

func exportFilename(name, format string) string {
	base := strings.Trim(unsafeFilename.ReplaceAllString(strings.TrimSpace(name), "-"), "-.")
	if base == "" {
		base = "route"
	}
	if format == constants.FormatGeoJSON {
		return base + ".geojson"
	}

	return base + "." + format
}
