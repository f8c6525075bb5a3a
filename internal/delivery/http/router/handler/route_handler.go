package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"routereel/internal/delivery/http/response"
	"routereel/internal/domain/constants"
	"routereel/internal/domain/entity"
	domainerrors "routereel/internal/domain/errors"
	"routereel/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb"
	"go.uber.org/fx"
)

// RouteHandlerParams holds dependencies for RouteHandler, injected by Fx.
type RouteHandlerParams struct {
	fx.In

	SessionUC  usecase.SessionUsecase
	PathUC     usecase.PathUsecase
	DocumentUC usecase.DocumentUsecase
	Logger     *slog.Logger
}

// RouteHandler serves route editing endpoints
type RouteHandler struct {
	sessionUC  usecase.SessionUsecase
	pathUC     usecase.PathUsecase
	documentUC usecase.DocumentUsecase
	logger     *slog.Logger
}

// NewRouteHandler is the constructor for RouteHandler
func NewRouteHandler(params RouteHandlerParams) *RouteHandler {
	return &RouteHandler{
		sessionUC:  params.SessionUC,
		pathUC:     params.PathUC,
		documentUC: params.DocumentUC,
		logger:     params.Logger,
	}
}

// CreateRouteRequest represents the request body for starting a new route
type CreateRouteRequest struct {
	Name string `json:"name" validate:"max=128"`
}

// WaypointRequest represents the request body for placing a waypoint
type WaypointRequest struct {
	Longitude float64 `json:"lon" validate:"gte=-180,lte=180"`
	Latitude  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Label     string  `json:"label" validate:"max=256"`
}

// UpdateWaypointRequest represents a partial waypoint update
type UpdateWaypointRequest struct {
	Longitude *float64 `json:"lon" validate:"omitempty,gte=-180,lte=180"`
	Latitude  *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Label     *string  `json:"label" validate:"omitempty,max=256"`
}

// ReorderRequest moves the waypoint at From to position To
type ReorderRequest struct {
	From int `json:"from" validate:"gte=0"`
	To   int `json:"to" validate:"gte=0"`
}

// TransportModeRequest changes a segment's transport mode
type TransportModeRequest struct {
	Mode string `json:"mode" validate:"required,transportmode"`
}

// SegmentPathRequest replaces a segment path
type SegmentPathRequest struct {
	Path     orb.LineString `json:"path" validate:"required,min=2"`
	Distance *float64       `json:"distance" validate:"omitempty,gte=0"`
	Duration *float64       `json:"duration" validate:"omitempty,gte=0"`
}

// PathNodeRequest is a coordinate on a segment path
type PathNodeRequest struct {
	Longitude float64 `json:"lon" validate:"gte=-180,lte=180"`
	Latitude  float64 `json:"lat" validate:"gte=-90,lte=90"`
}

// CreateRoute starts a new empty route
func (h *RouteHandler) CreateRoute(c echo.Context) error {
	var req CreateRouteRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	route, err := h.sessionUC.CreateRoute(c.Request().Context(), req.Name)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, route)
}

// GetRoute returns the current route
func (h *RouteHandler) GetRoute(c echo.Context) error {
	route, err := h.sessionUC.GetRoute(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, route)
}

// ImportRoute replaces the current route with the request body, parsed in
// the format named by the "format" query parameter (default json)
func (h *RouteHandler) ImportRoute(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = constants.FormatJSON
	}

	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BindingError(c, "Unable to read request body")
	}

	route, err := h.documentUC.Import(c.Request().Context(), format, data)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	h.pathUC.Schedule()

	return response.Success(c, http.StatusOK, route)
}

// ExportRoute downloads the current route as a document
func (h *RouteHandler) ExportRoute(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = constants.FormatJSON
	}

	doc, err := h.documentUC.Export(c.Request().Context(), format)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+doc.Filename+"\"")

	return c.Blob(http.StatusOK, doc.ContentType, doc.Data)
}

// AddWaypoint appends a waypoint to the route
func (h *RouteHandler) AddWaypoint(c echo.Context) error {
	var req WaypointRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	waypoint, err := h.sessionUC.AddWaypoint(c.Request().Context(), &usecase.AddWaypointInput{
		Longitude: req.Longitude,
		Latitude:  req.Latitude,
		Label:     req.Label,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}
	h.pathUC.Schedule()

	return response.Success(c, http.StatusCreated, waypoint)
}

// UpdateWaypoint moves or relabels a waypoint
func (h *RouteHandler) UpdateWaypoint(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateWaypointRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	waypoint, err := h.sessionUC.UpdateWaypoint(c.Request().Context(), id, &usecase.UpdateWaypointInput{
		Longitude: req.Longitude,
		Latitude:  req.Latitude,
		Label:     req.Label,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if req.Longitude != nil || req.Latitude != nil {
		h.pathUC.Schedule()
	}

	return response.Success(c, http.StatusOK, waypoint)
}

// RemoveWaypoint deletes a waypoint
func (h *RouteHandler) RemoveWaypoint(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.sessionUC.RemoveWaypoint(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}
	h.pathUC.Schedule()

	return c.NoContent(http.StatusNoContent)
}

// ReorderWaypoints moves a waypoint to a new position
func (h *RouteHandler) ReorderWaypoints(c echo.Context) error {
	var req ReorderRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if err := h.sessionUC.ReorderWaypoints(c.Request().Context(), req.From, req.To); err != nil {
		return response.HandleAppError(c, err)
	}
	h.pathUC.Schedule()

	return h.GetRoute(c)
}

// SetTransportMode changes how a segment is travelled
func (h *RouteHandler) SetTransportMode(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req TransportModeRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if err := h.sessionUC.SetSegmentTransportMode(c.Request().Context(), id, entity.TransportMode(req.Mode)); err != nil {
		return response.HandleAppError(c, err)
	}
	h.pathUC.Schedule()

	return h.GetRoute(c)
}

// SetSegmentPath replaces a segment path
func (h *RouteHandler) SetSegmentPath(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req SegmentPathRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if err := h.sessionUC.SetSegmentPath(c.Request().Context(), id, &usecase.SetSegmentPathInput{
		Path:     req.Path,
		Distance: req.Distance,
		Duration: req.Duration,
	}); err != nil {
		return response.HandleAppError(c, err)
	}

	return h.GetRoute(c)
}

// InsertPathNode adds a manual node to a segment path
func (h *RouteHandler) InsertPathNode(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req PathNodeRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	index, err := h.sessionUC.InsertPathNode(c.Request().Context(), id, orb.Point{req.Longitude, req.Latitude})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, map[string]int{"index": index})
}

// MovePathNode drags an interior path node
func (h *RouteHandler) MovePathNode(c echo.Context) error {
	id, index, err := nodeParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req PathNodeRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if err := h.sessionUC.MovePathNode(c.Request().Context(), id, index, orb.Point{req.Longitude, req.Latitude}); err != nil {
		return response.HandleAppError(c, err)
	}

	return h.GetRoute(c)
}

// RemovePathNode deletes an interior path node
func (h *RouteHandler) RemovePathNode(c echo.Context) error {
	id, index, err := nodeParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.sessionUC.RemovePathNode(c.Request().Context(), id, index); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RefreshSegments resolves every pending segment through the routing oracle
func (h *RouteHandler) RefreshSegments(c echo.Context) error {
	result, err := h.pathUC.RefreshPending(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// RefreshSegment resolves one segment regardless of its pending flag
func (h *RouteHandler) RefreshSegment(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.pathUC.RefreshSegment(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return h.GetRoute(c)
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name)
	}

	return id, nil
}

func nodeParams(c echo.Context) (uuid.UUID, int, error) {
	id, err := uuidParam(c, "id")
	if err != nil {
		return uuid.Nil, 0, err
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return uuid.Nil, 0, domainerrors.ErrValidationFailed.WithDetails("invalid node index")
	}

	return id, index, nil
}
