package handler

import (
	"net/http"
	"path"

	"routereel/internal/delivery/http/response"
	"routereel/internal/domain/constants"
	domainerrors "routereel/internal/domain/errors"
	"routereel/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CaptureHandlerParams holds dependencies for CaptureHandler, injected by Fx.
type CaptureHandlerParams struct {
	fx.In

	CaptureUC usecase.CaptureUsecase
}

// CaptureHandler serves video capture endpoints
type CaptureHandler struct {
	captureUC usecase.CaptureUsecase
}

// NewCaptureHandler is the constructor for CaptureHandler
func NewCaptureHandler(params CaptureHandlerParams) *CaptureHandler {
	return &CaptureHandler{
		captureUC: params.CaptureUC,
	}
}

// StartCapture begins recording the animation
func (h *CaptureHandler) StartCapture(c echo.Context) error {
	capture, err := h.captureUC.Start(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusAccepted, capture)
}

// GetCapture returns the latest capture
func (h *CaptureHandler) GetCapture(c echo.Context) error {
	capture, err := h.captureUC.Status(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, capture)
}

// StopCapture ends the running capture and finalizes what was recorded
func (h *CaptureHandler) StopCapture(c echo.Context) error {
	capture, err := h.captureUC.Stop(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, capture)
}

// DownloadArtifact streams the video of the latest completed capture
func (h *CaptureHandler) DownloadArtifact(c echo.Context) error {
	ctx := c.Request().Context()

	capture, err := h.captureUC.Status(ctx)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if capture.ArtifactKey == "" {
		return response.HandleAppError(c, domainerrors.ErrArtifactNotFound)
	}

	artifact, err := h.captureUC.OpenArtifact(ctx, capture.ArtifactKey)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer artifact.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+path.Base(capture.ArtifactKey)+"\"")

	return c.Stream(http.StatusOK, constants.ArtifactContentType, artifact)
}
