package handler

import (
	"net/http"

	"routereel/internal/delivery/http/response"
	"routereel/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DocumentHandlerParams holds dependencies for DocumentHandler, injected by Fx.
type DocumentHandlerParams struct {
	fx.In

	DocumentUC usecase.DocumentUsecase
	PathUC     usecase.PathUsecase
}

// DocumentHandler serves the saved route documents
type DocumentHandler struct {
	documentUC usecase.DocumentUsecase
	pathUC     usecase.PathUsecase
}

// NewDocumentHandler is the constructor for DocumentHandler
func NewDocumentHandler(params DocumentHandlerParams) *DocumentHandler {
	return &DocumentHandler{
		documentUC: params.DocumentUC,
		pathUC:     params.PathUC,
	}
}

// ListDocuments returns every saved document
func (h *DocumentHandler) ListDocuments(c echo.Context) error {
	docs, err := h.documentUC.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, docs)
}

// SaveDocument stores the current route under the given name
func (h *DocumentHandler) SaveDocument(c echo.Context) error {
	info, err := h.documentUC.Save(c.Request().Context(), c.Param("name"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, info)
}

// LoadDocument makes a saved document the current route
func (h *DocumentHandler) LoadDocument(c echo.Context) error {
	route, err := h.documentUC.Load(c.Request().Context(), c.Param("name"))
	if err != nil {
		return response.HandleAppError(c, err)
	}
	h.pathUC.Schedule()

	return response.Success(c, http.StatusOK, route)
}

// DeleteDocument removes a saved document
func (h *DocumentHandler) DeleteDocument(c echo.Context) error {
	if err := h.documentUC.Delete(c.Request().Context(), c.Param("name")); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
