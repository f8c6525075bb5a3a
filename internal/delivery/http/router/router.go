// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"routereel/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	RouteHandler    *handler.RouteHandler
	PlaybackHandler *handler.PlaybackHandler
	CaptureHandler  *handler.CaptureHandler
	DocumentHandler *handler.DocumentHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	routeHandler    *handler.RouteHandler
	playbackHandler *handler.PlaybackHandler
	captureHandler  *handler.CaptureHandler
	documentHandler *handler.DocumentHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		routeHandler:    params.RouteHandler,
		playbackHandler: params.PlaybackHandler,
		captureHandler:  params.CaptureHandler,
		documentHandler: params.DocumentHandler,
	}
}

// RegisterRoutes sets up all the command routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	routeGroup := e.Group("/route")
	{
		routeGroup.POST("", r.routeHandler.CreateRoute)
		routeGroup.GET("", r.routeHandler.GetRoute)
		routeGroup.PUT("", r.routeHandler.ImportRoute)
		routeGroup.GET("/export", r.routeHandler.ExportRoute)

		routeGroup.POST("/waypoints", r.routeHandler.AddWaypoint)
		routeGroup.POST("/waypoints/reorder", r.routeHandler.ReorderWaypoints)
		routeGroup.PATCH("/waypoints/:id", r.routeHandler.UpdateWaypoint)
		routeGroup.DELETE("/waypoints/:id", r.routeHandler.RemoveWaypoint)

		routeGroup.POST("/segments/refresh", r.routeHandler.RefreshSegments)
		routeGroup.POST("/segments/:id/refresh", r.routeHandler.RefreshSegment)
		routeGroup.PUT("/segments/:id/mode", r.routeHandler.SetTransportMode)
		routeGroup.PUT("/segments/:id/path", r.routeHandler.SetSegmentPath)
		routeGroup.POST("/segments/:id/nodes", r.routeHandler.InsertPathNode)
		routeGroup.PATCH("/segments/:id/nodes/:index", r.routeHandler.MovePathNode)
		routeGroup.DELETE("/segments/:id/nodes/:index", r.routeHandler.RemovePathNode)
	}

	playbackGroup := e.Group("/playback")
	{
		playbackGroup.GET("", r.playbackHandler.GetState)
		playbackGroup.GET("/frame", r.playbackHandler.GetFrame)
		playbackGroup.POST("/play", r.playbackHandler.Play)
		playbackGroup.POST("/pause", r.playbackHandler.Pause)
		playbackGroup.POST("/stop", r.playbackHandler.Stop)
		playbackGroup.POST("/scrub", r.playbackHandler.Scrub)
		playbackGroup.PUT("/speed", r.playbackHandler.SetSpeed)
		playbackGroup.PUT("/duration", r.playbackHandler.SetDuration)
	}

	capturesGroup := e.Group("/captures")
	{
		capturesGroup.POST("", r.captureHandler.StartCapture)
		capturesGroup.GET("/current", r.captureHandler.GetCapture)
		capturesGroup.DELETE("/current", r.captureHandler.StopCapture)
		capturesGroup.GET("/current/artifact", r.captureHandler.DownloadArtifact)
	}

	documentsGroup := e.Group("/documents")
	{
		documentsGroup.GET("", r.documentHandler.ListDocuments)
		documentsGroup.POST("/:name", r.documentHandler.SaveDocument)
		documentsGroup.POST("/:name/load", r.documentHandler.LoadDocument)
		documentsGroup.DELETE("/:name", r.documentHandler.DeleteDocument)
	}
}
