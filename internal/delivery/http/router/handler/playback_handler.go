package handler

import (
	"net/http"
	"time"

	"routereel/internal/delivery/http/response"
	"routereel/internal/domain/entity"
	"routereel/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PlaybackHandlerParams holds dependencies for PlaybackHandler, injected by Fx.
type PlaybackHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
}

// PlaybackHandler serves the playback controls
type PlaybackHandler struct {
	sessionUC usecase.SessionUsecase
}

// NewPlaybackHandler is the constructor for PlaybackHandler
func NewPlaybackHandler(params PlaybackHandlerParams) *PlaybackHandler {
	return &PlaybackHandler{
		sessionUC: params.SessionUC,
	}
}

// PlaybackView is the animation state as returned to clients
type PlaybackView struct {
	entity.AnimationState
	Status     entity.PlaybackStatus `json:"status"`
	DurationMs int64                 `json:"durationMs"`
}

// ScrubRequest jumps to a progress in [0, 1]
type ScrubRequest struct {
	Progress *float64 `json:"progress" validate:"required"`
}

// SpeedRequest sets the playback rate multiplier
type SpeedRequest struct {
	Speed float64 `json:"speed" validate:"gt=0"`
}

// DurationRequest sets the length of a run at speed 1
type DurationRequest struct {
	DurationMs int64 `json:"durationMs" validate:"gt=0"`
}

func playbackView(state entity.AnimationState) PlaybackView {
	return PlaybackView{
		AnimationState: state,
		Status:         state.Status(),
		DurationMs:     state.Duration.Milliseconds(),
	}
}

// GetState returns the current animation state
func (h *PlaybackHandler) GetState(c echo.Context) error {
	return response.Success(c, http.StatusOK, playbackView(h.sessionUC.State()))
}

// GetFrame returns the frame for the current state, null when nothing can be drawn
func (h *PlaybackHandler) GetFrame(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.sessionUC.Frame())
}

// Play starts or resumes playback
func (h *PlaybackHandler) Play(c echo.Context) error {
	if err := h.sessionUC.Play(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return h.GetState(c)
}

// Pause freezes playback
func (h *PlaybackHandler) Pause(c echo.Context) error {
	return response.Success(c, http.StatusOK, playbackView(h.sessionUC.Pause(c.Request().Context())))
}

// Stop rewinds playback
func (h *PlaybackHandler) Stop(c echo.Context) error {
	return response.Success(c, http.StatusOK, playbackView(h.sessionUC.Stop(c.Request().Context())))
}

// Scrub jumps to a progress
func (h *PlaybackHandler) Scrub(c echo.Context) error {
	var req ScrubRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	state, err := h.sessionUC.Scrub(c.Request().Context(), *req.Progress)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, playbackView(state))
}

// SetSpeed changes the playback rate
func (h *PlaybackHandler) SetSpeed(c echo.Context) error {
	var req SpeedRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	state, err := h.sessionUC.SetSpeed(c.Request().Context(), req.Speed)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, playbackView(state))
}

// SetDuration changes the length of a run
func (h *PlaybackHandler) SetDuration(c echo.Context) error {
	var req DurationRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	state, err := h.sessionUC.SetDuration(c.Request().Context(), time.Duration(req.DurationMs)*time.Millisecond)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, playbackView(state))
}
