// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"routereel/config"
	deliverycontext "routereel/internal/delivery/context"
	"routereel/internal/domain/entity"
	domainerrors "routereel/internal/domain/errors"
	"routereel/internal/domain/service"
	"routereel/internal/domain/timeline"
	"routereel/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const defaultRouteName = "Untitled route"

// sessionService implements the SessionUsecase interface. It owns the route
// model and the playback engine and serializes every mutation behind mu.
type sessionService struct {
	mu       sync.Mutex
	model    *timeline.Model
	playback *timeline.Playback
	revision uint64

	logger *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(cfg *config.Config, logger *slog.Logger) usecase.SessionUsecase {
	duration, speed := timeline.DefaultDuration, timeline.DefaultSpeed
	if cfg.Playback != nil {
		duration, speed = cfg.Playback.Duration, cfg.Playback.Speed
	}

	return &sessionService{
		model:    timeline.NewModel(),
		playback: timeline.NewPlayback(duration, speed),
		logger:   logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateRoute starts a new empty route.
func (srv *sessionService) CreateRoute(ctx context.Context, name string) (*entity.Route, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if name == "" {
		name = defaultRouteName
	}
	route := srv.model.Create(name)
	srv.structuralChange()

	srv.log(ctx).Info("Route created", slog.String("route_id", route.ID.String()), slog.String("name", name))

	return route, nil
}

// GetRoute returns a copy of the current route.
func (srv *sessionService) GetRoute(_ context.Context) (*entity.Route, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	route := srv.model.Route()
	if route == nil {
		return nil, domainerrors.ErrRouteNotFound
	}

	return route, nil
}

// ReplaceRoute makes a loaded document the current route.
func (srv *sessionService) ReplaceRoute(ctx context.Context, route *entity.Route) (*entity.Route, error) {
	if route != nil {
		for _, wp := range route.Waypoints {
			if err := validateCoordinate(wp.Coordinates); err != nil {
				return nil, err
			}
		}
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := srv.model.Replace(route); err != nil {
		return nil, errors.Wrap(err, "replace route")
	}
	srv.structuralChange()

	current := srv.model.Route()
	srv.log(ctx).Info("Route replaced",
		slog.String("route_id", current.ID.String()),
		slog.Int("waypoints", len(current.Waypoints)),
		slog.Int("segments", len(current.Segments)),
	)

	return current, nil
}

// AddWaypoint appends a waypoint, creating a route first when none exists.
func (srv *sessionService) AddWaypoint(ctx context.Context, input *usecase.AddWaypointInput) (*entity.Waypoint, error) {
	coord := orb.Point{input.Longitude, input.Latitude}
	if err := validateCoordinate(coord); err != nil {
		return nil, err
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.model.Route() == nil {
		srv.model.Create(defaultRouteName)
	}

	waypoint, err := srv.model.AddWaypoint(coord, input.Label)
	if err != nil {
		return nil, errors.Wrap(err, "add waypoint")
	}
	srv.structuralChange()

	srv.log(ctx).Debug("Waypoint added",
		slog.String("waypoint_id", waypoint.ID.String()),
		slog.Int("order", waypoint.Order),
	)

	return &waypoint, nil
}

// UpdateWaypoint moves and/or relabels a waypoint. Moving is not a
// structural edit, so playback keeps running.
func (srv *sessionService) UpdateWaypoint(ctx context.Context, id uuid.UUID, input *usecase.UpdateWaypointInput) (*entity.Waypoint, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	route := srv.model.Route()
	if route == nil {
		return nil, domainerrors.ErrRouteNotFound
	}
	current, ok := route.Waypoint(id)
	if !ok {
		return nil, domainerrors.ErrWaypointNotFound.WithDetails(id.String())
	}

	if input.Longitude != nil || input.Latitude != nil {
		coord := current.Coordinates
		if input.Longitude != nil {
			coord[0] = *input.Longitude
		}
		if input.Latitude != nil {
			coord[1] = *input.Latitude
		}
		if err := validateCoordinate(coord); err != nil {
			return nil, err
		}
		if err := srv.model.MoveWaypoint(id, coord); err != nil {
			return nil, errors.Wrap(err, "move waypoint")
		}
	}

	if input.Label != nil {
		if err := srv.model.SetWaypointLabel(id, *input.Label); err != nil {
			return nil, errors.Wrap(err, "set waypoint label")
		}
	}
	srv.revision++

	updated, _ := srv.model.Route().Waypoint(id)
	srv.log(ctx).Debug("Waypoint updated", slog.String("waypoint_id", id.String()))

	return &updated, nil
}

// RemoveWaypoint deletes a waypoint and rebuilds the segments.
func (srv *sessionService) RemoveWaypoint(ctx context.Context, id uuid.UUID) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := srv.model.RemoveWaypoint(id); err != nil {
		return errors.Wrap(err, "remove waypoint")
	}
	srv.structuralChange()

	srv.log(ctx).Debug("Waypoint removed", slog.String("waypoint_id", id.String()))

	return nil
}

// ReorderWaypoints moves a waypoint to a new position.
func (srv *sessionService) ReorderWaypoints(ctx context.Context, from, to int) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := srv.model.ReorderWaypoints(from, to); err != nil {
		return errors.Wrap(err, "reorder waypoints")
	}
	srv.structuralChange()

	srv.log(ctx).Debug("Waypoints reordered", slog.Int("from", from), slog.Int("to", to))

	return nil
}

// SetSegmentTransportMode changes how a segment is travelled.
func (srv *sessionService) SetSegmentTransportMode(ctx context.Context, id uuid.UUID, mode entity.TransportMode) error {
	return srv.edit(ctx, "set transport mode", id, func() error {
		return srv.model.SetSegmentTransportMode(id, mode)
	})
}

// SetSegmentPath stores a new path for a segment.
func (srv *sessionService) SetSegmentPath(ctx context.Context, id uuid.UUID, input *usecase.SetSegmentPathInput) error {
	return srv.edit(ctx, "set segment path", id, func() error {
		return srv.model.SetSegmentPath(id, input.Path, input.Distance, input.Duration)
	})
}

// InsertPathNode adds a manual node to a segment path.
func (srv *sessionService) InsertPathNode(ctx context.Context, id uuid.UUID, coord orb.Point) (int, error) {
	if err := validateCoordinate(coord); err != nil {
		return 0, err
	}

	var index int
	err := srv.edit(ctx, "insert path node", id, func() error {
		var err error
		index, err = srv.model.InsertPathNode(id, coord)

		return err
	})

	return index, err
}

// MovePathNode relocates a manual node.
func (srv *sessionService) MovePathNode(ctx context.Context, id uuid.UUID, index int, coord orb.Point) error {
	if err := validateCoordinate(coord); err != nil {
		return err
	}

	return srv.edit(ctx, "move path node", id, func() error {
		return srv.model.MovePathNode(id, index, coord)
	})
}

// RemovePathNode deletes an interior node.
func (srv *sessionService) RemovePathNode(ctx context.Context, id uuid.UUID, index int) error {
	return srv.edit(ctx, "remove path node", id, func() error {
		return srv.model.RemovePathNode(id, index)
	})
}

// PendingSegments lists segments still waiting for a routed path.
func (srv *sessionService) PendingSegments(_ context.Context) []usecase.PendingSegment {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	route := srv.model.Route()
	if route == nil {
		return nil
	}

	var pending []usecase.PendingSegment
	for i, segment := range route.Segments {
		if !segment.Pending {
			continue
		}
		pending = append(pending, usecase.PendingSegment{
			SegmentID: segment.ID,
			Start:     route.Waypoints[i].Coordinates,
			End:       route.Waypoints[i+1].Coordinates,
			Mode:      segment.TransportMode,
			Path:      segment.Clone().Path,
		})
	}

	return pending
}

// ApplyResolvedPath commits an oracle result unless the segment changed in
// the meantime, a manual path edit included. It reports whether the path was
// applied.
func (srv *sessionService) ApplyResolvedPath(ctx context.Context, pending usecase.PendingSegment, routed *service.RoutedPath) (bool, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	route := srv.model.Route()
	if route == nil {
		return false, nil
	}

	idx := route.SegmentIndex(pending.SegmentID)
	if idx < 0 {
		return false, nil
	}
	segment := route.Segments[idx]
	if segment.TransportMode != pending.Mode ||
		route.Waypoints[idx].Coordinates != pending.Start ||
		route.Waypoints[idx+1].Coordinates != pending.End ||
		!segment.Path.Equal(pending.Path) ||
		(!segment.Pending && !pending.Force) {
		srv.log(ctx).Debug("Dropping stale path", slog.String("segment_id", pending.SegmentID.String()))

		return false, nil
	}

	if err := srv.model.SetSegmentPath(pending.SegmentID, routed.Path, routed.Distance, routed.Duration); err != nil {
		return false, errors.Wrap(err, "apply resolved path")
	}
	srv.revision++

	return true, nil
}

// Play starts or resumes playback.
func (srv *sessionService) Play(ctx context.Context) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := srv.playback.Play(); err != nil {
		return err
	}
	srv.revision++

	srv.log(ctx).Debug("Playback started", slog.Float64("progress", srv.playback.State().CurrentProgress))

	return nil
}

// Pause freezes playback.
func (srv *sessionService) Pause(_ context.Context) entity.AnimationState {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.playback.Pause()
	srv.revision++

	return srv.playback.State()
}

// Stop rewinds playback.
func (srv *sessionService) Stop(_ context.Context) entity.AnimationState {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.playback.Stop()
	srv.revision++

	return srv.playback.State()
}

// Scrub jumps to a progress value.
func (srv *sessionService) Scrub(_ context.Context, progress float64) (entity.AnimationState, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := srv.playback.Scrub(progress); err != nil {
		return srv.playback.State(), err
	}
	srv.revision++

	return srv.playback.State(), nil
}

// SetSpeed changes the playback rate.
func (srv *sessionService) SetSpeed(_ context.Context, speed float64) (entity.AnimationState, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := srv.playback.SetSpeed(speed); err != nil {
		return srv.playback.State(), err
	}
	srv.revision++

	return srv.playback.State(), nil
}

// SetDuration changes the length of a full run.
func (srv *sessionService) SetDuration(_ context.Context, duration time.Duration) (entity.AnimationState, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := srv.playback.SetDuration(duration); err != nil {
		return srv.playback.State(), err
	}
	srv.revision++

	return srv.playback.State(), nil
}

// Tick advances playback by the elapsed wall time.
func (srv *sessionService) Tick(elapsed time.Duration) bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	before := srv.playback.State()
	completed := srv.playback.Tick(elapsed)
	if srv.playback.State() != before {
		srv.revision++
	}

	return completed
}

// State returns the playback state.
func (srv *sessionService) State() entity.AnimationState {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.playback.State()
}

// Frame samples the frame for the current state.
func (srv *sessionService) Frame() *entity.Frame {
	return srv.Snapshot().Frame
}

// Snapshot returns route, state and frame taken under one lock.
func (srv *sessionService) Snapshot() usecase.Snapshot {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	route := srv.model.Route()
	state := srv.playback.State()

	return usecase.Snapshot{
		Route:       route,
		State:       state,
		Frame:       timeline.SampleFrame(route, state),
		Revision:    srv.revision,
		Completions: srv.playback.Completions(),
	}
}

// edit runs a non-structural segment edit under the lock.
func (srv *sessionService) edit(ctx context.Context, action string, id uuid.UUID, fn func() error) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := fn(); err != nil {
		return errors.Wrap(err, action)
	}
	srv.revision++

	srv.log(ctx).Debug("Segment edited", slog.String("action", action), slog.String("segment_id", id.String()))

	return nil
}

// structuralChange resets playback after edits that change the segment list.
// Callers hold mu.
func (srv *sessionService) structuralChange() {
	srv.playback.Reset(srv.model.SegmentCount())
	srv.revision++
}

func validateCoordinate(p orb.Point) error {
	lon, lat := p[0], p[1]
	if math.IsNaN(lon) || math.IsNaN(lat) || lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return domainerrors.ErrValidationFailed.WithDetails("coordinates out of range")
	}

	return nil
}
