package impl

import (
	"context"
	"testing"
	"time"

	"routereel/internal/domain/entity"
	domainerrors "routereel/internal/domain/errors"
	"routereel/internal/domain/service"
	"routereel/internal/errors"
	mockService "routereel/internal/mocks/service"
	"routereel/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func routedVia(start, end orb.Point) *service.RoutedPath {
	mid := orb.Point{(start[0] + end[0]) / 2, (start[1]+end[1])/2 + 0.1}
	distance, duration := 100.0, 3600.0

	return &service.RoutedPath{
		Path:     orb.LineString{start, mid, end},
		Distance: &distance,
		Duration: &duration,
	}
}

func newPathService(session usecase.SessionUsecase, oracle service.RoutingOracle) *pathService {
	return NewPathService(PathServiceParams{
		Config:  newTestConfig(10 * time.Second),
		Logger:  newDiscardLogger(),
		Session: session,
		Oracle:  oracle,
	}).(*pathService)
}

func TestPathService_RefreshPending(t *testing.T) {
	ctx := context.Background()
	session := newSessionWithRoute(t, 10*time.Second, [2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 1}, [2]float64{3, 1})

	oracle := mockService.NewMockRoutingOracle(t)
	oracle.EXPECT().
		Route(mock.Anything, mock.Anything, mock.Anything, entity.TransportModeCar).
		RunAndReturn(func(_ context.Context, start, end orb.Point, _ entity.TransportMode) (*service.RoutedPath, error) {
			return routedVia(start, end), nil
		}).
		Times(3)

	result, err := newPathService(session, oracle).RefreshPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, &usecase.RefreshResult{Requested: 3, Applied: 3}, result)
	assert.Empty(t, session.PendingSegments(ctx))

	route, err := session.GetRoute(ctx)
	require.NoError(t, err)
	for _, segment := range route.Segments {
		assert.Len(t, segment.Path, 3)
		require.NotNil(t, segment.Duration)
		assert.InDelta(t, 3600.0, *segment.Duration, 1e-9)
	}
}

func TestPathService_RefreshPending_CountsFallbacks(t *testing.T) {
	ctx := context.Background()
	session := newSessionWithRoute(t, 10*time.Second, [2]float64{0, 0}, [2]float64{1, 0})

	oracle := mockService.NewMockRoutingOracle(t)
	oracle.EXPECT().
		Route(mock.Anything, orb.Point{0, 0}, orb.Point{1, 0}, entity.TransportModeCar).
		Return(&service.RoutedPath{Path: orb.LineString{{0, 0}, {1, 0}}, Fallback: true}, nil).
		Once()

	result, err := newPathService(session, oracle).RefreshPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.Fallbacks)
	assert.Empty(t, session.PendingSegments(ctx))
}

func TestPathService_RefreshPending_OracleErrorKeepsPending(t *testing.T) {
	ctx := context.Background()
	session := newSessionWithRoute(t, 10*time.Second, [2]float64{0, 0}, [2]float64{1, 0})

	oracle := mockService.NewMockRoutingOracle(t)
	oracle.EXPECT().
		Route(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("routing backend down")).
		Once()

	result, err := newPathService(session, oracle).RefreshPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Requested)
	assert.Zero(t, result.Applied)
	assert.Len(t, session.PendingSegments(ctx), 1)
}

func TestPathService_RefreshPending_DropsStaleResults(t *testing.T) {
	ctx := context.Background()
	session := newSessionWithRoute(t, 10*time.Second, [2]float64{0, 0}, [2]float64{1, 0})
	route, err := session.GetRoute(ctx)
	require.NoError(t, err)
	movedID := route.Waypoints[1].ID

	oracle := mockService.NewMockRoutingOracle(t)
	oracle.EXPECT().
		Route(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, start, end orb.Point, _ entity.TransportMode) (*service.RoutedPath, error) {
			// the user drags the waypoint while the request is in flight
			lon, lat := 1.5, 0.5
			_, err := session.UpdateWaypoint(ctx, movedID, &usecase.UpdateWaypointInput{Longitude: &lon, Latitude: &lat})
			assert.NoError(t, err)

			return routedVia(start, end), nil
		}).
		Once()

	result, err := newPathService(session, oracle).RefreshPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stale)
	assert.Zero(t, result.Applied)

	route, err = session.GetRoute(ctx)
	require.NoError(t, err)
	assert.True(t, route.Segments[0].Pending)
}

func TestPathService_RefreshPending_NothingPending(t *testing.T) {
	session := newSessionWithRoute(t, 10*time.Second, [2]float64{0, 0})
	oracle := mockService.NewMockRoutingOracle(t)

	result, err := newPathService(session, oracle).RefreshPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &usecase.RefreshResult{}, result)
}

func TestPathService_RefreshSegment(t *testing.T) {
	ctx := context.Background()
	session := newSessionWithRoute(t, 10*time.Second, [2]float64{0, 0}, [2]float64{1, 0})
	route, err := session.GetRoute(ctx)
	require.NoError(t, err)

	oracle := mockService.NewMockRoutingOracle(t)
	oracle.EXPECT().
		Route(mock.Anything, orb.Point{0, 0}, orb.Point{1, 0}, entity.TransportModeCar).
		Return(routedVia(orb.Point{0, 0}, orb.Point{1, 0}), nil).
		Once()

	srv := newPathService(session, oracle)
	require.NoError(t, srv.RefreshSegment(ctx, route.Segments[0].ID))
	assert.Empty(t, session.PendingSegments(ctx))

	err = srv.RefreshSegment(ctx, uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrSegmentNotFound))
}

func TestPathService_Schedule(t *testing.T) {
	ctx := context.Background()
	session := newSessionWithRoute(t, 10*time.Second, [2]float64{0, 0}, [2]float64{1, 0})

	oracle := mockService.NewMockRoutingOracle(t)
	oracle.EXPECT().
		Route(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, start, end orb.Point, _ entity.TransportMode) (*service.RoutedPath, error) {
			return routedVia(start, end), nil
		}).
		Maybe()

	srv := newPathService(session, oracle)
	srv.Schedule()
	srv.Schedule()
	srv.wg.Wait()

	assert.Empty(t, session.PendingSegments(ctx))
}
