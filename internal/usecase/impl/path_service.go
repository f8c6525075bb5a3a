package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"routereel/config"
	deliverycontext "routereel/internal/delivery/context"
	domainerrors "routereel/internal/domain/errors"
	"routereel/internal/domain/service"
	"routereel/internal/errors"
	"routereel/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	defaultRoutingWorkers = 4
	defaultRoutingTimeout = 10 * time.Second
)

// PathServiceParams holds dependencies for the path refresher, injected by Fx.
type PathServiceParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Session usecase.SessionUsecase
	Oracle  service.RoutingOracle
}

// pathService resolves pending segments through the routing oracle with a
// bounded worker pool and commits the results through the session.
type pathService struct {
	session usecase.SessionUsecase
	oracle  service.RoutingOracle
	logger  *slog.Logger

	maxWorkers int
	timeout    time.Duration

	mu      sync.Mutex
	running bool
	again   bool
	wg      sync.WaitGroup
}

// NewPathService creates a new path refresher.
func NewPathService(params PathServiceParams) usecase.PathUsecase {
	workers, timeout := defaultRoutingWorkers, defaultRoutingTimeout
	if params.Config != nil && params.Config.Routing != nil {
		if params.Config.Routing.MaxConcurrency > 0 {
			workers = params.Config.Routing.MaxConcurrency
		}
		if params.Config.Routing.Timeout > 0 {
			timeout = params.Config.Routing.Timeout
		}
	}

	return &pathService{
		session:    params.Session,
		oracle:     params.Oracle,
		logger:     params.Logger,
		maxWorkers: workers,
		timeout:    timeout,
	}
}

func (srv *pathService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RefreshPending resolves every pending segment and waits for the results.
func (srv *pathService) RefreshPending(ctx context.Context) (*usecase.RefreshResult, error) {
	pending := srv.session.PendingSegments(ctx)
	result := &usecase.RefreshResult{Requested: len(pending)}
	if len(pending) == 0 {
		return result, nil
	}

	outcomes := make([]refreshOutcome, len(pending))
	jobCh := make(chan int, len(pending))
	outcomeCh := make(chan indexedOutcome, len(pending))

	workerGroup := srv.spawnWorkers(ctx, srv.workerCount(len(pending)), jobCh, outcomeCh, pending)
	go dispatchJobs(ctx, jobCh, len(pending))
	collectOutcomes(outcomeCh, outcomes, workerGroup)

	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), "path refresh canceled")
	}

	var errs []error
	for _, outcome := range outcomes {
		switch {
		case outcome.err != nil:
			errs = append(errs, outcome.err)
		case outcome.applied:
			result.Applied++
			if outcome.fallback {
				result.Fallbacks++
			}
		default:
			result.Stale++
		}
	}

	srv.log(ctx).Info("Pending paths refreshed",
		slog.Int("requested", result.Requested),
		slog.Int("applied", result.Applied),
		slog.Int("fallbacks", result.Fallbacks),
		slog.Int("stale", result.Stale),
	)

	if len(errs) > 0 {
		return result, errors.Wrap(errors.Join(errs...), "apply resolved paths")
	}

	return result, nil
}

// RefreshSegment resolves one segment regardless of its pending flag.
func (srv *pathService) RefreshSegment(ctx context.Context, id uuid.UUID) error {
	route, err := srv.session.GetRoute(ctx)
	if err != nil {
		return err
	}

	idx := route.SegmentIndex(id)
	if idx < 0 {
		return domainerrors.ErrSegmentNotFound
	}

	outcome := srv.resolve(ctx, usecase.PendingSegment{
		SegmentID: id,
		Start:     route.Waypoints[idx].Coordinates,
		End:       route.Waypoints[idx+1].Coordinates,
		Mode:      route.Segments[idx].TransportMode,
		Path:      route.Segments[idx].Path,
		Force:     true,
	})

	return outcome.err
}

// Schedule starts a background refresh. Calls made while a refresh is
// running coalesce into one more pass.
func (srv *pathService) Schedule() {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.running {
		srv.again = true

		return
	}
	srv.running = true

	srv.wg.Add(1)
	go srv.loop()
}

func (srv *pathService) loop() {
	defer srv.wg.Done()

	for {
		if _, err := srv.RefreshPending(context.Background()); err != nil {
			srv.logger.Warn("Background path refresh failed", slog.Any("error", err))
		}

		srv.mu.Lock()
		if !srv.again {
			srv.running = false
			srv.mu.Unlock()

			return
		}
		srv.again = false
		srv.mu.Unlock()
	}
}

type refreshOutcome struct {
	applied  bool
	fallback bool
	err      error
}

type indexedOutcome struct {
	index   int
	outcome refreshOutcome
}

func (srv *pathService) resolve(ctx context.Context, pending usecase.PendingSegment) refreshOutcome {
	callCtx, cancel := context.WithTimeout(ctx, srv.timeout)
	defer cancel()

	routed, err := srv.oracle.Route(callCtx, pending.Start, pending.End, pending.Mode)
	if err != nil {
		// leave the segment pending; a later pass may succeed
		srv.log(ctx).Warn("Failed to resolve segment path",
			slog.String("segment_id", pending.SegmentID.String()),
			slog.Any("error", err),
		)

		return refreshOutcome{}
	}

	applied, err := srv.session.ApplyResolvedPath(ctx, pending, routed)
	if err != nil {
		return refreshOutcome{err: err}
	}

	return refreshOutcome{applied: applied, fallback: routed.Fallback}
}

func (srv *pathService) workerCount(jobs int) int {
	if jobs < srv.maxWorkers {
		return jobs
	}

	return srv.maxWorkers
}

func (srv *pathService) spawnWorkers(
	ctx context.Context,
	workerCount int,
	jobCh <-chan int,
	outcomeCh chan<- indexedOutcome,
	pending []usecase.PendingSegment,
) *sync.WaitGroup {
	var workerGroup sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			for idx := range jobCh {
				if ctx.Err() != nil {
					return
				}

				outcomeCh <- indexedOutcome{index: idx, outcome: srv.resolve(ctx, pending[idx])}
			}
		}()
	}

	return &workerGroup
}

func dispatchJobs(ctx context.Context, jobCh chan<- int, count int) {
	defer close(jobCh)

	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			return
		}

		jobCh <- i
	}
}

func collectOutcomes(outcomeCh chan indexedOutcome, outcomes []refreshOutcome, workerGroup *sync.WaitGroup) {
	go func() {
		workerGroup.Wait()
		close(outcomeCh)
	}()

	for res := range outcomeCh {
		outcomes[res.index] = res.outcome
	}
}
