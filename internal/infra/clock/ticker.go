// Package clock provides the periodic tick sources that drive playback.
package clock

import (
	"context"
	"time"

	"routereel/config"
	"routereel/internal/domain/service"
)

const defaultRefreshRate = 60

// tickerSource implements TickSource on top of time.Ticker. Each value sent
// is the wall time elapsed since the previous send, so ticks the consumer
// missed are folded into the next one instead of being lost.
type tickerSource struct {
	interval time.Duration
}

// NewTickSource creates the display refresh tick source from configuration.
func NewTickSource(cfg *config.Config) service.TickSource {
	rate := defaultRefreshRate
	if cfg.Playback != nil && cfg.Playback.RefreshRate > 0 {
		rate = cfg.Playback.RefreshRate
	}

	return NewTicker(time.Second / time.Duration(rate))
}

// NewTicker creates a tick source firing every interval.
func NewTicker(interval time.Duration) service.TickSource {
	if interval <= 0 {
		interval = time.Second / defaultRefreshRate
	}

	return &tickerSource{interval: interval}
}

// Ticks starts the ticker. The returned channel is closed once ctx is done.
func (s *tickerSource) Ticks(ctx context.Context) <-chan time.Duration {
	out := make(chan time.Duration, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		last := time.Now()
		var pending time.Duration
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				pending += now.Sub(last)
				last = now

				select {
				case out <- pending:
					pending = 0
				default:
				}
			}
		}
	}()

	return out
}
