package service

import (
	"context"
	"time"
)

// TickSource produces the wall-clock time elapsed since the previous tick.
// The channel is closed when ctx is done.
type TickSource interface {
	Ticks(ctx context.Context) <-chan time.Duration
}
