package usecase

import (
	"context"

	"github.com/google/uuid"
)

// RefreshResult summarizes one pass of the path refresher
type RefreshResult struct {
	Requested int `json:"requested"`
	Applied   int `json:"applied"`
	Fallbacks int `json:"fallbacks"` // paths replaced by a straight line or arc
	Stale     int `json:"stale"`     // results dropped because the segment changed
}

// PathUsecase resolves pending segment paths through the routing oracle
type PathUsecase interface {
	// RefreshPending resolves every pending segment and waits for the results
	RefreshPending(ctx context.Context) (*RefreshResult, error)

	// RefreshSegment resolves one segment regardless of its pending flag
	RefreshSegment(ctx context.Context, id uuid.UUID) error

	// Schedule starts a background refresh unless one is already running
	Schedule()
}
