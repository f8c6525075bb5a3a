// Package delivery defines the entry points that expose the application.
package delivery

import "context"

// Delivery is a long-running entry point such as an HTTP server.
type Delivery interface {
	Serve(ctx context.Context) error
}
