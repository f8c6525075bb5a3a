// Package lifecycle holds shared start and shutdown settings.
package lifecycle

import "time"

// DefaultTimeout bounds start hooks and graceful shutdowns.
const DefaultTimeout = 10 * time.Second
