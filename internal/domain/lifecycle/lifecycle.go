// Package lifecycle defines shared timeouts for start/stop hooks and background work.
package lifecycle

import "time"

const (
	// DefaultTimeout bounds startup pings, graceful shutdowns and detached background tasks.
	DefaultTimeout = 10 * time.Second
)
