// Package constants defines timeout values and intervals used throughout the application.
package constants

import "time"

const (
	// RevalidateWindow is how long an upstream response is served from cache
	// before the next request refetches it.
	RevalidateWindow = time.Hour

	// HTTPTimeout bounds a single upstream call.
	HTTPTimeout = 10 * time.Second

	// CleanupInterval is how often expired cache entries are purged.
	CleanupInterval = 15 * time.Minute

	// Server timeouts
	ReadHeaderTimeout = 10 * time.Second
	ShutdownTimeout   = 15 * time.Second
)
