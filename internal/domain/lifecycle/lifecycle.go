// Package lifecycle holds shared constants for application lifecycle management.
package lifecycle

import "time"

// DefaultTimeout bounds startup checks and graceful shutdown of long-lived
// components (HTTP server, database pool, background workers).
const DefaultTimeout = 10 * time.Second
