// Package lifecycle holds shared start/stop constants for long-lived resources.
package lifecycle

import "time"

// DefaultTimeout bounds startup pings and graceful shutdown of the HTTP
// server and database handle.
const DefaultTimeout = 10 * time.Second
