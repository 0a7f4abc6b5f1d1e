// Package delivery defines the contract every transport front end satisfies.
package delivery

import "context"

// Delivery is a long-running transport (HTTP server etc.) started by main.
type Delivery interface {
	Serve(ctx context.Context) error
}
