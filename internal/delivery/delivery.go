// Package delivery defines the contract every inbound transport satisfies.
package delivery

import "context"

// Delivery is a long-running inbound server (HTTP today).
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
