// Package delivery defines the entry points through which the application
// serves its clients.
package delivery

import "context"

// Delivery is a long-running server or worker. Serve blocks until the
// delivery stops or the context is cancelled.
type Delivery interface {
	Serve(ctx context.Context) error
}
