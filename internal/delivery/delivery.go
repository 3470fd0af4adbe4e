// Package delivery contains the entry points that expose the usecases to the outside world.
package delivery

import "context"

// Delivery is a long running server started by the binaries.
type Delivery interface {
	Serve(ctx context.Context) error
}
