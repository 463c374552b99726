// Package delivery defines the contract every transport implementation
// (HTTP today, possibly others later) exposes to the application wiring.
package delivery

import "context"

// Delivery is a long-running transport serving the application's usecases.
type Delivery interface {
	Serve(ctx context.Context) error
}
