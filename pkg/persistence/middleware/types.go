package middleware

import "github.com/aretw0/waypoint/pkg/ports"

// Middleware allows wrapping a MarkerStore to add behavior.
type Middleware func(ports.MarkerStore) ports.MarkerStore

// Chain applies middlewares so that the first one is the outermost.
func Chain(store ports.MarkerStore, mws ...Middleware) ports.MarkerStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
