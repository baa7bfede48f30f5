package ports

import "context"

// MarkerStore persists version markers: one opaque string per key.
// Implementations must be safe for concurrent use.
type MarkerStore interface {
	// Get returns the marker stored under key.
	// Returns domain.ErrMarkerNotFound if nothing is stored.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous marker.
	Set(ctx context.Context, key, value string) error

	// Delete removes the marker. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
