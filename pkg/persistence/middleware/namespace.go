package middleware

import (
	"context"

	"github.com/aretw0/waypoint/pkg/ports"
)

type namespaceMiddleware struct {
	next   ports.MarkerStore
	prefix string
}

// NewNamespaceMiddleware prefixes every key with prefix, so several
// applications can share one backend without clobbering each other's markers.
func NewNamespaceMiddleware(prefix string) Middleware {
	return func(next ports.MarkerStore) ports.MarkerStore {
		if prefix == "" {
			return next
		}
		return &namespaceMiddleware{next: next, prefix: prefix}
	}
}

func (m *namespaceMiddleware) Get(ctx context.Context, key string) (string, error) {
	return m.next.Get(ctx, m.prefix+key)
}

func (m *namespaceMiddleware) Set(ctx context.Context, key, value string) error {
	return m.next.Set(ctx, m.prefix+key, value)
}

func (m *namespaceMiddleware) Delete(ctx context.Context, key string) error {
	return m.next.Delete(ctx, m.prefix+key)
}
