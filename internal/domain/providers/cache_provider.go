package providers

import (
	"context"
)

// CacheProvider is the port for the optional response cache. The API stays
// byte-oriented so adapters can store serialized upstream payloads directly.
type CacheProvider interface {
	// Get retrieves a cached value
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with an expiration
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete removes a value
	Delete(ctx context.Context, key string) error

	// Exists checks whether a key is cached
	Exists(ctx context.Context, key string) (bool, error)
}
