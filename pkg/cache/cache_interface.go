package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the read cache layer.
// Implementations: Redis (infrastructure/cache) and Noop for backends without a cache.
type Cache interface {
	// Get loads the value at key and unmarshals it into dest
	// Returns: (found bool, error)
	// - found = true: cache hit, dest populated
	// - found = false: cache miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (JSON encoded) with a TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys
	Delete(ctx context.Context, keys ...string) error

	// Ping checks connectivity
	Ping(ctx context.Context) error
}

// Noop is a Cache that never stores anything.
type Noop struct{}

func NewNoop() Cache { return Noop{} }

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error { return nil }
func (Noop) Ping(context.Context) error { return nil }
