package cache

import (
	"context"
	"time"
)

// Cache is the key-value protocol shared by the matcher, aggregator and
// scheduler. Values are JSON-marshalled by implementations. A failed backend
// is reported through the error return but callers are expected to treat any
// error as a miss and carry on without caching.
type Cache interface {
	// Get unmarshals the value stored under key into dest and reports
	// whether the key was present.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores val under key with the given TTL.
	Set(ctx context.Context, key string, val any, ttl time.Duration) error

	// Delete removes exact keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob-style pattern,
	// e.g. "triplist:user:42*".
	DeletePattern(ctx context.Context, pattern string) error
}
