// Package cache provides the storage backends used to memoize layouts and
// rendered artifacts.
//
// # Backends
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: shared cache with a TTL index
//
// [Open] picks a backend from a URL: "file:///path", "redis://host:6379/0",
// "mongodb://host:27017/rbdraw", or "" / "none" for the null cache.
//
// # Keys
//
// A [Keyer] turns layout parameters and render options into cache keys.
// Keys hash every input that affects the output, so changing any parameter
// produces a miss rather than a stale hit. [ScopedKeyer] prefixes keys to
// keep tenants apart on shared backends.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes. Layouts are a pure function of their parameters,
// so they can live longer than artifacts, which also depend on the payload.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases connections held by the backend.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Clear empties c if the backend supports it.
func Clear(ctx context.Context, c Cache) error {
	if cl, ok := c.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}
