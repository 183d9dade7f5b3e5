// Package cache stores rendered sunburst artifacts and layouts between runs.
//
// Backends share the small [Cache] interface:
//   - [NullCache]: never stores anything (--no-cache)
//   - [MemoryCache]: process-local map, used by the HTTP server and tests
//   - [FileCache]: one file per entry under the user cache directory (CLI)
//   - [RedisCache]: shared cache for several server instances
//   - [MongoCache]: persistent cache backed by a TTL-indexed collection
//
// Keys are built by a [Keyer] from a content hash of the input and the
// options that influence the output, so a changed tree or option never hits
// a stale entry.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value. A missing or expired entry is reported
	// as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases client connections.
	Close() error
}

// Clearer is implemented by caches that can drop all their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}
