// Package cache provides pluggable byte caches for the layout pipeline.
//
// Three backends are available:
//   - [FileCache] for CLI usage, entries stored under a directory
//   - [RedisCache] for server deployments with shared state
//   - [NullCache] to disable caching entirely
//
// Keys are produced by a [Keyer] so that every stage of the pipeline
// (report analysis, rendered artifacts) derives its key from a content
// hash of its input. Identical layouts therefore share cache entries
// regardless of which file or request they came from.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per pipeline stage. Reports are cheap to rebuild
// but artifacts (SVG and PNG renders) are not, so artifacts live longer.
const (
	TTLReport   = 1 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the byte-level storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found
	// and still fresh; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
