package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ArtifactKeyOpts parametrize rendered-artifact cache keys. Two renders
// of the same layout with different formats or themes must not collide.
type ArtifactKeyOpts struct {
	Kind   string // "plan" or "adjacency"
	Format string // "svg", "png", "dot"
	Theme  string // Render theme name, empty for default
}

// Keyer generates cache keys for pipeline stages.
// Implementations must produce keys that are safe for all backends
// (no spaces, no path separators).
type Keyer interface {
	// ReportKey generates a key for adjacency report caching.
	// layoutHash is the content hash of the canonical layout JSON.
	ReportKey(layoutHash string) string

	// ArtifactKey generates a key for rendered artifact caching.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a stage prefix plus a SHA-256
// over the inputs that influence the stage's output.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ReportKey generates a key for adjacency report caching.
func (k *DefaultKeyer) ReportKey(layoutHash string) string {
	return hashKey("report", layoutHash)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts.Kind, opts.Format, opts.Theme)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Useful when several users or deployments share one Redis instance and
// need separate cache namespaces.
//
// Example usage:
//
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ReportKey generates a prefixed key for report caching.
func (k *ScopedKeyer) ReportKey(layoutHash string) string {
	return k.prefix + k.inner.ReportKey(layoutHash)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
