// Package cache provides pluggable caching for layout and render results.
//
// Computing a layout is deterministic for a given graph and strategy (seeded
// runs included), so results key cleanly off content hashes: the layout stage
// caches positioned layouts by graph hash plus strategy, and the render stage
// caches artifacts by layout hash plus format.
//
// Backends:
//   - FileCache: directory-backed, for CLI usage across invocations
//   - MemoryCache: in-process LRU, for the HTTP service
//   - RedisCache: shared cache for multi-instance deployments
//   - NullCache: disabled caching
package cache

import (
	"context"
	"time"
)

// TTLs per result type. Layouts invalidate with their inputs (the key embeds
// the graph hash and strategy), so these bound disk growth rather than
// correctness.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry TTLs.
// A zero TTL means the entry never expires.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit; a miss
	// is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the strategy parameters that affect layout output and
// therefore participate in the cache key.
type LayoutKeyOpts struct {
	Algorithm string  `json:"algorithm"`
	Direction string  `json:"direction"`
	RankSep   float64 `json:"ranksep"`
	NodeSep   float64 `json:"nodesep"`
	Columns   int     `json:"columns"`
	Seed      uint64  `json:"seed"`
}

// ArtifactKeyOpts distinguish rendered artifacts of the same layout.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for a positioned layout.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a stage prefix plus a SHA-256
// over the content hash and options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a positioned layout.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
