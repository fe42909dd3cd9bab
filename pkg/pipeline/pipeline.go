// Package pipeline provides the core visualization pipeline for GoFlow.
//
// This package implements the complete load → layout → render pipeline that
// can be used by the CLI and the HTTP service. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate a call graph from a JSON file or reader
//  2. Layout: Compute positions for every entity with the selected strategy
//  3. Render: Generate output in various formats (JSON, DOT, SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
// Layout and render results are cached by content hash.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path:    "callgraph.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/cache"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/errors"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/graph"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/layout"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/render"
)

// DefaultFormats is used when no output format is requested.
var DefaultFormats = []string{render.FormatJSON}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// The struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Path names the input graph file; Graph supplies a graph
	// directly and takes precedence when non-nil.
	Path  string       `json:"path,omitempty"`
	Graph *graph.Graph `json:"graph,omitempty"`

	// Layout options.
	Strategy layout.Strategy `json:"strategy,omitempty"`

	// Render options.
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized).
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded, unpositioned call graph.
	Graph graph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Layout is the fully positioned graph.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EntityCount int
	EdgeCount   int
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. The method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.Graph == nil && o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "path or graph is required")
	}
	if o.Path != "" {
		if err := errors.ValidatePath(o.Path); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults normalizes the layout strategy so cache keys and the
// engine see identical parameters.
func (o *Options) SetLayoutDefaults() {
	o.Strategy = o.Strategy.Normalized()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates formats and applies render defaults.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	for _, f := range o.Formats {
		if err := errors.ValidateFormat(f, render.Formats); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Algorithm: o.Strategy.Algorithm,
		Direction: o.Strategy.Direction,
		RankSep:   o.Strategy.RankSep,
		NodeSep:   o.Strategy.NodeSep,
		Columns:   o.Strategy.Columns,
		Seed:      o.Strategy.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}

// layoutCacheable reports whether the layout result is deterministic for the
// cache key. Unseeded force runs resolve a fresh time-based seed per run, so
// their output cannot be keyed.
func (o *Options) layoutCacheable() bool {
	return o.Strategy.Algorithm != layout.AlgorithmForce || o.Strategy.Seed != 0
}
