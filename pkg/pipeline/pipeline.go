// Package pipeline provides the core visualization pipeline for Tilegrid.
//
// This package implements the complete load → analyze → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode a layout from a TOML manifest or JSON wire data
//  2. Analyze: Build the adjacency graph and derive the edge report
//  3. Render: Generate output in various formats (SVG, PNG, PDF, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Manifest: manifestTOML,
//	    Kind:     pipeline.KindPlan,
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	l, err := runner.Load(opts)
//
//	// Analyze an existing layout
//	rep, err := runner.Analyze(ctx, l, opts)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// DefaultTheme is the default plan render theme.
	DefaultTheme = "light"
)

// Visualization kinds.
const (
	KindPlan      = "plan"
	KindAdjacency = "adjacency"
)

// DefaultKind is the default visualization kind.
const DefaultKind = KindPlan

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
	FormatDOT = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
	FormatDOT: true,
}

// ValidKinds is the set of supported visualization kinds.
var ValidKinds = map[string]bool{
	KindPlan:      true,
	KindAdjacency: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one source must be set.
	Manifest string         `json:"manifest,omitempty"` // Raw TOML manifest content
	Layout   *layout.Layout `json:"layout,omitempty"`   // Pre-decoded wire layout

	// Render options
	Kind        string   `json:"kind,omitempty"`
	Formats     []string `json:"formats,omitempty"`
	Theme       string   `json:"theme,omitempty"`
	Labels      bool     `json:"labels,omitempty"`
	EdgeOverlay bool     `json:"edge_overlay,omitempty"` // Draw shared edges on top of the plan
	Detailed    bool     `json:"detailed,omitempty"`     // Verbose adjacency edge labels
	Width       float64  `json:"width,omitempty"`
	Height      float64  `json:"height,omitempty"`
	Scale       float64  `json:"scale,omitempty"` // PNG scale factor

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the loaded, validated layout.
	Layout layout.Layout

	// LayoutHash is the content hash of the canonical layout JSON.
	LayoutHash string

	// Report is the adjacency analysis of the layout.
	Report layout.Report

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PaneCount   int
	EdgeCount   int
	LoadTime    time.Duration
	AnalyzeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ReportHit bool // Whether the analysis came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKind checks that a visualization kind is valid.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid kind: %q (must be one of: plan, adjacency)", kind)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.SetRenderDefaults(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.Manifest == "" && o.Layout == nil {
		return errors.New(errors.ErrCodeInvalidInput, "manifest or layout is required")
	}
	if o.Manifest != "" && o.Layout != nil {
		return errors.New(errors.ErrCodeInvalidInput, "manifest and layout are mutually exclusive")
	}
	return nil
}

// SetRenderDefaults validates render options and fills in defaults.
func (o *Options) SetRenderDefaults() error {
	if o.Kind == "" {
		o.Kind = DefaultKind
	}
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	// DOT is the Graphviz source format, it only exists for adjacency.
	if o.Kind == KindPlan {
		for _, f := range o.Formats {
			if f == FormatDOT {
				return errors.New(errors.ErrCodeInvalidFormat, "format dot requires kind adjacency")
			}
		}
	}

	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	return nil
}
