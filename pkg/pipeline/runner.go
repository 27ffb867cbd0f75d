package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilegrid/pkg/cache"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/manifest"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/render"
	"github.com/matzehuels/tilegrid/pkg/render/adjacency"
	"github.com/matzehuels/tilegrid/pkg/render/plan"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → analyze → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	l, err := r.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Layout = l
	result.Stats.LoadTime = time.Since(loadStart)

	// Compute layout hash for cache keys and API responses
	if data, err := layout.Marshal(l); err == nil {
		result.LayoutHash = cache.Hash(data)
	}

	r.Logger.Info("loaded layout",
		"panes", len(l.Panes),
		"duration", result.Stats.LoadTime)

	// Stage 2: Analyze
	analyzeStart := time.Now()
	rep, reportHit, err := r.AnalyzeWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Report = rep
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.Stats.PaneCount = rep.PaneCount
	result.Stats.EdgeCount = rep.EdgeCount
	result.CacheInfo.ReportHit = reportHit

	r.Logger.Info("analyzed adjacency",
		"panes", rep.PaneCount,
		"edges", rep.EdgeCount,
		"duration", result.Stats.AnalyzeTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, rep, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"kind", opts.Kind,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load decodes and validates the layout from the configured source.
// Loading is cheap and deterministic, so it is never cached.
func (r *Runner) Load(opts Options) (layout.Layout, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return layout.Layout{}, err
	}

	if opts.Layout != nil {
		if err := opts.Layout.Validate(); err != nil {
			return layout.Layout{}, err
		}
		return *opts.Layout, nil
	}

	m, err := manifest.Parse([]byte(opts.Manifest))
	if err != nil {
		return layout.Layout{}, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode manifest")
	}
	return m.ToLayout()
}

// AnalyzeWithCacheInfo builds the adjacency report with caching and
// returns cache hit info.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (layout.Report, bool, error) {
	r.applyLogger(&opts)

	layoutData, err := layout.Marshal(l)
	if err != nil {
		return layout.Report{}, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	cacheKey := r.Keyer.ReportKey(cache.Hash(layoutData))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached layout.Report
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "report")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "report")

	rep := layout.BuildReport(l)

	if data, err := json.Marshal(rep); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLReport) == nil {
			observability.Cache().OnCacheSet(ctx, "report", len(data))
		}
	}

	return rep, false, nil // Cache miss
}

// Analyze is a convenience wrapper that calls AnalyzeWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, l layout.Layout, opts Options) (layout.Report, error) {
	rep, _, err := r.AnalyzeWithCacheInfo(ctx, l, opts)
	return rep, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. The bool is true only when every requested format came from
// the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, rep layout.Report, opts Options) (map[string][]byte, bool, error) {
	if err := opts.SetRenderDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := layout.Marshal(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, r.artifactKeyOpts(format, opts))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		allCached = false

		data, err := r.renderArtifact(l, rep, format, opts)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data

		if r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return artifacts, allCached, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, rep layout.Report, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, rep, opts)
	return artifacts, err
}

func (r *Runner) artifactKeyOpts(format string, opts Options) cache.ArtifactKeyOpts {
	theme := opts.Theme
	if opts.Kind == KindAdjacency {
		// Adjacency output ignores the theme; keep its keys theme-free
		// so switching themes does not evict them.
		theme = ""
	}
	return cache.ArtifactKeyOpts{
		Kind:   opts.Kind,
		Format: format,
		Theme:  theme,
	}
}

func (r *Runner) renderArtifact(l layout.Layout, rep layout.Report, format string, opts Options) ([]byte, error) {
	switch opts.Kind {
	case KindAdjacency:
		dot := adjacency.ToDOT(l, adjacency.Options{Detailed: opts.Detailed})
		switch format {
		case FormatDOT:
			return []byte(dot), nil
		case FormatSVG:
			return adjacency.RenderSVG(dot)
		case FormatPNG:
			return adjacency.RenderPNG(dot, opts.Scale)
		case FormatPDF:
			return adjacency.RenderPDF(dot)
		}

	case KindPlan:
		popts := []plan.Option{
			plan.WithSize(opts.Width, opts.Height),
			plan.WithTheme(plan.ThemeByName(opts.Theme)),
		}
		if opts.Labels {
			popts = append(popts, plan.WithLabels())
		}
		if opts.EdgeOverlay {
			popts = append(popts, plan.WithEdgeOverlay(&rep))
		}
		svg := plan.RenderSVG(l, popts...)
		switch format {
		case FormatSVG:
			return svg, nil
		case FormatPNG:
			return render.ToPNG(svg, opts.Scale)
		case FormatPDF:
			return render.ToPDF(svg)
		}
	}

	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q for kind %q", format, opts.Kind)
}

// applyLogger keeps the runner's logger in sync with per-call options.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger != nil {
		r.Logger = opts.Logger
	}
}
