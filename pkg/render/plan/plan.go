// Package plan renders tiling layouts as SVG floor plans.
//
// Every pane is drawn as a rectangle at its percentage bounds, scaled to
// a pixel frame. Colors cycle deterministically through the theme
// palette so the same layout always renders identically. An optional
// overlay draws the shared edges of the adjacency graph, with breakable
// edges dashed.
package plan

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/layout"
)

const paneInteractionCSS = `
    .pane { transition: stroke-width 0.15s ease; }
    .pane:hover { stroke-width: 3; }
    .pane-label { pointer-events: none; }`

// Theme controls the visual appearance of a rendered plan.
type Theme struct {
	Name       string
	Background string
	Stroke     string
	Text       string
	Palette    []string // Pane fills, cycled by pane index
}

// Built-in themes.
var (
	ThemeLight = Theme{
		Name:       "light",
		Background: "#ffffff",
		Stroke:     "#1f2933",
		Text:       "#1f2933",
		Palette:    []string{"#dbeafe", "#dcfce7", "#fef3c7", "#fee2e2", "#ede9fe", "#cffafe"},
	}
	ThemeDark = Theme{
		Name:       "dark",
		Background: "#111827",
		Stroke:     "#e5e7eb",
		Text:       "#e5e7eb",
		Palette:    []string{"#1e3a8a", "#14532d", "#78350f", "#7f1d1d", "#4c1d95", "#164e63"},
	}
)

// ThemeByName resolves a theme name, defaulting to light.
func ThemeByName(name string) Theme {
	if name == ThemeDark.Name {
		return ThemeDark
	}
	return ThemeLight
}

type Option func(*renderer)

type renderer struct {
	width  float64
	height float64
	theme  Theme
	labels bool
	report *layout.Report
}

// WithSize sets the pixel frame. The default is 800x600.
func WithSize(w, h float64) Option { return func(r *renderer) { r.width, r.height = w, h } }

// WithTheme sets the color theme.
func WithTheme(t Theme) Option { return func(r *renderer) { r.theme = t } }

// WithLabels draws each pane's title (or ID) centered in the pane.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// WithEdgeOverlay draws the shared edges from an adjacency report on
// top of the panes. Breakable edges are dashed.
func WithEdgeOverlay(rep *layout.Report) Option { return func(r *renderer) { r.report = rep } }

func newRenderer(opts ...Option) renderer {
	r := renderer{width: 800, height: 600, theme: ThemeLight}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws a layout as an SVG floor plan.
func RenderSVG(l layout.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", paneInteractionCSS)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		r.width, r.height, r.theme.Background)

	for i, p := range l.Panes {
		r.renderPane(&buf, i, p)
	}
	if r.report != nil {
		r.renderEdges(&buf, l)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// paneGap insets each rectangle so adjacent panes read as distinct.
const paneGap = 2.0

func (r *renderer) renderPane(buf *bytes.Buffer, i int, p layout.Pane) {
	x := p.Left / 100 * r.width
	y := p.Top / 100 * r.height
	w := (p.Right - p.Left) / 100 * r.width
	h := (p.Bottom - p.Top) / 100 * r.height

	x, y = x+paneGap, y+paneGap
	w, h = max(w-2*paneGap, 0), max(h-2*paneGap, 0)

	fill := r.theme.Palette[i%len(r.theme.Palette)]
	fmt.Fprintf(buf,
		`  <rect id="pane-%s" class="pane" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		p.ID, x, y, w, h, fill, r.theme.Stroke)

	if r.labels {
		fmt.Fprintf(buf,
			`  <text class="pane-label" x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="14" fill="%s">%s</text>`+"\n",
			x+w/2, y+h/2, r.theme.Text, paneLabel(p))
	}
}

func paneLabel(p layout.Pane) string {
	if title, ok := p.Props["title"].(string); ok && title != "" {
		return title
	}
	return p.ID
}

func (r *renderer) renderEdges(buf *bytes.Buffer, l layout.Layout) {
	byID := make(map[string]layout.Pane, len(l.Panes))
	for _, p := range l.Panes {
		byID[p.ID] = p
	}

	for _, e := range r.report.Edges {
		lo, hi := edgeExtent(e, byID)
		dash := ""
		if e.Breakable {
			dash = ` stroke-dasharray="6,4"`
		}
		if e.Axis == "vertical" {
			x := e.Position / 100 * r.width
			fmt.Fprintf(buf,
				`  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="3" opacity="0.6"%s/>`+"\n",
				x, lo/100*r.height, x, hi/100*r.height, r.theme.Stroke, dash)
		} else {
			y := e.Position / 100 * r.height
			fmt.Fprintf(buf,
				`  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="3" opacity="0.6"%s/>`+"\n",
				lo/100*r.width, y, hi/100*r.width, y, r.theme.Stroke, dash)
		}
	}
}

// edgeExtent is the union of the flanking panes' extents along the edge.
func edgeExtent(e layout.EdgeReport, byID map[string]layout.Pane) (lo, hi float64) {
	lo, hi = 100, 0
	for _, id := range append(append([]string{}, e.Before...), e.After...) {
		p, ok := byID[id]
		if !ok {
			continue
		}
		if e.Axis == "vertical" {
			lo, hi = min(lo, p.Top), max(hi, p.Bottom)
		} else {
			lo, hi = min(lo, p.Left), max(hi, p.Right)
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}
