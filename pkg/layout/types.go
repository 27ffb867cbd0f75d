package layout

import (
	"math"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// =============================================================================
// Layout - Canonical Wire Format
// =============================================================================

// Layout is the canonical serialization format for a tiling layout.
// Used for API requests and responses, snapshots, caching and exports.
type Layout struct {
	Panes []Pane `json:"panes" bson:"panes"`
}

// Pane is the wire shape of a single pane. All bounds are percentages of
// the container in [0, 100].
type Pane struct {
	ID     string  `json:"id" bson:"id"`
	Top    float64 `json:"top" bson:"top"`
	Right  float64 `json:"right" bson:"right"`
	Bottom float64 `json:"bottom" bson:"bottom"`
	Left   float64 `json:"left" bson:"left"`

	MinWidth  float64        `json:"min_width,omitempty" bson:"min_width,omitempty"`  // Percent, advisory
	MinHeight float64        `json:"min_height,omitempty" bson:"min_height,omitempty"` // Percent, advisory
	Props     map[string]any `json:"props,omitempty" bson:"props,omitempty"`           // Caller-owned, opaque
}

// =============================================================================
// Conversion
// =============================================================================

// ToDefs converts a wire layout into engine pane definitions.
func (l Layout) ToDefs() []tiling.PaneDef {
	defs := make([]tiling.PaneDef, len(l.Panes))
	for i, p := range l.Panes {
		defs[i] = tiling.PaneDef{
			ID: p.ID,
			Bounds: tiling.Rect{
				Top:    p.Top,
				Right:  p.Right,
				Bottom: p.Bottom,
				Left:   p.Left,
			},
			MinWidth:  p.MinWidth,
			MinHeight: p.MinHeight,
			Props:     p.Props,
		}
	}
	return defs
}

// FromDefs converts engine pane definitions into the wire layout.
func FromDefs(defs []tiling.PaneDef) Layout {
	panes := make([]Pane, len(defs))
	for i, d := range defs {
		panes[i] = Pane{
			ID:        d.ID,
			Top:       d.Bounds.Top,
			Right:     d.Bounds.Right,
			Bottom:    d.Bounds.Bottom,
			Left:      d.Bounds.Left,
			MinWidth:  d.MinWidth,
			MinHeight: d.MinHeight,
			Props:     d.Props,
		}
	}
	return Layout{Panes: panes}
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks a layout for structural problems before it reaches the
// engine: missing or duplicate IDs, non-finite numbers, inverted rects
// and bounds outside [0, 100].
//
// The engine itself tolerates overlapping and degenerate input, so
// validation is a surface concern: the API and CLI reject layouts that
// would silently produce an empty adjacency graph.
func (l Layout) Validate() error {
	seen := make(map[string]struct{}, len(l.Panes))
	for _, p := range l.Panes {
		if err := errors.ValidatePaneID(p.ID); err != nil {
			return err
		}
		if _, dup := seen[p.ID]; dup {
			return errors.New(errors.ErrCodeInvalidLayout, "duplicate pane ID %q", p.ID)
		}
		seen[p.ID] = struct{}{}

		for _, v := range []float64{p.Top, p.Right, p.Bottom, p.Left} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.New(errors.ErrCodeInvalidRect, "pane %q has non-finite bounds", p.ID)
			}
		}
		if p.Left > p.Right || p.Top > p.Bottom {
			return errors.New(errors.ErrCodeInvalidRect, "pane %q has inverted bounds", p.ID)
		}
		if p.Left < 0 || p.Top < 0 || p.Right > 100 || p.Bottom > 100 {
			return errors.New(errors.ErrCodeInvalidRect, "pane %q exceeds container bounds [0, 100]", p.ID)
		}
	}
	return nil
}
