package tiling

// Epsilon is the coordinate tolerance in percentage units. Two positions
// closer than Epsilon are considered coincident for adjacency detection and
// sibling grouping, and it doubles as the margin kept between a dragged edge
// and the flanking panes' opposite boundaries.
const Epsilon = 0.1

// Axis is the orientation of an edge.
type Axis int

const (
	// Horizontal edges are horizontal lines separating a pane above from a
	// pane below. Their position is a Y coordinate.
	Horizontal Axis = iota
	// Vertical edges separate a left pane from a right pane. Their position
	// is an X coordinate.
	Vertical
)

// String returns "horizontal" or "vertical".
func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Direction identifies one side of a pane. The numeric values are
// load-bearing: they index the per-pane link lists.
type Direction int

const (
	DirTop Direction = iota
	DirRight
	DirBottom
	DirLeft
)

// String returns the lowercase side name.
func (d Direction) String() string {
	switch d {
	case DirTop:
		return "top"
	case DirRight:
		return "right"
	case DirBottom:
		return "bottom"
	case DirLeft:
		return "left"
	}
	return "invalid"
}

// Corner identifies one corner of a pane for corner gestures.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// Rect is an axis-aligned rectangle in percentage coordinates with top-left
// origin. A well-formed rect satisfies Top < Bottom and Left < Right, all
// within [0, 100].
type Rect struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Width returns Right - Left. Negative or zero width marks a degenerate pane.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// PaneDef describes one pane as supplied by (and committed back to) the
// caller. Bounds are percentages of the container. MinWidth and MinHeight
// are advisory hints passed through unchanged - the engine does not enforce
// them. Props is opaque caller-owned data, also passed through unchanged.
type PaneDef struct {
	ID        string
	Bounds    Rect
	MinWidth  float64
	MinHeight float64
	Props     map[string]any
}

// Point is a pointer coordinate in container-relative pixels.
type Point struct {
	X float64
	Y float64
}

// ContainerBounds is the container's bounding box in pixels, queried from
// the rendering layer on mount and on resize. It anchors the pixel to
// percentage conversion during drags.
type ContainerBounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// overlap reports whether the open intervals (x1,x2) and (y1,y2) intersect.
// The test is strict: intervals that merely touch do not overlap, so panes
// meeting only at a corner are not adjacent.
func overlap(x1, x2, y1, y2 float64) bool {
	return x2 > y1 && y2 > x1
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
