package tiling

import (
	"slices"
	"testing"
)

// Common fixtures. Rect fields are Top, Right, Bottom, Left.
func twoPanes() []PaneDef {
	return []PaneDef{
		{ID: "a", Bounds: Rect{Top: 0, Right: 50, Bottom: 100, Left: 0}},
		{ID: "b", Bounds: Rect{Top: 0, Right: 100, Bottom: 100, Left: 50}},
	}
}

func grid2x2() []PaneDef {
	return []PaneDef{
		{ID: "tl", Bounds: Rect{Top: 0, Right: 50, Bottom: 50, Left: 0}},
		{ID: "tr", Bounds: Rect{Top: 0, Right: 100, Bottom: 50, Left: 50}},
		{ID: "bl", Bounds: Rect{Top: 50, Right: 50, Bottom: 100, Left: 0}},
		{ID: "br", Bounds: Rect{Top: 50, Right: 100, Bottom: 100, Left: 50}},
	}
}

// tJunction is one full-height pane bordered by two stacked panes on its right.
func tJunction() []PaneDef {
	return []PaneDef{
		{ID: "a", Bounds: Rect{Top: 0, Right: 50, Bottom: 100, Left: 0}},
		{ID: "b", Bounds: Rect{Top: 0, Right: 100, Bottom: 50, Left: 50}},
		{ID: "c", Bounds: Rect{Top: 50, Right: 100, Bottom: 100, Left: 50}},
	}
}

func TestBuildTwoPanes(t *testing.T) {
	g := Build(twoPanes())

	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	e := g.Edge(0)
	if e.Axis != Vertical {
		t.Errorf("Axis = %v, want vertical", e.Axis)
	}
	if e.P != 50 {
		t.Errorf("P = %v, want 50", e.P)
	}
	if g.Pane(e.Before).ID != "a" || g.Pane(e.After).ID != "b" {
		t.Errorf("flanking panes = %s/%s, want a/b", g.Pane(e.Before).ID, g.Pane(e.After).ID)
	}
	if sibs := g.Siblings(0); len(sibs) != 0 {
		t.Errorf("Siblings(0) = %v, want none", sibs)
	}
	if !g.Breakable(0) {
		t.Error("Breakable(0) = false, want true for a clean two-pane boundary")
	}
}

func TestBuild2x2Grid(t *testing.T) {
	g := Build(grid2x2())

	if g.EdgeCount() != 4 {
		t.Fatalf("EdgeCount() = %d, want 4", g.EdgeCount())
	}

	var vertical, horizontal []int
	for i, e := range g.Edges() {
		if e.P != 50 {
			t.Errorf("edge %d: P = %v, want 50", i, e.P)
		}
		if e.Axis == Vertical {
			vertical = append(vertical, i)
		} else {
			horizontal = append(horizontal, i)
		}
	}
	if len(vertical) != 2 || len(horizontal) != 2 {
		t.Fatalf("got %d vertical / %d horizontal edges, want 2/2", len(vertical), len(horizontal))
	}

	// The two vertical edges are mutual siblings, as are the two horizontal
	// ones - and never across axes.
	for _, pair := range [][]int{vertical, horizontal} {
		if sibs := g.Siblings(pair[0]); !slices.Equal(sibs, []int{pair[1]}) {
			t.Errorf("Siblings(%d) = %v, want [%d]", pair[0], sibs, pair[1])
		}
		if sibs := g.Siblings(pair[1]); !slices.Equal(sibs, []int{pair[0]}) {
			t.Errorf("Siblings(%d) = %v, want [%d]", pair[1], sibs, pair[0])
		}
	}

	// Each vertical edge is one segment of a crossed boundary: not breakable.
	for _, v := range vertical {
		if g.Breakable(v) {
			t.Errorf("Breakable(%d) = true, want false for a T-junction segment", v)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	defs := grid2x2()
	g1, g2 := Build(defs), Build(defs)

	if !slices.Equal(g1.Edges(), g2.Edges()) {
		t.Errorf("edges differ across builds:\n%v\n%v", g1.Edges(), g2.Edges())
	}
	for i := 0; i < g1.PaneCount(); i++ {
		for d := DirTop; d <= DirLeft; d++ {
			if !slices.Equal(g1.Links(i, d), g2.Links(i, d)) {
				t.Errorf("pane %d %v links differ: %v vs %v", i, d, g1.Links(i, d), g2.Links(i, d))
			}
		}
	}
	for e := 0; e < g1.EdgeCount(); e++ {
		if !slices.Equal(g1.Siblings(e), g2.Siblings(e)) {
			t.Errorf("Siblings(%d) differ: %v vs %v", e, g1.Siblings(e), g2.Siblings(e))
		}
	}
}

func TestNeighborSymmetry(t *testing.T) {
	tests := []struct {
		name string
		defs []PaneDef
	}{
		{"TwoPanes", twoPanes()},
		{"Grid", grid2x2()},
		{"TJunction", tJunction()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(tt.defs)
			mirror := map[Direction]Direction{
				DirTop: DirBottom, DirBottom: DirTop,
				DirLeft: DirRight, DirRight: DirLeft,
			}
			for i := 0; i < g.PaneCount(); i++ {
				for d := DirTop; d <= DirLeft; d++ {
					for _, e := range g.Links(i, d) {
						ed := g.Edge(e)
						other := ed.Before
						if other == i {
							other = ed.After
						}
						if !slices.Contains(g.Links(other, mirror[d]), e) {
							t.Errorf("edge %d in pane %d's %v links but not in pane %d's %v links",
								e, i, d, other, mirror[d])
						}
					}
				}
			}
		})
	}
}

func TestTJunctionLinks(t *testing.T) {
	g := Build(tJunction())

	if g.EdgeCount() != 3 {
		t.Fatalf("EdgeCount() = %d, want 3 (a|b, a|c, b|c)", g.EdgeCount())
	}

	a, _ := g.PaneIndex("a")
	right := g.Links(a, DirRight)
	if len(right) != 2 {
		t.Fatalf("pane a right links = %v, want 2 edges", right)
	}
	for _, e := range right {
		if g.Edge(e).Axis != Vertical {
			t.Errorf("edge %d axis = %v, want vertical", e, g.Edge(e).Axis)
		}
		if g.Breakable(e) {
			t.Errorf("Breakable(%d) = true, want false when flanking extents differ", e)
		}
	}
	if sibs := g.Siblings(right[0]); !slices.Equal(sibs, []int{right[1]}) {
		t.Errorf("Siblings(%d) = %v, want [%d]", right[0], sibs, right[1])
	}
}

func TestPaneRectDefaults(t *testing.T) {
	// A lone pane has no adjacencies at all: every side falls back to the
	// container boundary regardless of the supplied rect.
	g := Build([]PaneDef{{ID: "only", Bounds: Rect{Top: 10, Right: 60, Bottom: 90, Left: 20}}})
	if g.EdgeCount() != 0 {
		t.Fatalf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
	got := g.PaneRect(0)
	want := Rect{Top: 0, Right: 100, Bottom: 100, Left: 0}
	if got != want {
		t.Errorf("PaneRect = %+v, want %+v", got, want)
	}
}

func TestGapsProduceNoAdjacency(t *testing.T) {
	// A 1-unit gap between the panes: no edge is detected, silently.
	g := Build([]PaneDef{
		{ID: "a", Bounds: Rect{Top: 0, Right: 49, Bottom: 100, Left: 0}},
		{ID: "b", Bounds: Rect{Top: 0, Right: 100, Bottom: 100, Left: 50}},
	})
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0 for gapped input", g.EdgeCount())
	}
}

func TestCornerTouchIsNotAdjacency(t *testing.T) {
	// tl and br share only the center point; the strict open-interval
	// overlap test must reject them.
	g := Build(grid2x2())
	tl, _ := g.PaneIndex("tl")
	br, _ := g.PaneIndex("br")
	for d := DirTop; d <= DirLeft; d++ {
		for _, e := range g.Links(tl, d) {
			ed := g.Edge(e)
			if ed.Before == br || ed.After == br {
				t.Errorf("tl and br connected through edge %d in direction %v", e, d)
			}
		}
	}
}

func TestDragBounds(t *testing.T) {
	t.Run("TwoPanes", func(t *testing.T) {
		g := Build(twoPanes())
		lo, hi := g.DragBounds(0)
		if lo != Epsilon || hi != 100-Epsilon {
			t.Errorf("DragBounds = (%v, %v), want (%v, %v)", lo, hi, Epsilon, 100-Epsilon)
		}
	})

	t.Run("IntersectsOverSiblings", func(t *testing.T) {
		g := Build(grid2x2())
		var vert int
		for i, e := range g.Edges() {
			if e.Axis == Vertical {
				vert = i
				break
			}
		}
		lo, hi := g.DragBounds(vert)
		if lo != Epsilon || hi != 100-Epsilon {
			t.Errorf("DragBounds = (%v, %v), want (%v, %v)", lo, hi, Epsilon, 100-Epsilon)
		}
	})

	t.Run("DegenerateCollapsesToPoint", func(t *testing.T) {
		// Both panes together are narrower than twice the margin, so the
		// constraints conflict; the range must collapse, not invert.
		g := Build([]PaneDef{
			{ID: "a", Bounds: Rect{Top: 0, Right: 0.08, Bottom: 100, Left: 0}},
			{ID: "b", Bounds: Rect{Top: 0, Right: 0.15, Bottom: 100, Left: 0.08}},
		})
		if g.EdgeCount() != 1 {
			t.Fatalf("EdgeCount() = %d, want 1", g.EdgeCount())
		}
		lo, hi := g.DragBounds(0)
		if lo != hi {
			t.Errorf("DragBounds = (%v, %v), want a single point", lo, hi)
		}
	})
}

func TestBreakableDisjointSiblings(t *testing.T) {
	// Three columns; the outer two are split at y=50. The two horizontal
	// edges align (siblings) but do not touch - the middle column separates
	// them - so each may be dragged solo.
	g := Build([]PaneDef{
		{ID: "l1", Bounds: Rect{Top: 0, Right: 33, Bottom: 50, Left: 0}},
		{ID: "l2", Bounds: Rect{Top: 50, Right: 33, Bottom: 100, Left: 0}},
		{ID: "m", Bounds: Rect{Top: 0, Right: 66, Bottom: 100, Left: 33}},
		{ID: "r1", Bounds: Rect{Top: 0, Right: 100, Bottom: 50, Left: 66}},
		{ID: "r2", Bounds: Rect{Top: 50, Right: 100, Bottom: 100, Left: 66}},
	})

	for i, e := range g.Edges() {
		if e.Axis != Horizontal {
			continue
		}
		if sibs := g.Siblings(i); len(sibs) != 1 {
			t.Errorf("Siblings(%d) = %v, want exactly one aligned edge", i, sibs)
		}
		if !g.Breakable(i) {
			t.Errorf("Breakable(%d) = false, want true for disjoint aligned boundaries", i)
		}
	}
}

func TestHitTest(t *testing.T) {
	g := Build(grid2x2())

	tests := []struct {
		name     string
		x, y     float64
		wantAxis Axis
		wantOK   bool
	}{
		{"OnVerticalEdge", 50.2, 25, Vertical, true},
		{"OnHorizontalEdge", 25, 49.7, Horizontal, true},
		{"FarFromEdges", 10, 10, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := g.HitTest(tt.x, tt.y, 1.0)
			if ok != tt.wantOK {
				t.Fatalf("HitTest(%v, %v) ok = %v, want %v", tt.x, tt.y, ok, tt.wantOK)
			}
			if ok && g.Edge(e).Axis != tt.wantAxis {
				t.Errorf("HitTest(%v, %v) axis = %v, want %v", tt.x, tt.y, g.Edge(e).Axis, tt.wantAxis)
			}
		})
	}
}
