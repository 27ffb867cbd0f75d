package tiling

import "slices"

// Pane is one tiled region inside a [Graph]. Geometry is not stored - it is
// derived on demand from the bordering edges via [Graph.PaneRect], with
// unlinked sides defaulting to the container boundary (0 or 100).
type Pane struct {
	ID    string
	def   PaneDef
	links [4][]int // edge indices per Direction; empty = container boundary
}

// Def returns the pane's original descriptor (bounds as supplied at build
// time, not the live derived geometry).
func (p *Pane) Def() PaneDef { return p.def }

// Edge is a shared boundary segment between exactly two panes along one
// axis. Edges are owned by the graph and shared between their flanking
// panes; P is the only mutable field after construction.
type Edge struct {
	Axis Axis
	// P is the scalar position: a Y coordinate for horizontal edges, an X
	// coordinate for vertical edges.
	P float64
	// Before and After are pane indices along the adjacency direction used
	// to create the edge: for a vertical edge Before is the left pane, for
	// a horizontal edge Before is the upper pane.
	Before int
	After  int

	group int // sibling group, assigned during Build
}

// Graph is the adjacency structure for one pane list. Topology (panes,
// edges, link lists, sibling groups) is immutable after [Build]; only the
// scalar edge positions mutate during a drag.
type Graph struct {
	panes  []Pane
	edges  []Edge
	byID   map[string]int
	groups [][]int // sibling group -> member edge indices
}

// Build constructs the adjacency graph for the given panes. Input is not
// validated: panes that do not actually tile (gaps, overlaps) still produce
// a graph, just with fewer adjacency edges on the affected sides.
//
// Adjacency uses an absolute-difference tolerance of [Epsilon] on the shared
// coordinate and a strict open-interval overlap test on the perpendicular
// span. Exactly one edge exists per unordered adjacent pane pair.
func Build(defs []PaneDef) *Graph {
	g := &Graph{
		panes: make([]Pane, len(defs)),
		byID:  make(map[string]int, len(defs)),
	}
	for i, d := range defs {
		g.panes[i] = Pane{ID: d.ID, def: d}
		g.byID[d.ID] = i
	}

	// Directional neighbor lists for every ordered pane pair.
	neighbors := make([][4][]int, len(defs))
	for i := range defs {
		a := defs[i].Bounds
		for j := range defs {
			if i == j {
				continue
			}
			b := defs[j].Bounds
			if abs(a.Top-b.Bottom) < Epsilon && overlap(a.Left, a.Right, b.Left, b.Right) {
				neighbors[i][DirTop] = append(neighbors[i][DirTop], j)
			}
			if abs(a.Right-b.Left) < Epsilon && overlap(a.Top, a.Bottom, b.Top, b.Bottom) {
				neighbors[i][DirRight] = append(neighbors[i][DirRight], j)
			}
			if abs(a.Bottom-b.Top) < Epsilon && overlap(a.Left, a.Right, b.Left, b.Right) {
				neighbors[i][DirBottom] = append(neighbors[i][DirBottom], j)
			}
			if abs(a.Left-b.Right) < Epsilon && overlap(a.Top, a.Bottom, b.Top, b.Bottom) {
				neighbors[i][DirLeft] = append(neighbors[i][DirLeft], j)
			}
		}
	}

	// One edge per unordered adjacent pair. Only the RIGHT and BOTTOM
	// relations are walked - TOP and LEFT are mirror images and would
	// duplicate edges. The sorted index pair guarantees uniqueness.
	byPair := make(map[[2]int]int)
	for i := range defs {
		for _, j := range neighbors[i][DirRight] {
			key := pairKey(i, j)
			if _, ok := byPair[key]; ok {
				continue
			}
			byPair[key] = len(g.edges)
			g.edges = append(g.edges, Edge{
				Axis:   Vertical,
				P:      defs[i].Bounds.Right,
				Before: i,
				After:  j,
			})
		}
		for _, j := range neighbors[i][DirBottom] {
			key := pairKey(i, j)
			if _, ok := byPair[key]; ok {
				continue
			}
			byPair[key] = len(g.edges)
			g.edges = append(g.edges, Edge{
				Axis:   Horizontal,
				P:      defs[i].Bounds.Bottom,
				Before: i,
				After:  j,
			})
		}
	}

	// Per-pane link lists. A side may reference multiple edges when it
	// borders several smaller panes (a T-junction).
	for i := range g.panes {
		for dir := DirTop; dir <= DirLeft; dir++ {
			for _, j := range neighbors[i][dir] {
				if e, ok := byPair[pairKey(i, j)]; ok {
					g.panes[i].links[dir] = append(g.panes[i].links[dir], e)
				}
			}
		}
	}

	g.groupSiblings()
	return g
}

func pairKey(i, j int) [2]int {
	if i < j {
		return [2]int{i, j}
	}
	return [2]int{j, i}
}

// groupSiblings clusters edges of equal axis whose positions coincide within
// Epsilon into movement groups. Edges are sorted by position per axis and
// chained while consecutive gaps stay under the tolerance, which yields the
// same classes as pairwise registration for any real tiling. Groups are
// recomputed from scratch on every build and never persist across rebuilds.
func (g *Graph) groupSiblings() {
	for _, axis := range []Axis{Horizontal, Vertical} {
		var members []int
		for e := range g.edges {
			if g.edges[e].Axis == axis {
				members = append(members, e)
			}
		}
		slices.SortFunc(members, func(a, b int) int {
			switch {
			case g.edges[a].P < g.edges[b].P:
				return -1
			case g.edges[a].P > g.edges[b].P:
				return 1
			}
			return a - b
		})
		for i, e := range members {
			if i > 0 && g.edges[e].P-g.edges[members[i-1]].P < Epsilon {
				prev := g.edges[members[i-1]].group
				g.edges[e].group = prev
				g.groups[prev] = append(g.groups[prev], e)
				continue
			}
			g.edges[e].group = len(g.groups)
			g.groups = append(g.groups, []int{e})
		}
	}
}

// PaneCount returns the number of panes.
func (g *Graph) PaneCount() int { return len(g.panes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Pane returns the pane at index i.
func (g *Graph) Pane(i int) *Pane { return &g.panes[i] }

// PaneIndex looks up a pane by identifier.
func (g *Graph) PaneIndex(id string) (int, bool) {
	i, ok := g.byID[id]
	return i, ok
}

// Edge returns the edge at index i.
func (g *Graph) Edge(i int) *Edge { return &g.edges[i] }

// Edges returns a copy of the edge list, for inspection and reporting.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Links returns the edge indices bordering pane i on the given side.
// An empty result means the pane touches the container boundary there.
func (g *Graph) Links(i int, d Direction) []int { return g.panes[i].links[d] }

// Siblings returns the indices of every edge in e's movement group other
// than e itself. Dragging e with synchronization enabled moves all of them.
func (g *Graph) Siblings(e int) []int {
	out := make([]int, 0, len(g.groups[g.edges[e].group])-1)
	for _, m := range g.groups[g.edges[e].group] {
		if m != e {
			out = append(out, m)
		}
	}
	return out
}

// PaneRect derives pane i's current rectangle from its edges' positions.
// Sides without edges default to the container boundary: top/left to 0,
// right/bottom to 100.
func (g *Graph) PaneRect(i int) Rect {
	r := Rect{Top: 0, Left: 0, Right: 100, Bottom: 100}
	p := &g.panes[i]
	if l := p.links[DirTop]; len(l) > 0 {
		r.Top = g.edges[l[0]].P
	}
	if l := p.links[DirRight]; len(l) > 0 {
		r.Right = g.edges[l[0]].P
	}
	if l := p.links[DirBottom]; len(l) > 0 {
		r.Bottom = g.edges[l[0]].P
	}
	if l := p.links[DirLeft]; len(l) > 0 {
		r.Left = g.edges[l[0]].P
	}
	return r
}

// DragBounds returns the legal position range for dragging edge e,
// intersected over e and all of its siblings. Each contributing edge is
// bounded by its flanking panes' opposite boundaries plus an [Epsilon]
// margin, so no touched pane can be inverted. A degenerate range from
// conflicting constraints collapses to a single point rather than
// propagating lo > hi.
func (g *Graph) DragBounds(e int) (lo, hi float64) {
	lo, hi = 0, 100
	for _, m := range append(g.Siblings(e), e) {
		ed := &g.edges[m]
		before, after := g.PaneRect(ed.Before), g.PaneRect(ed.After)
		var mlo, mhi float64
		if ed.Axis == Vertical {
			mlo, mhi = before.Left+Epsilon, after.Right-Epsilon
		} else {
			mlo, mhi = before.Top+Epsilon, after.Bottom-Epsilon
		}
		if mlo > lo {
			lo = mlo
		}
		if mhi < hi {
			hi = mhi
		}
	}
	if lo > hi {
		hi = lo
	}
	return lo, hi
}

// Breakable reports whether edge e is a clean two-pane boundary that may be
// dragged solo, deliberately breaking alignment with its siblings. An edge
// is breakable when its flanking panes have matching extents on the
// orthogonal axis and no sibling continues the same visual line: a
// collinear sibling whose span touches e's span means the boundary is
// crossed by perpendicular edges (a T-junction), and moving one segment
// alone would tear the junction.
func (g *Graph) Breakable(e int) bool {
	ed := &g.edges[e]
	before, after := g.PaneRect(ed.Before), g.PaneRect(ed.After)

	var lo, hi, blo, bhi float64
	if ed.Axis == Vertical {
		lo, hi, blo, bhi = before.Top, before.Bottom, after.Top, after.Bottom
	} else {
		lo, hi, blo, bhi = before.Left, before.Right, after.Left, after.Right
	}
	if abs(lo-blo) >= Epsilon || abs(hi-bhi) >= Epsilon {
		return false
	}

	for _, m := range g.Siblings(e) {
		slo, shi := g.edgeSpan(m)
		if slo <= hi+Epsilon && lo <= shi+Epsilon {
			return false
		}
	}
	return true
}

// HitTest returns the edge closest to the percentage coordinate (x, y)
// within tol units, preferring the smaller perpendicular distance. It is a
// convenience for pointer layers that have no per-edge handle elements.
func (g *Graph) HitTest(x, y, tol float64) (edge int, ok bool) {
	best := tol
	edge = -1
	for e := range g.edges {
		ed := &g.edges[e]
		slo, shi := g.edgeSpan(e)
		var d float64
		if ed.Axis == Vertical {
			if y < slo || y > shi {
				continue
			}
			d = abs(x - ed.P)
		} else {
			if x < slo || x > shi {
				continue
			}
			d = abs(y - ed.P)
		}
		if d <= best {
			best = d
			edge = e
		}
	}
	return edge, edge >= 0
}

// edgeSpan returns the edge's extent along the orthogonal axis, as the
// union of its flanking panes' extents.
func (g *Graph) edgeSpan(e int) (lo, hi float64) {
	ed := &g.edges[e]
	before, after := g.PaneRect(ed.Before), g.PaneRect(ed.After)
	if ed.Axis == Vertical {
		lo, hi = min(before.Top, after.Top), max(before.Bottom, after.Bottom)
	} else {
		lo, hi = min(before.Left, after.Left), max(before.Right, after.Right)
	}
	return lo, hi
}
