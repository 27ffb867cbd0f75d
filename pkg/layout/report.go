package layout

import (
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// =============================================================================
// Report - Adjacency Graph Analysis
// =============================================================================

// Report is the serializable view of a built adjacency graph.
// It is derived data: rebuild it from the layout rather than storing it.
type Report struct {
	PaneCount int          `json:"pane_count" bson:"pane_count"`
	EdgeCount int          `json:"edge_count" bson:"edge_count"`
	Edges     []EdgeReport `json:"edges,omitempty" bson:"edges,omitempty"`
}

// EdgeReport describes a single shared edge of the adjacency graph.
type EdgeReport struct {
	Index     int      `json:"index" bson:"index"`
	Axis      string   `json:"axis" bson:"axis"`
	Position  float64  `json:"position" bson:"position"`
	Before    []string `json:"before" bson:"before"`
	After     []string `json:"after" bson:"after"`
	Siblings  []int    `json:"siblings,omitempty" bson:"siblings,omitempty"`
	Breakable bool     `json:"breakable" bson:"breakable"`
	Min       float64  `json:"min" bson:"min"`
	Max       float64  `json:"max" bson:"max"`
}

// BuildReport analyzes a layout and returns the edge report for its
// adjacency graph. Edge indices are stable for a given layout: the same
// panes in the same order always produce the same report.
func BuildReport(l Layout) Report {
	g := tiling.Build(l.ToDefs())

	r := Report{
		PaneCount: g.PaneCount(),
		EdgeCount: g.EdgeCount(),
	}
	for i := 0; i < g.EdgeCount(); i++ {
		e := g.Edge(i)
		lo, hi := g.DragBounds(i)
		r.Edges = append(r.Edges, EdgeReport{
			Index:     i,
			Axis:      e.Axis.String(),
			Position:  e.P,
			Before:    paneIDs(g, []int{e.Before}),
			After:     paneIDs(g, []int{e.After}),
			Siblings:  g.Siblings(i),
			Breakable: g.Breakable(i),
			Min:       lo,
			Max:       hi,
		})
	}
	return r
}

func paneIDs(g *tiling.Graph, idx []int) []string {
	ids := make([]string, len(idx))
	for i, p := range idx {
		ids[i] = g.Pane(p).Def().ID
	}
	return ids
}
