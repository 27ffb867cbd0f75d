package tiling

import "testing"

func TestCommitRefreshesBounds(t *testing.T) {
	defs := twoPanes()
	g := Build(defs)
	g.Edge(0).P = 30

	out := Commit(g, defs)
	if len(out) != 2 {
		t.Fatalf("committed %d panes, want 2", len(out))
	}
	if out[0].Bounds.Right != 30 || out[1].Bounds.Left != 30 {
		t.Errorf("bounds not refreshed: %+v", out)
	}
}

func TestCommitPrunesCollapsedPanes(t *testing.T) {
	defs := twoPanes()
	g := Build(defs)
	// Collapse pane a to zero width.
	g.Edge(0).P = 0

	out := Commit(g, defs)
	if len(out) != 1 {
		t.Fatalf("committed %d panes, want 1", len(out))
	}
	if out[0].ID != "b" {
		t.Errorf("surviving pane = %s, want b", out[0].ID)
	}
	if out[0].Bounds.Left != 0 || out[0].Bounds.Right != 100 {
		t.Errorf("surviving pane bounds = %+v, want full width", out[0].Bounds)
	}
}

func TestCommitOmitsUnknownPanes(t *testing.T) {
	defs := twoPanes()
	g := Build(defs)

	// The original list carries a pane the graph has never seen.
	extended := append(defs, PaneDef{ID: "ghost", Bounds: Rect{Top: 0, Right: 10, Bottom: 10, Left: 0}})
	out := Commit(g, extended)
	if len(out) != 2 {
		t.Fatalf("committed %d panes, want 2", len(out))
	}
	for _, p := range out {
		if p.ID == "ghost" {
			t.Error("unknown pane survived commit")
		}
	}
}

func TestCommitPreservesOrderAndProps(t *testing.T) {
	defs := grid2x2()
	defs[2].Props = map[string]any{"color": "blue"}
	defs[2].MinWidth = 10

	g := Build(defs)
	out := Commit(g, defs)

	if len(out) != 4 {
		t.Fatalf("committed %d panes, want 4", len(out))
	}
	for i, p := range out {
		if p.ID != defs[i].ID {
			t.Errorf("out[%d] = %s, want %s (input order must be preserved)", i, p.ID, defs[i].ID)
		}
	}
	if out[2].Props["color"] != "blue" || out[2].MinWidth != 10 {
		t.Errorf("caller-owned fields not carried through: %+v", out[2])
	}
}
