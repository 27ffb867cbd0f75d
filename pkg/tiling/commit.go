package tiling

// Commit converts live graph state back into the external pane-list
// representation. For each original pane it looks up the graph counterpart
// and, when present and non-degenerate, produces an updated descriptor with
// refreshed bounds and the identifier, hints and props carried through
// unchanged. Panes collapsed to zero width or height by a drag are pruned.
// Output order preserves the input order, minus omissions.
func Commit(g *Graph, original []PaneDef) []PaneDef {
	out := make([]PaneDef, 0, len(original))
	for _, d := range original {
		i, ok := g.PaneIndex(d.ID)
		if !ok {
			continue
		}
		r := g.PaneRect(i)
		if r.Width() <= 0 || r.Height() <= 0 {
			continue
		}
		d.Bounds = r
		out = append(out, d)
	}
	return out
}
