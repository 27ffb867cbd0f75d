package tiling_test

import (
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/tiling"
)

func ExampleBuild() {
	// Two panes side by side, split at 50%.
	g := tiling.Build([]tiling.PaneDef{
		{ID: "left", Bounds: tiling.Rect{Top: 0, Right: 50, Bottom: 100, Left: 0}},
		{ID: "right", Bounds: tiling.Rect{Top: 0, Right: 100, Bottom: 100, Left: 50}},
	})

	e := g.Edge(0)
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Axis:", e.Axis)
	fmt.Println("Position:", e.P)
	fmt.Println("Breakable:", g.Breakable(0))
	// Output:
	// Edges: 1
	// Axis: vertical
	// Position: 50
	// Breakable: true
}

func ExampleEngine() {
	// Drive a full edge-resize gesture from pointer events.
	engine := tiling.NewEngine()
	engine.SetContainerBounds(tiling.ContainerBounds{Width: 1000, Height: 1000})
	engine.OnChange = func(panes []tiling.PaneDef) {
		for _, p := range panes {
			fmt.Printf("%s: left=%.0f right=%.0f\n", p.ID, p.Bounds.Left, p.Bounds.Right)
		}
	}

	engine.SetPanes([]tiling.PaneDef{
		{ID: "left", Bounds: tiling.Rect{Top: 0, Right: 50, Bottom: 100, Left: 0}},
		{ID: "right", Bounds: tiling.Rect{Top: 0, Right: 100, Bottom: 100, Left: 50}},
	})

	_ = engine.StartEdgeDrag(0, tiling.Point{X: 500, Y: 200}, false)
	engine.PointerMove(tiling.Point{X: 700, Y: 200})
	engine.PointerUp()
	// Output:
	// left: left=0 right=70
	// right: left=70 right=100
}

func ExampleCommit() {
	defs := []tiling.PaneDef{
		{ID: "left", Bounds: tiling.Rect{Top: 0, Right: 50, Bottom: 100, Left: 0}},
		{ID: "right", Bounds: tiling.Rect{Top: 0, Right: 100, Bottom: 100, Left: 50}},
	}
	g := tiling.Build(defs)

	// Collapse the left pane entirely: commit prunes it.
	g.Edge(0).P = 0
	for _, p := range tiling.Commit(g, defs) {
		fmt.Println(p.ID)
	}
	// Output:
	// right
}
