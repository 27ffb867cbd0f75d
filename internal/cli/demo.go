package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// demoStatusRows is the number of terminal rows reserved below the layout.
const demoStatusRows = 2

// demoEdgeTol is the hit-test tolerance in percentage units. Terminal cells
// are coarse, so this is wider than a pixel UI would use.
const demoEdgeTol = 1.5

// demoCommand creates the demo command for interactive edge dragging.
func (c *CLI) demoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo [layout.toml|layout.json]",
		Short: "Drag pane edges interactively in the terminal",
		Long: `Drag pane edges interactively in the terminal.

The demo renders a layout as a character grid and wires terminal mouse
events into the drag controller. Click near a shared edge and drag it;
collinear edges move together. Hold shift while dragging a breakable
edge to move it alone.

Without an argument a built-in 2x2 layout is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := demoLayout()
			if len(args) == 1 {
				var err error
				l, err = loadInput(args[0])
				if err != nil {
					return err
				}
			}
			p := tea.NewProgram(newDemoModel(l), tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err := p.Run()
			return err
		},
	}
	return cmd
}

// demoLayout is the built-in fallback: a 2x2 grid with an uneven split.
func demoLayout() layout.Layout {
	return layout.Layout{Panes: []layout.Pane{
		{ID: "editor", Top: 0, Right: 60, Bottom: 70, Left: 0},
		{ID: "preview", Top: 0, Right: 100, Bottom: 70, Left: 60},
		{ID: "terminal", Top: 70, Right: 60, Bottom: 100, Left: 0},
		{ID: "logs", Top: 70, Right: 100, Bottom: 100, Left: 60},
	}}
}

// =============================================================================
// Model
// =============================================================================

type demoModel struct {
	engine *tiling.Engine
	width  int
	height int
	status string
}

func newDemoModel(l layout.Layout) demoModel {
	e := tiling.NewEngine()
	e.OnChange = func(panes []tiling.PaneDef) {
		// Re-adopt the committed list so pruning takes effect immediately.
		e.SetPanes(panes)
	}
	e.SetPanes(l.ToDefs())
	return demoModel{engine: e}
}

func (m demoModel) Init() tea.Cmd {
	return nil
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.engine.SetContainerBounds(tiling.ContainerBounds{
			Width:  float64(m.width),
			Height: float64(m.height - demoStatusRows),
		})

	case tea.MouseMsg:
		return m.updateMouse(msg), nil
	}
	return m, nil
}

func (m demoModel) updateMouse(msg tea.MouseMsg) demoModel {
	p := tiling.Point{X: float64(msg.X), Y: float64(msg.Y)}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.engine.Dragging() {
			return m
		}
		g := m.engine.Graph()
		px, py, ok := m.toPercent(msg.X, msg.Y)
		if !ok {
			return m
		}
		edge, hit := g.HitTest(px, py, demoEdgeTol)
		if !hit {
			m.status = "no edge here"
			return m
		}
		if err := m.engine.StartEdgeDrag(edge, p, msg.Shift); err != nil {
			return m
		}
		m.status = m.edgeStatus(edge, msg.Shift)

	case tea.MouseActionMotion:
		if !m.engine.Dragging() {
			return m
		}
		m.engine.PointerMove(p)

	case tea.MouseActionRelease:
		if !m.engine.Dragging() {
			return m
		}
		m.engine.PointerUp()
		m.status = "committed"
	}
	return m
}

func (m demoModel) edgeStatus(edge int, solo bool) string {
	ed := m.engine.Graph().Edge(edge)
	mode := "with siblings"
	if solo && m.engine.Graph().Breakable(edge) {
		mode = "solo"
	}
	return fmt.Sprintf("dragging %s edge @ %.1f%% (%s)", ed.Axis, ed.P, mode)
}

// toPercent maps a terminal cell to layout percentage coordinates.
func (m demoModel) toPercent(x, y int) (px, py float64, ok bool) {
	w, h := m.width, m.height-demoStatusRows
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	return float64(x) / float64(w-1) * 100, float64(y) / float64(h-1) * 100, true
}

// =============================================================================
// View
// =============================================================================

func (m demoModel) View() string {
	if m.width == 0 || m.height <= demoStatusRows {
		return ""
	}
	w, h := m.width, m.height-demoStatusRows

	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = make([]rune, w)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	g := m.engine.Graph()
	for i := 0; i < g.PaneCount(); i++ {
		r := g.PaneRect(i)
		x1, y1 := cellOf(r.Left, w), cellOf(r.Top, h)
		x2, y2 := cellOf(r.Right, w), cellOf(r.Bottom, h)
		drawBox(grid, x1, y1, x2, y2)
		drawLabel(grid, g.Pane(i).Def().ID, x1, y1, x2, y2)
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render("drag edges with the mouse · shift drags a breakable edge alone · q quits"))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StyleHighlight.Render(m.status))
	}
	return b.String()
}

// cellOf maps a percentage to a cell index in [0, n-1].
func cellOf(pct float64, n int) int {
	c := int(pct/100*float64(n-1) + 0.5)
	if c < 0 {
		c = 0
	}
	if c > n-1 {
		c = n - 1
	}
	return c
}

func drawBox(grid [][]rune, x1, y1, x2, y2 int) {
	for x := x1; x <= x2; x++ {
		grid[y1][x] = '─'
		grid[y2][x] = '─'
	}
	for y := y1; y <= y2; y++ {
		grid[y][x1] = '│'
		grid[y][x2] = '│'
	}
	grid[y1][x1], grid[y1][x2] = '┌', '┐'
	grid[y2][x1], grid[y2][x2] = '└', '┘'
}

func drawLabel(grid [][]rune, id string, x1, y1, x2, y2 int) {
	cy := (y1 + y2) / 2
	if x2-x1-1 < len(id) || cy <= y1 || cy >= y2 {
		return
	}
	start := x1 + 1 + (x2-x1-1-len(id))/2
	for i, r := range id {
		grid[cy][start+i] = r
	}
}
