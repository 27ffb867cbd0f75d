package tiling

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/matzehuels/tilegrid/pkg/observability"
)

var (
	// ErrDragActive is returned by the Start methods when a gesture is
	// already in progress. The controller handles one gesture at a time.
	ErrDragActive = errors.New("drag session already active")

	// ErrUnknownEdge is returned by [Engine.StartEdgeDrag] when the edge
	// index is out of range for the current graph.
	ErrUnknownEdge = errors.New("unknown edge")

	// ErrUnknownPane is returned by [Engine.StartCornerDrag] when no pane
	// with the given identifier exists in the current graph.
	ErrUnknownPane = errors.New("unknown pane")
)

// cornerActivationSq is the squared pixel displacement a corner gesture must
// cover before the split axis is classified. Comparing squared distances
// avoids a root computation; 400 corresponds to 20 pixels.
const cornerActivationSq = 400.0

// SessionKind distinguishes edge-resize gestures from corner gestures.
type SessionKind int

const (
	SessionEdge SessionKind = iota
	SessionCorner
)

// String returns "edge" or "corner".
func (k SessionKind) String() string {
	if k == SessionCorner {
		return "corner"
	}
	return "edge"
}

// Refresher receives refresh signals for panes whose on-screen position must
// be resynchronized from their current percentage geometry. How the refresh
// happens (direct style mutation, re-render) is up to the rendering layer.
type Refresher interface {
	RefreshPane(id string)
}

// session is the transient state for one gesture. It references objects from
// exactly one graph generation and must not survive that graph's disposal: a
// rebuild mid-gesture bumps the engine generation and the next pointer event
// discards the session instead of writing into stale indices.
type session struct {
	kind SessionKind
	gen  uint64

	// Edge gestures.
	edge         int
	lo, hi       float64
	dragSiblings bool

	// Corner gestures.
	pane      int
	corner    Corner
	throttled Point

	last Point
}

// Engine is the drag controller: a reusable interaction state machine with
// states Idle, DraggingEdge and DraggingCorner. It owns the current graph,
// rebuilding it wholesale whenever the caller supplies a new pane list.
//
// All methods must be called from a single goroutine, in event delivery
// order. Calling a per-gesture method without an active session is a
// programming error and panics.
type Engine struct {
	// OnChange, when set, receives the committed pane list after every edge
	// gesture. When nil the engine runs uncontrolled: it keeps its own
	// derived state and asks the Refresher to resynchronize instead.
	OnChange func(panes []PaneDef)

	// OnSplitIntent receives the candidate split axis detected by a corner
	// gesture. Pane subdivision itself is not performed by the engine; this
	// is the extension point for callers that implement it.
	OnSplitIntent func(paneID string, axis Axis)

	// Refresher receives per-pane refresh signals during and after drags.
	Refresher Refresher

	defs      []PaneDef
	graph     *Graph
	gen       uint64
	container ContainerBounds
	session   *session
}

// NewEngine returns an idle engine with no panes.
func NewEngine() *Engine { return &Engine{} }

// SetPanes replaces the pane list and rebuilds the adjacency graph from
// scratch. Any active drag session now references a stale graph and is
// implicitly cancelled on its next pointer event.
func (e *Engine) SetPanes(defs []PaneDef) {
	ctx := context.Background()
	observability.Layout().OnBuildStart(ctx, len(defs))
	start := time.Now()
	e.defs = slices.Clone(defs)
	e.graph = Build(e.defs)
	e.gen++
	observability.Layout().OnBuildComplete(ctx, e.graph.PaneCount(), e.graph.EdgeCount(), time.Since(start))
}

// SetContainerBounds updates the cached pixel bounding box used for pointer
// conversion. Called on mount and on resize; it does not interrupt an
// active drag.
func (e *Engine) SetContainerBounds(b ContainerBounds) { e.container = b }

// Graph returns the current adjacency graph, or nil before the first
// SetPanes.
func (e *Engine) Graph() *Graph { return e.graph }

// Panes returns the current pane list with live derived geometry, pruned of
// degenerate panes. This is what an edge-gesture commit would emit.
func (e *Engine) Panes() []PaneDef {
	if e.graph == nil {
		return nil
	}
	return Commit(e.graph, e.defs)
}

// Dragging reports whether a gesture is in progress.
func (e *Engine) Dragging() bool { return e.session != nil }

// StartEdgeDrag begins an edge-resize gesture on pointer-down over an edge
// handle. solo requests an isolated drag that breaks alignment with the
// edge's siblings; it is honored only when the edge is breakable, otherwise
// siblings move together as usual.
func (e *Engine) StartEdgeDrag(edge int, pointer Point, solo bool) error {
	if e.session != nil {
		return ErrDragActive
	}
	if e.graph == nil || edge < 0 || edge >= e.graph.EdgeCount() {
		return ErrUnknownEdge
	}
	lo, hi := e.graph.DragBounds(edge)
	e.session = &session{
		kind:         SessionEdge,
		gen:          e.gen,
		edge:         edge,
		lo:           lo,
		hi:           hi,
		dragSiblings: !(solo && e.graph.Breakable(edge)),
		last:         pointer,
	}
	observability.Layout().OnDragStart(context.Background(), SessionEdge.String())
	return nil
}

// StartCornerDrag begins a corner gesture on pointer-down over a pane's
// corner handle. The gesture only ever detects split intent; no structural
// mutation follows.
func (e *Engine) StartCornerDrag(paneID string, corner Corner, pointer Point) error {
	if e.session != nil {
		return ErrDragActive
	}
	if e.graph == nil {
		return ErrUnknownPane
	}
	i, ok := e.graph.PaneIndex(paneID)
	if !ok {
		return ErrUnknownPane
	}
	e.session = &session{
		kind:      SessionCorner,
		gen:       e.gen,
		pane:      i,
		corner:    corner,
		throttled: pointer,
		last:      pointer,
	}
	observability.Layout().OnDragStart(context.Background(), SessionCorner.String())
	return nil
}

// PointerMove processes a pointer-move event for the active session.
// Panics when no session is active.
func (e *Engine) PointerMove(p Point) {
	s := e.mustSession("pointer-move")
	if s.gen != e.gen {
		// The graph was rebuilt mid-gesture; the session's indices are
		// stale and writing through them is implicit cancellation.
		e.session = nil
		return
	}
	switch s.kind {
	case SessionEdge:
		e.moveEdge(s, p)
	case SessionCorner:
		e.moveCorner(s, p)
	}
}

func (e *Engine) moveEdge(s *session, p Point) {
	if p == s.last {
		return // duplicate event
	}
	s.last = p

	ed := e.graph.Edge(s.edge)
	pct, ok := e.toPercent(p, ed.Axis)
	if !ok {
		return
	}
	pct = clamp(pct, s.lo, s.hi)

	targets := []int{s.edge}
	if s.dragSiblings {
		targets = append(targets, e.graph.Siblings(s.edge)...)
	}
	var refreshed []int
	for _, m := range targets {
		me := e.graph.Edge(m)
		if me.P == pct {
			continue
		}
		me.P = pct
		refreshed = append(refreshed, me.Before, me.After)
	}
	e.refresh(refreshed)
}

func (e *Engine) moveCorner(s *session, p Point) {
	s.last = p
	dx, dy := p.X-s.throttled.X, p.Y-s.throttled.Y
	if dx*dx+dy*dy < cornerActivationSq {
		return
	}
	axis := Horizontal
	if abs(dx) > abs(dy) {
		axis = Vertical
	}
	if e.OnSplitIntent != nil {
		e.OnSplitIntent(e.graph.Pane(s.pane).ID, axis)
	}
	s.throttled = p
}

// PointerUp ends the active session. Edge gestures commit the geometry of
// the last processed move; corner gestures are discarded, as subdivision is
// only ever detected, not performed. Panics when no session is active.
func (e *Engine) PointerUp() {
	s := e.mustSession("pointer-up")
	if s.gen == e.gen && s.kind == SessionEdge {
		e.commit()
	}
	e.session = nil
}

// PointerLeave handles the pointer leaving the tracked surface, which ends
// the gesture exactly like pointer-up. Panics when no session is active.
func (e *Engine) PointerLeave() {
	e.mustSession("pointer-leave")
	e.PointerUp()
}

func (e *Engine) commit() {
	committed := Commit(e.graph, e.defs)
	observability.Layout().OnCommit(context.Background(), len(committed), len(e.defs)-len(committed))
	if e.OnChange != nil {
		e.OnChange(committed)
		return
	}
	// Uncontrolled mode: no external state owner, resynchronize locally
	// from the derived geometry.
	var all []int
	for i := 0; i < e.graph.PaneCount(); i++ {
		all = append(all, i)
	}
	e.refresh(all)
}

func (e *Engine) refresh(panes []int) {
	if e.Refresher == nil || len(panes) == 0 {
		return
	}
	seen := make(map[int]bool, len(panes))
	for _, i := range panes {
		if seen[i] {
			continue
		}
		seen[i] = true
		e.Refresher.RefreshPane(e.graph.Pane(i).ID)
	}
}

func (e *Engine) mustSession(op string) *session {
	if e.session == nil {
		panic("tiling: " + op + " without an active drag session")
	}
	return e.session
}

// toPercent converts a container-relative pixel coordinate to a percentage
// along the given axis. Reports false when the container size is unknown,
// in which case the move is a no-op.
func (e *Engine) toPercent(p Point, axis Axis) (float64, bool) {
	c := e.container
	if axis == Vertical {
		if c.Width <= 0 {
			return 0, false
		}
		return (p.X - c.X) / c.Width * 100, true
	}
	if c.Height <= 0 {
		return 0, false
	}
	return (p.Y - c.Y) / c.Height * 100, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
