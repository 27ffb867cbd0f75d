// Package tiling implements an interactive tiling-layout engine.
//
// Given a set of axis-aligned rectangular panes that together tile a
// container in percentage coordinates, the package discovers their adjacency
// structure, lets a caller resize pane boundaries by dragging shared edges
// (with synchronized movement of visually aligned boundaries), and commits
// the resulting geometry back as an updated pane list.
//
// # Architecture
//
// The package is built from four pieces:
//
//   - [Build]: pure function from a pane list to an adjacency [Graph]
//   - sibling grouping: collinear edges are clustered into movement groups
//   - [Engine]: stateful drag controller driving edge and corner gestures
//     from pointer events
//   - [Commit]: converts live graph state back into the external pane-list
//     representation, dropping collapsed panes
//
// Data flows one way per gesture: pane list → graph build → drag mutates
// edge positions in place → commit reads final pane rectangles → change
// callback. The graph is rebuilt wholesale on every new pane list; there is
// no incremental patching.
//
// # Graph Representation
//
// Panes and edges reference each other cyclically (pane → bordering edges,
// edge → flanking panes). Both live in flat arrays owned by the [Graph] and
// refer to each other by index, so disposing of a graph is simply dropping
// the value - no unlinking pass is needed.
//
// # Coordinates
//
// Pane geometry is expressed in percentages of the container, with top-left
// origin: 0 ≤ left < right ≤ 100 and 0 ≤ top < bottom ≤ 100. Pointer input
// arrives in container-relative pixels and is converted using the cached
// container bounds:
//
//	pct = (client - containerOrigin) / containerSize × 100
//
// Two coordinates are considered coincident when they differ by less than
// [Epsilon] (0.1 percentage units).
//
// # Malformed Input
//
// Build does not validate that the input actually tiles the container. Gaps
// and overlaps degrade gracefully to fewer detected adjacencies; a pane with
// no neighbor on a side defaults that side to the container boundary when
// geometry is derived.
//
// # Concurrency
//
// The engine is single-threaded and event-driven: all work happens
// synchronously inside pointer and resize handlers. Nothing in this package
// is safe for concurrent use.
package tiling
