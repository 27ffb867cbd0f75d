// Package layout defines the canonical serialization format for tiling
// layouts and the analysis report derived from an adjacency graph.
//
// A [Layout] is the wire shape exchanged with the API, stored in
// snapshots and written by the export command. It is deliberately flat:
// a list of panes with percentage bounds, plus optional sizing hints and
// caller-owned properties. Conversion to and from the engine's
// [tiling.PaneDef] is lossless.
//
// A [Report] is the serializable view of a built adjacency graph: every
// edge with its position, flanking panes, collinear siblings and
// breakability. Reports back the inspect command and the analyze API
// endpoint.
//
// The format is human-readable and designed for round-trip fidelity:
// import, resize, export and re-import produce identical results.
package layout
