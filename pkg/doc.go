// Package pkg provides the core libraries for tilegrid layout analysis.
//
// # Overview
//
// Tilegrid models resizable tiling layouts: panes expressed in percentage
// coordinates, the shared edges between them, and the interactions that
// move those edges. The pkg directory is organized into these areas:
//
//  1. [tiling] - Domain logic (adjacency graph, drag controller, commit)
//  2. [layout] - Serialization types and adjacency reports
//  3. [manifest] - TOML manifest parsing
//  4. [render] - Plan and adjacency visualizations
//  5. [pipeline] - Orchestration (load, analyze, render) with caching
//
// # Architecture
//
// The typical data flow through tilegrid:
//
//	TOML Manifest / JSON Layout
//	         |
//	    layout.Layout
//	         |
//	    tiling.Build (adjacency graph)
//	         |
//	    layout.BuildReport     tiling.Engine (interactive drags)
//	         |
//	    render (plan / adjacency diagrams)
//
// Supporting packages: [cache] for content-addressed report and artifact
// caching, [snapshot] for shareable stored layouts, [observability] for
// hook-based instrumentation, [errors] for coded errors and validation,
// and [buildinfo] for version metadata.
package pkg
