// Package graph provides serialization types for call graphs and layouts.
//
// This package defines the canonical wire format for GoFlow's graph data,
// used for JSON files, API requests, caching, and the layout archive.
//
// # Architecture
//
// The package sits at the serialization boundary between the layout engine
// and external collaborators:
//
//   - [Graph]: inbound call graph (entities + relationships), as delivered
//     by the graph-extraction collaborator
//   - [Layout]: outbound positioned graph (entities with coordinates, edges,
//     per-file containers), consumed by the rendering layer
//
// pkg/layout consumes a Graph and produces a Layout; nothing in this package
// computes positions.
//
// # Graph Serialization
//
// Graphs use a flat entity-link JSON format:
//
//	{
//	  "entities": [
//	    {"id": "main.go:run", "kind": "function", "file": "main.go"},
//	    {"id": "config.go:Config", "kind": "struct", "file": "config.go"}
//	  ],
//	  "edges": [
//	    {"source": "main.go:run", "target": "config.go:Config", "kind": "uses"}
//	  ]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("callgraph.json") // File → Graph
//	clean, dropped := g.Sanitize()                // drop malformed edges
//	data, _ := graph.MarshalGraph(g)              // Graph → []byte
//
// # Ordering
//
// Entity order is load-bearing: the grouping rule picks the first referencing
// callable in entity order, so serialization must never reorder entities or
// edges. All marshal/unmarshal helpers preserve input order.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
