package graph

import (
	"encoding/json"
	"strings"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Entity kinds. Functions and methods are callable; everything else is a
// declaration (a type referenced by callables, positioned after them).
const (
	KindFunction  = "function"
	KindMethod    = "method"
	KindStruct    = "struct"
	KindInterface = "interface"
	KindEnum      = "enum"
	KindAlias     = "alias"
	KindTypeDecl  = "type"
)

// Edge kinds.
const (
	EdgeCalls = "calls"
	EdgeUses  = "uses"
)

// Default entity dimensions, in user units. Callable boxes have a fixed width
// and a code-derived height with a floor; declaration boxes are fixed-size.
const (
	CallableWidth     = 220.0
	CallableMinHeight = 80.0
	CallableLineStep  = 16.0
	DeclWidth         = 180.0
	DeclHeight        = 110.0
)

// =============================================================================
// Graph - Call Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for call graphs.
// Used for input files, API requests, storage, and caching.
//
// Entity and edge order is significant: grouping and layout treat the input
// order as the canonical iteration order, so round-tripping a Graph must
// preserve it.
type Graph struct {
	Entities []Entity       `json:"entities" bson:"entities"`
	Edges    []Relationship `json:"edges" bson:"edges"`
}

// =============================================================================
// Entity - Call Graph Node
// =============================================================================

// Entity is a node in the call graph: a callable (function or method) or a
// declaration (type referenced by callables). Every entity belongs to exactly
// one source file, which is its grouping key during layout.
type Entity struct {
	ID      string `json:"id" bson:"id"`
	Kind    string `json:"kind" bson:"kind"`
	File    string `json:"file" bson:"file"`
	Label   string `json:"label,omitempty" bson:"label,omitempty"`
	Code    string `json:"code,omitempty" bson:"code,omitempty"`
	EndLine int    `json:"end_line,omitempty" bson:"end_line,omitempty"`
	Hidden  bool   `json:"hidden,omitempty" bson:"hidden,omitempty"`

	// Dimensions and position. Zero dimensions are replaced with kind-derived
	// defaults before layout; positions are zero until the engine assigns them.
	Width  float64 `json:"width,omitempty" bson:"width,omitempty"`
	Height float64 `json:"height,omitempty" bson:"height,omitempty"`
	X      float64 `json:"x,omitempty" bson:"x,omitempty"`
	Y      float64 `json:"y,omitempty" bson:"y,omitempty"`
}

// IsCallable returns true for function and method entities.
func (e *Entity) IsCallable() bool {
	return e.Kind == KindFunction || e.Kind == KindMethod
}

// IsDeclaration returns true for non-callable entities (types, interfaces,
// enums, aliases). Unknown kinds are treated as declarations so they still
// receive a fallback position instead of disturbing the callable layout.
func (e *Entity) IsDeclaration() bool { return !e.IsCallable() }

// DisplayLabel returns the label if set, otherwise the ID.
func (e *Entity) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return e.ID
}

// DefaultDimensions returns the kind-derived box size for the entity.
// Callable height scales with the number of code lines, floored at
// CallableMinHeight. Declarations are fixed-size.
func (e *Entity) DefaultDimensions() (w, h float64) {
	if e.IsDeclaration() {
		return DeclWidth, DeclHeight
	}
	h = CallableMinHeight
	if e.Code != "" {
		if lines := strings.Count(e.Code, "\n") + 1; float64(lines)*CallableLineStep > h {
			h = float64(lines) * CallableLineStep
		}
	}
	return CallableWidth, h
}

// =============================================================================
// Relationship - Directed Call or Type-Use Edge
// =============================================================================

// Relationship represents a directed edge in the call graph. CallOrder and
// ReturnOrder carry execution-trace metadata; layout never interprets them,
// it only passes them through to the output.
type Relationship struct {
	Source      string `json:"source" bson:"source"`
	Target      string `json:"target" bson:"target"`
	Kind        string `json:"kind" bson:"kind"`
	CallOrder   int    `json:"call_order,omitempty" bson:"call_order,omitempty"`
	ReturnOrder int    `json:"return_order,omitempty" bson:"return_order,omitempty"`
}

// IsCall returns true for call edges between callables.
func (r *Relationship) IsCall() bool { return r.Kind == EdgeCalls }

// IsUse returns true for declaration-reference edges.
func (r *Relationship) IsUse() bool { return r.Kind == EdgeUses }

// =============================================================================
// Graph Methods
// =============================================================================

// EntityIndex returns a lookup from entity ID to its position in the entity
// list. Later duplicates do not shadow earlier ones.
func (g *Graph) EntityIndex() map[string]int {
	idx := make(map[string]int, len(g.Entities))
	for i, e := range g.Entities {
		if _, seen := idx[e.ID]; !seen {
			idx[e.ID] = i
		}
	}
	return idx
}

// Sanitize returns a copy of the graph with edges referencing unknown
// endpoints removed, along with the number of dropped edges. Entity order and
// the relative order of surviving edges are preserved.
func (g *Graph) Sanitize() (Graph, int) {
	idx := g.EntityIndex()
	out := Graph{
		Entities: append([]Entity(nil), g.Entities...),
		Edges:    make([]Relationship, 0, len(g.Edges)),
	}
	dropped := 0
	for _, e := range g.Edges {
		if _, ok := idx[e.Source]; !ok {
			dropped++
			continue
		}
		if _, ok := idx[e.Target]; !ok {
			dropped++
			continue
		}
		out.Edges = append(out.Edges, e)
	}
	return out, dropped
}

// Visible returns a copy of the graph without hidden entities. Edges touching
// a hidden entity are left in place; callers are expected to Sanitize after
// filtering.
func (g *Graph) Visible() Graph {
	out := Graph{Edges: append([]Relationship(nil), g.Edges...)}
	for _, e := range g.Entities {
		if !e.Hidden {
			out.Entities = append(out.Entities, e)
		}
	}
	return out
}

// ApplyDefaultDimensions fills in zero width/height values with kind-derived
// defaults. Explicit dimensions from the caller are kept as-is.
func (g *Graph) ApplyDefaultDimensions() {
	for i := range g.Entities {
		w, h := g.Entities[i].DefaultDimensions()
		if g.Entities[i].Width <= 0 {
			g.Entities[i].Width = w
		}
		if g.Entities[i].Height <= 0 {
			g.Entities[i].Height = h
		}
	}
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}
