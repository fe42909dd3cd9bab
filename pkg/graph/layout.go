package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Positioned Graph Serialization
// =============================================================================

// Layout is the serialization format for a fully positioned call graph.
// It is what the layout engine hands to renderers and what gets cached,
// archived, and served over HTTP.
//
// Entities carry final global coordinates, edges are the sanitized input
// edges in their original order, and Containers hold one synthetic record
// per source file describing the box drawn around that file's cluster.
type Layout struct {
	Entities   []Entity       `json:"entities" bson:"entities"`
	Edges      []Relationship `json:"edges" bson:"edges"`
	Containers []Container    `json:"containers,omitempty" bson:"containers,omitempty"`

	// Strategy echo, so a cached layout is self-describing.
	Algorithm string  `json:"algorithm,omitempty" bson:"algorithm,omitempty"`
	Direction string  `json:"direction,omitempty" bson:"direction,omitempty"`
	Seed      uint64  `json:"seed,omitempty" bson:"seed,omitempty"`
	Width     float64 `json:"width,omitempty" bson:"width,omitempty"`
	Height    float64 `json:"height,omitempty" bson:"height,omitempty"`
}

// Container is the synthetic per-file record emitted alongside positioned
// entities: the bounding box drawn around one file's cluster.
type Container struct {
	File        string  `json:"file" bson:"file"`
	EntityCount int     `json:"entity_count" bson:"entity_count"`
	X           float64 `json:"x" bson:"x"`
	Y           float64 `json:"y" bson:"y"`
	Width       float64 `json:"width" bson:"width"`
	Height      float64 `json:"height" bson:"height"`
}

// Right returns the container's right edge.
func (c Container) Right() float64 { return c.X + c.Width }

// Bottom returns the container's bottom edge.
func (c Container) Bottom() float64 { return c.Y + c.Height }

// Overlaps reports whether two containers intersect with zero tolerance.
func (c Container) Overlaps(o Container) bool {
	return c.X < o.Right() && o.X < c.Right() && c.Y < o.Bottom() && o.Y < c.Bottom()
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
