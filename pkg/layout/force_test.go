package layout

import (
	"context"
	"math"
	"testing"
)

func TestForceSeededRunsAreIdentical(t *testing.T) {
	nodes := nodesOf("a", "b", "c", "d", "e")
	edges := []layoutEdge{
		{from: "a", to: "b"},
		{from: "b", to: "c"},
		{from: "a", to: "d"},
		{from: "d", to: "e"},
	}
	s := Strategy{Algorithm: AlgorithmForce, Seed: 42}.Normalized()

	first := (&forceLayouter{seed: 42}).layoutGroup(context.Background(), nodes, edges, s)
	second := (&forceLayouter{seed: 42}).layoutGroup(context.Background(), nodes, edges, s)

	for id, p := range first {
		if q := second[id]; p != q {
			t.Errorf("%s moved between seeded runs: %+v vs %+v", id, p, q)
		}
	}
}

func TestForceNoOverlaps(t *testing.T) {
	nodes := nodesOf("a", "b", "c", "d", "e", "f", "g", "h")
	edges := []layoutEdge{
		{from: "a", to: "b"},
		{from: "a", to: "c"},
		{from: "c", to: "d"},
	}
	s := Strategy{Algorithm: AlgorithmForce, Seed: 7}.Normalized()

	pos := (&forceLayouter{seed: 7}).layoutGroup(context.Background(), nodes, edges, s)
	if len(pos) != len(nodes) {
		t.Fatalf("positions = %d, want %d", len(pos), len(nodes))
	}
	overlapAny(t, nodes, pos)
}

func TestForcePositionsAreFiniteAndNonNegative(t *testing.T) {
	nodes := nodesOf("a", "b", "c")
	s := Strategy{Algorithm: AlgorithmForce, Seed: 99}.Normalized()

	pos := (&forceLayouter{seed: 99}).layoutGroup(context.Background(), nodes, nil, s)
	for id, p := range pos {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Errorf("%s has non-finite position %+v", id, p)
		}
		if p.X < 0 || p.Y < 0 {
			t.Errorf("%s left the non-negative quadrant: %+v", id, p)
		}
	}
}

func TestForceSingleNodeAtOrigin(t *testing.T) {
	s := Strategy{Algorithm: AlgorithmForce, Seed: 1}.Normalized()
	pos := (&forceLayouter{seed: 1}).layoutGroup(context.Background(), nodesOf("only"), nil, s)
	if p := pos["only"]; p.X != 0 || p.Y != 0 {
		t.Errorf("single node should normalize to origin, got %+v", p)
	}
}

func TestForceEmptyGroup(t *testing.T) {
	pos := (&forceLayouter{}).layoutGroup(context.Background(), nil, nil, DefaultStrategy())
	if len(pos) != 0 {
		t.Errorf("empty group should produce no positions, got %+v", pos)
	}
}

func TestForceIgnoresMalformedEdges(t *testing.T) {
	nodes := nodesOf("a", "b")
	edges := []layoutEdge{
		{from: "a", to: "ghost"},
		{from: "a", to: "a"},
	}
	s := Strategy{Algorithm: AlgorithmForce, Seed: 3}.Normalized()

	pos := (&forceLayouter{seed: 3}).layoutGroup(context.Background(), nodes, edges, s)
	if len(pos) != 2 {
		t.Fatalf("positions = %d, want 2", len(pos))
	}
	overlapAny(t, nodes, pos)
}

func TestClampMove(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{30, 30},
		{1000, forceMaxMove},
		{-1000, -forceMaxMove},
	}
	for _, tt := range tests {
		if got := clampMove(tt.in); got != tt.want {
			t.Errorf("clampMove(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
