package layout

import (
	"context"
	"testing"
)

func TestBoundsOfPadsExtent(t *testing.T) {
	nodes := nodesOf("a", "b")
	pos := map[string]Point{
		"a": {X: 0, Y: 0},
		"b": {X: 300, Y: 200},
	}

	b := boundsOf(nodes, pos)
	if b.minX != -GroupPadding || b.minY != -GroupPadding {
		t.Errorf("min = (%v, %v), want (%v, %v)", b.minX, b.minY, -GroupPadding, -GroupPadding)
	}
	if got, want := b.width(), 300+220+2*GroupPadding; got != want {
		t.Errorf("width = %v, want %v", got, want)
	}
	if got, want := b.height(), 200+80+2*GroupPadding; got != want {
		t.Errorf("height = %v, want %v", got, want)
	}
}

func TestBoundsOfEmptyGroup(t *testing.T) {
	b := boundsOf(nil, nil)
	if b.width() != 2*GroupPadding || b.height() != 2*GroupPadding {
		t.Errorf("empty bounds = %vx%v, want padded point", b.width(), b.height())
	}
}

func TestSuperEdgesCollapsesMultiplicity(t *testing.T) {
	entityGroup := map[string]string{
		"f1": "a.go", "f2": "a.go",
		"g1": "b.go", "g2": "b.go",
	}
	cross := []edgeRef{
		{source: "f1", target: "g1"},
		{source: "f2", target: "g2"}, // same ordered group pair
		{source: "g1", target: "f1"}, // reverse pair is distinct
		{source: "f1", target: "ghost"},
	}

	edges := superEdges(cross, entityGroup)
	if len(edges) != 2 {
		t.Fatalf("super edges = %d, want 2", len(edges))
	}
	if edges[0].from != "a.go" || edges[0].to != "b.go" {
		t.Errorf("first super edge = %+v, want a.go->b.go", edges[0])
	}
	if edges[1].from != "b.go" || edges[1].to != "a.go" {
		t.Errorf("second super edge = %+v, want b.go->a.go", edges[1])
	}
}

func TestSuperLayoutSeparatesGroups(t *testing.T) {
	files := []string{"a.go", "b.go"}
	bounds := map[string]groupBounds{
		"a.go": {minX: -32, minY: -32, maxX: 252, maxY: 112},
		"b.go": {minX: -32, minY: -32, maxX: 252, maxY: 112},
	}
	edges := []layoutEdge{{from: "a.go", to: "b.go"}}

	pos := superLayout(context.Background(), files, bounds, edges, DefaultStrategy(), &layeredLayouter{})
	if len(pos) != 2 {
		t.Fatalf("super positions = %d, want 2", len(pos))
	}
	a := Rect{X: pos["a.go"].X, Y: pos["a.go"].Y, W: bounds["a.go"].width(), H: bounds["a.go"].height()}
	b := Rect{X: pos["b.go"].X, Y: pos["b.go"].Y, W: bounds["b.go"].width(), H: bounds["b.go"].height()}
	if a.Intersects(b) {
		t.Errorf("super-node slots overlap: %+v vs %+v", a, b)
	}
}

func TestTranslateLiftsLocalIntoSlot(t *testing.T) {
	local := map[string]Point{"f1": {X: 0, Y: 0}}
	b := groupBounds{minX: -GroupPadding, minY: -GroupPadding, maxX: 252, maxY: 112}

	global := translate(local, b, Point{X: 500, Y: 300})
	want := Point{X: 500 + GroupPadding, Y: 300 + GroupPadding}
	if global["f1"] != want {
		t.Errorf("global = %+v, want %+v", global["f1"], want)
	}
}
