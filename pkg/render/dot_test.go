package render

import (
	"context"
	"strings"
	"testing"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/graph"
)

func sampleLayout() graph.Layout {
	return graph.Layout{
		Entities: []graph.Entity{
			{ID: "main", Kind: graph.KindFunction, File: "main.go", X: 32, Y: 32, Width: 220, Height: 80},
			{ID: "helper", Kind: graph.KindFunction, File: "main.go", X: 32, Y: 192, Width: 220, Height: 80},
			{ID: "Config", Kind: graph.KindStruct, File: "main.go", Label: "Config", X: 300, Y: 32, Width: 180, Height: 60},
		},
		Edges: []graph.Relationship{
			{Source: "main", Target: "helper", Kind: graph.EdgeCalls},
			{Source: "main", Target: "Config", Kind: graph.EdgeUses},
		},
		Containers: []graph.Container{
			{File: "main.go", EntityCount: 3, X: 0, Y: 0, Width: 512, Height: 304},
		},
		Algorithm: "layered",
		Direction: "TB",
		Width:     512,
		Height:    304,
	}
}

func TestToDOTContainsNodesAndEdges(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{})

	for _, want := range []string{
		"digraph callgraph {",
		`"main" [`,
		`"helper" [`,
		`"Config" [`,
		`"main" -> "helper";`,
		`"main" -> "Config" [style=dotted];`,
		`label="main.go"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTPinsPositions(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{})

	// main center is (142, 72) in layout space; flipped y = 304 - 72 = 232.
	if !strings.Contains(dot, `pos="142,232!"`) {
		t.Errorf("expected pinned position for main, got:\n%s", dot)
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{Detailed: true})

	if !strings.Contains(dot, "function") || !strings.Contains(dot, "main.go") {
		t.Errorf("detailed labels should include kind and file:\n%s", dot)
	}
}

func TestToDOTEmitsCallOrder(t *testing.T) {
	l := sampleLayout()
	l.Edges[0].CallOrder = 1
	l.Edges[0].ReturnOrder = 4
	dot := ToDOT(l, Options{})

	if !strings.Contains(dot, `xlabel="1"`) {
		t.Errorf("call order should be emitted as an edge label:\n%s", dot)
	}
	if !strings.Contains(dot, `tooltip="returns #4"`) {
		t.Errorf("return order should be emitted as a tooltip:\n%s", dot)
	}
}

func TestToDOTQuotesSpecialCharacters(t *testing.T) {
	l := graph.Layout{
		Entities: []graph.Entity{
			{ID: `pkg."weird"`, Kind: graph.KindFunction, File: "a.go", Width: 220, Height: 80},
		},
		Width:  284,
		Height: 144,
	}
	dot := ToDOT(l, Options{})

	if !strings.Contains(dot, `"pkg.\"weird\""`) {
		t.Errorf("node ID should be quote-escaped:\n%s", dot)
	}
}

func TestToDOTEmptyLayout(t *testing.T) {
	dot := ToDOT(graph.Layout{}, Options{})

	if !strings.HasPrefix(dot, "digraph callgraph {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty layout should still be a valid digraph:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>` + "\n" +
		`<svg width="512pt" height="304pt" viewBox="0 0 512 304" xmlns="http://www.w3.org/2000/svg">` +
		`<g></g></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `width="100%"`) || !strings.Contains(out, `height="100%"`) {
		t.Errorf("width/height not normalized: %s", out)
	}
	if !strings.Contains(out, `viewBox="0 0 512 304"`) {
		t.Errorf("viewBox must be preserved: %s", out)
	}
}

func TestNormalizeViewBoxNonSVGPassthrough(t *testing.T) {
	in := []byte("not svg at all")
	if got := string(normalizeViewBox(in)); got != "not svg at all" {
		t.Errorf("non-SVG input should pass through, got %q", got)
	}
}

func TestRenderDispatch(t *testing.T) {
	l := sampleLayout()

	jsonOut, err := Render(context.Background(), l, FormatJSON, Options{})
	if err != nil {
		t.Fatalf("json render: %v", err)
	}
	if !strings.Contains(string(jsonOut), `"algorithm": "layered"`) {
		t.Errorf("json output missing algorithm echo")
	}

	dotOut, err := Render(context.Background(), l, FormatDOT, Options{})
	if err != nil {
		t.Fatalf("dot render: %v", err)
	}
	if !strings.HasPrefix(string(dotOut), "digraph") {
		t.Errorf("dot output should start with digraph")
	}

	if _, err := Render(context.Background(), l, "gif", Options{}); err == nil {
		t.Error("unsupported format should error")
	}
}
