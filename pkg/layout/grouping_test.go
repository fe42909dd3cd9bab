package layout

import (
	"testing"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/graph"
)

func callable(id, file string) graph.Entity {
	return graph.Entity{ID: id, Kind: graph.KindFunction, File: file, Width: graph.CallableWidth, Height: graph.CallableMinHeight}
}

func decl(id, file string) graph.Entity {
	return graph.Entity{ID: id, Kind: graph.KindStruct, File: file, Width: graph.DeclWidth, Height: graph.DeclHeight}
}

func TestBuildGroupsCallablesByFile(t *testing.T) {
	g := graph.Graph{
		Entities: []graph.Entity{
			callable("f1", "a.go"),
			callable("f2", "b.go"),
			callable("f3", "a.go"),
		},
	}

	groups, cross := buildGroups(g)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if len(cross) != 0 {
		t.Errorf("cross edges = %d, want 0", len(cross))
	}

	// First-assignment order: a.go seen before b.go.
	if groups[0].File != "a.go" || groups[1].File != "b.go" {
		t.Errorf("group order = [%s, %s], want [a.go, b.go]", groups[0].File, groups[1].File)
	}
	if len(groups[0].Callables) != 2 || len(groups[1].Callables) != 1 {
		t.Errorf("callable counts = %d/%d, want 2/1", len(groups[0].Callables), len(groups[1].Callables))
	}
}

func TestBuildGroupsDeclarationAnchor(t *testing.T) {
	// d1 is used by f2 (b.go), so it groups with b.go despite being declared
	// in a.go. The anchor is the first referencing callable in entity order.
	g := graph.Graph{
		Entities: []graph.Entity{
			callable("f1", "a.go"),
			callable("f2", "b.go"),
			decl("d1", "a.go"),
		},
		Edges: []graph.Relationship{
			{Source: "f2", Target: "d1", Kind: graph.EdgeUses},
		},
	}

	groups, _ := buildGroups(g)
	var bGroup *FileGroup
	for _, fg := range groups {
		if fg.File == "b.go" {
			bGroup = fg
		}
	}
	if bGroup == nil {
		t.Fatal("no group for b.go")
	}
	if len(bGroup.Declarations) != 1 || bGroup.Declarations[0].Decl.ID != "d1" {
		t.Fatalf("d1 not anchored to b.go: %+v", bGroup.Declarations)
	}
	if bGroup.Declarations[0].Caller != "f2" {
		t.Errorf("caller = %q, want f2", bGroup.Declarations[0].Caller)
	}
}

func TestBuildGroupsFirstCallerWins(t *testing.T) {
	// Both f1 and f2 use d1; f1 comes first in entity order, so it anchors.
	g := graph.Graph{
		Entities: []graph.Entity{
			callable("f1", "a.go"),
			callable("f2", "b.go"),
			decl("d1", "c.go"),
		},
		Edges: []graph.Relationship{
			{Source: "f2", Target: "d1", Kind: graph.EdgeUses},
			{Source: "f1", Target: "d1", Kind: graph.EdgeUses},
		},
	}

	groups, _ := buildGroups(g)
	if groups[0].File != "a.go" {
		t.Fatalf("first group = %s, want a.go", groups[0].File)
	}
	if len(groups[0].Declarations) != 1 || groups[0].Declarations[0].Caller != "f1" {
		t.Errorf("d1 should anchor to f1 in a.go, got %+v", groups[0].Declarations)
	}
}

func TestBuildGroupsOrphanDeclarationFallsBackToOwnFile(t *testing.T) {
	g := graph.Graph{
		Entities: []graph.Entity{
			callable("f1", "a.go"),
			decl("d1", "types.go"),
		},
	}

	groups, _ := buildGroups(g)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[1].File != "types.go" {
		t.Fatalf("second group = %s, want types.go", groups[1].File)
	}
	b := groups[1].Declarations[0]
	if b.Decl.ID != "d1" || b.Caller != "" {
		t.Errorf("orphan binding = %+v, want d1 with empty caller", b)
	}
}

func TestBuildGroupsEdgeClassification(t *testing.T) {
	g := graph.Graph{
		Entities: []graph.Entity{
			callable("f1", "a.go"),
			callable("f2", "a.go"),
			callable("f3", "b.go"),
		},
		Edges: []graph.Relationship{
			{Source: "f1", Target: "f2", Kind: graph.EdgeCalls}, // internal to a.go
			{Source: "f1", Target: "f3", Kind: graph.EdgeCalls}, // crosses to b.go
		},
	}

	groups, cross := buildGroups(g)
	if len(groups[0].Internal) != 1 || groups[0].Internal[0].Target != "f2" {
		t.Errorf("a.go internal edges = %+v, want one f1->f2", groups[0].Internal)
	}
	if len(cross) != 1 || cross[0].Target != "f3" {
		t.Errorf("cross edges = %+v, want one f1->f3", cross)
	}
}

func TestBuildGroupsDeterministic(t *testing.T) {
	g := graph.Graph{
		Entities: []graph.Entity{
			callable("f1", "a.go"),
			callable("f2", "b.go"),
			decl("d1", "a.go"),
			decl("d2", "b.go"),
		},
		Edges: []graph.Relationship{
			{Source: "f1", Target: "d1", Kind: graph.EdgeUses},
			{Source: "f2", Target: "d2", Kind: graph.EdgeUses},
			{Source: "f1", Target: "f2", Kind: graph.EdgeCalls},
		},
	}

	first, _ := buildGroups(g)
	for i := 0; i < 5; i++ {
		again, _ := buildGroups(g)
		if len(again) != len(first) {
			t.Fatalf("run %d: group count changed", i)
		}
		for j := range again {
			if again[j].File != first[j].File {
				t.Fatalf("run %d: group order changed at %d: %s vs %s", i, j, again[j].File, first[j].File)
			}
			if len(again[j].Callables) != len(first[j].Callables) || len(again[j].Declarations) != len(first[j].Declarations) {
				t.Fatalf("run %d: membership changed for %s", i, again[j].File)
			}
		}
	}
}

func TestInternalCallEdgesFiltersUses(t *testing.T) {
	fg := &FileGroup{
		Callables: []graph.Entity{callable("f1", "a.go"), callable("f2", "a.go")},
		Internal: []graph.Relationship{
			{Source: "f1", Target: "f2", Kind: graph.EdgeCalls},
			{Source: "f1", Target: "d1", Kind: graph.EdgeUses},
		},
	}
	edges := fg.internalCallEdges()
	if len(edges) != 1 || edges[0].from != "f1" || edges[0].to != "f2" {
		t.Errorf("internalCallEdges = %+v, want single f1->f2", edges)
	}
}
