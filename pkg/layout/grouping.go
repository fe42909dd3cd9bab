package layout

import (
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/graph"
)

// FileGroup is one per-file cluster: the callables owned by a file plus the
// declarations anchored there through their first referencing callable.
// Groups are derived fresh on every layout call and discarded afterwards.
type FileGroup struct {
	File string

	// Callables owned by this file, in input order.
	Callables []graph.Entity

	// Declarations anchored to this file, with their resolved caller.
	Declarations []DeclBinding

	// Internal edges: both endpoints assigned to this group. Only the calls
	// subset among callables feeds the per-group layout.
	Internal []graph.Relationship
}

// DeclBinding pairs a declaration entity with the callable that anchors it.
// Caller is empty when no referencing callable could be resolved; such
// declarations fall back to their own declared file for grouping and to the
// orphan grid for placement.
type DeclBinding struct {
	Decl   graph.Entity
	Caller string
}

// buildGroups partitions a sanitized graph into file groups and splits the
// edge set into per-group internal edges and cross-group edges.
//
// Grouping rules:
//   - a callable belongs to the group keyed by its own file;
//   - a declaration belongs to the group of the first callable (in entity
//     input order) holding a "uses" edge to it, or failing that the group
//     keyed by its own file;
//   - no entity appears in more than one group.
//
// Group order is first-assignment order, which makes the whole partition a
// deterministic function of the input ordering.
func buildGroups(g graph.Graph) ([]*FileGroup, []graph.Relationship) {
	// Which declarations does each callable reference?
	uses := make(map[string]map[string]bool)
	for _, e := range g.Edges {
		if !e.IsUse() {
			continue
		}
		if uses[e.Source] == nil {
			uses[e.Source] = make(map[string]bool)
		}
		uses[e.Source][e.Target] = true
	}

	groups := make(map[string]*FileGroup)
	var order []*FileGroup
	groupFor := func(file string) *FileGroup {
		if fg, ok := groups[file]; ok {
			return fg
		}
		fg := &FileGroup{File: file}
		groups[file] = fg
		order = append(order, fg)
		return fg
	}

	// entityGroup records each entity's assigned group file.
	entityGroup := make(map[string]string, len(g.Entities))

	for _, ent := range g.Entities {
		if _, dup := entityGroup[ent.ID]; dup {
			continue
		}
		if ent.IsCallable() {
			groupFor(ent.File).Callables = append(groupFor(ent.File).Callables, ent)
			entityGroup[ent.ID] = ent.File
			continue
		}

		caller, file := resolveAnchor(g, uses, ent)
		fg := groupFor(file)
		fg.Declarations = append(fg.Declarations, DeclBinding{Decl: ent, Caller: caller})
		entityGroup[ent.ID] = file
	}

	var cross []graph.Relationship
	for _, e := range g.Edges {
		srcGroup, okS := entityGroup[e.Source]
		dstGroup, okD := entityGroup[e.Target]
		if !okS || !okD {
			// Sanitize runs before grouping, so this only fires for edges
			// whose endpoint was a duplicate-shadowed entity.
			continue
		}
		if srcGroup == dstGroup {
			fg := groups[srcGroup]
			fg.Internal = append(fg.Internal, e)
		} else {
			cross = append(cross, e)
		}
	}

	return order, cross
}

// resolveAnchor finds the grouping anchor for a declaration: the first
// callable in entity input order that references it, or the declaration's
// own file when none does.
func resolveAnchor(g graph.Graph, uses map[string]map[string]bool, decl graph.Entity) (caller, file string) {
	for _, ent := range g.Entities {
		if !ent.IsCallable() {
			continue
		}
		if uses[ent.ID][decl.ID] {
			return ent.ID, ent.File
		}
	}
	return "", decl.File
}

// internalCallEdges filters a group's internal edges down to the calls among
// its callables, which is exactly the edge set the per-group layout sees.
func (fg *FileGroup) internalCallEdges() []layoutEdge {
	callable := make(map[string]bool, len(fg.Callables))
	for _, c := range fg.Callables {
		callable[c.ID] = true
	}
	var edges []layoutEdge
	for _, e := range fg.Internal {
		if e.IsCall() && callable[e.Source] && callable[e.Target] {
			edges = append(edges, layoutEdge{from: e.Source, to: e.Target})
		}
	}
	return edges
}

// layoutNodes returns the algorithm-facing view of the group's callables.
func (fg *FileGroup) layoutNodes() []layoutNode {
	nodes := make([]layoutNode, len(fg.Callables))
	for i, c := range fg.Callables {
		nodes[i] = layoutNode{id: c.ID, w: c.Width, h: c.Height}
	}
	return nodes
}
