package pipeline

import (
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/errors"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/graph"
)

// Load reads and validates the input call graph. When opts.Graph is set it
// is validated directly, otherwise the graph is read from opts.Path.
func Load(opts Options) (graph.Graph, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return graph.Graph{}, err
	}

	var g graph.Graph
	if opts.Graph != nil {
		g = *opts.Graph
	} else {
		read, err := graph.ReadGraphFile(opts.Path)
		if err != nil {
			return graph.Graph{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "reading graph from %s", opts.Path)
		}
		g = read
	}

	if err := validateGraph(g); err != nil {
		return graph.Graph{}, err
	}
	return g, nil
}

// validateGraph rejects graphs whose entity IDs cannot serve as identifiers.
// Malformed edges are not an error here since the engine drops them itself.
func validateGraph(g graph.Graph) error {
	for i := range g.Entities {
		if err := errors.ValidateEntityID(g.Entities[i].ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGraph, err, "entity %d", i)
		}
	}
	return nil
}
