package layout

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/graph"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/observability"
)

// Engine runs the full layout pipeline: grouping, per-group layout, group
// bounding, super-layout, translation, declaration placement, and container
// spacing repair. An Engine is safe for concurrent use; every call derives
// all intermediate state fresh from its input.
type Engine struct {
	strategy Strategy
	logger   *log.Logger
}

// New returns an Engine using the given strategy. The strategy is normalized
// once up front, so unknown algorithm or direction values already resolved to
// their defaults by the time Layout runs. A nil logger discards output.
func New(s Strategy, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Engine{strategy: s.Normalized(), logger: logger}
}

// Strategy returns the engine's normalized strategy.
func (e *Engine) Strategy() Strategy { return e.strategy }

// Layout positions every visible entity of g and returns the positioned
// graph together with per-file containers. The input is never mutated.
//
// The returned layout echoes the effective algorithm, direction, and seed,
// so a persisted layout is reproducible. Edges survive in input order minus
// those dropped for referencing unknown endpoints.
func (e *Engine) Layout(ctx context.Context, g graph.Graph) (graph.Layout, error) {
	if err := ctx.Err(); err != nil {
		return graph.Layout{}, err
	}

	s := e.strategy
	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, s.Algorithm, len(g.Entities))

	work := g.Visible()
	work.ApplyDefaultDimensions()
	work, dropped := work.Sanitize()
	if dropped > 0 {
		e.logger.Warn("dropped malformed edges", "count", dropped)
	}

	out := graph.Layout{
		Entities:  work.Entities,
		Edges:     work.Edges,
		Algorithm: s.Algorithm,
		Direction: s.Direction,
		Seed:      s.Seed,
	}
	if len(work.Entities) == 0 {
		observability.Layout().OnLayoutComplete(ctx, s.Algorithm, time.Since(start))
		return out, nil
	}

	// The force seed is resolved here rather than inside the algorithm, so
	// every group and the super-layout share one seed and the echoed value
	// reproduces the run.
	if s.Algorithm == AlgorithmForce && s.Seed == 0 {
		s.Seed = uint64(time.Now().UnixNano())
		e.logger.Debug("seeded force layout", "seed", s.Seed)
	}
	out.Seed = s.Seed

	groups, cross := buildGroups(work)
	layouter := layouterFor(s)

	// Per-group layouts are independent; concurrency here is latency only,
	// results are identical to sequential execution.
	locals := make([]map[string]Point, len(groups))
	var wg sync.WaitGroup
	for i, fg := range groups {
		wg.Add(1)
		go func(i int, fg *FileGroup) {
			defer wg.Done()
			groupStart := time.Now()
			observability.Layout().OnGroupStart(ctx, fg.File, len(fg.Callables))
			locals[i] = layouter.layoutGroup(ctx, fg.layoutNodes(), fg.internalCallEdges(), s)
			observability.Layout().OnGroupComplete(ctx, fg.File, len(fg.Callables), time.Since(groupStart))
		}(i, fg)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return graph.Layout{}, err
	}

	files := make([]string, len(groups))
	bounds := make(map[string]groupBounds, len(groups))
	entityGroup := make(map[string]string, len(work.Entities))
	for i, fg := range groups {
		files[i] = fg.File
		bounds[fg.File] = boundsOf(fg.layoutNodes(), locals[i])
		for _, c := range fg.Callables {
			entityGroup[c.ID] = fg.File
		}
		for _, d := range fg.Declarations {
			entityGroup[d.Decl.ID] = fg.File
		}
	}

	crossRefs := make([]edgeRef, len(cross))
	for i, e := range cross {
		crossRefs[i] = edgeRef{source: e.Source, target: e.Target}
	}
	superPos := superLayout(ctx, files, bounds, superEdges(crossRefs, entityGroup), s, layouter)

	global := make(map[string]Point, len(work.Entities))
	for i, fg := range groups {
		for id, p := range translate(locals[i], bounds[fg.File], superPos[fg.File]) {
			global[id] = p
		}
	}

	placed := placeDeclarations(groups, global, s)
	for id, p := range placed.positions {
		global[id] = p
	}
	for _, id := range placed.fallbacks {
		e.logger.Debug("declaration placement fell back", "entity", id)
		observability.Layout().OnPlacementFallback(ctx, id)
	}

	out.Entities = make([]graph.Entity, len(work.Entities))
	for i, ent := range work.Entities {
		p := global[ent.ID]
		ent.X, ent.Y = p.X, p.Y
		out.Entities[i] = ent
	}

	out.Containers = repairContainerSpacing(buildContainers(groups, global))
	out.Width, out.Height = extent(out)

	e.logger.Info("computed layout",
		"algorithm", s.Algorithm,
		"entities", len(out.Entities),
		"containers", len(out.Containers),
		"duration", time.Since(start))
	observability.Layout().OnLayoutComplete(ctx, s.Algorithm, time.Since(start))

	return out, nil
}

// extent returns the layout's overall width and height: the maximum right
// and bottom edge over all entities and containers.
func extent(l graph.Layout) (w, h float64) {
	for _, ent := range l.Entities {
		w = max(w, ent.X+ent.Width)
		h = max(h, ent.Y+ent.Height)
	}
	for _, c := range l.Containers {
		w = max(w, c.Right())
		h = max(h, c.Bottom())
	}
	return w, h
}
