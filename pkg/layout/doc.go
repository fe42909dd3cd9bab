// Package layout implements the hierarchical multi-strategy layout engine
// that turns an abstract call graph into non-overlapping 2-D coordinates.
//
// # Pipeline
//
// A single call to [Engine.Layout] runs these stages in order:
//
//  1. Grouping: entities are partitioned into per-file clusters. Callables
//     group by their own file; declarations group by the file of the first
//     callable that references them (falling back to their declared file).
//  2. Per-group layout: each cluster's callables are positioned independently
//     (and concurrently) by the algorithm the strategy selects.
//  3. Super-layout: each cluster's bounding box becomes a single super-node,
//     and the same algorithm family positions the clusters relative to each
//     other using the collapsed cross-file edge set.
//  4. Translation: local coordinates are lifted into the global frame.
//  5. Declaration placement: declaration entities are packed next to their
//     referencing callables using a bounded spiral collision search.
//  6. Container repair: per-file container boxes are recomputed from final
//     entity bounds and displaced pairwise until none overlap.
//
// # Algorithms
//
// Three interchangeable algorithms satisfy the per-group contract, selected
// by [Strategy].Algorithm:
//
//   - [AlgorithmLayered]: rank assignment by longest path, barycenter
//     ordering with crossing-count refinement, spacing-driven coordinates.
//   - [AlgorithmConstraint]: the layered skeleton refined by iterative
//     relaxation with separation projection.
//   - [AlgorithmForce]: a spring/repulsion integrator with pairwise
//     collision resolution. Seedable; unseeded runs vary between calls.
//
// Unknown algorithm values fall back to layered. All algorithms clamp their
// output to finite, non-negative coordinates.
//
// # Guarantees
//
//   - No two positioned entities overlap (callable/callable, decl/decl, or
//     callable/decl), within the strategy's spacing budget.
//   - Edges are never dropped after sanitization, never reordered, and their
//     call/return order metadata passes through untouched.
//   - An empty input graph yields an empty layout, not an error.
//
// The engine holds no state across invocations; every intermediate index is
// scoped to one Layout call.
package layout
