// Package plan exposes the one logical operation of the resolver core:
// resolve a catalog against a provider registry for a backend/mode pair,
// producing a resolved graph with bound connection facts.
// This is part of the Functional Core - Resolve is a pure function of its
// inputs and persists nothing.
package plan

import (
	"github.com/storekit/storeplan/internal/core/binding"
	"github.com/storekit/storeplan/internal/core/catalog"
	"github.com/storekit/storeplan/internal/core/registry"
	"github.com/storekit/storeplan/internal/core/topology"
)

// =============================================================================
// Plan
// =============================================================================

// Plan is the complete output of one resolution run: the resolved graph, the
// connection facts per edge, and the per-service configuration bundles the
// artifact emitter renders. A Plan is never mutated after Resolve returns;
// identical inputs produce identical Plans.
type Plan struct {
	Backend registry.Backend `json:"backend"`
	Mode    registry.Mode    `json:"mode"`

	Graph   *topology.ResolvedGraph  `json:"graph"`
	Facts   []binding.ConnectionFact `json:"facts"`
	Bundles []binding.ServiceBundle  `json:"bundles"`
}

// Resolve runs the full pipeline: catalog in, resolved and bound plan out.
// Any failure (catalog, provider selection, cycle, template) aborts the run;
// a partially resolved topology is never returned.
//
// Independent calls share no mutable state, so callers may resolve several
// backend/mode targets in parallel from the same catalog and registry.
func Resolve(specs []catalog.ServiceSpec, reg *registry.Registry, backend registry.Backend, mode registry.Mode, opts binding.BindOptions) (*Plan, error) {
	validated, err := catalog.Validate(specs)
	if err != nil {
		return nil, err
	}

	graph, err := topology.Resolve(validated, reg, backend, mode)
	if err != nil {
		return nil, err
	}

	facts, err := binding.Bind(graph, opts)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Backend: backend,
		Mode:    mode,
		Graph:   graph,
		Facts:   facts,
		Bundles: binding.Bundles(graph, facts),
	}, nil
}
