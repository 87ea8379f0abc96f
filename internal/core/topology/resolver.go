package topology

import (
	"errors"
	"fmt"
	"sort"

	"github.com/storekit/storeplan/internal/core/catalog"
	"github.com/storekit/storeplan/internal/core/registry"
)

// =============================================================================
// Topology Resolver
// =============================================================================

// Resolve builds the resolved graph for a catalog under one backend/mode.
//
// Every service produces a consumer node, even with zero dependencies - it
// still has to be deployed. Required dependencies select exactly one provider
// each; a missing provider for a required dependency aborts the whole run,
// partial topologies are never emitted. Optional dependencies are silently
// skipped when the backend/mode offers no provider for their kind. Two
// services requiring the same kind share one provider instance unless the
// reference is marked dedicated.
func Resolve(specs []catalog.ServiceSpec, reg *registry.Registry, backend registry.Backend, mode registry.Mode) (*ResolvedGraph, error) {
	if !backend.IsValid() {
		return nil, fmt.Errorf("%w: %q", registry.ErrUnknownBackend, backend)
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", registry.ErrUnknownMode, mode)
	}
	if !backend.SupportsMode(mode) {
		return nil, fmt.Errorf("%w: %s does not support %s", ErrUnsupportedMode, backend, mode)
	}

	// The loader rejects duplicates; re-check here because node names key
	// the graph.
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if seen[spec.Name] {
			return nil, catalog.NewCatalogError(spec.Name, "", "declared more than once", catalog.ErrDuplicateService)
		}
		seen[spec.Name] = true
	}

	nodes := make(map[string]Node)
	var edges []Edge

	for i := range specs {
		spec := specs[i]
		nodes[spec.Name] = Node{
			Name:    spec.Name,
			Type:    NodeService,
			Weight:  registry.WeightService,
			Service: &specs[i],
		}
	}

	for _, spec := range specs {
		for _, ref := range spec.Required {
			edge, node, err := wireDependency(reg, spec, ref, backend, mode, false)
			if err != nil {
				return nil, err
			}
			if err := addProviderNode(nodes, node); err != nil {
				return nil, err
			}
			edges = append(edges, edge)
		}
		for _, ref := range spec.Optional {
			edge, node, err := wireDependency(reg, spec, ref, backend, mode, true)
			if err != nil {
				var noProvider *registry.NoProviderError
				if errors.As(err, &noProvider) {
					// Optional and nothing registered: skip, not an error.
					continue
				}
				return nil, err
			}
			if err := addProviderNode(nodes, node); err != nil {
				return nil, err
			}
			edges = append(edges, edge)
		}
	}

	// Shared infrastructure exists per backend regardless of consumers;
	// externally routable services hang off it.
	for _, infra := range reg.SharedInfrastructure(backend, mode) {
		p := infra
		err := addProviderNode(nodes, Node{
			Name:        p.Name,
			Type:        NodeProvider,
			Weight:      p.Weight,
			Provider:    &p,
			SharedInfra: true,
		})
		if err != nil {
			return nil, err
		}
		for _, spec := range specs {
			if spec.ExternallyRoutable() {
				edges = append(edges, Edge{
					Consumer: spec.Name,
					Provider: p.Name,
					Kind:     p.Kind,
					Access:   catalog.AccessRead,
				})
			}
		}
	}

	g := &ResolvedGraph{Backend: backend, Mode: mode, Edges: edges}
	for _, n := range nodes {
		g.Nodes = append(g.Nodes, n)
	}
	sort.Slice(g.Nodes, func(i, j int) bool {
		if g.Nodes[i].Weight != g.Nodes[j].Weight {
			return g.Nodes[i].Weight < g.Nodes[j].Weight
		}
		return g.Nodes[i].Name < g.Nodes[j].Name
	})
	sort.Slice(g.Edges, func(i, j int) bool {
		a, b := g.Edges[i], g.Edges[j]
		if a.Consumer != b.Consumer {
			return a.Consumer < b.Consumer
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Provider < b.Provider
	})

	// The strict consumer->provider edge direction cannot cycle on its
	// own; a misconfigured registry still has to fail loudly here.
	order, err := OrderNodes(g.Nodes, g.Edges)
	if err != nil {
		return nil, err
	}
	g.Order = order

	return g, nil
}

// wireDependency selects the provider for one dependency reference and
// returns the edge plus the provider node it lands on.
func wireDependency(reg *registry.Registry, spec catalog.ServiceSpec, ref catalog.DependencyRef, backend registry.Backend, mode registry.Mode, optional bool) (Edge, Node, error) {
	selected, err := reg.SelectProvider(ref.Kind, backend, mode)
	if err != nil {
		var noProvider *registry.NoProviderError
		if errors.As(err, &noProvider) {
			noProvider.Service = spec.Name
		}
		return Edge{}, Node{}, err
	}

	// Logical scope: one shared instance per (kind, backend, mode), or a
	// per-service instance when the reference asks for isolation.
	name := selected.Name
	if ref.Dedicated {
		name = fmt.Sprintf("%s-%s", selected.Name, spec.Name)
	}

	p := selected
	node := Node{
		Name:      name,
		Type:      NodeProvider,
		Weight:    p.Weight,
		Provider:  &p,
		Dedicated: ref.Dedicated,
	}
	edge := Edge{
		Consumer: spec.Name,
		Provider: name,
		Kind:     ref.Kind,
		Access:   ref.Access,
		Optional: optional,
	}
	return edge, node, nil
}

// addProviderNode inserts a provider node unless an equivalent one exists.
// Node names key the graph, so a provider landing on a service's name is a
// catalog/registry conflict, not a merge.
func addProviderNode(nodes map[string]Node, n Node) error {
	if existing, ok := nodes[n.Name]; ok {
		if existing.Type != NodeProvider {
			return fmt.Errorf("%w: %q names both service %q and provider %q",
				ErrNodeCollision, n.Name, existing.Name, n.Provider.Name)
		}
		return nil
	}
	nodes[n.Name] = n
	return nil
}
