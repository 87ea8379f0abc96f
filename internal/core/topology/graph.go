// Package topology builds the resolved resource graph: one node per service
// and per selected provider instance, edges for every wired dependency, and a
// deterministic provisioning order.
// This is part of the Functional Core - all functions are pure with no I/O.
package topology

import (
	"github.com/storekit/storeplan/internal/core/catalog"
	"github.com/storekit/storeplan/internal/core/registry"
)

// =============================================================================
// Graph Types
// =============================================================================

// NodeType distinguishes consumer and provider nodes.
type NodeType string

const (
	NodeService  NodeType = "service"
	NodeProvider NodeType = "provider"
)

// Node is one resource in the resolved graph. Exactly one of Service or
// Provider is set, matching Type.
type Node struct {
	// Name uniquely identifies the node. Provider nodes use the provider
	// name, suffixed with the consumer name when the instance is dedicated.
	Name string `json:"name"`

	Type   NodeType `json:"type"`
	Weight int      `json:"weight"`

	Service  *catalog.ServiceSpec `json:"service,omitempty"`
	Provider *registry.Provider   `json:"provider,omitempty"`

	// Dedicated marks a provider instance isolated to a single consumer.
	Dedicated bool `json:"dedicated,omitempty"`

	// SharedInfra marks infrastructure that exists regardless of consumers.
	SharedInfra bool `json:"shared_infra,omitempty"`
}

// Edge records that Consumer depends on Provider: the provider must exist
// before the consumer.
type Edge struct {
	Consumer string                  `json:"consumer"`
	Provider string                  `json:"provider"`
	Kind     registry.DependencyKind `json:"kind"`
	Access   catalog.AccessMode      `json:"access"`
	Optional bool                    `json:"optional,omitempty"`
}

// ResolvedGraph is the output of one resolution run. It is never mutated
// after Resolve returns; a changed backend, mode, or catalog triggers a full
// fresh resolution.
type ResolvedGraph struct {
	Backend registry.Backend `json:"backend"`
	Mode    registry.Mode    `json:"mode"`

	// Nodes sorted by (weight, name) - the same key the ordering uses.
	Nodes []Node `json:"nodes"`

	// Edges sorted by (consumer, kind, provider).
	Edges []Edge `json:"edges"`

	// Order is the provisioning order: a topological sort of node names,
	// stable across runs with identical inputs.
	Order []string `json:"order"`
}

// Node returns the named node, if present.
func (g *ResolvedGraph) Node(name string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

// EdgesFrom returns the edges whose consumer is the named node, in the
// graph's stable edge order.
func (g *ResolvedGraph) EdgesFrom(consumer string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Consumer == consumer {
			out = append(out, e)
		}
	}
	return out
}

// Services returns the service nodes in graph order.
func (g *ResolvedGraph) Services() []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.Type == NodeService {
			out = append(out, n)
		}
	}
	return out
}

// Providers returns the provider nodes in graph order.
func (g *ResolvedGraph) Providers() []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.Type == NodeProvider {
			out = append(out, n)
		}
	}
	return out
}
