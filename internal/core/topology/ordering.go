package topology

import (
	"fmt"
	"sort"
)

// =============================================================================
// Deterministic Topological Ordering
// =============================================================================

// OrderNodes computes a topological ordering of the graph using Kahn's
// algorithm. Providers come before their consumers. Among the nodes that are
// ready at any step, provisioning-order weight is the primary key and node
// name the secondary key, so the result is stable and reproducible across
// runs with identical inputs.
//
// Fails with CycleError if the graph is not acyclic.
func OrderNodes(nodes []Node, edges []Edge) ([]string, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	weight := make(map[string]int, len(nodes))
	for _, n := range nodes {
		weight[n.Name] = n.Weight
	}

	// An edge consumer->provider means the provider is a prerequisite:
	// the consumer's in-degree counts its providers.
	inDegree := make(map[string]int, len(nodes))
	dependents := make(map[string][]string)
	for _, n := range nodes {
		inDegree[n.Name] = 0
	}
	for _, e := range edges {
		if _, ok := inDegree[e.Consumer]; !ok {
			return nil, fmt.Errorf("%w: consumer %q", ErrUnknownNode, e.Consumer)
		}
		if _, ok := inDegree[e.Provider]; !ok {
			return nil, fmt.Errorf("%w: provider %q", ErrUnknownNode, e.Provider)
		}
		inDegree[e.Consumer]++
		dependents[e.Provider] = append(dependents[e.Provider], e.Consumer)
	}

	var ready []string
	for name, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, name)
		}
	}

	less := func(a, b string) bool {
		if weight[a] != weight[b] {
			return weight[a] < weight[b]
		}
		return a < b
	}

	order := make([]string, 0, len(nodes))
	for len(ready) > 0 {
		// Keep the ready set sorted so ties always break the same way.
		sort.Slice(ready, func(i, j int) bool { return less(ready[i], ready[j]) })
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)

		for _, dep := range dependents[name] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(order) < len(nodes) {
		var remaining []string
		for name, degree := range inDegree {
			if degree > 0 {
				remaining = append(remaining, name)
			}
		}
		sort.Strings(remaining)
		return nil, &CycleError{Remaining: remaining}
	}
	return order, nil
}
