package binding

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws/arn"

	"github.com/storekit/storeplan/internal/core/registry"
	"github.com/storekit/storeplan/internal/core/topology"
)

// =============================================================================
// Wiring Binder
// =============================================================================

// Bind walks the graph in dependency order (providers before consumers) and
// computes exactly one ConnectionFact per edge from the provider's fact
// template and the backend naming conventions in opts.
//
// Managed-mode credential references are rendered as Secrets Manager ARNs;
// in-cluster references stay plain secret names. Either way the reference is
// an opaque identifier for the emitter.
func Bind(g *topology.ResolvedGraph, opts BindOptions) ([]ConnectionFact, error) {
	opts = opts.normalized()

	var facts []ConnectionFact
	for _, name := range g.Order {
		node, ok := g.Node(name)
		if !ok || node.Type != topology.NodeService {
			continue
		}
		for _, edge := range g.EdgesFrom(name) {
			fact, err := bindEdge(g, edge, opts)
			if err != nil {
				return nil, err
			}
			facts = append(facts, fact)
		}
	}
	return facts, nil
}

// bindEdge computes the connection fact for a single edge.
func bindEdge(g *topology.ResolvedGraph, edge topology.Edge, opts BindOptions) (ConnectionFact, error) {
	node, ok := g.Node(edge.Provider)
	if !ok || node.Provider == nil {
		return ConnectionFact{}, fmt.Errorf("%w: %q", ErrMissingProvider, edge.Provider)
	}
	tmpl := node.Provider.Template

	vars := map[string]string{
		"node":      node.Name,
		"service":   edge.Consumer,
		"kind":      string(edge.Kind),
		"backend":   string(g.Backend),
		"mode":      string(g.Mode),
		"namespace": opts.Namespace,
		"region":    opts.Region,
		"account":   opts.AccountID,
		"domain":    opts.BaseDomain,
	}

	endpoint, missing := expand(tmpl.Endpoint, vars)
	if missing != "" {
		return ConnectionFact{}, &UnresolvedTemplateError{Provider: node.Name, Field: "endpoint", Variable: missing}
	}
	if endpoint == "" {
		return ConnectionFact{}, &UnresolvedTemplateError{Provider: node.Name, Field: "endpoint"}
	}

	credRef, missing := expand(tmpl.CredentialRef, vars)
	if missing != "" {
		return ConnectionFact{}, &UnresolvedTemplateError{Provider: node.Name, Field: "credential_ref", Variable: missing}
	}
	if credRef == "" {
		return ConnectionFact{}, &UnresolvedTemplateError{Provider: node.Name, Field: "credential_ref"}
	}
	if node.Provider.Mode == registry.ModeManaged {
		credRef = secretARN(credRef, opts)
	}

	if tmpl.Port <= 0 {
		return ConnectionFact{}, &UnresolvedTemplateError{Provider: node.Name, Field: "port"}
	}

	return ConnectionFact{
		Service:       edge.Consumer,
		Provider:      node.Name,
		Kind:          edge.Kind,
		Endpoint:      endpoint,
		CredentialRef: credRef,
		Port:          tmpl.Port,
	}, nil
}

// secretARN wraps a rendered credential name into a Secrets Manager ARN.
func secretARN(name string, opts BindOptions) string {
	return arn.ARN{
		Partition: "aws",
		Service:   "secretsmanager",
		Region:    opts.Region,
		AccountID: opts.AccountID,
		Resource:  "secret:" + name,
	}.String()
}

// =============================================================================
// Per-Service Bundles
// =============================================================================

// Bundles groups bound facts into per-service configuration bundles with a
// flattened environment, one entry per service node in graph order. Services
// without dependencies get a bundle with no facts - they still deploy.
func Bundles(g *topology.ResolvedGraph, facts []ConnectionFact) []ServiceBundle {
	byService := make(map[string][]ConnectionFact)
	for _, f := range facts {
		byService[f.Service] = append(byService[f.Service], f)
	}

	var bundles []ServiceBundle
	for _, name := range g.Order {
		node, ok := g.Node(name)
		if !ok || node.Type != topology.NodeService {
			continue
		}
		b := ServiceBundle{Service: name, Facts: byService[name]}
		if len(b.Facts) > 0 {
			b.Env = make(map[string]string, len(b.Facts)*3)
			for _, f := range b.Facts {
				prefix := f.EnvPrefix()
				b.Env[prefix+"_ENDPOINT"] = f.Endpoint
				b.Env[prefix+"_PORT"] = strconv.Itoa(f.Port)
				b.Env[prefix+"_CREDENTIAL_REF"] = f.CredentialRef
			}
		}
		bundles = append(bundles, b)
	}
	return bundles
}
