package emit

import (
	"gopkg.in/yaml.v3"

	"github.com/storekit/storeplan/internal/core/plan"
	"github.com/storekit/storeplan/internal/core/registry"
	"github.com/storekit/storeplan/internal/core/topology"
)

// =============================================================================
// Helm Values Overlay
// =============================================================================

// helmValues is the overlay shape consumed by the sample shop's charts.
type helmValues struct {
	Backend  string                 `yaml:"backend"`
	Mode     string                 `yaml:"mode"`
	Services map[string]helmService `yaml:"services"`

	// Dependencies lists provider instances. In-cluster instances enable
	// the corresponding subchart; managed instances are marked external
	// with their resolved endpoint.
	Dependencies map[string]helmDependency `yaml:"dependencies,omitempty"`

	Ingress helmIngress `yaml:"ingress"`

	// ProvisionOrder mirrors the plan's topological ordering so apply
	// tooling can sync resources in waves.
	ProvisionOrder []string `yaml:"provisionOrder"`
}

type helmService struct {
	Exposure string            `yaml:"exposure"`
	CPU      string            `yaml:"cpu,omitempty"`
	Memory   string            `yaml:"memory,omitempty"`
	Env      map[string]string `yaml:"env,omitempty"`
}

type helmDependency struct {
	Kind     string `yaml:"kind"`
	Enabled  bool   `yaml:"enabled"`
	External bool   `yaml:"external,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
	Port     int    `yaml:"port,omitempty"`
}

type helmIngress struct {
	Enabled bool              `yaml:"enabled"`
	Hosts   map[string]string `yaml:"hosts,omitempty"` // service -> host
}

// renderHelmValues renders the plan as a Helm values overlay document.
func renderHelmValues(p *plan.Plan) ([]byte, error) {
	values := helmValues{
		Backend:        string(p.Backend),
		Mode:           string(p.Mode),
		Services:       make(map[string]helmService),
		Dependencies:   make(map[string]helmDependency),
		Ingress:        helmIngress{Hosts: make(map[string]string)},
		ProvisionOrder: p.Graph.Order,
	}

	for _, b := range p.Bundles {
		node, ok := p.Graph.Node(b.Service)
		if !ok || node.Service == nil {
			continue
		}
		values.Services[b.Service] = helmService{
			Exposure: string(node.Service.Exposure),
			CPU:      node.Service.Resources.CPU,
			Memory:   node.Service.Resources.Memory,
			Env:      b.Env,
		}
	}

	for _, node := range p.Graph.Providers() {
		if node.Provider.Kind == registry.KindIngress {
			values.Ingress.Enabled = true
			continue
		}
		dep := helmDependency{
			Kind:    string(node.Provider.Kind),
			Enabled: node.Provider.Mode == registry.ModeInCluster,
			Port:    node.Provider.Template.Port,
		}
		if node.Provider.Mode == registry.ModeManaged {
			dep.External = true
			dep.Endpoint = endpointFor(p, node)
		}
		values.Dependencies[node.Name] = dep
	}

	for _, f := range p.Facts {
		if f.Kind == registry.KindIngress {
			values.Ingress.Hosts[f.Service] = f.Endpoint
		}
	}

	return yaml.Marshal(values)
}

// endpointFor finds the bound endpoint of a provider node, if any edge
// reached it. Shared infrastructure without consumers has no fact.
func endpointFor(p *plan.Plan, node topology.Node) string {
	for _, f := range p.Facts {
		if f.Provider == node.Name {
			return f.Endpoint
		}
	}
	return ""
}
