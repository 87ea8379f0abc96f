package emit

import (
	"encoding/json"

	"github.com/storekit/storeplan/internal/core/plan"
	"github.com/storekit/storeplan/internal/core/registry"
)

// =============================================================================
// Terraform Variable File
// =============================================================================

// tfVars is the .tfvars.json shape consumed by the ECS Terraform stack.
type tfVars struct {
	Backend string `json:"backend"`
	Mode    string `json:"mode"`

	Services            []tfService    `json:"services"`
	ManagedDependencies []tfDependency `json:"managed_dependencies"`
	ProvisionOrder      []string       `json:"provision_order"`
}

type tfService struct {
	Name        string            `json:"name"`
	External    bool              `json:"external"`
	CPUClass    string            `json:"cpu_class,omitempty"`
	MemoryClass string            `json:"memory_class,omitempty"`
	Environment map[string]string `json:"environment,omitempty"`

	// SecretRefs maps environment keys to the opaque credential
	// references Terraform resolves against Secrets Manager.
	SecretRefs map[string]string `json:"secret_refs,omitempty"`
}

type tfDependency struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Endpoint string `json:"endpoint,omitempty"`
	Port     int    `json:"port"`
}

// renderTFVars renders the plan as a Terraform variable file (JSON).
func renderTFVars(p *plan.Plan) ([]byte, error) {
	vars := tfVars{
		Backend:        string(p.Backend),
		Mode:           string(p.Mode),
		ProvisionOrder: p.Graph.Order,
	}

	for _, b := range p.Bundles {
		node, ok := p.Graph.Node(b.Service)
		if !ok || node.Service == nil {
			continue
		}
		svc := tfService{
			Name:        b.Service,
			External:    node.Service.ExternallyRoutable(),
			CPUClass:    node.Service.Resources.CPU,
			MemoryClass: node.Service.Resources.Memory,
		}
		for _, f := range b.Facts {
			prefix := f.EnvPrefix()
			if svc.Environment == nil {
				svc.Environment = make(map[string]string)
				svc.SecretRefs = make(map[string]string)
			}
			svc.Environment[prefix+"_ENDPOINT"] = f.Endpoint
			svc.Environment[prefix+"_PORT"] = b.Env[prefix+"_PORT"]
			svc.SecretRefs[prefix+"_CREDENTIALS"] = f.CredentialRef
		}
		vars.Services = append(vars.Services, svc)
	}

	for _, node := range p.Graph.Providers() {
		if node.Provider.Kind == registry.KindIngress {
			continue
		}
		vars.ManagedDependencies = append(vars.ManagedDependencies, tfDependency{
			Name:     node.Name,
			Kind:     string(node.Provider.Kind),
			Endpoint: endpointFor(p, node),
			Port:     node.Provider.Template.Port,
		})
	}

	return json.MarshalIndent(vars, "", "  ")
}
