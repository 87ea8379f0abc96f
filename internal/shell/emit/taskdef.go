package emit

import (
	"encoding/json"

	"github.com/storekit/storeplan/internal/core/plan"
)

// =============================================================================
// Task-Definition Fragments
// =============================================================================

// taskFragment is the container-definition fragment merged into an ECS task
// definition or App Runner service configuration, one per service.
type taskFragment struct {
	Name        string       `json:"name"`
	Essential   bool         `json:"essential"`
	Environment []taskEnvVar `json:"environment,omitempty"`
	Secrets     []taskSecret `json:"secrets,omitempty"`
}

type taskEnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type taskSecret struct {
	Name      string `json:"name"`
	ValueFrom string `json:"valueFrom"`
}

// renderTaskDefinitions renders per-service task-definition fragments (JSON).
// Connection endpoints and ports land in plain environment; credential
// references land in secrets so the runtime injects them from Secrets
// Manager.
func renderTaskDefinitions(p *plan.Plan) ([]byte, error) {
	fragments := make([]taskFragment, 0, len(p.Bundles))
	for _, b := range p.Bundles {
		frag := taskFragment{Name: b.Service, Essential: true}
		for _, f := range b.Facts {
			prefix := f.EnvPrefix()
			frag.Environment = append(frag.Environment,
				taskEnvVar{Name: prefix + "_ENDPOINT", Value: f.Endpoint},
				taskEnvVar{Name: prefix + "_PORT", Value: b.Env[prefix+"_PORT"]},
			)
			frag.Secrets = append(frag.Secrets, taskSecret{
				Name:      prefix + "_CREDENTIALS",
				ValueFrom: f.CredentialRef,
			})
		}
		fragments = append(fragments, frag)
	}
	return json.MarshalIndent(fragments, "", "  ")
}
