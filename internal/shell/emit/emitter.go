// Package emit renders resolved plans into backend-specific deployment
// artifacts: Helm values overlays for the EKS backends, Terraform variable
// files for ECS, and task-definition fragments for ECS/App Runner.
// This is part of the Imperative Shell, but rendering itself is pure: the
// plan already contains every fact, nothing is looked up at render time.
package emit

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/storekit/storeplan/internal/core/plan"
	"github.com/storekit/storeplan/internal/core/registry"
)

// =============================================================================
// Formats
// =============================================================================

// Format selects the artifact flavor.
type Format string

const (
	FormatHelmValues Format = "helm-values"
	FormatTFVars     Format = "tfvars"
	FormatTaskDef    Format = "taskdef"
)

// IsValid checks if the format is known.
func (f Format) IsValid() bool {
	switch f {
	case FormatHelmValues, FormatTFVars, FormatTaskDef:
		return true
	default:
		return false
	}
}

// DefaultFormat returns the natural artifact format for a backend.
func DefaultFormat(backend registry.Backend) Format {
	switch backend {
	case registry.BackendECSDefault:
		return FormatTFVars
	case registry.BackendAppRunner:
		return FormatTaskDef
	default:
		return FormatHelmValues
	}
}

var ErrUnknownFormat = errors.New("unknown artifact format")

// =============================================================================
// Emitter
// =============================================================================

// Emitter renders plans to deployment artifacts.
type Emitter struct {
	logger *slog.Logger
}

// NewEmitter creates an emitter.
func NewEmitter(logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{logger: logger}
}

// Render produces the artifact bytes for the plan in the requested format.
func (e *Emitter) Render(p *plan.Plan, format Format) ([]byte, error) {
	switch format {
	case FormatHelmValues:
		return renderHelmValues(p)
	case FormatTFVars:
		return renderTFVars(p)
	case FormatTaskDef:
		return renderTaskDefinitions(p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
