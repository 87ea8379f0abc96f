// Package catalog contains the declarative service catalog model and loader.
// This is part of the Functional Core - all functions are pure with no I/O.
package catalog

import (
	"github.com/storekit/storeplan/internal/core/registry"
)

// =============================================================================
// Access Mode
// =============================================================================

// AccessMode states how a service uses a dependency.
type AccessMode string

const (
	AccessRead  AccessMode = "read"
	AccessWrite AccessMode = "write"
)

// IsValid checks if the access mode is valid.
func (a AccessMode) IsValid() bool {
	return a == AccessRead || a == AccessWrite
}

// =============================================================================
// Exposure
// =============================================================================

// Exposure states whether a service is reachable from outside the deployment.
type Exposure string

const (
	ExposureInternal Exposure = "internal"
	ExposureExternal Exposure = "external"
)

// IsValid checks if the exposure is valid.
func (e Exposure) IsValid() bool {
	return e == ExposureInternal || e == ExposureExternal
}

// =============================================================================
// ServiceSpec
// =============================================================================

// DependencyRef declares one dependency of a service.
type DependencyRef struct {
	Kind   registry.DependencyKind `json:"kind" yaml:"kind"`
	Access AccessMode              `json:"access" yaml:"access"`

	// Dedicated requests an isolated provider instance instead of the
	// shared one (e.g., orders gets its own database).
	Dedicated bool `json:"dedicated,omitempty" yaml:"dedicated,omitempty"`
}

// ResourceHints carries opaque cpu/memory classes. The resolver passes them
// through untouched; sizing is the emitter's concern.
type ResourceHints struct {
	CPU    string `json:"cpu,omitempty" yaml:"cpu,omitempty"`
	Memory string `json:"memory,omitempty" yaml:"memory,omitempty"`
}

// ServiceSpec describes one microservice. Immutable once loaded.
type ServiceSpec struct {
	Name      string          `json:"name" yaml:"name"`
	Required  []DependencyRef `json:"requires,omitempty" yaml:"requires,omitempty"`
	Optional  []DependencyRef `json:"optional,omitempty" yaml:"optional,omitempty"`
	Exposure  Exposure        `json:"exposure" yaml:"exposure"`
	Resources ResourceHints   `json:"resources,omitempty" yaml:"resources,omitempty"`
}

// ExternallyRoutable reports whether the service needs outside routing.
func (s ServiceSpec) ExternallyRoutable() bool {
	return s.Exposure == ExposureExternal
}
