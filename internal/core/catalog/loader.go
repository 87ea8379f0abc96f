package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/storekit/storeplan/internal/core/registry"
)

// =============================================================================
// Catalog File Format
// =============================================================================

// catalogFile is the wire shape of a catalog YAML document:
//
//	services:
//	  - name: orders
//	    exposure: internal
//	    requires:
//	      - kind: relational-store
//	        access: write
//	        dedicated: true
//	      - kind: queue
//	    optional:
//	      - kind: cache
//	    resources: {cpu: medium, memory: medium}
type catalogFile struct {
	Services []ServiceSpec `yaml:"services"`
}

// =============================================================================
// Loader
// =============================================================================

// Load parses and validates a catalog document. The returned slice preserves
// declaration order. Duplicate service names and unrecognized dependency
// kinds are rejected here, never silently papered over.
func Load(data []byte) ([]ServiceSpec, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, NewCatalogError("", "", "catalog is empty", ErrEmptyInput)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, NewCatalogError("", "", fmt.Sprintf("invalid YAML: %v", err), ErrInvalidYAML)
	}
	return Validate(file.Services)
}

// Validate normalizes and validates an in-memory catalog. It is shared by
// Load, ImportCompose, and callers that build specs programmatically.
func Validate(specs []ServiceSpec) ([]ServiceSpec, error) {
	if len(specs) == 0 {
		return nil, NewCatalogError("", "", "catalog must declare at least one service", ErrNoServices)
	}

	seen := make(map[string]bool, len(specs))
	out := make([]ServiceSpec, 0, len(specs))
	for i, spec := range specs {
		if strings.TrimSpace(spec.Name) == "" {
			return nil, NewCatalogError("", fmt.Sprintf("services[%d].name", i), "service name is required", ErrNameRequired)
		}
		if seen[spec.Name] {
			return nil, NewCatalogError(spec.Name, "", "declared more than once", ErrDuplicateService)
		}
		seen[spec.Name] = true

		if spec.Exposure == "" {
			spec.Exposure = ExposureInternal
		}
		if !spec.Exposure.IsValid() {
			return nil, NewCatalogError(spec.Name, "exposure",
				fmt.Sprintf("must be %q or %q, got %q", ExposureInternal, ExposureExternal, spec.Exposure),
				ErrInvalidExposure)
		}

		kinds := make(map[registry.DependencyKind]bool)
		required, err := validateRefs(spec.Name, "requires", spec.Required, kinds)
		if err != nil {
			return nil, err
		}
		optional, err := validateRefs(spec.Name, "optional", spec.Optional, kinds)
		if err != nil {
			return nil, err
		}
		spec.Required = required
		spec.Optional = optional

		out = append(out, spec)
	}
	return out, nil
}

// validateRefs checks every dependency reference against the closed kind
// enumeration and normalizes the access mode (write by default). kinds is
// shared across the service's requires and optional lists: a kind resolves to
// one provider edge, so declaring it twice is a contradiction, not a merge.
func validateRefs(service, field string, refs []DependencyRef, kinds map[registry.DependencyKind]bool) ([]DependencyRef, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	out := make([]DependencyRef, 0, len(refs))
	for i, ref := range refs {
		at := fmt.Sprintf("%s[%d]", field, i)
		if !ref.Kind.IsDeclarable() {
			return nil, NewCatalogError(service, at+".kind",
				fmt.Sprintf("unrecognized dependency kind %q", ref.Kind), ErrUnknownKind)
		}
		if kinds[ref.Kind] {
			return nil, NewCatalogError(service, at+".kind",
				fmt.Sprintf("dependency kind %q declared more than once", ref.Kind), ErrDuplicateKind)
		}
		kinds[ref.Kind] = true
		if ref.Access == "" {
			ref.Access = AccessWrite
		}
		if !ref.Access.IsValid() {
			return nil, NewCatalogError(service, at+".access",
				fmt.Sprintf("must be %q or %q, got %q", AccessRead, AccessWrite, ref.Access),
				ErrInvalidAccess)
		}
		out = append(out, ref)
	}
	return out, nil
}
