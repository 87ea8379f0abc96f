// Package binding walks a resolved graph and computes the concrete
// connection facts (endpoint, credential reference, port) for every edge.
// This is part of the Functional Core - binding is pure and deterministic,
// with no network calls and no live infrastructure inspection.
package binding

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	ErrUnresolvedTemplate = errors.New("unresolved template field")
	ErrMissingProvider    = errors.New("edge references node without provider")
)

// UnresolvedTemplateError reports a provider fact template referencing a
// field not derivable from static inputs. Fatal: emission never proceeds
// with a partial fact.
type UnresolvedTemplateError struct {
	Provider string // provider node name
	Field    string // "endpoint", "credential_ref", or "port"
	Variable string // the placeholder that could not be resolved
}

func (e *UnresolvedTemplateError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("provider %q: template field %s references unknown variable %q", e.Provider, e.Field, e.Variable)
	}
	return fmt.Sprintf("provider %q: template field %s is not derivable from static inputs", e.Provider, e.Field)
}

func (e *UnresolvedTemplateError) Unwrap() error {
	return ErrUnresolvedTemplate
}
