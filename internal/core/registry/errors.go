package registry

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Registration errors
	ErrProviderName      = errors.New("provider name is required")
	ErrUnknownKind       = errors.New("unknown dependency kind")
	ErrUnknownBackend    = errors.New("unknown backend")
	ErrUnknownMode       = errors.New("unknown mode")
	ErrDuplicateProvider = errors.New("provider already registered")

	// Selection errors
	ErrNoProvider        = errors.New("no provider registered")
	ErrAmbiguousProvider = errors.New("ambiguous provider selection")
)

// NoProviderError is returned when a dependency kind has no eligible provider
// for the chosen backend/mode. Service is filled in by the resolver so the
// operator sees which declaration failed.
type NoProviderError struct {
	Kind    DependencyKind
	Backend Backend
	Mode    Mode
	Service string
}

func (e *NoProviderError) Error() string {
	if e.Service != "" {
		return fmt.Sprintf("service %q requires %s but no provider is registered for %s/%s",
			e.Service, e.Kind, e.Backend, e.Mode)
	}
	return fmt.Sprintf("no provider registered for %s on %s/%s", e.Kind, e.Backend, e.Mode)
}

func (e *NoProviderError) Unwrap() error {
	return ErrNoProvider
}

// AmbiguousProviderError is returned when several providers qualify for the
// same (kind, backend, mode) without a priority distinction. This is a
// registry misconfiguration and is never auto-resolved.
type AmbiguousProviderError struct {
	Kind       DependencyKind
	Backend    Backend
	Mode       Mode
	Candidates []string
}

func (e *AmbiguousProviderError) Error() string {
	return fmt.Sprintf("ambiguous providers for %s on %s/%s: %s (set a distinct priority)",
		e.Kind, e.Backend, e.Mode, strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousProviderError) Unwrap() error {
	return ErrAmbiguousProvider
}
