package catalog

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Input validation errors
	ErrEmptyInput  = errors.New("catalog is empty")
	ErrInvalidYAML = errors.New("invalid YAML syntax")
	ErrNoServices  = errors.New("catalog must declare at least one service")

	// Service validation errors
	ErrNameRequired     = errors.New("service name is required")
	ErrDuplicateService = errors.New("duplicate service name")
	ErrUnknownKind      = errors.New("unrecognized dependency kind")
	ErrDuplicateKind    = errors.New("dependency kind declared more than once")
	ErrInvalidAccess    = errors.New("invalid access mode")
	ErrInvalidExposure  = errors.New("invalid exposure")
)

// CatalogError wraps errors with context about which declaration failed.
type CatalogError struct {
	Service string // offending service name, if known
	Field   string // e.g., "requires[1].kind"
	Message string
	Err     error
}

func (e *CatalogError) Error() string {
	switch {
	case e.Service != "" && e.Field != "":
		return fmt.Sprintf("service %q: %s: %s", e.Service, e.Field, e.Message)
	case e.Service != "":
		return fmt.Sprintf("service %q: %s", e.Service, e.Message)
	default:
		return e.Message
	}
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError creates a new CatalogError.
func NewCatalogError(service, field, message string, err error) *CatalogError {
	return &CatalogError{
		Service: service,
		Field:   field,
		Message: message,
		Err:     err,
	}
}
