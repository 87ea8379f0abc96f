package topology

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	ErrCycle           = errors.New("dependency cycle detected")
	ErrUnsupportedMode = errors.New("backend does not support mode")
	ErrUnknownNode     = errors.New("edge references unknown node")
	ErrNodeCollision   = errors.New("service and provider share a node name")
)

// CycleError reports that the graph is not acyclic. Strict
// consumer-to-provider edges cannot produce one, so a cycle indicates a
// registry or catalog bug.
type CycleError struct {
	// Remaining holds the nodes left unordered once the sort stalled,
	// in name order.
	Remaining []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle among nodes: %s", strings.Join(e.Remaining, ", "))
}

func (e *CycleError) Unwrap() error {
	return ErrCycle
}
