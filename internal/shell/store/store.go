package store

import (
	"context"
	"time"

	"github.com/storekit/storeplan/internal/core/registry"
)

// =============================================================================
// Run Records
// =============================================================================

// RunRecord is the ledger entry for one resolution run: which target was
// resolved, the graph size, and the full plan document for later inspection.
type RunRecord struct {
	ID      string           `json:"id"`
	Backend registry.Backend `json:"backend"`
	Mode    registry.Mode    `json:"mode"`

	Services  int `json:"services"`
	Providers int `json:"providers"`
	Edges     int `json:"edges"`

	// PlanJSON is the serialized plan exactly as resolved.
	PlanJSON []byte `json:"plan,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for resolution runs.
type Store interface {
	CreateRun(ctx context.Context, run *RunRecord) error
	GetRun(ctx context.Context, id string) (*RunRecord, error)
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	Close() error
}
