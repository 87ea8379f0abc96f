package api

import "github.com/storekit/storeplan/internal/shell/store"

// =============================================================================
// Request Types
// =============================================================================

// ResolveRequest is the request body for POST /v1/resolve.
type ResolveRequest struct {
	// CatalogYAML is the catalog document. Empty uses the built-in
	// sample-shop catalog.
	CatalogYAML string `json:"catalog_yaml,omitempty"`

	Backend string `json:"backend"`
	Mode    string `json:"mode"`

	// Binding overrides. Zero values fall back to the server's defaults.
	Namespace  string `json:"namespace,omitempty"`
	Region     string `json:"region,omitempty"`
	AccountID  string `json:"account_id,omitempty"`
	BaseDomain string `json:"base_domain,omitempty"`
}

// =============================================================================
// Response Types
// =============================================================================

// ResolveResponse wraps a resolved plan with its run ID.
type ResolveResponse struct {
	RunID string      `json:"run_id"`
	Plan  interface{} `json:"plan"`
}

// RunListResponse is the response for GET /v1/runs.
type RunListResponse struct {
	Runs []store.RunRecord `json:"runs"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
