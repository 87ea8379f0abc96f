package binding

import (
	"strings"

	"github.com/storekit/storeplan/internal/core/registry"
)

// =============================================================================
// ConnectionFact
// =============================================================================

// ConnectionFact is the resolved (endpoint, credential-reference, port)
// tuple for one consumer-to-provider edge. All fields are set once binding
// completes; CredentialRef is an opaque identifier (a secret name or ARN)
// resolved by the artifact emitter at render time, never a literal secret.
type ConnectionFact struct {
	Service  string                  `json:"service"`
	Provider string                  `json:"provider"` // provider node name
	Kind     registry.DependencyKind `json:"kind"`

	Endpoint      string `json:"endpoint"`
	CredentialRef string `json:"credential_ref"`
	Port          int    `json:"port"`
}

// EnvPrefix derives the environment variable prefix for the fact's kind:
// relational-store -> RELATIONAL_STORE.
func (f ConnectionFact) EnvPrefix() string {
	return strings.ToUpper(strings.ReplaceAll(string(f.Kind), "-", "_"))
}

// =============================================================================
// ServiceBundle
// =============================================================================

// ServiceBundle is the per-service configuration bundle: every fact the
// service needs, plus the flattened environment the emitter injects into the
// service's runtime.
type ServiceBundle struct {
	Service string            `json:"service"`
	Facts   []ConnectionFact  `json:"facts,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// =============================================================================
// BindOptions
// =============================================================================

// BindOptions carries the backend naming conventions binding needs. All
// values are static inputs; binding never inspects live infrastructure.
type BindOptions struct {
	// Namespace is the cluster namespace used in in-cluster DNS names.
	Namespace string `json:"namespace"`

	// Region and AccountID shape the ARNs of managed credential references.
	Region    string `json:"region"`
	AccountID string `json:"account_id"`

	// BaseDomain is the public domain externally routable services hang
	// under.
	BaseDomain string `json:"base_domain"`
}

// normalized fills defaults for unset fields.
func (o BindOptions) normalized() BindOptions {
	if o.Namespace == "" {
		o.Namespace = "sample-shop"
	}
	if o.Region == "" {
		o.Region = "us-east-1"
	}
	if o.AccountID == "" {
		o.AccountID = "000000000000"
	}
	if o.BaseDomain == "" {
		o.BaseDomain = "shop.example.com"
	}
	return o
}
