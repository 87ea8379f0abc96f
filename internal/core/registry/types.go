// Package registry holds the dependency provider registry: which concrete
// provider implements each dependency kind for a given backend/mode pair.
// This is part of the Functional Core - all functions are pure with no I/O.
package registry

// =============================================================================
// Backend
// =============================================================================

// Backend identifies a target deployment platform.
type Backend string

const (
	BackendEKSDefault Backend = "eks-default"
	BackendEKSMinimal Backend = "eks-minimal"
	BackendECSDefault Backend = "ecs-default"
	BackendAppRunner  Backend = "apprunner"
)

// AllBackends returns every known backend in declaration order.
func AllBackends() []Backend {
	return []Backend{BackendEKSDefault, BackendEKSMinimal, BackendECSDefault, BackendAppRunner}
}

// IsValid checks if the backend is a known platform.
func (b Backend) IsValid() bool {
	switch b {
	case BackendEKSDefault, BackendEKSMinimal, BackendECSDefault, BackendAppRunner:
		return true
	default:
		return false
	}
}

// IsKubernetes reports whether the backend deploys onto a Kubernetes cluster.
func (b Backend) IsKubernetes() bool {
	return b == BackendEKSDefault || b == BackendEKSMinimal
}

// SupportsMode reports whether the backend can run dependencies in the given
// mode. ECS and App Runner have no cluster to run dependencies in, so they
// only support managed dependencies.
func (b Backend) SupportsMode(m Mode) bool {
	if !b.IsValid() || !m.IsValid() {
		return false
	}
	if m == ModeInCluster {
		return b.IsKubernetes()
	}
	return true
}

// =============================================================================
// Mode
// =============================================================================

// Mode selects where stateful dependencies live: externally managed AWS
// services, or containers running alongside the application.
type Mode string

const (
	ModeManaged   Mode = "managed-dependencies"
	ModeInCluster Mode = "in-cluster-dependencies"

	// ModeAny marks a fallback provider that qualifies for any requested
	// mode. Exact-mode providers always win over ModeAny providers.
	ModeAny Mode = "*"
)

// IsValid checks if the mode is one of the two requestable modes.
// ModeAny is registrable on a provider but never requestable.
func (m Mode) IsValid() bool {
	return m == ModeManaged || m == ModeInCluster
}

// =============================================================================
// DependencyKind
// =============================================================================

// DependencyKind categorizes the backing service a microservice needs.
// The set is closed; it grows only with a registry update.
type DependencyKind string

const (
	KindRelationalStore DependencyKind = "relational-store"
	KindDocumentStore   DependencyKind = "document-store"
	KindCache           DependencyKind = "cache"
	KindQueue           DependencyKind = "queue"

	// KindIngress is shared routing infrastructure. Services never declare
	// it as a dependency; the resolver attaches externally routable
	// services to it when the backend provides one.
	KindIngress DependencyKind = "ingress"
)

// ServiceKinds returns the dependency kinds a service may declare.
func ServiceKinds() []DependencyKind {
	return []DependencyKind{KindRelationalStore, KindDocumentStore, KindCache, KindQueue}
}

// IsValid checks if the kind exists in the closed enumeration.
func (k DependencyKind) IsValid() bool {
	switch k {
	case KindRelationalStore, KindDocumentStore, KindCache, KindQueue, KindIngress:
		return true
	default:
		return false
	}
}

// IsDeclarable reports whether a service catalog may reference this kind.
func (k DependencyKind) IsDeclarable() bool {
	return k.IsValid() && k != KindIngress
}

// =============================================================================
// Provider
// =============================================================================

// Provisioning-order weights. Lower weights provision earlier. Backing
// stores must exist before the services that connect to them.
const (
	WeightInfrastructure = 10 // shared infra (ingress) first
	WeightStore          = 20 // stores, caches, queues
	WeightService        = 50 // application services last
)

// FactTemplate describes how to compute a connection fact once a provider
// instance is fixed. Endpoint and CredentialRef are ${var} templates expanded
// by the binder from static inputs only; Port is fixed per provider.
type FactTemplate struct {
	Endpoint      string `json:"endpoint"`
	CredentialRef string `json:"credential_ref"`
	Port          int    `json:"port"`
}

// Provider implements one DependencyKind for one (backend, mode) pair.
type Provider struct {
	// Name uniquely identifies the provider within the registry
	// (e.g., "rds-mysql", "redis"). It seeds provider node identity.
	Name string `json:"name"`

	Kind    DependencyKind `json:"kind"`
	Backend Backend        `json:"backend"`

	// Mode the provider serves. ModeAny marks a fallback eligible under
	// any requested mode.
	Mode Mode `json:"mode"`

	// Weight is the provisioning-order weight (lower provisions earlier).
	Weight int `json:"weight"`

	// Priority breaks ties when several providers qualify for the same
	// (kind, backend, mode). Higher wins; equal priorities are an error.
	Priority int `json:"priority"`

	// SharedInfra providers (e.g., a cluster ingress) are instantiated per
	// backend and may legitimately end up with zero consumers.
	SharedInfra bool `json:"shared_infra,omitempty"`

	Template FactTemplate `json:"template"`
}

// Matches reports whether the provider qualifies for the requested
// kind/backend/mode, counting ModeAny providers as fallback matches.
func (p Provider) Matches(kind DependencyKind, backend Backend, mode Mode) bool {
	return p.Kind == kind && p.Backend == backend && (p.Mode == mode || p.Mode == ModeAny)
}
