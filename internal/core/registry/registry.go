package registry

import (
	"fmt"
	"sort"
)

// =============================================================================
// Registry
// =============================================================================

// Registry holds the available providers. It is loaded once per run and
// read-only thereafter; Register must not be called after resolution starts.
type Registry struct {
	providers []Provider
	names     map[string]bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{names: make(map[string]bool)}
}

// Register adds a provider after validating its identity and enumeration
// fields. Provider names are unique across the whole registry.
func (r *Registry) Register(p Provider) error {
	if p.Name == "" {
		return ErrProviderName
	}
	if !p.Kind.IsValid() {
		return fmt.Errorf("provider %q: %w: %s", p.Name, ErrUnknownKind, p.Kind)
	}
	if !p.Backend.IsValid() {
		return fmt.Errorf("provider %q: %w: %s", p.Name, ErrUnknownBackend, p.Backend)
	}
	if !p.Mode.IsValid() && p.Mode != ModeAny {
		return fmt.Errorf("provider %q: %w: %s", p.Name, ErrUnknownMode, p.Mode)
	}
	if r.names[p.Name] {
		return fmt.Errorf("%w: %s", ErrDuplicateProvider, p.Name)
	}
	if p.Weight == 0 {
		p.Weight = WeightStore
	}
	r.providers = append(r.providers, p)
	r.names[p.Name] = true
	return nil
}

// MustRegister registers a provider and panics on error. Intended for
// building static registries at startup.
func (r *Registry) MustRegister(p Provider) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// ProvidersFor returns every provider that qualifies for the kind under the
// backend/mode, in stable name order. Empty if none are registered.
func (r *Registry) ProvidersFor(kind DependencyKind, backend Backend, mode Mode) []Provider {
	var out []Provider
	for _, p := range r.providers {
		if p.Matches(kind, backend, mode) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SelectProvider picks the single provider for (kind, backend, mode).
//
// Tie-break policy: providers registered for the exact requested mode are
// preferred over ModeAny fallbacks. Within the surviving set the highest
// explicit Priority wins. A remaining tie is a registry misconfiguration and
// fails with AmbiguousProviderError - selection never falls back to implicit
// ordering.
func (r *Registry) SelectProvider(kind DependencyKind, backend Backend, mode Mode) (Provider, error) {
	candidates := r.ProvidersFor(kind, backend, mode)
	if len(candidates) == 0 {
		return Provider{}, &NoProviderError{Kind: kind, Backend: backend, Mode: mode}
	}

	// Exact-mode providers shadow ModeAny fallbacks.
	exact := candidates[:0:0]
	for _, p := range candidates {
		if p.Mode == mode {
			exact = append(exact, p)
		}
	}
	if len(exact) > 0 {
		candidates = exact
	}

	best := candidates[0]
	tied := []string{best.Name}
	for _, p := range candidates[1:] {
		switch {
		case p.Priority > best.Priority:
			best = p
			tied = []string{p.Name}
		case p.Priority == best.Priority:
			tied = append(tied, p.Name)
		}
	}
	if len(tied) > 1 {
		return Provider{}, &AmbiguousProviderError{Kind: kind, Backend: backend, Mode: mode, Candidates: tied}
	}
	return best, nil
}

// SharedInfrastructure returns the shared-infrastructure providers (cluster
// ingress and the like) that must exist on the backend/mode regardless of
// consumers, in stable name order.
func (r *Registry) SharedInfrastructure(backend Backend, mode Mode) []Provider {
	var out []Provider
	for _, p := range r.providers {
		if p.SharedInfra && p.Backend == backend && (p.Mode == mode || p.Mode == ModeAny) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	return len(r.providers)
}
