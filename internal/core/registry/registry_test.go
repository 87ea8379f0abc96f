package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Register Tests
// =============================================================================

func TestRegister_Valid(t *testing.T) {
	r := New()
	err := r.Register(Provider{
		Name:    "rds-mysql",
		Kind:    KindRelationalStore,
		Backend: BackendEKSDefault,
		Mode:    ModeManaged,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestRegister_MissingName(t *testing.T) {
	r := New()
	err := r.Register(Provider{Kind: KindCache, Backend: BackendEKSDefault, Mode: ModeManaged})
	assert.ErrorIs(t, err, ErrProviderName)
}

func TestRegister_UnknownKind(t *testing.T) {
	r := New()
	err := r.Register(Provider{Name: "x", Kind: "blob-store", Backend: BackendEKSDefault, Mode: ModeManaged})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRegister_UnknownBackend(t *testing.T) {
	r := New()
	err := r.Register(Provider{Name: "x", Kind: KindCache, Backend: "gke", Mode: ModeManaged})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestRegister_DuplicateName(t *testing.T) {
	r := New()
	p := Provider{Name: "redis", Kind: KindCache, Backend: BackendEKSDefault, Mode: ModeInCluster}
	require.NoError(t, r.Register(p))
	err := r.Register(p)
	assert.ErrorIs(t, err, ErrDuplicateProvider)
}

func TestRegister_DefaultWeight(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Provider{
		Name: "redis", Kind: KindCache, Backend: BackendEKSDefault, Mode: ModeInCluster,
	}))
	got := r.ProvidersFor(KindCache, BackendEKSDefault, ModeInCluster)
	require.Len(t, got, 1)
	assert.Equal(t, WeightStore, got[0].Weight)
}

// =============================================================================
// ProvidersFor Tests
// =============================================================================

func TestProvidersFor_Empty(t *testing.T) {
	r := New()
	got := r.ProvidersFor(KindQueue, BackendAppRunner, ModeManaged)
	assert.Empty(t, got)
}

func TestProvidersFor_FiltersBackendAndMode(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Provider{Name: "a", Kind: KindCache, Backend: BackendEKSDefault, Mode: ModeManaged}))
	require.NoError(t, r.Register(Provider{Name: "b", Kind: KindCache, Backend: BackendEKSDefault, Mode: ModeInCluster}))
	require.NoError(t, r.Register(Provider{Name: "c", Kind: KindCache, Backend: BackendECSDefault, Mode: ModeManaged}))

	got := r.ProvidersFor(KindCache, BackendEKSDefault, ModeManaged)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Name)
}

func TestProvidersFor_IncludesFallback(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Provider{Name: "any", Kind: KindCache, Backend: BackendEKSDefault, Mode: ModeAny}))

	assert.Len(t, r.ProvidersFor(KindCache, BackendEKSDefault, ModeManaged), 1)
	assert.Len(t, r.ProvidersFor(KindCache, BackendEKSDefault, ModeInCluster), 1)
}

// =============================================================================
// SelectProvider Tests
// =============================================================================

func TestSelectProvider_Single(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Provider{Name: "rds", Kind: KindRelationalStore, Backend: BackendEKSDefault, Mode: ModeManaged}))

	got, err := r.SelectProvider(KindRelationalStore, BackendEKSDefault, ModeManaged)
	require.NoError(t, err)
	assert.Equal(t, "rds", got.Name)
}

func TestSelectProvider_NoneRegistered(t *testing.T) {
	r := New()
	_, err := r.SelectProvider(KindQueue, BackendAppRunner, ModeManaged)

	var noProvider *NoProviderError
	require.ErrorAs(t, err, &noProvider)
	assert.Equal(t, KindQueue, noProvider.Kind)
	assert.Equal(t, BackendAppRunner, noProvider.Backend)
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestSelectProvider_ExactModeBeatsFallback(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Provider{Name: "fallback", Kind: KindCache, Backend: BackendEKSDefault, Mode: ModeAny}))
	require.NoError(t, r.Register(Provider{Name: "exact", Kind: KindCache, Backend: BackendEKSDefault, Mode: ModeInCluster}))

	got, err := r.SelectProvider(KindCache, BackendEKSDefault, ModeInCluster)
	require.NoError(t, err)
	assert.Equal(t, "exact", got.Name)

	// Under the other mode only the fallback qualifies.
	got, err = r.SelectProvider(KindCache, BackendEKSDefault, ModeManaged)
	require.NoError(t, err)
	assert.Equal(t, "fallback", got.Name)
}

func TestSelectProvider_PriorityBreaksTie(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Provider{Name: "low", Kind: KindQueue, Backend: BackendEKSDefault, Mode: ModeManaged, Priority: 1}))
	require.NoError(t, r.Register(Provider{Name: "high", Kind: KindQueue, Backend: BackendEKSDefault, Mode: ModeManaged, Priority: 5}))

	got, err := r.SelectProvider(KindQueue, BackendEKSDefault, ModeManaged)
	require.NoError(t, err)
	assert.Equal(t, "high", got.Name)
}

func TestSelectProvider_AmbiguousWithoutPriority(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Provider{Name: "one", Kind: KindQueue, Backend: BackendEKSDefault, Mode: ModeManaged}))
	require.NoError(t, r.Register(Provider{Name: "two", Kind: KindQueue, Backend: BackendEKSDefault, Mode: ModeManaged}))

	_, err := r.SelectProvider(KindQueue, BackendEKSDefault, ModeManaged)

	var ambiguous *AmbiguousProviderError
	require.ErrorAs(t, err, &ambiguous)
	assert.ElementsMatch(t, []string{"one", "two"}, ambiguous.Candidates)
	assert.ErrorIs(t, err, ErrAmbiguousProvider)
}

func TestSelectProvider_NeverAutoResolvesEqualPriorities(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Provider{Name: "one", Kind: KindCache, Backend: BackendECSDefault, Mode: ModeManaged, Priority: 3}))
	require.NoError(t, r.Register(Provider{Name: "two", Kind: KindCache, Backend: BackendECSDefault, Mode: ModeManaged, Priority: 3}))

	_, err := r.SelectProvider(KindCache, BackendECSDefault, ModeManaged)
	assert.ErrorIs(t, err, ErrAmbiguousProvider)
}

// =============================================================================
// SharedInfrastructure Tests
// =============================================================================

func TestSharedInfrastructure_FiltersByBackend(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Provider{Name: "ingress", Kind: KindIngress, Backend: BackendEKSDefault, Mode: ModeAny, SharedInfra: true}))
	require.NoError(t, r.Register(Provider{Name: "redis", Kind: KindCache, Backend: BackendEKSDefault, Mode: ModeInCluster}))

	infra := r.SharedInfrastructure(BackendEKSDefault, ModeInCluster)
	require.Len(t, infra, 1)
	assert.Equal(t, "ingress", infra[0].Name)

	assert.Empty(t, r.SharedInfrastructure(BackendECSDefault, ModeManaged))
}

// =============================================================================
// Backend/Mode Tests
// =============================================================================

func TestBackend_SupportsMode(t *testing.T) {
	assert.True(t, BackendEKSDefault.SupportsMode(ModeInCluster))
	assert.True(t, BackendEKSMinimal.SupportsMode(ModeInCluster))
	assert.True(t, BackendECSDefault.SupportsMode(ModeManaged))
	assert.True(t, BackendAppRunner.SupportsMode(ModeManaged))

	assert.False(t, BackendECSDefault.SupportsMode(ModeInCluster))
	assert.False(t, BackendAppRunner.SupportsMode(ModeInCluster))
	assert.False(t, Backend("gke").SupportsMode(ModeManaged))
}

func TestDependencyKind_IsDeclarable(t *testing.T) {
	for _, k := range ServiceKinds() {
		assert.True(t, k.IsDeclarable(), string(k))
	}
	assert.False(t, KindIngress.IsDeclarable())
	assert.False(t, DependencyKind("blob-store").IsDeclarable())
}

func TestNoProviderError_NamesService(t *testing.T) {
	err := &NoProviderError{Kind: KindQueue, Backend: BackendAppRunner, Mode: ModeManaged, Service: "orders"}
	assert.Contains(t, err.Error(), "orders")
	assert.Contains(t, err.Error(), "queue")
	assert.True(t, errors.Is(err, ErrNoProvider))
}
