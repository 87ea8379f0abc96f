package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Default Registry Tests
// =============================================================================

func TestDefaults_ManagedCoversEveryBackendAndKind(t *testing.T) {
	r := Defaults()
	for _, backend := range AllBackends() {
		for _, kind := range ServiceKinds() {
			p, err := r.SelectProvider(kind, backend, ModeManaged)
			require.NoError(t, err, "%s/%s", backend, kind)
			assert.Equal(t, kind, p.Kind)
			assert.NotEmpty(t, p.Template.Endpoint)
			assert.NotEmpty(t, p.Template.CredentialRef)
			assert.Greater(t, p.Template.Port, 0)
		}
	}
}

func TestDefaults_InClusterOnlyOnKubernetes(t *testing.T) {
	r := Defaults()

	for _, kind := range ServiceKinds() {
		_, err := r.SelectProvider(kind, BackendEKSMinimal, ModeInCluster)
		assert.NoError(t, err, string(kind))
	}

	assert.Empty(t, r.ProvidersFor(KindRelationalStore, BackendAppRunner, ModeInCluster))
	assert.Empty(t, r.ProvidersFor(KindCache, BackendECSDefault, ModeInCluster))
}

func TestDefaults_ManagedSelectionUnderEachMode(t *testing.T) {
	r := Defaults()

	// eks-default/managed picks the RDS provider.
	p, err := r.SelectProvider(KindRelationalStore, BackendEKSDefault, ModeManaged)
	require.NoError(t, err)
	assert.Equal(t, "rds-mysql-eks-default", p.Name)

	// eks-minimal/in-cluster picks the container.
	p, err = r.SelectProvider(KindRelationalStore, BackendEKSMinimal, ModeInCluster)
	require.NoError(t, err)
	assert.Equal(t, "mysql-eks-minimal", p.Name)
}

func TestDefaults_SharedIngressPerEKSBackend(t *testing.T) {
	r := Defaults()

	infra := r.SharedInfrastructure(BackendEKSDefault, ModeManaged)
	require.Len(t, infra, 1)
	assert.Equal(t, KindIngress, infra[0].Kind)
	assert.True(t, infra[0].SharedInfra)
	assert.Equal(t, WeightInfrastructure, infra[0].Weight)

	assert.Empty(t, r.SharedInfrastructure(BackendAppRunner, ModeManaged))
}

func TestDefaults_StoresProvisionBeforeServices(t *testing.T) {
	r := Defaults()
	for _, kind := range ServiceKinds() {
		p, err := r.SelectProvider(kind, BackendECSDefault, ModeManaged)
		require.NoError(t, err)
		assert.Less(t, p.Weight, WeightService, p.Name)
	}
}
