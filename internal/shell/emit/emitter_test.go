package emit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/storekit/storeplan/internal/core/binding"
	"github.com/storekit/storeplan/internal/core/catalog"
	"github.com/storekit/storeplan/internal/core/plan"
	"github.com/storekit/storeplan/internal/core/registry"
)

func samplePlan(t *testing.T, backend registry.Backend, mode registry.Mode) *plan.Plan {
	t.Helper()
	p, err := plan.Resolve(catalog.SampleShop(), registry.Defaults(), backend, mode, binding.BindOptions{})
	require.NoError(t, err)
	return p
}

// =============================================================================
// Format Tests
// =============================================================================

func TestDefaultFormat(t *testing.T) {
	assert.Equal(t, FormatHelmValues, DefaultFormat(registry.BackendEKSDefault))
	assert.Equal(t, FormatHelmValues, DefaultFormat(registry.BackendEKSMinimal))
	assert.Equal(t, FormatTFVars, DefaultFormat(registry.BackendECSDefault))
	assert.Equal(t, FormatTaskDef, DefaultFormat(registry.BackendAppRunner))
}

func TestRender_UnknownFormat(t *testing.T) {
	e := NewEmitter(nil)
	p := samplePlan(t, registry.BackendEKSDefault, registry.ModeManaged)
	_, err := e.Render(p, Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

// =============================================================================
// Helm Values Tests
// =============================================================================

func TestRenderHelmValues_InCluster(t *testing.T) {
	e := NewEmitter(nil)
	p := samplePlan(t, registry.BackendEKSDefault, registry.ModeInCluster)

	out, err := e.Render(p, FormatHelmValues)
	require.NoError(t, err)

	var values helmValues
	require.NoError(t, yaml.Unmarshal(out, &values))

	assert.Equal(t, "eks-default", values.Backend)
	assert.Equal(t, "in-cluster-dependencies", values.Mode)
	assert.Len(t, values.Services, 5)

	ui := values.Services["ui"]
	assert.Equal(t, "external", ui.Exposure)

	orders := values.Services["orders"]
	assert.NotEmpty(t, orders.Env["RELATIONAL_STORE_ENDPOINT"])
	assert.NotEmpty(t, orders.Env["QUEUE_CREDENTIAL_REF"])

	// In-cluster dependencies enable subcharts and are never external.
	mysql, ok := values.Dependencies["mysql-eks-default"]
	require.True(t, ok)
	assert.True(t, mysql.Enabled)
	assert.False(t, mysql.External)

	// The dedicated orders store is its own dependency instance.
	_, ok = values.Dependencies["mysql-eks-default-orders"]
	assert.True(t, ok)

	assert.True(t, values.Ingress.Enabled)
	assert.Contains(t, values.Ingress.Hosts, "ui")
	assert.NotEmpty(t, values.ProvisionOrder)
}

func TestRenderHelmValues_ManagedDependenciesExternal(t *testing.T) {
	e := NewEmitter(nil)
	p := samplePlan(t, registry.BackendEKSDefault, registry.ModeManaged)

	out, err := e.Render(p, FormatHelmValues)
	require.NoError(t, err)

	var values helmValues
	require.NoError(t, yaml.Unmarshal(out, &values))

	for name, dep := range values.Dependencies {
		assert.False(t, dep.Enabled, name)
		assert.True(t, dep.External, name)
	}
}

// =============================================================================
// Terraform Variable Tests
// =============================================================================

func TestRenderTFVars(t *testing.T) {
	e := NewEmitter(nil)
	p := samplePlan(t, registry.BackendECSDefault, registry.ModeManaged)

	out, err := e.Render(p, FormatTFVars)
	require.NoError(t, err)

	var vars tfVars
	require.NoError(t, json.Unmarshal(out, &vars))

	assert.Equal(t, "ecs-default", vars.Backend)
	require.Len(t, vars.Services, 5)
	assert.NotEmpty(t, vars.ManagedDependencies)
	assert.NotEmpty(t, vars.ProvisionOrder)

	byName := make(map[string]tfService)
	for _, s := range vars.Services {
		byName[s.Name] = s
	}
	assert.True(t, byName["ui"].External)
	assert.False(t, byName["orders"].External)

	orders := byName["orders"]
	assert.NotEmpty(t, orders.Environment["RELATIONAL_STORE_ENDPOINT"])
	assert.NotEmpty(t, orders.SecretRefs["RELATIONAL_STORE_CREDENTIALS"])
	// Credential references stay out of plain environment.
	assert.NotContains(t, orders.Environment, "RELATIONAL_STORE_CREDENTIALS")
	assert.NotContains(t, orders.Environment, "RELATIONAL_STORE_CREDENTIAL_REF")

	for _, dep := range vars.ManagedDependencies {
		assert.NotEqual(t, "ingress", dep.Kind)
		assert.Greater(t, dep.Port, 0)
	}
}

// =============================================================================
// Task-Definition Tests
// =============================================================================

func TestRenderTaskDefinitions(t *testing.T) {
	e := NewEmitter(nil)
	p := samplePlan(t, registry.BackendAppRunner, registry.ModeManaged)

	out, err := e.Render(p, FormatTaskDef)
	require.NoError(t, err)

	var fragments []taskFragment
	require.NoError(t, json.Unmarshal(out, &fragments))
	require.Len(t, fragments, 5)

	byName := make(map[string]taskFragment)
	for _, f := range fragments {
		byName[f.Name] = f
		assert.True(t, f.Essential)
	}

	carts := byName["carts"]
	require.Len(t, carts.Secrets, 1)
	assert.Equal(t, "DOCUMENT_STORE_CREDENTIALS", carts.Secrets[0].Name)
	assert.NotEmpty(t, carts.Secrets[0].ValueFrom)

	envNames := make(map[string]bool)
	for _, v := range carts.Environment {
		envNames[v.Name] = true
	}
	assert.True(t, envNames["DOCUMENT_STORE_ENDPOINT"])
	assert.True(t, envNames["DOCUMENT_STORE_PORT"])

	ui := byName["ui"]
	assert.Empty(t, ui.Environment)
	assert.Empty(t, ui.Secrets)
}
