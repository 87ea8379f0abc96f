package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// expand Tests
// =============================================================================

func TestExpand_Simple(t *testing.T) {
	out, missing := expand("${node}.${namespace}.svc.cluster.local", map[string]string{
		"node":      "mysql",
		"namespace": "sample-shop",
	})
	assert.Empty(t, missing)
	assert.Equal(t, "mysql.sample-shop.svc.cluster.local", out)
}

func TestExpand_NoPlaceholders(t *testing.T) {
	out, missing := expand("dynamodb.amazonaws.com", nil)
	assert.Empty(t, missing)
	assert.Equal(t, "dynamodb.amazonaws.com", out)
}

func TestExpand_MissingVariable(t *testing.T) {
	out, missing := expand("${node}.${vpc_id}.internal", map[string]string{"node": "mysql"})
	assert.Equal(t, "vpc_id", missing)
	assert.Empty(t, out)
}

func TestExpand_ReportsFirstMissing(t *testing.T) {
	_, missing := expand("${alpha}${beta}", map[string]string{})
	assert.Equal(t, "alpha", missing)
}
