package applier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/ir"
)

func TestRenderStatements_OwnersTrackSourceOp(t *testing.T) {
	ops := []diff.MigrationOp{
		diff.CreateSchema{Namespace: &ir.Namespace{Name: "app"}},
		diff.CreateEnum{Enum: &ir.Enum{Namespace: "app", Name: "status", Values: []string{"active", "done"}}},
	}

	statements, owners, err := renderStatements(ops)
	if assert.NoError(t, err) {
		assert.Len(t, statements, len(owners))
		for _, owner := range owners {
			assert.GreaterOrEqual(t, owner, 0)
			assert.Less(t, owner, len(ops))
		}
	}
}

func TestRenderStatements_EmptyOpsProduceNoStatements(t *testing.T) {
	statements, owners, err := renderStatements(nil)
	assert.NoError(t, err)
	assert.Empty(t, statements)
	assert.Empty(t, owners)
}

func TestQuoteLiteral(t *testing.T) {
	assert.Equal(t, "'30s'", quoteLiteral("30s"))
	assert.Equal(t, "'o''brien'", quoteLiteral("o'brien"))
}
