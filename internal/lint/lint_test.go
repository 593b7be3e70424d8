package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemadrift/schemadrift/internal/diff"
)

func TestCheck_DestructiveRequiresAllowDestructive(t *testing.T) {
	ops := []diff.MigrationOp{diff.DropTable{Namespace: "public", Name: "sessions"}}

	results := Check(ops, Options{})
	assert.True(t, HasError(results))

	results = Check(ops, Options{AllowDestructive: true})
	assert.False(t, HasError(results))
}

func TestCheck_ProductionEscalatesRegardlessOfAllowDestructive(t *testing.T) {
	ops := []diff.MigrationOp{diff.DropTable{Namespace: "public", Name: "sessions"}}

	results := Check(ops, Options{AllowDestructive: true, IsProduction: true})
	assert.True(t, HasError(results))
}

func TestCheck_SchemaLevelDestructiveNotProductionOnly(t *testing.T) {
	ops := []diff.MigrationOp{diff.DropEnum{Namespace: "public", Name: "status"}}

	results := Check(ops, Options{AllowDestructive: true, IsProduction: true})
	assert.False(t, HasError(results))
}

func TestCheck_LockHazardAnnotatesLevel(t *testing.T) {
	dt := "uuid"
	ops := []diff.MigrationOp{
		diff.AlterColumn{Namespace: "public", Table: "users", Column: "id", Changes: diff.ColumnChanges{DataType: &dt}},
	}
	results := Check(ops, Options{})
	assert.Len(t, results, 1)
	assert.Equal(t, RuleLockHazard, results[0].Rule)
	assert.Equal(t, SeverityWarning, results[0].Severity)
	assert.Contains(t, results[0].Message, string(LockAccessExclusive))
}

func TestCheck_NeverMutatesInput(t *testing.T) {
	ops := []diff.MigrationOp{diff.DropTable{Namespace: "public", Name: "sessions"}}
	before := len(ops)
	Check(ops, Options{})
	assert.Equal(t, before, len(ops))
}

func TestCheckUnsupported_OneResultPerNotice(t *testing.T) {
	results := CheckUnsupported([]string{
		`EXCLUDE constraint "bookings_excl" on public.bookings is not represented in the schema model and will not be reproduced`,
	})
	if assert.Len(t, results, 1) {
		assert.Equal(t, RuleUnsupported, results[0].Rule)
		assert.Equal(t, SeverityInfo, results[0].Severity)
		assert.Equal(t, -1, results[0].OperationIndex)
	}
}

func TestCheckUnsupported_EmptyNoticesProduceNoResults(t *testing.T) {
	assert.Empty(t, CheckUnsupported(nil))
}
