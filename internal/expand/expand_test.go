package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/ir"
)

// TestSplit_AddColumnNotNull exercises spec scenario 1.
func TestSplit_AddColumnNotNull(t *testing.T) {
	ops := []diff.MigrationOp{
		diff.AddColumn{Namespace: "public", Table: "users", Column: &ir.Column{Name: "email", DataType: "text", Nullable: false}},
	}

	phases := Split(ops)

	require.Len(t, phases.Expand, 1)
	expandCol := phases.Expand[0].(diff.AddColumn)
	assert.True(t, expandCol.Column.Nullable)
	assert.Equal(t, "email", expandCol.Column.Name)

	require.Len(t, phases.Backfill, 1)
	hint := phases.Backfill[0].(diff.BackfillHint)
	assert.Equal(t, "email", hint.Column)
	assert.Contains(t, hint.Reason, "email")

	require.Len(t, phases.Contract, 1)
	notNull := phases.Contract[0].(diff.SetColumnNotNull)
	assert.Equal(t, "email", notNull.Column)
	assert.Equal(t, "users", notNull.Table)
}

func TestSplit_NullableAddColumnPassesThroughUnchanged(t *testing.T) {
	ops := []diff.MigrationOp{
		diff.AddColumn{Namespace: "public", Table: "users", Column: &ir.Column{Name: "nickname", Nullable: true}},
	}

	phases := Split(ops)

	assert.Equal(t, ops, phases.Expand)
	assert.Empty(t, phases.Backfill)
	assert.Empty(t, phases.Contract)
}

func TestSplit_OtherOpsPassThroughToExpand(t *testing.T) {
	ops := []diff.MigrationOp{
		diff.CreateTable{Table: &ir.Table{Namespace: "public", Name: "accounts"}},
		diff.DropColumn{Namespace: "public", Table: "accounts", Column: "legacy"},
	}

	phases := Split(ops)

	assert.Equal(t, ops, phases.Expand)
	assert.Empty(t, phases.Backfill)
	assert.Empty(t, phases.Contract)
}

func TestVersionSchemaOverlay_BuildsViewPerTable(t *testing.T) {
	schema := &ir.Schema{
		Tables: map[string]*ir.Table{
			"public.users": {
				Namespace: "public",
				Name:      "users",
				Columns: []*ir.Column{
					{Name: "id"},
					{Name: "email"},
				},
			},
			"billing.invoices": {Namespace: "billing", Name: "invoices"},
		},
	}

	ops := VersionSchemaOverlay(schema, "public", 2, nil)

	require.Len(t, ops, 2)
	createSchema, ok := ops[0].(diff.CreateSchema)
	require.True(t, ok)
	assert.Equal(t, "public_v2", createSchema.Namespace.Name)

	view, ok := ops[1].(diff.CreateView)
	require.True(t, ok)
	assert.Equal(t, "public_v2", view.View.Namespace)
	assert.Equal(t, "users", view.View.Name)
	assert.True(t, view.View.SecurityInvoker)
	assert.Contains(t, view.View.Query, "public.users")
}

func TestVersionSchemaOverlay_AppliesColumnRename(t *testing.T) {
	schema := &ir.Schema{
		Tables: map[string]*ir.Table{
			"public.users": {
				Namespace: "public",
				Name:      "users",
				Columns: []*ir.Column{
					{Name: "full_name"},
				},
			},
		},
	}

	ops := VersionSchemaOverlay(schema, "public", 3, map[string]map[string]string{
		"users": {"full_name": "name"},
	})

	view := ops[1].(diff.CreateView)
	assert.Contains(t, view.View.Query, "name AS full_name")
}

func TestPreviousVersionDrop(t *testing.T) {
	op := PreviousVersionDrop("public", 1)
	dropSchema, ok := op.(diff.DropSchema)
	require.True(t, ok)
	assert.Equal(t, "public_v1", dropSchema.Name)
}
