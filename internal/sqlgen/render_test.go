package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/ir"
)

func TestRender_CreateTable(t *testing.T) {
	table := &ir.Table{
		Namespace: "public",
		Name:      "users",
		Columns: []*ir.Column{
			{Name: "id", DataType: "uuid", Nullable: false},
			{Name: "email", DataType: "text", Nullable: true},
		},
		PrimaryKey: &ir.PrimaryKey{Name: "users_pkey", Columns: []string{"id"}},
	}

	stmts, err := Render(diff.CreateTable{Table: table})
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], `CREATE TABLE public.users`)
	assert.Contains(t, stmts[0], `id uuid NOT NULL`)
	assert.Contains(t, stmts[0], `CONSTRAINT users_pkey PRIMARY KEY (id)`)
}

func TestRender_CreateTableWithIndexIsASeparateStatement(t *testing.T) {
	table := &ir.Table{
		Namespace: "public",
		Name:      "users",
		Columns: []*ir.Column{
			{Name: "id", DataType: "uuid", Nullable: false},
			{Name: "email", DataType: "text", Nullable: true},
		},
		Indexes: []*ir.Index{
			{Name: "users_email_idx", Columns: []ir.IndexColumn{{Expression: "email"}}},
		},
	}

	stmts, err := Render(diff.CreateTable{Table: table})
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], `CREATE TABLE public.users`)
	assert.NotContains(t, stmts[0], `CREATE INDEX`)
	assert.Equal(t, `CREATE INDEX users_email_idx ON public.users (email);`, stmts[1])
}

func TestRender_AlterColumnTypeChange(t *testing.T) {
	uuid := "uuid"
	stmts, err := Render(diff.AlterColumn{
		Namespace: "public", Table: "users", Column: "id",
		Changes: diff.ColumnChanges{DataType: &uuid},
	})
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, `ALTER TABLE public.users ALTER COLUMN id TYPE uuid USING id::uuid;`, stmts[0])
}

func TestRender_AlterColumnMultipleChangesAreSeparateStatements(t *testing.T) {
	uuid := "uuid"
	notNull := false
	stmts, err := Render(diff.AlterColumn{
		Namespace: "public", Table: "users", Column: "id",
		Changes: diff.ColumnChanges{DataType: &uuid, Nullable: &notNull},
	})
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, `ALTER TABLE public.users ALTER COLUMN id TYPE uuid USING id::uuid;`, stmts[0])
	assert.Equal(t, `ALTER TABLE public.users ALTER COLUMN id SET NOT NULL;`, stmts[1])
}

func TestRender_AddForeignKey(t *testing.T) {
	fk := &ir.ForeignKey{
		Name: "posts_user_id_fkey", Columns: []string{"user_id"},
		ReferencedSchema: "public", ReferencedTable: "users", ReferencedColumns: []string{"id"},
		OnDelete: "CASCADE",
	}
	stmts, err := Render(diff.AddForeignKey{Namespace: "public", Table: "posts", ForeignKey: fk})
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, `ALTER TABLE public.posts ADD CONSTRAINT posts_user_id_fkey FOREIGN KEY (user_id) REFERENCES public.users (id) ON DELETE CASCADE;`, stmts[0])
}

func TestRender_CreatePolicy(t *testing.T) {
	p := &ir.Policy{Name: "tenant_isolation", Command: ir.PolicyCommandSelect, Permissive: true, Using: "tenant_id = current_tenant_id()"}
	stmts, err := Render(diff.CreatePolicy{Namespace: "public", Table: "orders", Policy: p})
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, `CREATE POLICY tenant_isolation ON public.orders FOR SELECT USING (tenant_id = current_tenant_id());`, stmts[0])
}

func TestRender_CreateTrigger(t *testing.T) {
	trig := &ir.Trigger{
		Namespace: "public", Table: "users", Name: "audit_trigger",
		Timing: ir.TriggerTimingAfter, Events: []ir.TriggerEvent{ir.TriggerEventUpdate, ir.TriggerEventInsert},
		ForEachRow: true, FunctionNamespace: "public", FunctionName: "audit_fn",
	}
	stmts, err := Render(diff.CreateTrigger{Trigger: trig})
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, `CREATE TRIGGER audit_trigger AFTER INSERT OR UPDATE ON public.users FOR EACH ROW EXECUTE FUNCTION public.audit_fn();`, stmts[0])
}

func TestRender_DropEnum(t *testing.T) {
	stmts, err := Render(diff.DropEnum{Namespace: "public", Name: "status"})
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, `DROP TYPE public.status;`, stmts[0])
}

func TestRender_SetColumnNotNull(t *testing.T) {
	stmts, err := Render(diff.SetColumnNotNull{Namespace: "public", Table: "users", Column: "email"})
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, `ALTER TABLE public.users ALTER COLUMN email SET NOT NULL;`, stmts[0])
}

func TestRenderAll_JoinsEveryOp(t *testing.T) {
	ops := []diff.MigrationOp{
		diff.DropEnum{Namespace: "public", Name: "status"},
		diff.DropSchema{Name: "legacy"},
	}
	out, err := RenderAll(ops)
	require.NoError(t, err)
	assert.Contains(t, out, "DROP TYPE public.status;")
	assert.Contains(t, out, "DROP SCHEMA legacy CASCADE;")
}
