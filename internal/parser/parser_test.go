package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func TestParseSQL_CreateTableWithInlineConstraints(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TABLE public.orders (
			id uuid PRIMARY KEY,
			customer_id uuid NOT NULL REFERENCES public.customers(id) ON DELETE CASCADE,
			total numeric CHECK (total >= 0),
			sku text UNIQUE
		);
	`)
	require.NoError(t, err)

	table, ok := p.Schema().Tables["public.orders"]
	require.True(t, ok)
	require.Len(t, table.Columns, 4)
	require.NotNil(t, table.PrimaryKey)
	assert.Equal(t, []string{"id"}, table.PrimaryKey.Columns)
	require.Len(t, table.ForeignKeys, 1)
	assert.Equal(t, "public", table.ForeignKeys[0].ReferencedSchema)
	assert.Equal(t, "customers", table.ForeignKeys[0].ReferencedTable)
	assert.Equal(t, "CASCADE", table.ForeignKeys[0].OnDelete)
	require.Len(t, table.Checks, 1)
	found := false
	for _, idx := range table.Indexes {
		if idx.Unique {
			found = true
		}
	}
	assert.True(t, found, "expected a unique index from the inline UNIQUE column constraint")
}

func TestParseSQL_CreateIndex(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TABLE public.events (id uuid PRIMARY KEY, occurred_at timestamptz);
		CREATE INDEX events_occurred_at_idx ON public.events (occurred_at DESC);
	`)
	require.NoError(t, err)

	table := p.Schema().Tables["public.events"]
	require.Len(t, table.Indexes, 1)
	assert.Equal(t, "events_occurred_at_idx", table.Indexes[0].Name)
	assert.Equal(t, "DESC", table.Indexes[0].Columns[0].Direction)
}

func TestParseSQL_AlterTableAddColumnAndConstraint(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TABLE public.accounts (id uuid PRIMARY KEY);
		ALTER TABLE public.accounts ADD COLUMN balance numeric NOT NULL DEFAULT 0;
		ALTER TABLE public.accounts ADD CONSTRAINT accounts_balance_check CHECK (balance >= 0);
		ALTER TABLE public.accounts ENABLE ROW LEVEL SECURITY;
	`)
	require.NoError(t, err)

	table := p.Schema().Tables["public.accounts"]
	col := table.ColumnByName("balance")
	require.NotNil(t, col)
	assert.False(t, col.Nullable)
	require.NotNil(t, col.Default)
	require.Len(t, table.Checks, 1)
	assert.Equal(t, "accounts_balance_check", table.Checks[0].Name)
	assert.True(t, table.RLSEnabled)
}

func TestParseSQL_AlterTableDropColumnAndConstraint(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TABLE public.widgets (
			id uuid PRIMARY KEY,
			legacy_code text,
			CONSTRAINT widgets_legacy_check CHECK (legacy_code <> '')
		);
		ALTER TABLE public.widgets DROP CONSTRAINT widgets_legacy_check;
		ALTER TABLE public.widgets DROP COLUMN legacy_code;
	`)
	require.NoError(t, err)

	table := p.Schema().Tables["public.widgets"]
	assert.Nil(t, table.ColumnByName("legacy_code"))
	assert.Empty(t, table.Checks)
}

func TestParseSQL_CreateView(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TABLE public.users (id uuid PRIMARY KEY, active boolean);
		CREATE VIEW public.active_users AS SELECT id FROM public.users WHERE active;
	`)
	require.NoError(t, err)

	view, ok := p.Schema().Views["public.active_users"]
	require.True(t, ok)
	assert.False(t, view.Materialized)
	assert.Contains(t, view.Query, "users")
}

func TestParseSQL_CreateMaterializedView(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TABLE public.users (id uuid PRIMARY KEY);
		CREATE MATERIALIZED VIEW public.user_counts AS SELECT count(*) FROM public.users;
	`)
	require.NoError(t, err)

	view, ok := p.Schema().Views["public.user_counts"]
	require.True(t, ok)
	assert.True(t, view.Materialized)
}

func TestParseSQL_CreateFunctionAndTrigger(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TABLE public.accounts (id uuid PRIMARY KEY, balance numeric);
		CREATE FUNCTION public.check_balance() RETURNS trigger LANGUAGE plpgsql AS $$ BEGIN RETURN NEW; END; $$;
		CREATE TRIGGER accounts_balance_trigger
			BEFORE UPDATE ON public.accounts
			FOR EACH ROW
			EXECUTE FUNCTION public.check_balance();
	`)
	require.NoError(t, err)

	fn, ok := p.Schema().Functions[ir.FunctionKey("public", "check_balance", nil)]
	require.True(t, ok)
	assert.Equal(t, "plpgsql", fn.Language)

	trig, ok := p.Schema().Triggers[ir.TriggerKey("public", "accounts", "accounts_balance_trigger")]
	require.True(t, ok)
	assert.Equal(t, ir.TriggerTimingBefore, trig.Timing)
	assert.Equal(t, []ir.TriggerEvent{ir.TriggerEventUpdate}, trig.Events)
	assert.True(t, trig.ForEachRow)
}

func TestParseSQL_CreatePolicy(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TABLE public.orders (id uuid PRIMARY KEY, tenant_id uuid);
		ALTER TABLE public.orders ENABLE ROW LEVEL SECURITY;
		CREATE POLICY tenant_isolation ON public.orders
			FOR SELECT
			USING (tenant_id = current_setting('app.tenant_id')::uuid);
	`)
	require.NoError(t, err)

	table := p.Schema().Tables["public.orders"]
	require.Len(t, table.Policies, 1)
	assert.Equal(t, "tenant_isolation", table.Policies[0].Name)
	assert.Equal(t, ir.PolicyCommandSelect, table.Policies[0].Command)
}

func TestParseSQL_PolicyBeforeTableIsDeferred(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE POLICY tenant_isolation ON public.orders FOR SELECT USING (true);
		CREATE TABLE public.orders (id uuid PRIMARY KEY);
	`)
	require.NoError(t, err)
	require.Len(t, p.Schema().PendingPolicies, 1)

	require.NoError(t, p.Schema().Finalize(true))
	table := p.Schema().Tables["public.orders"]
	require.Len(t, table.Policies, 1)
	assert.Empty(t, p.Schema().PendingPolicies)
}

func TestParseSQL_GrantAndRevoke(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TABLE public.orders (id uuid PRIMARY KEY);
		GRANT SELECT, INSERT ON public.orders TO app_readwrite;
		REVOKE INSERT ON public.orders FROM app_readwrite;
	`)
	require.NoError(t, err)
	require.NoError(t, p.Schema().Finalize(true))

	table := p.Schema().Tables["public.orders"]
	require.Len(t, table.Grants, 1)
	assert.Equal(t, "app_readwrite", table.Grants[0].Grantee)
	assert.True(t, table.Grants[0].HasPrivilege("select"))
	assert.False(t, table.Grants[0].HasPrivilege("insert"))
}

func TestParseSQL_AlterOwner(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TABLE public.orders (id uuid PRIMARY KEY);
		ALTER TABLE public.orders OWNER TO app_admin;
	`)
	require.NoError(t, err)
	require.NoError(t, p.Schema().Finalize(true))

	table := p.Schema().Tables["public.orders"]
	assert.Equal(t, "app_admin", table.Owner)
}

func TestParseSQL_AlterDefaultPrivileges(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		ALTER DEFAULT PRIVILEGES IN SCHEMA public GRANT SELECT ON TABLES TO app_readonly;
	`)
	require.NoError(t, err)
	require.Len(t, p.Schema().DefaultPrivileges, 1)
	assert.Equal(t, "app_readonly", p.Schema().DefaultPrivileges[0].Grantee)
	assert.Equal(t, "public", p.Schema().DefaultPrivileges[0].SchemaScope)
}

func TestParseSQL_EnumDomainSequence(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TYPE public.order_status AS ENUM ('pending', 'shipped', 'delivered');
		CREATE DOMAIN public.positive_int AS integer CHECK (VALUE > 0);
		CREATE SEQUENCE public.order_seq START 100 INCREMENT 1;
	`)
	require.NoError(t, err)

	enum, ok := p.Schema().Enums["public.order_status"]
	require.True(t, ok)
	assert.Equal(t, []string{"pending", "shipped", "delivered"}, enum.Values)

	domain, ok := p.Schema().Domains["public.positive_int"]
	require.True(t, ok)
	assert.Equal(t, "integer", domain.BaseType)
	require.Len(t, domain.Checks, 1)

	seq, ok := p.Schema().Sequences["public.order_seq"]
	require.True(t, ok)
	assert.Equal(t, int64(100), seq.Start)
}

func TestMerge_DuplicateTableAcrossFilesIsError(t *testing.T) {
	first := New()
	require.NoError(t, first.ParseSQL(`CREATE TABLE public.orders (id uuid PRIMARY KEY);`))
	second := New()
	require.NoError(t, second.ParseSQL(`CREATE TABLE public.orders (id uuid PRIMARY KEY);`))

	merged := ir.New()
	origins := make(map[string]string)
	require.NoError(t, merged.Merge(first.Schema(), "a.sql", origins))
	err := merged.Merge(second.Schema(), "b.sql", origins)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.sql")
}
