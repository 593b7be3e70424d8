package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSQL_AlterColumnType(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TABLE public.metrics (id uuid PRIMARY KEY, value integer);
		ALTER TABLE public.metrics ALTER COLUMN value TYPE bigint;
	`)
	require.NoError(t, err)

	col := p.Schema().Tables["public.metrics"].ColumnByName("value")
	require.NotNil(t, col)
	assert.Equal(t, "bigint", col.DataType)
}

func TestParseSQL_AlterColumnSetAndDropNotNull(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TABLE public.metrics (id uuid PRIMARY KEY, label text);
		ALTER TABLE public.metrics ALTER COLUMN label SET NOT NULL;
	`)
	require.NoError(t, err)
	assert.False(t, p.Schema().Tables["public.metrics"].ColumnByName("label").Nullable)

	p2 := New()
	err = p2.ParseSQL(`
		CREATE TABLE public.metrics (id uuid PRIMARY KEY, label text NOT NULL);
		ALTER TABLE public.metrics ALTER COLUMN label DROP NOT NULL;
	`)
	require.NoError(t, err)
	assert.True(t, p2.Schema().Tables["public.metrics"].ColumnByName("label").Nullable)
}

func TestParseSQL_AttachPartition(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TABLE public.events (id uuid, occurred_at date) PARTITION BY RANGE (occurred_at);
		CREATE TABLE public.events_2026 (id uuid, occurred_at date);
		ALTER TABLE public.events ATTACH PARTITION public.events_2026
			FOR VALUES FROM ('2026-01-01') TO ('2027-01-01');
	`)
	require.NoError(t, err)

	descriptor, ok := p.Schema().Partitions["public.events_2026"]
	require.True(t, ok)
	assert.Equal(t, "events", descriptor.ParentTable)
	assert.Equal(t, "public", descriptor.ParentNamespace)
}

func TestParseSQL_AlterTableChangeOwner(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TABLE public.widgets (id uuid PRIMARY KEY);
		ALTER TABLE public.widgets OWNER TO widget_admin;
	`)
	require.NoError(t, err)
	require.NoError(t, p.Schema().Finalize(true))
	assert.Equal(t, "widget_admin", p.Schema().Tables["public.widgets"].Owner)
}

func TestParseSQL_AlterTableUndefinedTableErrors(t *testing.T) {
	p := New()
	err := p.ParseSQL(`ALTER TABLE public.missing ADD COLUMN x text;`)
	assert.Error(t, err)
}

func TestParseSQL_ExcludeConstraintRecordsUnsupportedNotice(t *testing.T) {
	p := New()
	err := p.ParseSQL(`
		CREATE TABLE public.bookings (
			room_id uuid NOT NULL,
			during tstzrange NOT NULL,
			EXCLUDE USING gist (room_id WITH =, during WITH &&)
		);
	`)
	require.NoError(t, err)
	require.Len(t, p.Schema().Unsupported, 1)
	assert.Contains(t, p.Schema().Unsupported[0], "EXCLUDE constraint")
}
