package pgschema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemadrift/schemadrift/ir"
)

func TestNewClient_DefaultsSchemaToPublic(t *testing.T) {
	c := NewClient(DatabaseConfig{Host: "localhost", Database: "app", User: "app"})
	assert.Equal(t, "public", c.db.Schema)
	assert.Equal(t, []string{"public"}, c.namespaces())
}

func TestNewClient_PreservesExplicitSchema(t *testing.T) {
	c := NewClient(DatabaseConfig{Schema: "tenant_a"})
	assert.Equal(t, "tenant_a", c.db.Schema)
}

func TestDumpSchema_EmptySchemaProducesNoDDL(t *testing.T) {
	ddl, err := DumpSchema(ir.New())
	assert.NoError(t, err)
	assert.Empty(t, ddl)
}

func TestDumpSchema_RendersCreateTable(t *testing.T) {
	schema, err := resolveSources(context.Background(), []string{"sql:testdata/schema/tables.sql"})
	assert.NoError(t, err)

	ddl, err := DumpSchema(schema)
	assert.NoError(t, err)
	assert.Contains(t, ddl, "CREATE TABLE")
	assert.Contains(t, ddl, "accounts")
}

func TestClient_DiffSources_NoChanges(t *testing.T) {
	var c Client
	result, err := c.DiffSources(context.Background(), DiffSourcesOptions{
		From: []string{"sql:testdata/schema/tables.sql"},
		To:   []string{"sql:testdata/schema/tables.sql"},
	})
	assert.NoError(t, err)
	assert.Empty(t, result.Ops)
}

func TestClient_DiffSources_DetectsAddedView(t *testing.T) {
	var c Client
	result, err := c.DiffSources(context.Background(), DiffSourcesOptions{
		From: []string{"sql:testdata/schema/tables.sql"},
		To:   []string{"sql:testdata/schema/tables.sql", "sql:testdata/schema/views.sql"},
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Ops)
	assert.Contains(t, result.DDL, "active_accounts")
}

func TestClient_Baseline_RecordsFingerprint(t *testing.T) {
	var c Client
	baseline, err := c.Baseline(context.Background(), []string{"sql:testdata/schema/tables.sql"})
	assert.NoError(t, err)
	assert.NotNil(t, baseline)
}
