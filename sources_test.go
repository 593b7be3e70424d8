package pgschema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSources_NoSources(t *testing.T) {
	_, err := resolveSources(context.Background(), nil)
	assert.Error(t, err)
}

func TestResolveSources_RejectsUnprefixedSpec(t *testing.T) {
	_, err := resolveSources(context.Background(), []string{"schema.sql"})
	assert.Error(t, err)
}

func TestResolveSources_RejectsEmptySQLSpec(t *testing.T) {
	_, err := resolveSources(context.Background(), []string{"sql:"})
	assert.Error(t, err)
}

func TestResolveSources_ParsesSQLGlob(t *testing.T) {
	schema, err := resolveSources(context.Background(), []string{"sql:testdata/schema/*.sql"})
	assert.NoError(t, err)
	assert.NotNil(t, schema)
}

func TestResolveSources_MergesMultipleSQLSources(t *testing.T) {
	schema, err := resolveSources(context.Background(), []string{
		"sql:testdata/schema/tables.sql",
		"sql:testdata/schema/views.sql",
	})
	assert.NoError(t, err)
	assert.NotNil(t, schema)
	assert.Contains(t, schema.Tables, "public.accounts")
	assert.Contains(t, schema.Views, "public.active_accounts")
}
