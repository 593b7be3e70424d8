package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func TestLoadFromPath_FileNotExists(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.pgschemaignore"))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFromPath_ValidTOML(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.pgschemaignore")
	content := `[tables]
patterns = ["temp_*", "backup_*", "!backup_core"]

[views]
patterns = ["view_temp_*"]

[functions]
patterns = ["fn_test_*", "fn_debug_*"]

[types]
patterns = ["type_test_*"]

[sequences]
patterns = ["seq_temp_*"]
`
	require.NoError(t, os.WriteFile(testFile, []byte(content), 0644))

	cfg, err := LoadFromPath(testFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"temp_*", "backup_*", "!backup_core"}, cfg.Tables)
	assert.Equal(t, []string{"view_temp_*"}, cfg.Views)
	assert.Equal(t, []string{"fn_test_*", "fn_debug_*"}, cfg.Functions)
	assert.Equal(t, []string{"type_test_*"}, cfg.Types)
	assert.Equal(t, []string{"seq_temp_*"}, cfg.Sequences)
}

func TestLoadFromPath_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "invalid.pgschemaignore")
	require.NoError(t, os.WriteFile(testFile, []byte("[tables\npatterns = [\"temp_*\"\n"), 0644))

	cfg, err := LoadFromPath(testFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestShouldIgnore_WildcardAndNegation(t *testing.T) {
	cfg := &Config{Tables: []string{"temp_*", "backup_*", "!backup_core"}}
	assert.True(t, cfg.shouldIgnore("temp_sessions", cfg.Tables))
	assert.True(t, cfg.shouldIgnore("backup_orders", cfg.Tables))
	assert.False(t, cfg.shouldIgnore("backup_core", cfg.Tables))
	assert.False(t, cfg.shouldIgnore("users", cfg.Tables))
}

func TestShouldIgnore_NilConfig(t *testing.T) {
	var cfg *Config
	assert.False(t, cfg.shouldIgnore("anything", []string{"*"}))
}

func TestFilter_RemovesMatchingObjects(t *testing.T) {
	schema := ir.New()
	schema.Tables["public.users"] = &ir.Table{Namespace: "public", Name: "users"}
	schema.Tables["public.temp_sessions"] = &ir.Table{Namespace: "public", Name: "temp_sessions"}
	schema.Views["public.view_temp_report"] = &ir.View{Namespace: "public", Name: "view_temp_report"}
	schema.Sequences["public.seq_temp_ids"] = &ir.Sequence{Namespace: "public", Name: "seq_temp_ids"}

	cfg := &Config{
		Tables:    []string{"temp_*"},
		Views:     []string{"view_temp_*"},
		Sequences: []string{"seq_temp_*"},
	}
	Filter(schema, cfg)

	assert.Contains(t, schema.Tables, "public.users")
	assert.NotContains(t, schema.Tables, "public.temp_sessions")
	assert.Empty(t, schema.Views)
	assert.Empty(t, schema.Sequences)
}

func TestFilter_NilConfigIsNoOp(t *testing.T) {
	schema := ir.New()
	schema.Tables["public.users"] = &ir.Table{Namespace: "public", Name: "users"}
	Filter(schema, nil)
	assert.Len(t, schema.Tables, 1)
}
