package shared

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/schemadrift/schemadrift/internal/errs"
)

func TestAddConnectionFlags_Defaults(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	f := AddConnectionFlags(cmd)

	assert.Equal(t, "localhost", f.Host)
	assert.Equal(t, 5432, f.Port)
	assert.Equal(t, "public", f.Schema)
}

func TestConnectionFlags_DatabaseConfig(t *testing.T) {
	f := &ConnectionFlags{Host: "db.internal", Port: 5433, DB: "app", User: "admin", Password: "secret", Schema: "tenant_a"}
	cfg := f.DatabaseConfig()

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "app", cfg.Database)
	assert.Equal(t, "admin", cfg.User)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "tenant_a", cfg.Schema)
}

func TestAddSourceFlag_Repeatable(t *testing.T) {
	cmd := &cobra.Command{Use: "test", RunE: func(cmd *cobra.Command, args []string) error { return nil }}
	sources := AddSourceFlag(cmd)
	cmd.SetArgs([]string{"--source", "sql:a.sql", "--source", "db:postgres://x"})

	assert.NoError(t, cmd.Execute())
	assert.Equal(t, []string{"sql:a.sql", "db:postgres://x"}, *sources)
}

func TestIsProductionMode(t *testing.T) {
	os.Unsetenv("SCHEMADRIFT_PROD")
	assert.False(t, IsProductionMode())

	os.Setenv("SCHEMADRIFT_PROD", "1")
	defer os.Unsetenv("SCHEMADRIFT_PROD")
	assert.True(t, IsProductionMode())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 1, ExitCode(errs.Lint("blocked")))
	assert.Equal(t, 3, ExitCode(errs.Validation("drifted")))
	assert.Equal(t, 1, ExitCode(errs.Parse("bad sql")))
}
