// Package shared holds the connection and source-spec flag wiring
// every subcommand needs, so each command file stays about the
// command's own behavior instead of repeating flag boilerplate.
package shared

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pgschema "github.com/schemadrift/schemadrift"
	"github.com/schemadrift/schemadrift/cmd/util"
)

// ConnectionFlags holds the target-database flags every subcommand
// accepts.
type ConnectionFlags struct {
	Host     string
	Port     int
	DB       string
	User     string
	Password string
	Schema   string
}

// AddConnectionFlags registers the standard --host/--port/--db/--user/
// --password/--schema flags on cmd and wires PreRunE to fall back to
// PG* environment variables, matching every other subcommand.
func AddConnectionFlags(cmd *cobra.Command) *ConnectionFlags {
	f := &ConnectionFlags{}
	cmd.Flags().StringVar(&f.Host, "host", "localhost", "Database server host (env: PGHOST)")
	cmd.Flags().IntVar(&f.Port, "port", 5432, "Database server port (env: PGPORT)")
	cmd.Flags().StringVar(&f.DB, "db", "", "Database name (required) (env: PGDATABASE)")
	cmd.Flags().StringVar(&f.User, "user", "", "Database user name (required) (env: PGUSER)")
	cmd.Flags().StringVar(&f.Password, "password", "", "Database password (optional, env: PGPASSWORD)")
	cmd.Flags().StringVar(&f.Schema, "schema", "public", "Schema name")

	existing := cmd.PreRunE
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if err := util.PreRunEWithEnvVarsAndConnection(&f.DB, &f.User, &f.Host, &f.Port)(cmd, args); err != nil {
			return err
		}
		if f.Password == "" {
			f.Password = os.Getenv("PGPASSWORD")
		}
		if existing != nil {
			return existing(cmd, args)
		}
		return nil
	}
	return f
}

// DatabaseConfig converts the collected flags into a pgschema.DatabaseConfig.
func (f *ConnectionFlags) DatabaseConfig() pgschema.DatabaseConfig {
	return pgschema.DatabaseConfig{
		Host:     f.Host,
		Port:     f.Port,
		Database: f.DB,
		User:     f.User,
		Password: f.Password,
		Schema:   f.Schema,
	}
}

// AddSourceFlag registers the repeatable --source flag carrying spec
// §6's `sql:<path-or-glob>` / `db:<url>` source-spec grammar.
func AddSourceFlag(cmd *cobra.Command) *[]string {
	sources := new([]string)
	cmd.Flags().StringArrayVar(sources, "source", nil, "Desired-state source, sql:<path-or-glob> or db:<url> (repeatable, required)")
	cmd.MarkFlagRequired("source")
	return sources
}

// IsProductionMode reports spec §6's single environment toggle for
// production-mode lint behavior.
func IsProductionMode() bool {
	return os.Getenv("SCHEMADRIFT_PROD") == "1"
}

// ExitCode maps a returned error to the CLI's documented exit codes:
// 0 success, 1 lint error or runtime error, 2 drift detected (drift
// command only), 3 validation failed.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *pgschema.Error
	if pgschema.AsError(err, &e) {
		switch e.Kind {
		case pgschema.KindLint:
			return 1
		case pgschema.KindValidation:
			return 3
		}
	}
	return 1
}

// Fail prints err to stderr and exits with the code ExitCode derives
// from it.
func Fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(ExitCode(err))
}
