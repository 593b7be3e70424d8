// Package lint implements the lint subcommand: plan sources against
// the live database and print only the lint findings (spec §6: `lint(
// sources, db_url, lint_options)`).
package lint

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pgschema "github.com/schemadrift/schemadrift"
	"github.com/schemadrift/schemadrift/cmd/shared"
)

var (
	conn             *shared.ConnectionFlags
	sources          *[]string
	allowDestructive bool
)

var LintCmd = &cobra.Command{
	Use:          "lint",
	Short:        "Lint the migration implied by a set of sources",
	RunE:         runLint,
	SilenceUsage: true,
}

func init() {
	conn = shared.AddConnectionFlags(LintCmd)
	sources = shared.AddSourceFlag(LintCmd)
	LintCmd.Flags().BoolVar(&allowDestructive, "allow-destructive", false, "Downgrade destructive-change findings from error to warning")
}

func runLint(cmd *cobra.Command, args []string) error {
	client := pgschema.NewClient(conn.DatabaseConfig())
	results, err := client.Lint(context.Background(), *sources, pgschema.LintOptions{
		AllowDestructive: allowDestructive,
		IsProduction:     shared.IsProductionMode(),
	})
	if err != nil {
		shared.Fail(err)
	}

	if len(results) == 0 {
		fmt.Println("no findings")
		return nil
	}
	for _, r := range results {
		fmt.Printf("[%s/%s] %s\n", r.Rule, r.Severity, r.Message)
	}
	if pgschema.HasLintError(results) {
		os.Exit(1)
	}
	return nil
}
