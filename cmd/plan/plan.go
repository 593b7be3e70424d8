// Package plan implements the plan subcommand: compute and print the
// ordered migration operations that bring a database in line with a
// set of sources, without executing them (spec §6: `plan(sources,
// db_url, options)`).
package plan

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pgschema "github.com/schemadrift/schemadrift"
	"github.com/schemadrift/schemadrift/cmd/shared"
	"github.com/schemadrift/schemadrift/internal/color"
)

var (
	conn             *shared.ConnectionFlags
	sources          *[]string
	allowDestructive bool
	noColor          bool
	outputSQL        string
	ignoreFile       string
)

var PlanCmd = &cobra.Command{
	Use:          "plan",
	Short:        "Generate a migration plan",
	Long:         "Compare --source against a database's current schema and print the operations, rendered DDL, and lint findings that would reconcile them.",
	RunE:         runPlan,
	SilenceUsage: true,
}

func init() {
	conn = shared.AddConnectionFlags(PlanCmd)
	sources = shared.AddSourceFlag(PlanCmd)
	PlanCmd.Flags().BoolVar(&allowDestructive, "allow-destructive", false, "Downgrade destructive-change lint findings from error to warning")
	PlanCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	PlanCmd.Flags().StringVar(&outputSQL, "output-sql", "", "Write rendered DDL to this file instead of stdout")
	PlanCmd.Flags().StringVar(&ignoreFile, "ignore-file", "", "Path to a .pgschemaignore file excluding matching objects from the diff (default: ./.pgschemaignore if present)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	client := pgschema.NewClient(conn.DatabaseConfig())
	result, err := client.Plan(context.Background(), pgschema.PlanOptions{
		Sources: *sources,
		Lint: pgschema.LintOptions{
			AllowDestructive: allowDestructive,
			IsProduction:     shared.IsProductionMode(),
		},
		IgnoreFile: ignoreFile,
	})
	if err != nil {
		shared.Fail(err)
	}

	printPlan(result)

	if outputSQL != "" {
		if err := os.WriteFile(outputSQL, []byte(result.DDL), 0644); err != nil {
			return err
		}
	}
	if pgschema.HasLintError(result.Lint) {
		os.Exit(1)
	}
	return nil
}

func printPlan(result *pgschema.PlanResult) {
	c := color.New(!noColor)
	fmt.Printf("%d operation(s) planned:\n\n", len(result.Ops))
	for _, op := range result.Ops {
		fmt.Println(c.FormatPlanLine("", "operation", op.Describe(), "change"))
	}
	if len(result.Lint) > 0 {
		fmt.Println("\nLint findings:")
		for _, r := range result.Lint {
			fmt.Printf("  [%s/%s] %s\n", r.Rule, r.Severity, r.Message)
		}
	}
	if len(result.DDL) > 0 && outputSQL == "" {
		fmt.Println("\n--- DDL ---")
		fmt.Print(result.DDL)
	}
}
