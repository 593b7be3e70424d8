// Package apply implements the apply subcommand: plan against the
// live database and, after confirmation, execute inside a single
// transaction (spec §6: `apply(sources, db_url, options)`).
package apply

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	pgschema "github.com/schemadrift/schemadrift"
	"github.com/schemadrift/schemadrift/cmd/shared"
	"github.com/schemadrift/schemadrift/internal/color"
)

var (
	conn             *shared.ConnectionFlags
	sources          *[]string
	allowDestructive bool
	autoApprove      bool
	dryRun           bool
	noColor          bool
	quiet            bool
	lockTimeout      string
	ignoreFile       string
)

var ApplyCmd = &cobra.Command{
	Use:          "apply",
	Short:        "Apply a migration plan to a database",
	Long:         "Plan --source against a database's current schema, show the plan, and (after confirmation) apply it inside one transaction.",
	RunE:         runApply,
	SilenceUsage: true,
}

func init() {
	conn = shared.AddConnectionFlags(ApplyCmd)
	sources = shared.AddSourceFlag(ApplyCmd)
	ApplyCmd.Flags().BoolVar(&allowDestructive, "allow-destructive", false, "Downgrade destructive-change lint findings from error to warning")
	ApplyCmd.Flags().BoolVar(&autoApprove, "auto-approve", false, "Apply changes without prompting for approval")
	ApplyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan and lint but don't execute")
	ApplyCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	ApplyCmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress plan display and progress messages")
	ApplyCmd.Flags().StringVar(&lockTimeout, "lock-timeout", "", "Maximum time to wait for a DDL lock, e.g. 30s, 5m")
	ApplyCmd.Flags().StringVar(&ignoreFile, "ignore-file", "", "Path to a .pgschemaignore file excluding matching objects from the diff (default: ./.pgschemaignore if present)")
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := pgschema.NewClient(conn.DatabaseConfig())

	opts := pgschema.ApplyOptions{
		Sources: *sources,
		Lint: pgschema.LintOptions{
			AllowDestructive: allowDestructive,
			IsProduction:     shared.IsProductionMode(),
		},
		DryRun:      true,
		LockTimeout: lockTimeout,
		IgnoreFile:  ignoreFile,
	}

	planned, err := client.Apply(ctx, opts)
	if err != nil {
		shared.Fail(err)
	}

	c := color.New(!noColor)
	if !quiet {
		printApplyPlan(c, planned)
	}
	if pgschema.HasLintError(planned.Lint) {
		fmt.Fprintln(os.Stderr, "lint found blocking errors; aborting")
		os.Exit(1)
	}
	if dryRun {
		return nil
	}

	if !autoApprove {
		fmt.Print("\nDo you want to apply these changes? (yes/no): ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "yes" && response != "y" {
			fmt.Println("Apply cancelled.")
			return nil
		}
	}

	if !quiet {
		fmt.Println("\nApplying changes...")
	}
	opts.DryRun = false
	result, err := client.Apply(ctx, opts)
	if err != nil {
		shared.Fail(err)
	}
	if !quiet {
		fmt.Printf("Applied %d statement(s).\n", result.StatementsExecuted)
	}
	return nil
}

func printApplyPlan(c *color.Color, result *pgschema.ApplyResult) {
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
}
