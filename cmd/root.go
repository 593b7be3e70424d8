package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/schemadrift/schemadrift/cmd/apply"
	"github.com/schemadrift/schemadrift/cmd/baseline"
	"github.com/schemadrift/schemadrift/cmd/diff"
	"github.com/schemadrift/schemadrift/cmd/drift"
	"github.com/schemadrift/schemadrift/cmd/dump"
	"github.com/schemadrift/schemadrift/cmd/estimate"
	"github.com/schemadrift/schemadrift/cmd/lint"
	"github.com/schemadrift/schemadrift/cmd/plan"
	applog "github.com/schemadrift/schemadrift/internal/logger"
	"github.com/schemadrift/schemadrift/internal/version"
)

var Debug bool
var logger *slog.Logger

// Build-time variables set via ldflags
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var RootCmd = &cobra.Command{
	Use:   "schemadrift",
	Short: "Declarative PostgreSQL schema management",
	Long: fmt.Sprintf(`schemadrift diffs a declared SQL schema against a live PostgreSQL database,
lints the resulting migration for destructive and lock-hazardous changes,
and applies it inside a single transaction.

Version: %s@%s %s %s

Commands:
  dump      Dump a database's schema as SQL DDL
  plan      Generate a migration plan
  apply     Apply a migration plan
  diff      Diff two schema sources directly
  drift     Check whether a database has drifted from its sources
  lint      Lint the migration implied by a set of sources
  baseline  Record a trust-anchor fingerprint for a set of sources
  estimate  Estimate lock duration for a migration plan

Use "schemadrift [command] --help" for more information about a command.`,
		version.Version(), GitCommit, platform(), BuildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "Enable debug logging")
	RootCmd.AddCommand(dump.DumpCmd)
	RootCmd.AddCommand(plan.PlanCmd)
	RootCmd.AddCommand(apply.ApplyCmd)
	RootCmd.AddCommand(diff.DiffCmd)
	RootCmd.AddCommand(drift.DriftCmd)
	RootCmd.AddCommand(lint.LintCmd)
	RootCmd.AddCommand(baseline.BaselineCmd)
	RootCmd.AddCommand(estimate.EstimateCmd)
}

func setupLogger() {
	level := slog.LevelInfo
	if Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	applog.SetGlobal(logger, Debug)
}

// platform returns the OS/architecture combination
func platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
