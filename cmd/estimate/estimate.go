// Package estimate implements the estimate subcommand: report a
// best-effort lock-duration estimate for every hazardous operation a
// plan would execute, sized against the target tables' approximate
// row counts.
package estimate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pgschema "github.com/schemadrift/schemadrift"
	"github.com/schemadrift/schemadrift/cmd/shared"
	"github.com/schemadrift/schemadrift/internal/report"
)

var (
	conn    *shared.ConnectionFlags
	sources *[]string
)

var EstimateCmd = &cobra.Command{
	Use:          "estimate",
	Short:        "Estimate lock duration for a migration plan",
	RunE:         runEstimate,
	SilenceUsage: true,
}

func init() {
	conn = shared.AddConnectionFlags(EstimateCmd)
	sources = shared.AddSourceFlag(EstimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := pgschema.NewClient(conn.DatabaseConfig())

	rowCounts, err := client.ApproxRowCounts(ctx)
	if err != nil {
		shared.Fail(err)
	}

	estimates, err := client.Estimate(ctx, *sources, rowCounts)
	if err != nil {
		shared.Fail(err)
	}
	if len(estimates) == 0 {
		fmt.Println("no lock-hazardous operations")
		return nil
	}

	fmt.Print(report.Summary(estimates))
	return nil
}
