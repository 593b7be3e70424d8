// Package drift implements the drift subcommand: report whether a
// live database has diverged from its declared sources (spec §6:
// `drift(sources, db_url)`).
package drift

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pgschema "github.com/schemadrift/schemadrift"
	"github.com/schemadrift/schemadrift/cmd/shared"
)

var (
	conn    *shared.ConnectionFlags
	sources *[]string
)

var DriftCmd = &cobra.Command{
	Use:          "drift",
	Short:        "Check whether a database has drifted from its sources",
	RunE:         runDrift,
	SilenceUsage: true,
}

func init() {
	conn = shared.AddConnectionFlags(DriftCmd)
	sources = shared.AddSourceFlag(DriftCmd)
}

func runDrift(cmd *cobra.Command, args []string) error {
	client := pgschema.NewClient(conn.DatabaseConfig())
	d, err := client.Drift(context.Background(), *sources)
	if err != nil {
		shared.Fail(err)
	}

	if !d.HasDrift {
		fmt.Println("no drift detected:", d.Expected.String())
		return nil
	}

	fmt.Printf("drift detected: expected %s, actual %s\n", d.Expected, d.Actual)
	fmt.Printf("%d operation(s) would reconcile it:\n", len(d.Ops))
	for _, op := range d.Ops {
		fmt.Println(" ", op.Describe())
	}
	os.Exit(2)
	return nil
}
