// Package baseline implements the baseline subcommand: record a
// trust-anchor fingerprint for a set of sources, for later cheap drift
// checks without re-parsing or re-diffing the full source tree.
package baseline

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pgschema "github.com/schemadrift/schemadrift"
	"github.com/schemadrift/schemadrift/cmd/shared"
)

var sources *[]string

var BaselineCmd = &cobra.Command{
	Use:          "baseline",
	Short:        "Record a trust-anchor fingerprint for a set of sources",
	RunE:         runBaseline,
	SilenceUsage: true,
}

func init() {
	sources = shared.AddSourceFlag(BaselineCmd)
}

func runBaseline(cmd *cobra.Command, args []string) error {
	var client pgschema.Client
	b, err := client.Baseline(context.Background(), *sources)
	if err != nil {
		shared.Fail(err)
	}
	fmt.Printf("fingerprint: %s\nsource_count: %d\n", b.Fingerprint, b.SourceCount)
	return nil
}
