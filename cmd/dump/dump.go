// Package dump implements the dump subcommand: render a live
// database's schema as CREATE-statement DDL (spec §6: `dump(db_url)`).
package dump

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pgschema "github.com/schemadrift/schemadrift"
	"github.com/schemadrift/schemadrift/cmd/shared"
)

var outputFile string
var conn *shared.ConnectionFlags

var DumpCmd = &cobra.Command{
	Use:          "dump",
	Short:        "Dump a database schema as SQL DDL",
	Long:         "Introspect a database schema and print it as executable CREATE-statement SQL.",
	RunE:         runDump,
	SilenceUsage: true,
}

func init() {
	conn = shared.AddConnectionFlags(DumpCmd)
	DumpCmd.Flags().StringVar(&outputFile, "output", "", "Write DDL to this file instead of stdout")
}

func runDump(cmd *cobra.Command, args []string) error {
	client := pgschema.NewClient(conn.DatabaseConfig())
	ddl, err := client.Dump(context.Background(), pgschema.DumpOptions{})
	if err != nil {
		shared.Fail(err)
	}

	if outputFile == "" {
		fmt.Print(ddl)
		return nil
	}
	return os.WriteFile(outputFile, []byte(ddl), 0644)
}
