// Package diff implements the diff subcommand: compare two source
// specs directly, without a live database (spec §6: `diff(from_spec,
// to_spec, options)`).
package diff

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pgschema "github.com/schemadrift/schemadrift"
)

var (
	from       *[]string
	to         *[]string
	outputSQL  string
	ignoreFile string
)

var DiffCmd = &cobra.Command{
	Use:          "diff",
	Short:        "Diff two schema sources",
	Long:         "Compare --from against --to and print the operations that would transform one into the other.",
	RunE:         runDiff,
	SilenceUsage: true,
}

func init() {
	from = new([]string)
	to = new([]string)
	DiffCmd.Flags().StringArrayVar(from, "from", nil, "Source to diff from, sql:<path-or-glob> or db:<url> (repeatable, required)")
	DiffCmd.Flags().StringArrayVar(to, "to", nil, "Source to diff to, sql:<path-or-glob> or db:<url> (repeatable, required)")
	DiffCmd.Flags().StringVar(&outputSQL, "output-sql", "", "Write rendered DDL to this file instead of stdout")
	DiffCmd.Flags().StringVar(&ignoreFile, "ignore-file", "", "Path to a .pgschemaignore file excluding matching objects from the diff (default: ./.pgschemaignore if present)")
	DiffCmd.MarkFlagRequired("from")
	DiffCmd.MarkFlagRequired("to")
}

func runDiff(cmd *cobra.Command, args []string) error {
	var client pgschema.Client
	result, err := client.DiffSources(context.Background(), pgschema.DiffSourcesOptions{From: *from, To: *to, IgnoreFile: ignoreFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	fmt.Printf("%d operation(s):\n\n", len(result.Ops))
	for _, op := range result.Ops {
		fmt.Println(" ", op.Describe())
	}
	if outputSQL != "" {
		return os.WriteFile(outputSQL, []byte(result.DDL), 0644)
	}
	fmt.Println("\n--- DDL ---")
	fmt.Print(result.DDL)
	return nil
}
