package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemadrift/schemadrift/internal/version"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display the version number of schemadrift",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("schemadrift v%s@%s %s %s\n", version.Version(), GitCommit, platform(), BuildDate)
	},
}

func init() {
	RootCmd.AddCommand(VersionCmd)
}
