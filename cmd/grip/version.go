package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set via ldflags during build.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), fullVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func fullVersion() string {
	if Version == "dev" {
		return "grip dev"
	}
	return fmt.Sprintf("grip %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
