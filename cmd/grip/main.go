package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grip",
	Short: "Replay pointer-drag scripts against the grip interaction core",
	Long: `grip runs scripted pointer rays through the drag/turn/click state machine
headlessly. A script declares a node tree with interaction types and a list of
start, update, end, cancel, drag and wait steps in JSON, YAML or TOML.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
