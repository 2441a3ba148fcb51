package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "auralie",
		Short: "Auralie - simulated dating compatibility",
		Long: `auralie simulates a week of texting and dates between two persona agents
and reports how their mutual affinity evolved.

Each persona is driven by an LLM, colored by its personality type, values
and dealbreakers. Results are stored so they can be listed, shown and
exported later.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.auralie/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: error, warn, info, debug, trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newBatchCmd(),
		newProfilesCmd(),
		newListCmd(),
		newShowCmd(),
		newChatCmd(),
		newExportCmd(),
		newImportCmd(),
		newConfigCmd(),
		newMCPServeCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
