package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rpsmatch",
		Short: "Real-time rock-paper-scissors matchmaking server",
		Long: `rpsmatch runs a real-time two-player rock-paper-scissors server.

Clients connect over a websocket, request a public or private match, submit
moves and receive round and match outcomes. A small JSON API exposes
read-only room state.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
