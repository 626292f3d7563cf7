package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "soccer-api",
		Short: "JSON REST API for users, teams and players",
		Long: `soccer-api serves a JSON REST API managing users, teams and players,
backed by PostgreSQL with a Redis cache-aside layer in front of the
read-heavy list endpoints.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSeedCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
