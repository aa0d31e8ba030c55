// Package cmd holds the codestudio-mcp command line: the MCP server itself
// and the register subcommand.
package cmd

import (
	"fmt"
	"os"

	"github.com/lexandro/codestudio-mcp/config"
	"github.com/lexandro/codestudio-mcp/server"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "codestudio-mcp",
	Short: "MCP server hosting a React code studio project",
	Long: `codestudio-mcp serves one React project over MCP on stdio: a virtual file
tree, the active file in the editor, a live preview and persistence to a
local database. Logs never go to stdout, which carries the protocol.`,
	Version:       server.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./codestudio.yaml or ./codestudio.json when present)")
	config.RegisterFlags(rootCmd.Flags())
	rootCmd.AddCommand(registerCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
