package cmd

import (
	"fmt"

	"github.com/lexandro/codestudio-mcp/register"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register project|user [directory] [-- server flags]",
	Short: "Add this server to an MCP client configuration",
	Long: `Adds or replaces the server entry in <directory>/.mcp.json (project scope,
default directory ".") or ~/.claude.json (user scope). Arguments after "--"
are passed to the server on every start.`,
	Example: `  codestudio-mcp register project
  codestudio-mcp register project ./app -- --store memory
  codestudio-mcp register user --env CODESTUDIO_THEME=light`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().String("name", "", "Server name in the client config (default: derived from the binary name)")
	registerCmd.Flags().StringToString("env", nil, "Environment variable for the server, KEY=VALUE (repeatable)")
}

func runRegister(cmd *cobra.Command, args []string) error {
	positional, serverArgs := register.SplitArgs(args, cmd.ArgsLenAtDash())
	if len(positional) == 0 {
		return fmt.Errorf("scope is required (project or user)")
	}
	scope := positional[0]

	opts := register.Options{Scope: scope, ServerArgs: serverArgs}
	switch {
	case scope == register.ScopeProject && len(positional) > 2,
		scope == register.ScopeUser && len(positional) > 1:
		return fmt.Errorf("unexpected arguments %v; put server flags after --", positional[1:])
	case scope == register.ScopeProject && len(positional) == 2:
		opts.Directory = positional[1]
	}

	opts.ServerName, _ = cmd.Flags().GetString("name")
	if opts.ServerName == "" {
		opts.ServerName = register.DeriveServerName(cmd.Root().Name())
	}
	opts.Env, _ = cmd.Flags().GetStringToString("env")

	configPath, err := register.Register(opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered %q in %s\n", opts.ServerName, configPath)
	return nil
}
