// Package register writes an MCP server entry for this binary into a client
// configuration file: <dir>/.mcp.json for a project or ~/.claude.json for
// the user.
package register

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Scopes accepted by Register.
const (
	ScopeProject = "project"
	ScopeUser    = "user"
)

var ErrUnknownScope = errors.New(`unknown scope (must be "project" or "user")`)

type mcpServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Options describes one registration.
type Options struct {
	ServerName string
	Scope      string
	Directory  string // project scope only, default "."
	ServerArgs []string
	Env        map[string]string
	BinaryPath string // default: the running executable
}

// Register adds or replaces the server entry and returns the config path.
func Register(opts Options) (string, error) {
	if opts.Scope != ScopeProject && opts.Scope != ScopeUser {
		return "", fmt.Errorf("%w: %q", ErrUnknownScope, opts.Scope)
	}
	if opts.ServerName == "" {
		return "", errors.New("server name is required")
	}

	binaryPath := opts.BinaryPath
	if binaryPath == "" {
		var err error
		binaryPath, err = detectBinaryPath()
		if err != nil {
			return "", fmt.Errorf("detecting binary path: %w", err)
		}
	}

	configPath, err := resolveConfigPath(opts.Scope, opts.Directory)
	if err != nil {
		return "", fmt.Errorf("resolving config path: %w", err)
	}

	entry := buildEntry(binaryPath, opts.ServerArgs, opts.Env)
	if err := writeConfig(configPath, opts.ServerName, entry); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return configPath, nil
}

// DeriveServerName extracts a server name from a binary path by stripping .exe and -mcp suffixes.
func DeriveServerName(binaryPath string) string {
	name := filepath.Base(binaryPath)
	name = strings.TrimSuffix(name, ".exe")
	name = strings.TrimSuffix(name, "-mcp")
	return name
}

// SplitArgs separates positional args from the ones after "--". dashAt is
// the index cobra reports for the separator, or -1 when there is none.
func SplitArgs(args []string, dashAt int) (positional, serverArgs []string) {
	if dashAt < 0 || dashAt > len(args) {
		return args, nil
	}
	if dashAt < len(args) {
		serverArgs = args[dashAt:]
	}
	return args[:dashAt], serverArgs
}

func detectBinaryPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("getting executable path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolving symlinks for %s: %w", exe, err)
	}
	return resolved, nil
}

func resolveConfigPath(scope string, directory string) (string, error) {
	if scope == ScopeProject {
		if directory == "" {
			directory = "."
		}
		absDir, err := filepath.Abs(directory)
		if err != nil {
			return "", fmt.Errorf("resolving directory %s: %w", directory, err)
		}
		return filepath.Join(absDir, ".mcp.json"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".claude.json"), nil
}

func buildEntry(binaryPath string, serverArgs []string, env map[string]string) mcpServerEntry {
	entry := mcpServerEntry{Command: binaryPath, Args: serverArgs}
	if len(env) > 0 {
		entry.Env = env
	}
	if runtime.GOOS == "windows" {
		entry.Command = "cmd"
		entry.Args = append([]string{"/C", binaryPath}, serverArgs...)
	}
	return entry
}

func writeConfig(configPath string, serverName string, entry mcpServerEntry) error {
	config := map[string]any{
		"mcpServers": map[string]any{},
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("parsing existing config %s: %w", configPath, err)
		}
	}

	servers, ok := config["mcpServers"]
	if !ok {
		servers = map[string]any{}
		config["mcpServers"] = servers
	}
	serversMap, ok := servers.(map[string]any)
	if !ok {
		return fmt.Errorf("mcpServers in %s is not an object", configPath)
	}
	serversMap[serverName] = entry

	output, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	output = append(output, '\n')

	// Write to a temp file in the same directory, then rename.
	configDir := filepath.Dir(configPath)
	tmpFile, err := os.CreateTemp(configDir, ".mcp-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", configDir, err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(output); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file %s: %w", tmpPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming %s to %s: %w", tmpPath, configPath, err)
	}
	return nil
}
