// Package config loads runtime settings from defaults, an optional
// codestudio.yaml or codestudio.json, CODESTUDIO_* environment variables and
// command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lexandro/codestudio-mcp/settings"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Store backends.
const (
	StoreBolt   = "bolt"
	StoreMemory = "memory"
)

// Config is the resolved configuration.
type Config struct {
	DataDir       string        `mapstructure:"data_dir"`
	Store         string        `mapstructure:"store"`
	AutoSaveDelay time.Duration `mapstructure:"autosave_delay"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFile       string        `mapstructure:"log_file"`
	MaxFileSize   int64         `mapstructure:"max_file_size"`
	MaxResults    int           `mapstructure:"max_results"`
	Exclude       []string      `mapstructure:"exclude"`
	MirrorDir     string        `mapstructure:"mirror_dir"`
	MetricsAddr   string        `mapstructure:"metrics_addr"`
	Theme         string        `mapstructure:"theme"`
	ProjectID     string        `mapstructure:"project_id"`
}

// Default holds the values used when nothing else is set.
var Default = Config{
	DataDir:       ".codestudio",
	Store:         StoreBolt,
	AutoSaveDelay: 2 * time.Second,
	LogLevel:      "info",
	MaxFileSize:   1 << 20,
	MaxResults:    50,
	Theme:         string(settings.ThemeDark),
	ProjectID:     "default",
}

// flag name -> config key
var flagKeys = map[string]string{
	"data-dir":       "data_dir",
	"store":          "store",
	"autosave-delay": "autosave_delay",
	"log-level":      "log_level",
	"log-file":       "log_file",
	"max-file-size":  "max_file_size",
	"max-results":    "max_results",
	"exclude":        "exclude",
	"mirror":         "mirror_dir",
	"metrics-addr":   "metrics_addr",
	"theme":          "theme",
	"project":        "project_id",
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("data-dir", Default.DataDir, "Directory holding the project database")
	fs.String("store", Default.Store, "Storage backend: bolt|memory")
	fs.Duration("autosave-delay", Default.AutoSaveDelay, "Quiet period before an autosave")
	fs.String("log-level", Default.LogLevel, "Log level: debug|info|warn|error")
	fs.String("log-file", "", "Log file path (default: <data-dir>/codestudio-mcp.log)")
	fs.Int64("max-file-size", Default.MaxFileSize, "Largest file imported from disk, in bytes")
	fs.Int("max-results", Default.MaxResults, "Default maximum search and listing results")
	fs.StringSlice("exclude", nil, "Extra ignore pattern for import and mirror (repeatable)")
	fs.String("mirror", "", "Directory to import and keep mirrored into the project")
	fs.String("metrics-addr", "", "Address for the Prometheus /metrics endpoint (disabled when empty)")
	fs.String("theme", Default.Theme, "Initial theme: dark|light")
	fs.String("project", Default.ProjectID, "Project id to open at startup")
}

// Load resolves the configuration. configFile may be empty, in which case
// codestudio.yaml or codestudio.json in dir is used when present. fs may be nil.
func Load(fs *pflag.FlagSet, configFile, dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CODESTUDIO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("codestudio")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.resolve(dir); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", Default.DataDir)
	v.SetDefault("store", Default.Store)
	v.SetDefault("autosave_delay", Default.AutoSaveDelay)
	v.SetDefault("log_level", Default.LogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("max_file_size", Default.MaxFileSize)
	v.SetDefault("max_results", Default.MaxResults)
	v.SetDefault("exclude", []string{})
	v.SetDefault("mirror_dir", "")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("theme", Default.Theme)
	v.SetDefault("project_id", Default.ProjectID)
}

// resolve validates values and makes paths absolute against dir.
func (c *Config) resolve(dir string) error {
	switch c.Store {
	case StoreBolt, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreBolt, StoreMemory)
	}
	if _, err := settings.ParseTheme(c.Theme); err != nil {
		return err
	}
	if c.AutoSaveDelay <= 0 {
		return fmt.Errorf("autosave_delay must be positive, got %s", c.AutoSaveDelay)
	}
	if c.ProjectID == "" {
		return fmt.Errorf("project_id must not be empty")
	}

	c.DataDir = absUnder(dir, c.DataDir)
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, "codestudio-mcp.log")
	} else {
		c.LogFile = absUnder(dir, c.LogFile)
	}
	if c.MirrorDir != "" {
		c.MirrorDir = absUnder(dir, c.MirrorDir)
	}
	return nil
}

// DatabasePath is where the bolt store lives.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "codestudio.db")
}

func absUnder(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}
