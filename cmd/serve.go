package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexandro/codestudio-mcp/account"
	"github.com/lexandro/codestudio-mcp/config"
	"github.com/lexandro/codestudio-mcp/ignore"
	"github.com/lexandro/codestudio-mcp/index"
	"github.com/lexandro/codestudio-mcp/kv"
	"github.com/lexandro/codestudio-mcp/metrics"
	"github.com/lexandro/codestudio-mcp/preview"
	"github.com/lexandro/codestudio-mcp/project"
	"github.com/lexandro/codestudio-mcp/server"
	"github.com/lexandro/codestudio-mcp/session"
	"github.com/lexandro/codestudio-mcp/settings"
	"github.com/lexandro/codestudio-mcp/tools"
	"github.com/lexandro/codestudio-mcp/watcher"
	"github.com/lexandro/codestudio-mcp/workspace"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func runServe(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := config.Load(cmd.Flags(), configFile, cwd)
	if err != nil {
		return err
	}

	logger, closeLog := setupLogger(cfg.LogLevel, cfg.LogFile)
	defer closeLog()

	logger.Info("starting codestudio-mcp",
		"version", server.Version,
		"dataDir", cfg.DataDir,
		"store", cfg.Store,
		"project", cfg.ProjectID,
	)
	startTime := time.Now()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		return err
	}
	defer closeStore()

	theme, _ := settings.ParseTheme(cfg.Theme)
	prefs, err := settings.Load(store, theme)
	if err != nil {
		logger.Error("failed to load settings", "error", err)
		return err
	}

	projects := project.NewStore(store)
	current, err := openProject(projects, cfg.ProjectID, logger)
	if err != nil {
		return err
	}

	contentIndex, err := index.NewContentIndex()
	if err != nil {
		logger.Error("failed to create content index", "error", err)
		return err
	}
	defer contentIndex.Close()

	stopIndex, err := index.Follow(current.Files, contentIndex, logger)
	if err != nil {
		logger.Error("failed to index project", "error", err)
		return err
	}
	defer stopIndex()

	projector := preview.NewProjector(current.Files, preview.SinkFunc(func(files map[string]string, theme settings.Theme) {
		logger.Debug("preview rendered", "files", len(files), "theme", theme)
	}), prefs.Theme(), logger)
	defer projector.Close()

	sess := session.New(current, session.Options{
		Projects:      projects,
		Settings:      prefs,
		Logger:        logger,
		AutoSaveDelay: cfg.AutoSaveDelay,
		Theme:         projector,
	})
	defer sess.Close()

	if cfg.MirrorDir != "" {
		matcher := ignore.NewMatcher(ignore.Options{Root: cfg.MirrorDir, Exclude: cfg.Exclude, MaxFileSize: cfg.MaxFileSize})
		mirror, err := workspace.NewMirror(ctx, cfg.MirrorDir, sess, matcher, watcher.DefaultInterval, logger)
		if err != nil {
			logger.Warn("failed to start mirror, continuing without it", "dir", cfg.MirrorDir, "error", err)
		} else {
			go mirror.Run(ctx)
			defer mirror.Close()
		}
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.Error("metrics endpoint failed", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
	}

	accounts := account.NewService(store, logger)
	mcpServer := server.Setup(server.Handlers{
		Files:     &tools.FilesHandler{Session: sess, MaxResults: cfg.MaxResults, Logger: logger},
		Read:      &tools.ReadHandler{Session: sess, Logger: logger},
		Select:    &tools.SelectHandler{Session: sess, Logger: logger},
		Edit:      &tools.EditHandler{Session: sess, Logger: logger},
		Create:    &tools.CreateHandler{Session: sess, Logger: logger},
		Delete:    &tools.DeleteHandler{Session: sess, Logger: logger},
		Rename:    &tools.RenameHandler{Session: sess, Logger: logger},
		Save:      &tools.SaveHandler{Session: sess, Logger: logger},
		Load:      &tools.LoadHandler{Session: sess, Logger: logger},
		New:       &tools.NewProjectHandler{Session: sess, Logger: logger},
		Search:    &tools.SearchHandler{ContentIndex: contentIndex, MaxResults: cfg.MaxResults, Logger: logger},
		Preview:   &tools.PreviewHandler{Projector: projector, Logger: logger},
		Settings:  &tools.SettingsHandler{Session: sess, Logger: logger},
		Status:    &tools.StatusHandler{Session: sess, ContentIndex: contentIndex, Accounts: accounts, StartTime: startTime, Logger: logger},
		Account:   &tools.AccountHandler{Accounts: accounts, Logger: logger},
		Workspace: &tools.WorkspaceHandler{Session: sess, Exclude: cfg.Exclude, MaxFileSize: cfg.MaxFileSize, Logger: logger},
	})

	logger.Info("MCP server starting on stdio", "startup", time.Since(startTime))
	if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("MCP server error", "error", err)
		return err
	}
	logger.Info("MCP server stopped")
	return nil
}

func openStore(cfg *config.Config) (kv.Store, func(), error) {
	if cfg.Store == config.StoreMemory {
		return kv.NewMemoryStore(), func() {}, nil
	}
	bolt, err := kv.OpenBolt(cfg.DatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return bolt, func() { bolt.Close() }, nil
}

// openProject loads id, or starts the starter project under id when nothing
// was saved yet. Corrupt data is an error so it is never overwritten.
func openProject(projects *project.Store, id string, logger *slog.Logger) (*project.Project, error) {
	p, err := projects.Load(id)
	switch {
	case err == nil:
		logger.Info("project loaded", "project", id, "nodes", p.Files.Len())
		return p, nil
	case errors.Is(err, project.ErrProjectNotFound):
		p = project.LoadDefault()
		p.ID = id
		logger.Info("starting from starter project", "project", id)
		return p, nil
	default:
		logger.Error("failed to load project", "project", id, "error", err)
		return nil, err
	}
}
