package server

import (
	"github.com/lexandro/codestudio-mcp/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to clients during initialization.
const Version = "0.1.0"

// Handlers bundles every tool handler the server exposes.
type Handlers struct {
	Files     *tools.FilesHandler
	Read      *tools.ReadHandler
	Select    *tools.SelectHandler
	Edit      *tools.EditHandler
	Create    *tools.CreateHandler
	Delete    *tools.DeleteHandler
	Rename    *tools.RenameHandler
	Save      *tools.SaveHandler
	Load      *tools.LoadHandler
	New       *tools.NewProjectHandler
	Search    *tools.SearchHandler
	Preview   *tools.PreviewHandler
	Settings  *tools.SettingsHandler
	Status    *tools.StatusHandler
	Account   *tools.AccountHandler
	Workspace *tools.WorkspaceHandler
}

// Setup creates and configures the MCP server with all tool registrations.
func Setup(h Handlers) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "codestudio-mcp",
			Version: Version,
		},
		&mcp.ServerOptions{
			Instructions: `This server hosts an in-browser style React code studio: one project made of a virtual file tree, an active file open in the editor and a live preview fed from the tree.

Typical flow:
- studio_files and studio_read to look around, studio_search for content
- studio_select to open a file, studio_edit to replace its content
- studio_create, studio_rename and studio_delete to shape the tree
- studio_save to persist, studio_load or studio_new to switch projects
- studio_preview shows exactly what the preview renderer received

Paths are absolute inside the project and start with "/" (e.g. /src/App.tsx). Deleting a folder does not delete the files under it.`,
		},
	)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "studio_files",
		Description: `List project entries by glob pattern. Files show language, size and line count.

Pattern examples:
  - "**" - everything (default)
  - "**/*.tsx" - all TSX files
  - "src/**" - everything under /src`,
	}, h.Files.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_read",
		Description: `Read a file with numbered lines. Without a path the active file is returned.`,
	}, h.Read.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_select",
		Description: "Make a file the active file shown in the editor. Folders cannot be selected.",
	}, h.Select.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_edit",
		Description: "Replace the whole content of the active file, or of path which then becomes active. The preview updates immediately.",
	}, h.Edit.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_create",
		Description: "Create an empty file or a folder. Fails if the path already exists. Parent folders are not required.",
	}, h.Create.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_delete",
		Description: "Delete one entry. Deleting a missing path does nothing. If the active file is deleted the first remaining file becomes active.",
	}, h.Delete.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_rename",
		Description: "Move an entry to a new path, replacing whatever is there. The active file follows the rename.",
	}, h.Rename.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_save",
		Description: "Persist the current project under its id.",
	}, h.Save.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_load",
		Description: "Replace the current project with a saved one. The current project is kept if loading fails.",
	}, h.Load.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_new",
		Description: "Start a new project from the starter files under a fresh id. Unsaved changes to the current project are discarded.",
	}, h.New.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "studio_search",
		Description: `Search file contents using full-text indexed search.

Query formats:
  - Plain text: word-level matching (e.g., "useState")
  - "quoted text": exact phrase matching (e.g., "\"export default\"")
  - /regex/: regular expression matching (e.g., "/use[A-Z]\w+/")

Filtering:
  - filePath: exact project path (e.g., "/App.tsx"). Overrides fileGlob.
  - fileGlob: glob pattern (e.g., "**/*.css").`,
	}, h.Search.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_preview",
		Description: "Show the file map and theme last handed to the preview renderer.",
	}, h.Preview.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_settings",
		Description: "Show or change preferences: autosave (persisted) and theme (dark or light, session only).",
	}, h.Settings.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_status",
		Description: "Show project, persistence, account and server status.",
	}, h.Status.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_register",
		Description: "Create an account and log in. Emails are unique and case-insensitive.",
	}, h.Account.HandleRegister)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_login",
		Description: "Log in with email and password.",
	}, h.Account.HandleLogin)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_logout",
		Description: "Log out the current account.",
	}, h.Account.HandleLogout)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_import",
		Description: "Merge the files of a directory on disk into the project. Ignored, binary and oversized files are skipped.",
	}, h.Workspace.HandleImport)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "studio_export",
		Description: "Write every project file into a directory on disk. Existing files there are overwritten.",
	}, h.Workspace.HandleExport)

	return mcpServer
}
