package presscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	checkDirectoryMessageType  = "press.check_directory"
	importDirectoryMessageType = "press.import_directory"
	syncDirectoryMessageType   = "press.sync_directory"
)

func requireDirectory(code string) validation.Rule {
	return validation.By(func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(code, "directory is required")
		}
		return nil
	})
}

// CheckDirectoryCommand validates every document under Directory, collecting
// parse errors and warnings without persisting anything.
type CheckDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to scan.
	Directory string `json:"directory"`
	// Pattern overrides the default *.md glob for discovered files.
	Pattern string `json:"pattern,omitempty"`
	// Strict turns warnings into a command failure.
	Strict bool `json:"strict,omitempty"`
}

// Type implements command.Message.
func (CheckDirectoryCommand) Type() string { return checkDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd CheckDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required,
			requireDirectory("press.check_directory.directory_required")),
	)
}

// ImportDirectoryCommand triggers a filesystem walk under Directory, parsing
// every document and upserting it into the build index.
type ImportDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to import from.
	Directory string `json:"directory"`
	// RenderHTML renders each document body to HTML before indexing.
	RenderHTML bool `json:"render_html,omitempty"`
	// DryRun toggles preview mode to collect import diffs without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required,
			requireDirectory("press.import_directory.directory_required")),
	)
}

// SyncDirectoryCommand orchestrates a sync run for the provided Directory,
// applying deletion flags consistent with interfaces.SyncOptions.
type SyncDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to sync from.
	Directory string `json:"directory"`
	// RenderHTML renders each document body to HTML before indexing.
	RenderHTML bool `json:"render_html,omitempty"`
	// DryRun toggles preview mode to collect sync diffs without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
	// DeleteOrphaned removes indexed records without matching source files when true.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required,
			requireDirectory("press.sync_directory.directory_required")),
	)
}
