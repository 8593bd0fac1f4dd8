package presscmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-press/internal/commands"
	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	checkOperation  = "press.check_directory"
	importOperation = "press.import_directory"
	syncOperation   = "press.sync_directory"
)

var (
	// ErrImportFeatureDisabled is returned when the import feature flag is disabled at runtime.
	ErrImportFeatureDisabled = errors.New("press command: import feature disabled")
	// ErrSyncFeatureDisabled is returned when the sync feature flag is disabled at runtime.
	ErrSyncFeatureDisabled = errors.New("press command: sync feature disabled")
	// ErrCheckFailed is returned when a strict check run finds errors or warnings.
	ErrCheckFailed = errors.New("press command: check found problems")
)

var (
	_ command.Commander[CheckDirectoryCommand]  = (*CheckDirectoryHandler)(nil)
	_ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)
	_ command.Commander[SyncDirectoryCommand]   = (*SyncDirectoryHandler)(nil)
)

// CheckDirectoryHandler validates document trees via the shared command
// handler foundation.
type CheckDirectoryHandler struct {
	inner *commands.Handler[CheckDirectoryCommand]
}

// NewCheckDirectoryHandler creates a handler bound to the supplied press service.
func NewCheckDirectoryHandler(service interfaces.PressService, logger interfaces.Logger, opts ...commands.HandlerOption[CheckDirectoryCommand]) *CheckDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CheckDirectoryCommand) error {
		result, err := service.Check(ctx, msg.Directory, interfaces.LoadOptions{Pattern: msg.Pattern})
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"scanned_count": result.Scanned,
			"valid_count":   result.Valid,
			"error_count":   len(result.Errors),
			"warning_count": len(result.Warnings),
		}).Info("press.command.check_directory.completed")

		if len(result.Errors) > 0 {
			return fmt.Errorf("%w: %d error(s) in %s", ErrCheckFailed, len(result.Errors), msg.Directory)
		}
		if msg.Strict && len(result.Warnings) > 0 {
			return fmt.Errorf("%w: %d warning(s) in %s", ErrCheckFailed, len(result.Warnings), msg.Directory)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CheckDirectoryCommand]{
		commands.WithLogger[CheckDirectoryCommand](baseLogger),
		commands.WithOperation[CheckDirectoryCommand](checkOperation),
		commands.WithMessageFields(func(msg CheckDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Strict {
				fields["strict"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CheckDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CheckDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CheckDirectoryCommand].
func (h *CheckDirectoryHandler) Execute(ctx context.Context, msg CheckDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ImportDirectoryHandler orchestrates directory imports via the shared
// command handler foundation.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler creates a handler bound to the supplied press service.
func NewImportDirectoryHandler(service interfaces.PressService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		if !gates.importEnabled() {
			return ErrImportFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := service.Import(ctx, msg.Directory, interfaces.ImportOptions{
			RenderHTML: msg.RenderHTML,
			DryRun:     msg.DryRun,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count": len(result.Created),
				"updated_count": len(result.Updated),
				"skipped_count": len(result.Skipped),
				"error_count":   len(result.Errors),
				"dry_run":       msg.DryRun,
			}).Info("press.command.import_directory.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](baseLogger),
		commands.WithOperation[ImportDirectoryCommand](importOperation),
		commands.WithMessageFields(func(msg ImportDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.RenderHTML {
				fields["render_html"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncDirectoryHandler orchestrates directory syncs via the shared command
// handler foundation.
type SyncDirectoryHandler struct {
	inner *commands.Handler[SyncDirectoryCommand]
}

// NewSyncDirectoryHandler creates a handler bound to the supplied press service.
func NewSyncDirectoryHandler(service interfaces.PressService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SyncDirectoryCommand]) *SyncDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SyncDirectoryCommand) error {
		if !gates.syncEnabled() {
			return ErrSyncFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := service.Sync(ctx, msg.Directory, interfaces.SyncOptions{
			ImportOptions: interfaces.ImportOptions{
				RenderHTML: msg.RenderHTML,
				DryRun:     msg.DryRun,
			},
			DeleteOrphaned: msg.DeleteOrphaned,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count": result.Created,
				"updated_count": result.Updated,
				"deleted_count": result.Deleted,
				"skipped_count": result.Skipped,
				"error_count":   len(result.Errors),
				"dry_run":       msg.DryRun,
			}).Info("press.command.sync_directory.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncDirectoryCommand]{
		commands.WithLogger[SyncDirectoryCommand](baseLogger),
		commands.WithOperation[SyncDirectoryCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.RenderHTML {
				fields["render_html"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.DeleteOrphaned {
				fields["delete_orphaned"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncDirectoryCommand].
func (h *SyncDirectoryHandler) Execute(ctx context.Context, msg SyncDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
