package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-press/cmd/press/internal/bootstrap"
	"github.com/goliatone/go-press/internal/commands/presscmd"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("press sync: %v", err)
	}
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("press-sync", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering documents")
	directory := fs.String("directory", ".", "Directory to sync, relative to the content root")
	storeDSN := fs.String("store", "file:press.db?_fk=1", "SQLite DSN for the build index")
	renderHTML := fs.Bool("render-html", true, "Render document bodies to HTML before indexing")
	deleteOrphaned := fs.Bool("delete-orphaned", false, "Delete indexed documents whose source files disappeared")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting documents")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  true,
		StoreDSN:   *storeDSN,
		LogLevel:   *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	handler := presscmd.NewSyncDirectoryHandler(module.Service, module.Logger, presscmd.FeatureGates{})
	cmd := presscmd.SyncDirectoryCommand{
		Directory:      *directory,
		RenderHTML:     *renderHTML,
		DryRun:         *dryRun,
		DeleteOrphaned: *deleteOrphaned,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute sync command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "press sync command executed successfully")

	return nil
}
