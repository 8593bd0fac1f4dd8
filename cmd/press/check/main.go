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
	if err := runCheck(os.Args[1:]); err != nil {
		log.Fatalf("press check: %v", err)
	}
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("press-check", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering documents")
	directory := fs.String("directory", ".", "Directory to check, relative to the content root")
	schemaDir := fs.String("schemas", "", "Directory holding per-layout JSON Schemas")
	strict := fs.Bool("strict", false, "Treat warnings as failures")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  true,
		SchemaDir:  *schemaDir,
		LogLevel:   *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	handler := presscmd.NewCheckDirectoryHandler(module.Service, module.Logger)
	cmd := presscmd.CheckDirectoryCommand{
		Directory: *directory,
		Pattern:   *pattern,
		Strict:    *strict,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute check command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "press check command executed successfully")

	return nil
}
