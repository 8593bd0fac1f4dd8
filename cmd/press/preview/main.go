package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-press/cmd/press/internal/bootstrap"
	"github.com/goliatone/go-press/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	var (
		contentDir = flag.String("content-dir", "content", "Path to the content root")
		pattern    = flag.String("pattern", "*.md", "Glob pattern applied when discovering documents")
		filePath   = flag.String("file", "", "Document to preview (relative to the content root)")
		renderHTML = flag.Bool("render-html", true, "Render the document body into HTML as part of the preview")
		watch      = flag.Bool("watch", false, "Re-render the preview whenever the file changes")
		logLevel   = flag.String("log-level", "warn", "Log level (trace, debug, info, warn, error)")
	)

	flag.Parse()

	if *filePath == "" {
		log.Fatalf("--file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  true,
		LogLevel:   *logLevel,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}
	defer module.Close()

	ctx := context.Background()

	if err := preview(ctx, module, *filePath, *renderHTML); err != nil {
		log.Fatalf("preview: %v", err)
	}

	if !*watch {
		return
	}

	if err := watchFile(ctx, module, *contentDir, *filePath, *renderHTML); err != nil {
		log.Fatalf("watch: %v", err)
	}
}

func preview(ctx context.Context, module *bootstrap.Module, filePath string, renderHTML bool) error {
	doc, err := module.Service.Load(ctx, filePath, interfaces.LoadOptions{})
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	var rendered []byte
	if renderHTML {
		rendered, err = module.Service.RenderDocument(ctx, doc, interfaces.RenderOptions{})
		if err != nil {
			return fmt.Errorf("render document: %w", err)
		}
	}

	fmt.Fprintf(os.Stdout, "Path: %s\nCollection: %s\nChecksum: %x\n\n", doc.FilePath, doc.Collection, doc.Checksum)

	if doc.FrontMatter.Raw != nil {
		frontMatter, err := json.MarshalIndent(doc.FrontMatter.Raw, "", "  ")
		if err == nil {
			fmt.Fprintf(os.Stdout, "Front matter:\n%s\n\n", frontMatter)
		}
	}

	if renderHTML {
		fmt.Fprintf(os.Stdout, "Rendered HTML:\n%s\n", string(rendered))
	} else {
		fmt.Fprintf(os.Stdout, "Body:\n%s\n", string(doc.Body))
	}
	return nil
}

// watchFile re-renders the preview whenever the target file is written.
// Watching the parent directory survives the rename-then-replace dance most
// editors perform on save.
func watchFile(ctx context.Context, module *bootstrap.Module, contentDir, filePath string, renderHTML bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Join(contentDir, filePath)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	fmt.Fprintf(os.Stdout, "\nWatching %s for changes...\n", target)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(target) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := preview(ctx, module, filePath, renderHTML); err != nil {
				fmt.Fprintf(os.Stderr, "re-render failed: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}
