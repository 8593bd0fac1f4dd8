// Package press wires discovery, parsing, rendering and the build index into
// the high-level document workflows.
package press

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-press/internal/document"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// LoaderConfig configures how documents are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the root directory where documents live.
	BasePath string
	// DefaultCollection is used when no collection can be inferred from the
	// file path.
	DefaultCollection string
	// Collections enumerates known collection directory names (e.g.
	// ["_posts", "_drafts"]) for quick matching.
	Collections []string
	// CollectionPatterns maps collection names to glob expressions relative
	// to BasePath.
	CollectionPatterns map[string]string
	// Pattern limits discovered files to those matching the supplied glob
	// (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns filesystem paths into parsed documents with metadata.
type Loader struct {
	fs                 fs.FS
	basePath           string
	defaultCollection  string
	collections        []string
	collectionPatterns map[string]string
	pattern            string
	recursive          bool
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:                 filesystem,
		basePath:           filepath.Clean(cfg.BasePath),
		defaultCollection:  cfg.DefaultCollection,
		collections:        append([]string(nil), cfg.Collections...),
		collectionPatterns: cloneStringMap(cfg.CollectionPatterns),
		pattern:            pattern,
		recursive:          cfg.Recursive,
	}
}

// FileResult carries a parsed document, its raw source, and the per-file
// error when parsing failed. Exactly one of Document and Err is set.
type FileResult struct {
	Path     string
	Document *interfaces.Document
	Source   []byte
	Err      error
}

// LoadParams provide call-specific overrides for collection detection and
// pattern matching.
type LoadParams struct {
	Pattern            string
	CollectionPatterns map[string]string
	Recursive          *bool
}

// LoadFile reads and parses a single document.
func (l *Loader) LoadFile(ctx context.Context, path string, opts LoadParams) (*FileResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("press loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("press loader stat %s: %w", rel, err)
	}

	doc, err := document.BuildDocument(rel, l.detectCollection(rel, opts.CollectionPatterns), data, info.ModTime())
	if err != nil {
		return nil, err
	}

	return &FileResult{Path: rel, Document: doc, Source: data}, nil
}

// LoadDirectory discovers documents under dir and returns them parsed. The
// first parse failure aborts the walk.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts LoadParams) ([]*FileResult, error) {
	results, err := l.walk(ctx, dir, opts, true)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Discover walks dir like LoadDirectory but collects per-file parse failures
// instead of aborting, so callers can report every broken document in one
// pass.
func (l *Loader) Discover(ctx context.Context, dir string, opts LoadParams) ([]*FileResult, error) {
	return l.walk(ctx, dir, opts, false)
}

func (l *Loader) walk(ctx context.Context, dir string, opts LoadParams, failFast bool) ([]*FileResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.Clean(root)

	var results []*FileResult

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.shouldRecurse(root, path, opts.Recursive) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if !l.matchesPattern(rel, opts.Pattern) {
			return nil
		}

		result, err := l.LoadFile(ctx, rel, opts)
		if err != nil {
			if failFast {
				return err
			}
			results = append(results, &FileResult{Path: rel, Err: err})
			return nil
		}
		results = append(results, result)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	return results, nil
}

func (l *Loader) shouldRecurse(root, current string, override *bool) bool {
	recursive := l.recursive
	if override != nil {
		recursive = *override
	}
	if recursive {
		return true
	}
	// If recursion is disabled, only walk the root directory.
	return filepath.Clean(root) == filepath.Clean(current)
}

func (l *Loader) matchesPattern(path string, override string) bool {
	pattern := override
	if strings.TrimSpace(pattern) == "" {
		pattern = l.pattern
	}
	// Normalise to slash as fs.WalkDir returns slash-separated paths for DirFS.
	pattern = filepath.ToSlash(pattern)
	if strings.Contains(pattern, "**") {
		// Basic support for ** by stripping repeated separators.
		pattern = strings.ReplaceAll(pattern, "**/", "")
	}
	var target string
	if strings.Contains(pattern, "/") {
		target = path
	} else {
		target = filepath.Base(path)
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

// detectCollection resolves the collection a file belongs to. Patterns win,
// then known collection directories, then the Jekyll convention of a leading
// underscore directory (_posts -> posts).
func (l *Loader) detectCollection(path string, overrides map[string]string) string {
	path = filepath.ToSlash(path)

	if collection := matchCollectionPattern(path, overrides); collection != "" {
		return collection
	}
	if collection := matchCollectionPattern(path, l.collectionPatterns); collection != "" {
		return collection
	}

	segments := strings.Split(path, "/")
	if len(segments) > 1 {
		first := segments[0]
		for _, collection := range l.collections {
			if first == collection {
				return strings.TrimPrefix(collection, "_")
			}
		}
		if strings.HasPrefix(first, "_") {
			return strings.TrimPrefix(first, "_")
		}
	}

	return l.defaultCollection
}

func matchCollectionPattern(path string, patterns map[string]string) string {
	for collection, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		pattern = filepath.ToSlash(pattern)
		if strings.Contains(pattern, "**") {
			pattern = strings.ReplaceAll(pattern, "**/", "")
		}
		match, err := filepath.Match(pattern, path)
		if err != nil {
			continue
		}
		if match {
			return collection
		}
	}
	return ""
}

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" {
		return "", fmt.Errorf("press loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("press loader: make relative %s: %w", path, err)
	}
	return rel, nil
}

func cloneStringMap(input map[string]string) map[string]string {
	if input == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
