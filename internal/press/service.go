package press

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-press/internal/document"
	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/internal/schema"
	"github.com/goliatone/go-press/pkg/interfaces"
)

var (
	ErrLoaderRequired   = errors.New("press service: loader is required")
	ErrRendererRequired = errors.New("press service: renderer is required")
	ErrStoreRequired    = errors.New("press service: document store is required")
)

// ServiceConfig encapsulates the dependencies of the press service. Loader is
// mandatory; renderer, store and schema registry activate the workflows that
// need them.
type ServiceConfig struct {
	Loader   *Loader
	Parser   interfaces.DocumentParser
	Renderer interfaces.MarkdownRenderer
	Store    interfaces.DocumentStore
	Schemas  *schema.Registry
	Logger   interfaces.Logger
}

// Service implements interfaces.PressService.
type Service struct {
	loader   *Loader
	parser   interfaces.DocumentParser
	renderer interfaces.MarkdownRenderer
	store    interfaces.DocumentStore
	schemas  *schema.Registry
	logger   interfaces.Logger
}

// NewService builds a Service from the supplied configuration.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Loader == nil {
		return nil, ErrLoaderRequired
	}

	parser := cfg.Parser
	if parser == nil {
		parser = document.NewParser()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Service{
		loader:   cfg.Loader,
		parser:   parser,
		renderer: cfg.Renderer,
		store:    cfg.Store,
		schemas:  cfg.Schemas,
		logger:   logger,
	}, nil
}

// Load reads and parses a single document.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, path, loadParams(opts))
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

// LoadDirectory parses every matching document under dir, aborting on the
// first failure.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	results, err := s.loader.LoadDirectory(ctx, dir, loadParams(opts))
	if err != nil {
		return nil, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		docs = append(docs, result.Document)
	}
	return docs, nil
}

// Render converts markdown bytes into HTML.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.RenderOptions) ([]byte, error) {
	if s.renderer == nil {
		return nil, ErrRendererRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.renderer.RenderWithOptions(markdown, opts)
}

// RenderDocument renders a parsed document block-by-block.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.RenderOptions) ([]byte, error) {
	if s.renderer == nil {
		return nil, ErrRendererRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.renderer.RenderDocument(doc, opts)
}

// Check walks dir, collecting every parse failure and validation finding
// without aborting on broken files.
func (s *Service) Check(ctx context.Context, dir string, opts interfaces.LoadOptions) (*interfaces.CheckResult, error) {
	results, err := s.loader.Discover(ctx, dir, loadParams(opts))
	if err != nil {
		return nil, err
	}

	out := &interfaces.CheckResult{}
	seen := map[string][]string{}

	for _, result := range results {
		out.Scanned++

		if result.Err != nil {
			out.Errors = append(out.Errors, result.Err)
			continue
		}

		doc := result.Document
		out.Warnings = append(out.Warnings, s.parser.Validate(doc)...)

		if s.schemas != nil {
			warnings, schemaErr := s.schemas.Check(doc)
			out.Warnings = append(out.Warnings, warnings...)
			if schemaErr != nil {
				out.Errors = append(out.Errors, schemaErr)
				continue
			}
		}

		if key := duplicateKey(doc); key != "" {
			seen[key] = append(seen[key], doc.FilePath)
		}
		out.Valid++
	}

	for key, paths := range seen {
		if len(paths) < 2 {
			continue
		}
		for _, path := range paths {
			out.Warnings = append(out.Warnings, interfaces.Warning{
				Code:    document.WarnDuplicateDocument,
				Message: fmt.Sprintf("document %s shares title and date with %d other file(s)", key, len(paths)-1),
				Path:    path,
				Line:    1,
			})
		}
	}

	s.logger.Info("checked documents",
		"scanned", out.Scanned,
		"valid", out.Valid,
		"errors", len(out.Errors),
		"warnings", len(out.Warnings),
	)
	return out, nil
}

// Import parses every matching document under dir and upserts it into the
// build index. Per-file failures are collected, never aborting the run.
func (s *Service) Import(ctx context.Context, dir string, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if s.store == nil {
		return nil, ErrStoreRequired
	}

	results, err := s.loader.Discover(ctx, dir, LoadParams{})
	if err != nil {
		return nil, err
	}

	out := &interfaces.ImportResult{}
	for _, result := range results {
		s.importOne(ctx, result, opts, out)
	}

	s.logger.Info("imported documents",
		"created", len(out.Created),
		"updated", len(out.Updated),
		"skipped", len(out.Skipped),
		"errors", len(out.Errors),
	)
	return out, nil
}

func (s *Service) importOne(ctx context.Context, result *FileResult, opts interfaces.ImportOptions, out *interfaces.ImportResult) {
	if result.Err != nil {
		out.Errors = append(out.Errors, result.Err)
		return
	}

	doc := result.Document
	if opts.RenderHTML {
		if s.renderer == nil {
			out.Errors = append(out.Errors, fmt.Errorf("%w: cannot render %s", ErrRendererRequired, doc.FilePath))
			return
		}
		html, err := s.renderer.RenderDocument(doc, opts.Render)
		if err != nil {
			out.Errors = append(out.Errors, fmt.Errorf("press service: render %s: %w", doc.FilePath, err))
			return
		}
		doc.BodyHTML = html
	}

	if opts.DryRun {
		out.Skipped = append(out.Skipped, doc.FilePath)
		return
	}

	outcome, err := s.store.Upsert(ctx, doc)
	if err != nil {
		out.Errors = append(out.Errors, fmt.Errorf("press service: index %s: %w", doc.FilePath, err))
		return
	}

	switch outcome {
	case interfaces.StoreCreated:
		out.Created = append(out.Created, doc.FilePath)
	case interfaces.StoreUpdated:
		out.Updated = append(out.Updated, doc.FilePath)
	default:
		out.Skipped = append(out.Skipped, doc.FilePath)
	}
}

// Sync imports the directory and optionally deletes indexed documents whose
// source files disappeared.
func (s *Service) Sync(ctx context.Context, dir string, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	if s.store == nil {
		return nil, ErrStoreRequired
	}

	results, err := s.loader.Discover(ctx, dir, LoadParams{})
	if err != nil {
		return nil, err
	}

	imported := &interfaces.ImportResult{}
	keep := make([]string, 0, len(results))
	for _, result := range results {
		s.importOne(ctx, result, opts.ImportOptions, imported)
		if result.Err == nil {
			keep = append(keep, result.Document.FilePath)
		}
	}

	out := &interfaces.SyncResult{
		Created: len(imported.Created),
		Updated: len(imported.Updated),
		Skipped: len(imported.Skipped),
		Errors:  imported.Errors,
	}

	if opts.DeleteOrphaned {
		deleted, err := s.deleteOrphaned(ctx, keep, opts.DryRun)
		if err != nil {
			out.Errors = append(out.Errors, err)
		} else {
			out.Deleted = deleted
		}
	}

	s.logger.Info("synced documents",
		"created", out.Created,
		"updated", out.Updated,
		"deleted", out.Deleted,
		"skipped", out.Skipped,
		"errors", len(out.Errors),
	)
	return out, nil
}

func (s *Service) deleteOrphaned(ctx context.Context, keep []string, dryRun bool) (int, error) {
	if dryRun {
		indexed, err := s.store.Paths(ctx)
		if err != nil {
			return 0, fmt.Errorf("press service: list indexed documents: %w", err)
		}
		keepSet := make(map[string]struct{}, len(keep))
		for _, path := range keep {
			keepSet[path] = struct{}{}
		}
		orphans := 0
		for _, path := range indexed {
			if _, ok := keepSet[path]; !ok {
				orphans++
			}
		}
		return orphans, nil
	}

	deleted, err := s.store.DeleteOrphans(ctx, keep)
	if err != nil {
		return 0, fmt.Errorf("press service: delete orphans: %w", err)
	}
	return len(deleted), nil
}

func loadParams(opts interfaces.LoadOptions) LoadParams {
	return LoadParams{
		Pattern:            opts.Pattern,
		CollectionPatterns: opts.Collections,
		Recursive:          opts.Recursive,
	}
}

// duplicateKey identifies documents that would collide in a generated site:
// same title and same date.
func duplicateKey(doc *interfaces.Document) string {
	title := strings.ToLower(strings.TrimSpace(doc.FrontMatter.Title))
	if title == "" {
		return ""
	}
	if doc.FrontMatter.Date.IsZero() {
		return title
	}
	return title + "|" + doc.FrontMatter.Date.UTC().Format("2006-01-02")
}
