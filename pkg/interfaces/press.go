package interfaces

import "context"

// DocumentParser converts raw source bytes into a Document, or fails with a
// diagnostic that carries the offending file path and line. Parsing is a pure
// transformation: same bytes in, structurally equal Document out.
type DocumentParser interface {
	Parse(path string, source []byte) (*Document, error)
	// Validate runs non-fatal checks over a parsed document. It never
	// errors; an empty slice means no findings.
	Validate(doc *Document) []Warning
}

// RenderOptions customises markdown rendering behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type RenderOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// MarkdownRenderer converts markdown bytes or parsed documents into HTML.
// Implementations should be stateless so a single instance can be shared.
type MarkdownRenderer interface {
	Render(markdown []byte) ([]byte, error)
	RenderWithOptions(markdown []byte, opts RenderOptions) ([]byte, error)
	// RenderDocument renders a document block-by-block: prose through the
	// markdown engine, code fences as escaped pre/code elements tagged with
	// their language. The document itself is not mutated.
	RenderDocument(doc *Document, opts RenderOptions) ([]byte, error)
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive   *bool
	Pattern     string
	Collections map[string]string
	Render      RenderOptions
}

// ImportOptions controls how documents are written to the build index.
type ImportOptions struct {
	RenderHTML bool
	DryRun     bool
	Render     RenderOptions
}

// SyncOptions extends ImportOptions with delete semantics for repeated runs.
type SyncOptions struct {
	ImportOptions
	DeleteOrphaned bool
}

// CheckResult aggregates diagnostics for a directory walk. Per-file parse
// failures are collected, never aborting the remaining documents.
type CheckResult struct {
	Scanned  int
	Valid    int
	Errors   []error
	Warnings []Warning
}

// ImportResult reports the outcome of an import run keyed by file path.
type ImportResult struct {
	Created []string
	Updated []string
	Skipped []string
	Errors  []error
}

// SyncResult summarises a bulk sync run across many files.
type SyncResult struct {
	Created int
	Updated int
	Deleted int
	Skipped int
	Errors  []error
}

// PressService exposes the high-level file workflows: load documents from
// disk, render them to HTML, validate whole trees, and synchronise them with
// the build index.
type PressService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts RenderOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts RenderOptions) ([]byte, error)
	Check(ctx context.Context, dir string, opts LoadOptions) (*CheckResult, error)
	Import(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error)
	Sync(ctx context.Context, dir string, opts SyncOptions) (*SyncResult, error)
}

// StoreOutcome describes what an upsert did with a document.
type StoreOutcome string

const (
	StoreCreated StoreOutcome = "created"
	StoreUpdated StoreOutcome = "updated"
	// StoreSkipped means the stored checksum matched and nothing changed.
	StoreSkipped StoreOutcome = "skipped"
)

// DocumentStore persists parsed documents into an incremental build index.
type DocumentStore interface {
	Upsert(ctx context.Context, doc *Document) (StoreOutcome, error)
	Paths(ctx context.Context) ([]string, error)
	// DeleteOrphans removes every indexed document whose path is absent from
	// keep, returning the deleted paths.
	DeleteOrphans(ctx context.Context, keep []string) ([]string, error)
}
