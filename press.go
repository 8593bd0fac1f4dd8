// Package press turns directories of front matter documents into parsed,
// validated, rendered, and indexed content. The Module facade assembles the
// loader, renderer, schema registry, and build index from a single Config.
package press

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	cache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-press/internal/commands/presscmd"
	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/internal/logging/gologger"
	presssvc "github.com/goliatone/go-press/internal/press"
	"github.com/goliatone/go-press/internal/render"
	"github.com/goliatone/go-press/internal/schema"
	"github.com/goliatone/go-press/internal/store"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// ErrStoreNotConfigured is returned by Migrate when no database was supplied.
var ErrStoreNotConfigured = errors.New("press: store is not configured")

// PressService exports the service contract for consumers of the press package.
type PressService = interfaces.PressService

// Re-exported option and result types so embedding hosts rarely need to
// import pkg/interfaces directly.
type (
	Document      = interfaces.Document
	LoadOptions   = interfaces.LoadOptions
	RenderOptions = interfaces.RenderOptions
	ImportOptions = interfaces.ImportOptions
	SyncOptions   = interfaces.SyncOptions
	CheckResult   = interfaces.CheckResult
	ImportResult  = interfaces.ImportResult
	SyncResult    = interfaces.SyncResult
	Warning       = interfaces.Warning
)

// Module represents the top level press runtime facade.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	logger   interfaces.Logger
	service  interfaces.PressService
	store    interfaces.DocumentStore
	schemas  *schema.Registry
	renderer interfaces.MarkdownRenderer
	db       *bun.DB
}

// Option overrides a module dependency during construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	fs            fs.FS
	db            *bun.DB
	provider      interfaces.LoggerProvider
	renderer      interfaces.MarkdownRenderer
	store         interfaces.DocumentStore
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
}

// WithFS overrides the filesystem documents are read from. Defaults to
// os.DirFS rooted at Config.Content.Dir.
func WithFS(fsys fs.FS) Option {
	return func(o *moduleOptions) { o.fs = fsys }
}

// WithDB supplies the database used for the build index.
func WithDB(db *bun.DB) Option {
	return func(o *moduleOptions) { o.db = db }
}

// WithLoggerProvider overrides the logger provider derived from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) { o.provider = provider }
}

// WithRenderer overrides the markdown renderer.
func WithRenderer(renderer interfaces.MarkdownRenderer) Option {
	return func(o *moduleOptions) { o.renderer = renderer }
}

// WithStore overrides the document store, bypassing Config.Store wiring.
func WithStore(s interfaces.DocumentStore) Option {
	return func(o *moduleOptions) { o.store = s }
}

// WithCache supplies the cache service pair used to wrap the build index
// repository when Config.Store.Cache is enabled.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(o *moduleOptions) {
		o.cacheService = service
		o.keySerializer = serializer
	}
}

// New constructs a press module using the provided configuration and optional
// dependency overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps := &moduleOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(deps)
		}
	}

	provider := deps.provider
	if provider == nil && cfg.Features.Logger {
		built, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		provider = built
	}
	logger := logging.ModuleLogger(provider, "press")

	fsys := deps.fs
	if fsys == nil {
		fsys = os.DirFS(cfg.Content.Dir)
	}

	renderer := deps.renderer
	if renderer == nil {
		renderer = render.NewGoldmarkRenderer(renderOptions(cfg.Parser))
	}

	registry, err := buildSchemaRegistry(cfg.Schemas)
	if err != nil {
		return nil, err
	}

	mod := &Module{
		cfg:      cfg,
		provider: provider,
		logger:   logger,
		schemas:  registry,
		renderer: renderer,
		db:       deps.db,
	}

	docStore := deps.store
	if docStore == nil && cfg.Store.Enabled {
		if deps.db == nil {
			return nil, fmt.Errorf("%w: provide a database with WithDB", ErrStoreNotConfigured)
		}
		storeOpts := []store.Option{
			store.WithLogger(logging.StoreLogger(provider)),
		}
		if cfg.Store.Cache && deps.cacheService != nil && deps.keySerializer != nil {
			storeOpts = append(storeOpts, store.WithCache(deps.cacheService, deps.keySerializer))
		}
		docStore = store.New(deps.db, storeOpts...)
	}
	mod.store = docStore

	loader := presssvc.NewLoader(fsys, presssvc.LoaderConfig{
		BasePath:           cfg.Content.Dir,
		DefaultCollection:  cfg.Content.DefaultCollection,
		Collections:        cfg.Content.Collections,
		CollectionPatterns: cfg.Content.CollectionPatterns,
		Pattern:            cfg.Content.Pattern,
		Recursive:          cfg.Content.Recursive,
	})

	service, err := presssvc.NewService(presssvc.ServiceConfig{
		Loader:   loader,
		Renderer: renderer,
		Store:    docStore,
		Schemas:  registry,
		Logger:   logging.DocumentLogger(provider),
	})
	if err != nil {
		return nil, err
	}
	mod.service = service

	return mod, nil
}

// Press returns the configured press service.
func (m *Module) Press() PressService {
	return m.service
}

// Store returns the configured document store, or nil when indexing is disabled.
func (m *Module) Store() interfaces.DocumentStore {
	if m == nil {
		return nil
	}
	return m.store
}

// Schemas returns the layout schema registry, or nil when schemas are disabled.
func (m *Module) Schemas() *schema.Registry {
	if m == nil {
		return nil
	}
	return m.schemas
}

// Logger returns the module root logger.
func (m *Module) Logger() interfaces.Logger {
	if m == nil || m.logger == nil {
		return logging.NoOp()
	}
	return m.logger
}

// LoggerProvider returns the provider used for module-scoped loggers.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	if m == nil {
		return nil
	}
	return m.provider
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// Migrate ensures the build index tables exist. It requires the module to
// have been constructed with WithDB.
func (m *Module) Migrate(ctx context.Context) error {
	if m == nil || m.db == nil {
		return ErrStoreNotConfigured
	}
	return store.RunMigrations(ctx, m.db)
}

// RegisterCommands builds the press command handlers bound to this module's
// service and registers them with reg. Feature gates follow Config.Features.
func (m *Module) RegisterCommands(reg presscmd.CommandRegistry, opts ...presscmd.Option) (*presscmd.HandlerSet, error) {
	gates := presscmd.FeatureGates{
		ImportEnabled: func() bool { return m.cfg.Features.Import },
		SyncEnabled:   func() bool { return m.cfg.Features.Sync },
	}
	return presscmd.RegisterPressCommands(reg, m.service, m.provider, gates, opts...)
}

func renderOptions(cfg ParserConfig) interfaces.RenderOptions {
	return interfaces.RenderOptions{
		Extensions: append([]string(nil), cfg.Extensions...),
		Sanitize:   cfg.Sanitize,
		HardWraps:  cfg.HardWraps,
		SafeMode:   cfg.SafeMode,
	}
}

// buildSchemaRegistry loads one JSON Schema per layout from the configured
// directory. File names become layout names: post.json binds to "post".
func buildSchemaRegistry(cfg SchemaConfig) (*schema.Registry, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	registry := schema.NewRegistry(cfg.Strict)

	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("press: read schema directory %s: %w", cfg.Dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		source, err := os.ReadFile(filepath.Join(cfg.Dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("press: read schema %s: %w", entry.Name(), err)
		}
		layout := strings.TrimSuffix(entry.Name(), ".json")
		if err := registry.Register(layout, source); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
