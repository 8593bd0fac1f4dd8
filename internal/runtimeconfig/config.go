package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrContentDirRequired indicates the content directory was left empty.
var ErrContentDirRequired = errors.New("press config: content directory is required")

// ErrStoreDSNRequired indicates the index store is enabled without a DSN.
var ErrStoreDSNRequired = errors.New("press config: store DSN is required when the store is enabled")

// ErrStoreCacheRequiresStore ensures cache wiring only happens with an enabled store.
var ErrStoreCacheRequiresStore = errors.New("press config: store cache requires the store to be enabled")

// ErrSyncRequiresStore ensures sync runs only when the index store is available.
var ErrSyncRequiresStore = errors.New("press config: sync feature requires the store to be enabled")

var ErrLoggingProviderRequired = errors.New("press config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("press config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("press config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("press config: logging format is invalid")
var ErrSchemaDirRequired = errors.New("press config: schema directory is required when schemas are enabled")

// Config aggregates feature flags and adapter bindings for the press module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled  bool
	Content  ContentConfig
	Parser   ParserConfig
	Store    StoreConfig
	Schemas  SchemaConfig
	Features Features
	Commands CommandsConfig
	Logging  LoggingConfig
}

// ContentConfig captures filesystem behaviour for document discovery.
type ContentConfig struct {
	// Dir is the root directory where documents live.
	Dir string
	// Pattern limits discovered files (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// DefaultCollection is assigned when no collection can be inferred.
	DefaultCollection string
	// Collections enumerates known collection directory names.
	Collections []string
	// CollectionPatterns maps collection names to glob expressions.
	CollectionPatterns map[string]string
}

// ParserConfig mirrors interfaces.RenderOptions for runtime configuration.
type ParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// StoreConfig captures behaviour for the SQLite build index.
type StoreConfig struct {
	Enabled  bool
	DSN      string
	Cache    bool
	CacheTTL time.Duration
}

// SchemaConfig captures per-layout JSON Schema validation behaviour.
type SchemaConfig struct {
	Enabled bool
	// Dir holds one <layout>.json schema file per layout.
	Dir string
	// Strict turns schema violations into hard errors.
	Strict bool
}

// Features toggles module functionality.
type Features struct {
	Import bool
	Sync   bool
	Logger bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled                bool
	AutoRegisterDispatcher bool
	AutoRegisterCron       bool
	SyncCron               string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for embedding hosts.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Content: ContentConfig{
			Dir:                "content",
			Pattern:            "*.md",
			Recursive:          true,
			CollectionPatterns: map[string]string{},
		},
		Parser: ParserConfig{},
		Store: StoreConfig{
			DSN:      "file:press.db?_fk=1",
			CacheTTL: time.Minute,
		},
		Schemas:  SchemaConfig{},
		// Sync needs the store, which in turn needs a database handle, so it
		// stays opt-in.
		Features: Features{Import: true},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Store.Enabled && strings.TrimSpace(cfg.Store.DSN) == "" {
		return ErrStoreDSNRequired
	}
	if cfg.Store.Cache && !cfg.Store.Enabled {
		return ErrStoreCacheRequiresStore
	}
	if cfg.Features.Sync && !cfg.Store.Enabled {
		return ErrSyncRequiresStore
	}
	if cfg.Schemas.Enabled && strings.TrimSpace(cfg.Schemas.Dir) == "" {
		return ErrSchemaDirRequired
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
