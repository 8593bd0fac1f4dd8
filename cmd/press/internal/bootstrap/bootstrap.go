// Package bootstrap assembles press modules for the CLI entry points.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	press "github.com/goliatone/go-press"
	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// Options captures configuration for press CLI bootstraps.
type Options struct {
	ContentDir        string
	Pattern           string
	Recursive         bool
	DefaultCollection string
	Collections       []string
	StoreDSN          string
	SchemaDir         string
	StrictSchemas     bool
	LogLevel          string
	LogFormat         string
	LoggerProvider    interfaces.LoggerProvider
}

// Module wraps the press module and the configured service/logger so CLI
// commands have everything they need in one place.
type Module struct {
	Module  *press.Module
	Service interfaces.PressService
	Logger  interfaces.Logger
	DB      *bun.DB
}

// BuildModule constructs a press module configured for CLI operations. When a
// store DSN is provided the SQLite index is opened and migrated.
func BuildModule(opts Options) (*Module, error) {
	cfg := press.DefaultConfig()
	cfg.Content.Dir = strings.TrimSpace(opts.ContentDir)
	if cfg.Content.Dir == "" {
		cfg.Content.Dir = "content"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Content.Pattern = trimmed
	}
	cfg.Content.Recursive = opts.Recursive
	if trimmed := strings.TrimSpace(opts.DefaultCollection); trimmed != "" {
		cfg.Content.DefaultCollection = trimmed
	}
	if len(opts.Collections) > 0 {
		cfg.Content.Collections = cloneStrings(opts.Collections)
	}

	if trimmed := strings.TrimSpace(opts.SchemaDir); trimmed != "" {
		cfg.Schemas.Enabled = true
		cfg.Schemas.Dir = trimmed
		cfg.Schemas.Strict = opts.StrictSchemas
	}

	cfg.Features.Logger = true
	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Logging.Level = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogFormat); trimmed != "" {
		cfg.Logging.Format = trimmed
	}

	moduleOpts := []press.Option{}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, press.WithLoggerProvider(opts.LoggerProvider))
	}

	var db *bun.DB
	dsn := strings.TrimSpace(opts.StoreDSN)
	if dsn != "" {
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open store %s: %w", dsn, err)
		}
		db = bun.NewDB(sqlDB, sqlitedialect.New())
		cfg.Store.Enabled = true
		cfg.Store.DSN = dsn
		cfg.Features.Sync = true
		moduleOpts = append(moduleOpts, press.WithDB(db))
	} else {
		cfg.Store.Enabled = false
	}

	module, err := press.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise press module: %w", err)
	}

	if db != nil {
		if err := module.Migrate(context.Background()); err != nil {
			return nil, fmt.Errorf("migrate store: %w", err)
		}
	}

	return &Module{
		Module:  module,
		Service: module.Press(),
		Logger:  logging.ModuleLogger(module.LoggerProvider(), "press.cli"),
		DB:      db,
	}, nil
}

// Close releases the store connection when one was opened.
func (m *Module) Close() error {
	if m == nil || m.DB == nil {
		return nil
	}
	return m.DB.Close()
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
