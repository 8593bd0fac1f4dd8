package press

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

const samplePost = `---
layout: post
title: Integration Post
date: 2017-03-28 09:07:22
categories: java design-patterns
---
## Section

Some **markdown** body.
`

func writeContent(t *testing.T, dir, rel, content string) {
	t.Helper()

	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func openTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", "file:press_module_"+t.Name()+"?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return bun.NewDB(sqlDB, sqlitedialect.New())
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Content.Dir = ""

	if _, err := New(cfg); !errors.Is(err, ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestNewRequiresDBForStore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Content.Dir = t.TempDir()
	cfg.Store.Enabled = true

	if _, err := New(cfg); !errors.Is(err, ErrStoreNotConfigured) {
		t.Fatalf("expected ErrStoreNotConfigured, got %v", err)
	}
}

func TestModuleEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "_posts/2017-03-28-integration.md", samplePost)

	cfg := DefaultConfig()
	cfg.Content.Dir = dir
	cfg.Store.Enabled = true

	db := openTestDB(t)
	mod, err := New(cfg, WithDB(db))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	if err := mod.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	svc := mod.Press()

	check, err := svc.Check(ctx, ".", LoadOptions{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if check.Scanned != 1 || check.Valid != 1 || len(check.Errors) != 0 {
		t.Fatalf("unexpected check result: %+v", check)
	}

	imported, err := svc.Import(ctx, ".", ImportOptions{RenderHTML: true})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(imported.Created) != 1 {
		t.Fatalf("expected one created document, got %+v", imported)
	}

	if err := os.Remove(filepath.Join(dir, "_posts/2017-03-28-integration.md")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	synced, err := svc.Sync(ctx, ".", SyncOptions{DeleteOrphaned: true})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if synced.Deleted != 1 {
		t.Fatalf("expected one deletion, got %+v", synced)
	}
}

func TestModuleLoadsSchemasFromDir(t *testing.T) {
	contentDir := t.TempDir()
	writeContent(t, contentDir, "_posts/a.md", samplePost)

	schemaDir := t.TempDir()
	writeContent(t, schemaDir, "post.json", `{
		"type": "object",
		"required": ["description"]
	}`)

	cfg := DefaultConfig()
	cfg.Content.Dir = contentDir
	cfg.Schemas.Enabled = true
	cfg.Schemas.Dir = schemaDir

	mod, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if mod.Schemas() == nil {
		t.Fatal("expected schema registry")
	}
	if layouts := mod.Schemas().Layouts(); len(layouts) != 1 || layouts[0] != "post" {
		t.Fatalf("unexpected layouts: %v", layouts)
	}

	check, err := mod.Press().Check(context.Background(), ".", LoadOptions{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(check.Warnings) == 0 {
		t.Fatalf("expected schema warning for missing description, got %+v", check)
	}
}

func TestModuleRegisterCommands(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Content.Dir = t.TempDir()

	mod, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	registry := &countingRegistry{}
	set, err := mod.RegisterCommands(registry)
	if err != nil {
		t.Fatalf("RegisterCommands: %v", err)
	}
	if set.Check == nil || set.Import == nil || set.Sync == nil {
		t.Fatalf("incomplete handler set: %+v", set)
	}
	if registry.count != 3 {
		t.Fatalf("expected 3 handlers registered, got %d", registry.count)
	}
}

type countingRegistry struct {
	count int
}

func (r *countingRegistry) RegisterCommand(any) error {
	r.count++
	return nil
}
