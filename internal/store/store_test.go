package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-press/internal/document"
	"github.com/goliatone/go-press/pkg/interfaces"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:store_test_%s?mode=memory&cache=shared&_fk=1", t.Name())
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	if err := RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	return db
}

func buildDoc(t *testing.T, path, body string) *interfaces.Document {
	t.Helper()

	source := fmt.Sprintf("---\nlayout: post\ntitle: Test Post\ndate: 2017-03-28 09:07:22\n---\n%s\n", body)
	doc, err := document.BuildDocument(path, "posts", []byte(source), time.Now())
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}
	return doc
}

func TestStore_UpsertLifecycle(t *testing.T) {
	db := newTestDB(t)
	store := New(db)
	ctx := context.Background()

	doc := buildDoc(t, "_posts/2017-03-28-test.md", "first body")

	outcome, err := store.Upsert(ctx, doc)
	if err != nil {
		t.Fatalf("Upsert create: %v", err)
	}
	if outcome != interfaces.StoreCreated {
		t.Fatalf("expected StoreCreated, got %v", outcome)
	}

	outcome, err = store.Upsert(ctx, doc)
	if err != nil {
		t.Fatalf("Upsert unchanged: %v", err)
	}
	if outcome != interfaces.StoreSkipped {
		t.Fatalf("expected StoreSkipped, got %v", outcome)
	}

	changed := buildDoc(t, "_posts/2017-03-28-test.md", "second body")
	outcome, err = store.Upsert(ctx, changed)
	if err != nil {
		t.Fatalf("Upsert changed: %v", err)
	}
	if outcome != interfaces.StoreUpdated {
		t.Fatalf("expected StoreUpdated, got %v", outcome)
	}

	record, err := store.Get(ctx, changed.FilePath)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if record.Title != "Test Post" || record.Slug != "test-post" {
		t.Fatalf("unexpected record projection: %+v", record)
	}
	if record.Collection != "posts" {
		t.Fatalf("expected collection posts, got %q", record.Collection)
	}
	if record.Date == nil {
		t.Fatalf("expected stored date")
	}
}

func TestStore_PathsAndDeleteOrphans(t *testing.T) {
	db := newTestDB(t)
	store := New(db)
	ctx := context.Background()

	for _, path := range []string{"_posts/a.md", "_posts/b.md", "_posts/c.md"} {
		if _, err := store.Upsert(ctx, buildDoc(t, path, "body for "+path)); err != nil {
			t.Fatalf("Upsert %s: %v", path, err)
		}
	}

	paths, err := store.Paths(ctx)
	if err != nil {
		t.Fatalf("Paths: %v", err)
	}
	if len(paths) != 3 || paths[0] != "_posts/a.md" || paths[2] != "_posts/c.md" {
		t.Fatalf("unexpected paths: %v", paths)
	}

	deleted, err := store.DeleteOrphans(ctx, []string{"_posts/a.md"})
	if err != nil {
		t.Fatalf("DeleteOrphans: %v", err)
	}
	if len(deleted) != 2 || deleted[0] != "_posts/b.md" || deleted[1] != "_posts/c.md" {
		t.Fatalf("unexpected deleted paths: %v", deleted)
	}

	paths, err = store.Paths(ctx)
	if err != nil {
		t.Fatalf("Paths after delete: %v", err)
	}
	if len(paths) != 1 || paths[0] != "_posts/a.md" {
		t.Fatalf("unexpected surviving paths: %v", paths)
	}
}

func TestStore_GetNotFound(t *testing.T) {
	db := newTestDB(t)
	store := New(db)

	_, err := store.Get(context.Background(), "_posts/missing.md")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) || notFound.Key != "_posts/missing.md" {
		t.Fatalf("expected NotFoundError with key, got %v", err)
	}
}

func TestStore_ChecksumRoundTrip(t *testing.T) {
	db := newTestDB(t)
	store := New(db)
	ctx := context.Background()

	doc := buildDoc(t, "_posts/sum.md", "checksum body")
	if _, err := store.Upsert(ctx, doc); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	sum, err := store.Checksum(ctx, doc.FilePath)
	if err != nil {
		t.Fatalf("Checksum: %v", err)
	}
	if len(sum) != len(doc.Checksum) {
		t.Fatalf("checksum length mismatch: %d vs %d", len(sum), len(doc.Checksum))
	}
	for i := range sum {
		if sum[i] != doc.Checksum[i] {
			t.Fatalf("checksum mismatch at byte %d", i)
		}
	}
}
