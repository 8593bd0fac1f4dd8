package press

import (
	"context"
	"os"
	"testing"
)

func boolPtr(v bool) *bool { return &v }

func TestLoader_PatternOverride(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "_posts/a.md", post("A"))
	writeFile(t, root, "_posts/b.markdown", post("B"))

	loader := NewLoader(os.DirFS(root), LoaderConfig{BasePath: root, Recursive: true})

	results, err := loader.LoadDirectory(context.Background(), ".", LoadParams{Pattern: "*.markdown"})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(results) != 1 || results[0].Path != "_posts/b.markdown" {
		t.Fatalf("unexpected results: %#v", results)
	}
}

func TestLoader_NonRecursiveStaysInRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "top.md", post("Top"))
	writeFile(t, root, "_posts/nested.md", post("Nested"))

	loader := NewLoader(os.DirFS(root), LoaderConfig{BasePath: root, Recursive: true})

	results, err := loader.LoadDirectory(context.Background(), ".", LoadParams{Recursive: boolPtr(false)})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(results) != 1 || results[0].Path != "top.md" {
		t.Fatalf("expected only root file, got %#v", results)
	}
}

func TestLoader_CollectionDetection(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "_posts/a.md", post("A"))
	writeFile(t, root, "_drafts/b.md", post("B"))
	writeFile(t, root, "loose.md", post("Loose"))
	writeFile(t, root, "guides/c.md", post("C"))

	loader := NewLoader(os.DirFS(root), LoaderConfig{
		BasePath:          root,
		DefaultCollection: "pages",
		Recursive:         true,
		CollectionPatterns: map[string]string{
			"guides": "guides/*.md",
		},
	})

	want := map[string]string{
		"_posts/a.md":  "posts",
		"_drafts/b.md": "drafts",
		"loose.md":     "pages",
		"guides/c.md":  "guides",
	}

	results, err := loader.LoadDirectory(context.Background(), ".", LoadParams{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(results) != len(want) {
		t.Fatalf("expected %d documents, got %d", len(want), len(results))
	}
	for _, result := range results {
		if got := result.Document.Collection; got != want[result.Path] {
			t.Fatalf("collection for %s: got %q want %q", result.Path, got, want[result.Path])
		}
	}
}

func TestLoader_DiscoverCollectsErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "_posts/good.md", post("Good"))
	writeFile(t, root, "_posts/broken.md", brokenPost)

	loader := NewLoader(os.DirFS(root), LoaderConfig{BasePath: root, Recursive: true})

	results, err := loader.Discover(context.Background(), ".", LoadParams{})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected both files reported, got %d", len(results))
	}

	var failed, parsed int
	for _, result := range results {
		if result.Err != nil {
			failed++
		} else if result.Document != nil {
			parsed++
		}
	}
	if failed != 1 || parsed != 1 {
		t.Fatalf("expected one failure and one document, got failed=%d parsed=%d", failed, parsed)
	}
}

func TestLoader_ContextCancellation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "_posts/a.md", post("A"))

	loader := NewLoader(os.DirFS(root), LoaderConfig{BasePath: root, Recursive: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.LoadDirectory(ctx, ".", LoadParams{}); err == nil {
		t.Fatalf("expected context error")
	}
}
