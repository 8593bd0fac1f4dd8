package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestDocumentUUID_Deterministic(t *testing.T) {
	first := DocumentUUID("_posts/2017-03-28-creational.md")
	second := DocumentUUID("_posts/2017-03-28-creational.md")

	if first == uuid.Nil {
		t.Fatalf("expected non-nil UUID")
	}
	if first != second {
		t.Fatalf("expected deterministic UUIDs, got %s and %s", first, second)
	}
}

func TestDocumentUUID_DistinctPaths(t *testing.T) {
	if DocumentUUID("a.md") == DocumentUUID("b.md") {
		t.Fatalf("expected distinct UUIDs for distinct paths")
	}
}

func TestUUID_EmptyKey(t *testing.T) {
	if UUID("  ") != uuid.Nil {
		t.Fatalf("expected nil UUID for blank key")
	}
}
