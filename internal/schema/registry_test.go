package schema

import (
	"errors"
	"testing"

	"github.com/goliatone/go-press/internal/document"
	"github.com/goliatone/go-press/pkg/interfaces"
)

const postSchema = `{
	"type": "object",
	"required": ["layout", "title", "description"],
	"properties": {
		"description": {"type": "string", "minLength": 1}
	}
}`

func parseDoc(t *testing.T, source string) *interfaces.Document {
	t.Helper()

	doc, err := document.Parse("post.md", []byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestRegistry_CheckPasses(t *testing.T) {
	registry := NewRegistry(false)
	if err := registry.Register("post", []byte(postSchema)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	doc := parseDoc(t, "---\nlayout: post\ntitle: Hello\ndescription: \"A post\"\n---\nbody\n")

	warnings, err := registry.Check(doc)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %#v", warnings)
	}
}

func TestRegistry_CheckReportsViolations(t *testing.T) {
	registry := NewRegistry(false)
	if err := registry.Register("post", []byte(postSchema)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	doc := parseDoc(t, "---\nlayout: post\ntitle: Hello\n---\nbody\n")

	warnings, err := registry.Check(doc)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatalf("expected schema warnings for missing description")
	}
	if warnings[0].Code != WarnSchemaViolation {
		t.Fatalf("expected %s, got %s", WarnSchemaViolation, warnings[0].Code)
	}
}

func TestRegistry_StrictModeErrors(t *testing.T) {
	registry := NewRegistry(true)
	if err := registry.Register("post", []byte(postSchema)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	doc := parseDoc(t, "---\nlayout: post\ntitle: Hello\n---\nbody\n")

	_, err := registry.Check(doc)
	if !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestRegistry_UnknownLayoutPasses(t *testing.T) {
	registry := NewRegistry(true)
	if err := registry.Register("post", []byte(postSchema)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	doc := parseDoc(t, "---\nlayout: page\ntitle: Hello\n---\nbody\n")

	warnings, err := registry.Check(doc)
	if err != nil || len(warnings) != 0 {
		t.Fatalf("expected unknown layout to pass, got warnings=%#v err=%v", warnings, err)
	}
}

func TestRegistry_RejectsInvalidSchema(t *testing.T) {
	registry := NewRegistry(false)
	if err := registry.Register("post", []byte(`{"type": 12}`)); err == nil {
		t.Fatalf("expected compile error for invalid schema")
	}
}
