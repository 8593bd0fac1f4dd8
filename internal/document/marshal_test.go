package document

import (
	"strings"
	"testing"
)

func TestMarshalFrontMatter_RoundTrip(t *testing.T) {
	data := readFixture(t, "basic.md")

	doc, err := Parse("testdata/basic.md", data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	serialized := MarshalFrontMatter(doc.FrontMatter)
	reparsed, err := Parse("testdata/basic.md", append(serialized, []byte("body\n")...))
	if err != nil {
		t.Fatalf("reparse serialized front matter: %v", err)
	}

	if len(reparsed.FrontMatter.Pairs) != len(doc.FrontMatter.Pairs) {
		t.Fatalf("pair count changed: %d vs %d", len(reparsed.FrontMatter.Pairs), len(doc.FrontMatter.Pairs))
	}
	for i, pair := range doc.FrontMatter.Pairs {
		got := reparsed.FrontMatter.Pairs[i]
		if got.Key != pair.Key || got.Value != pair.Value {
			t.Fatalf("pair %d mismatch: got %q=%q want %q=%q", i, got.Key, got.Value, pair.Key, pair.Value)
		}
	}
}

func TestMarshalFrontMatter_QuotesAwkwardScalars(t *testing.T) {
	source := []byte("---\nlayout: post\ntitle: \"Note: read this\"\n---\nbody\n")

	doc, err := Parse("post.md", source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	serialized := string(MarshalFrontMatter(doc.FrontMatter))
	if !strings.Contains(serialized, `title: "Note: read this"`) {
		t.Fatalf("expected colon value to be re-quoted, got:\n%s", serialized)
	}
}

func TestMarshalFrontMatter_Delimiters(t *testing.T) {
	source := []byte("---\nlayout: post\ntitle: Hello\n---\nbody\n")

	doc, err := Parse("post.md", source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	serialized := string(MarshalFrontMatter(doc.FrontMatter))
	if !strings.HasPrefix(serialized, "---\n") || !strings.HasSuffix(serialized, "---\n") {
		t.Fatalf("expected delimiter framing, got:\n%s", serialized)
	}
}
