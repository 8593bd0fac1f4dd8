package render

import (
	"strings"
	"testing"

	"github.com/goliatone/go-press/internal/document"
	"github.com/goliatone/go-press/pkg/interfaces"
)

func TestGoldmarkRenderer_Render(t *testing.T) {
	renderer := NewGoldmarkRenderer(interfaces.RenderOptions{})

	html, err := renderer.Render([]byte("# Heading\n\nHello **world**"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Heading</h1>") {
		t.Fatalf("expected rendered HTML to include <h1>Heading</h1>, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected rendered HTML to include <strong>, got %q", got)
	}
}

func TestGoldmarkRenderer_RenderWithOptions(t *testing.T) {
	renderer := NewGoldmarkRenderer(interfaces.RenderOptions{})

	html, err := renderer.RenderWithOptions([]byte("line one\nline two"), interfaces.RenderOptions{
		HardWraps: true,
	})
	if err != nil {
		t.Fatalf("RenderWithOptions: %v", err)
	}

	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps in output, got %q", string(html))
	}
}

func TestGoldmarkRenderer_RenderDocument(t *testing.T) {
	source := []byte("---\nlayout: post\ntitle: Hello\n---\n## Section\n\n{% highlight java %}\nList<String> names = new ArrayList<>();\n{% endhighlight %}\n")

	doc, err := document.Parse("post.md", source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	renderer := NewGoldmarkRenderer(interfaces.RenderOptions{})
	html, err := renderer.RenderDocument(doc, interfaces.RenderOptions{})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "Section</h2>") {
		t.Fatalf("expected prose heading in output, got %q", got)
	}
	if !strings.Contains(got, `<pre><code class="language-java">`) {
		t.Fatalf("expected language-tagged code block, got %q", got)
	}
	if !strings.Contains(got, "List&lt;String&gt;") {
		t.Fatalf("expected escaped code content, got %q", got)
	}
	if strings.Contains(got, "{% highlight") {
		t.Fatalf("liquid markers leaked into output: %q", got)
	}
}

func TestGoldmarkRenderer_SafeMode(t *testing.T) {
	renderer := NewGoldmarkRenderer(interfaces.RenderOptions{})

	unsafe, err := renderer.RenderWithOptions([]byte("<div>raw</div>"), interfaces.RenderOptions{})
	if err != nil {
		t.Fatalf("RenderWithOptions: %v", err)
	}
	if !strings.Contains(string(unsafe), "<div>raw</div>") {
		t.Fatalf("expected raw HTML passthrough by default, got %q", string(unsafe))
	}

	safe, err := renderer.RenderWithOptions([]byte("<div>raw</div>"), interfaces.RenderOptions{SafeMode: true})
	if err != nil {
		t.Fatalf("RenderWithOptions safe: %v", err)
	}
	if strings.Contains(string(safe), "<div>raw</div>") {
		t.Fatalf("expected raw HTML suppressed in safe mode, got %q", string(safe))
	}
}
