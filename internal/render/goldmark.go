// Package render converts markdown prose into HTML using the goldmark
// engine. Fenced code regions from parsed documents bypass goldmark entirely
// and are emitted as escaped pre/code elements tagged with their language, so
// the downstream generator can attach its own highlighter.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-press/pkg/interfaces"
)

// GoldmarkRenderer implements interfaces.MarkdownRenderer. The renderer is
// intentionally stateless so callers can reuse a single instance across
// requests without additional locking.
type GoldmarkRenderer struct {
	defaultOptions interfaces.RenderOptions
}

var _ interfaces.MarkdownRenderer = (*GoldmarkRenderer)(nil)

// NewGoldmarkRenderer constructs a renderer with the supplied defaults.
// Callers can override behaviour per invocation through RenderWithOptions.
func NewGoldmarkRenderer(defaults interfaces.RenderOptions) *GoldmarkRenderer {
	return &GoldmarkRenderer{
		defaultOptions: defaults,
	}
}

// Render converts markdown into HTML using the renderer's default options.
func (r *GoldmarkRenderer) Render(markdown []byte) ([]byte, error) {
	return r.RenderWithOptions(markdown, r.defaultOptions)
}

// RenderWithOptions converts markdown into HTML using the provided options.
func (r *GoldmarkRenderer) RenderWithOptions(markdown []byte, opts interfaces.RenderOptions) ([]byte, error) {
	engine := newGoldmarkEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderDocument renders a parsed document block by block: prose through
// goldmark, code fences as escaped pre/code elements. The document itself is
// left untouched; callers decide where the HTML lands.
func (r *GoldmarkRenderer) RenderDocument(doc *interfaces.Document, opts interfaces.RenderOptions) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("markdown render: document is nil")
	}

	if len(doc.Blocks) == 0 {
		return r.RenderWithOptions(doc.Body, opts)
	}

	var buf bytes.Buffer
	for _, block := range doc.Blocks {
		switch block.Kind {
		case interfaces.BlockCode:
			writeCodeBlock(&buf, block)
		default:
			rendered, err := r.RenderWithOptions([]byte(block.Text), opts)
			if err != nil {
				return nil, err
			}
			buf.Write(rendered)
		}
	}
	return buf.Bytes(), nil
}

// writeCodeBlock emits a fenced region as pre/code with the language tag as a
// class. The content is escaped, never interpreted.
func writeCodeBlock(buf *bytes.Buffer, block interfaces.Block) {
	buf.WriteString("<pre><code")
	if lang := strings.TrimSpace(block.Lang); lang != "" {
		buf.WriteString(` class="language-`)
		buf.WriteString(html.EscapeString(lang))
		buf.WriteString(`"`)
	}
	buf.WriteString(">")
	buf.WriteString(html.EscapeString(strings.TrimRight(block.Text, "\n")))
	buf.WriteString("\n</code></pre>\n")
}

// newGoldmarkEngine builds a goldmark.Markdown configured from the supplied
// options. Unsupported extension names are ignored.
func newGoldmarkEngine(opts interfaces.RenderOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, goldmarkhtml.WithHardWraps())
	}

	// Treat both SafeMode and Sanitize as signals to avoid emitting raw HTML.
	if !opts.SafeMode && !opts.Sanitize {
		rendererOptions = append(rendererOptions, goldmarkhtml.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
	}

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
