package document

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-press/pkg/interfaces"
)

var (
	liquidOpenPattern  = regexp.MustCompile(`^\{%\s*highlight(?:\s+([A-Za-z0-9_+#.-]+))?\s*%\}\s*$`)
	liquidClosePattern = regexp.MustCompile(`^\{%\s*endhighlight\s*%\}\s*$`)
	headingPattern     = regexp.MustCompile(`(?m)^##\s`)
)

// splitBlocks segments a body into alternating prose and fenced code blocks.
// Both backtick fences and Liquid highlight regions are recognised; fenced
// content is copied verbatim and never interpreted. startLine anchors the
// 1-based line numbers reported on each block.
func splitBlocks(body []byte, startLine int) []interfaces.Block {
	if len(body) == 0 {
		return nil
	}
	if startLine < 1 {
		startLine = 1
	}

	var blocks []interfaces.Block

	var prose []string
	proseStart := 0

	var code []string
	var current interfaces.Block
	inCode := false

	flushProse := func() {
		text := strings.Join(prose, "\n")
		if strings.TrimSpace(text) != "" {
			blocks = append(blocks, interfaces.Block{
				Kind:      interfaces.BlockProse,
				Text:      text,
				StartLine: proseStart,
			})
		}
		prose = nil
	}

	lines := strings.Split(string(body), "\n")
	for i, line := range lines {
		lineNo := startLine + i
		trimmed := strings.TrimSpace(strings.TrimRight(line, "\r"))

		if inCode {
			if closesFence(trimmed, current.Fence) {
				current.Text = strings.Join(code, "\n")
				blocks = append(blocks, current)
				code = nil
				inCode = false
				continue
			}
			code = append(code, strings.TrimRight(line, "\r"))
			continue
		}

		if lang, fence, ok := opensFence(trimmed); ok {
			flushProse()
			current = interfaces.Block{
				Kind:      interfaces.BlockCode,
				Lang:      lang,
				Fence:     fence,
				StartLine: lineNo,
			}
			inCode = true
			continue
		}

		if len(prose) == 0 {
			proseStart = lineNo
		}
		prose = append(prose, strings.TrimRight(line, "\r"))
	}

	if inCode {
		current.Text = strings.Join(code, "\n")
		current.Unclosed = true
		blocks = append(blocks, current)
	} else {
		flushProse()
	}

	return blocks
}

func opensFence(trimmed string) (lang string, fence interfaces.FenceStyle, ok bool) {
	if match := liquidOpenPattern.FindStringSubmatch(trimmed); match != nil {
		return match[1], interfaces.FenceLiquid, true
	}
	if strings.HasPrefix(trimmed, "```") {
		return strings.TrimSpace(strings.TrimPrefix(trimmed, "```")), interfaces.FenceBacktick, true
	}
	return "", "", false
}

func closesFence(trimmed string, fence interfaces.FenceStyle) bool {
	switch fence {
	case interfaces.FenceLiquid:
		return liquidClosePattern.MatchString(trimmed)
	case interfaces.FenceBacktick:
		return trimmed == "```"
	default:
		return false
	}
}

// Headings counts the `## ` section headings across a document's prose
// blocks. Fenced code never contributes, so a commented heading inside an
// example snippet does not inflate the count.
func Headings(doc *interfaces.Document) int {
	if doc == nil {
		return 0
	}

	count := 0
	for _, block := range doc.Blocks {
		if block.Kind != interfaces.BlockProse {
			continue
		}
		count += len(headingPattern.FindAllString(block.Text, -1))
	}
	return count
}
