package document

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-press/pkg/interfaces"
)

// Warning codes emitted by Validate. Service-level checks reuse the same
// namespace so reports stay greppable.
const (
	WarnDuplicateKey      = "duplicate_key"
	WarnUnclosedFence     = "unclosed_fence"
	WarnEmptyBody         = "empty_body"
	WarnDuplicateDocument = "duplicate_document"
)

// Validate runs non-fatal checks over a parsed document. It never errors and
// returns an empty slice when nothing is worth reporting, so callers can
// always range over the result.
func (p *Parser) Validate(doc *interfaces.Document) []interfaces.Warning {
	warnings := []interfaces.Warning{}
	if doc == nil {
		return warnings
	}

	seen := map[string]int{}
	for _, pair := range doc.FrontMatter.Pairs {
		if first, ok := seen[pair.Key]; ok {
			warnings = append(warnings, interfaces.Warning{
				Code:    WarnDuplicateKey,
				Message: fmt.Sprintf("front matter key %q repeats (first seen on line %d); last value wins", pair.Key, first),
				Path:    doc.FilePath,
				Line:    pair.Line,
			})
			continue
		}
		seen[pair.Key] = pair.Line
	}

	for _, block := range doc.Blocks {
		if block.Kind == interfaces.BlockCode && block.Unclosed {
			warnings = append(warnings, interfaces.Warning{
				Code:    WarnUnclosedFence,
				Message: fmt.Sprintf("code fence opened on line %d is never closed", block.StartLine),
				Path:    doc.FilePath,
				Line:    block.StartLine,
			})
		}
	}

	if len(bytes.TrimSpace(doc.Body)) == 0 {
		warnings = append(warnings, interfaces.Warning{
			Code:    WarnEmptyBody,
			Message: "document has no body content",
			Path:    doc.FilePath,
			Line:    1,
		})
	}

	return warnings
}
