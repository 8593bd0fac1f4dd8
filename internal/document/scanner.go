package document

import (
	"bytes"
	"strings"

	"github.com/goliatone/go-press/pkg/interfaces"
)

const delimiter = "---"

// rawFrontMatter carries the ordered scalar pairs exactly as they appeared in
// the source, plus the body position. The scanner is deliberately line based:
// it feeds the round-trip serializer and the duplicate-key warnings, while the
// YAML decode handles typed values.
type rawFrontMatter struct {
	pairs []interfaces.Pair
	// bodyStart is the 1-based line number of the first body line.
	bodyStart int
	body      []byte
}

// scanSource enforces the delimiter contract and records the raw key/value
// lines between the two markers. The first line must be an opening delimiter
// and a closing one must follow before EOF; anything else is malformed input.
func scanSource(path string, source []byte) (*rawFrontMatter, error) {
	source = bytes.TrimPrefix(source, []byte{0xEF, 0xBB, 0xBF})

	lines := splitLines(source)
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t\r") != delimiter {
		return nil, malformedError(path, 1, "missing opening delimiter")
	}

	raw := &rawFrontMatter{}
	closing := -1
	for i := 1; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], " \t\r")
		if line == delimiter {
			closing = i
			break
		}

		pair, ok := scanPair(lines[i], i+1)
		if !ok {
			continue
		}
		raw.pairs = append(raw.pairs, pair)
	}

	if closing < 0 {
		return nil, malformedError(path, len(lines), "missing closing delimiter")
	}

	raw.bodyStart = closing + 2
	raw.body = joinLines(lines[closing+1:])
	return raw, nil
}

// scanPair extracts a flat key/value scalar from a single front matter line.
// Blank lines, comments, and nested structures (indented or list items) are
// skipped; the YAML decoder deals with those.
func scanPair(line string, lineNo int) (interfaces.Pair, bool) {
	trimmed := strings.TrimRight(line, "\r")
	if strings.TrimSpace(trimmed) == "" {
		return interfaces.Pair{}, false
	}
	if strings.HasPrefix(strings.TrimSpace(trimmed), "#") {
		return interfaces.Pair{}, false
	}
	// Indented lines belong to a previous key's nested value.
	if strings.HasPrefix(trimmed, " ") || strings.HasPrefix(trimmed, "\t") {
		return interfaces.Pair{}, false
	}
	if strings.HasPrefix(trimmed, "- ") {
		return interfaces.Pair{}, false
	}

	idx := strings.Index(trimmed, ":")
	if idx <= 0 {
		return interfaces.Pair{}, false
	}

	key := strings.TrimSpace(trimmed[:idx])
	value := unquoteScalar(strings.TrimSpace(trimmed[idx+1:]))
	if key == "" {
		return interfaces.Pair{}, false
	}

	return interfaces.Pair{Key: key, Value: value, Line: lineNo}, true
}

func unquoteScalar(value string) string {
	if len(value) < 2 {
		return value
	}
	first := value[0]
	last := value[len(value)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		inner := value[1 : len(value)-1]
		if first == '"' {
			inner = strings.ReplaceAll(inner, `\"`, `"`)
		} else {
			inner = strings.ReplaceAll(inner, "''", "'")
		}
		return inner
	}
	return value
}

func splitLines(source []byte) []string {
	if len(source) == 0 {
		return nil
	}
	return strings.Split(string(source), "\n")
}

func joinLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n"))
}
