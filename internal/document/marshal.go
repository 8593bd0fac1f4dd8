package document

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goliatone/go-press/pkg/interfaces"
)

// MarshalFrontMatter re-serializes the ordered raw pairs between delimiter
// lines. Parsing the output again reproduces the same key/value set, which is
// what editing tools rely on when rewriting metadata in place.
func MarshalFrontMatter(fm interfaces.FrontMatter) []byte {
	var buf bytes.Buffer
	buf.WriteString(delimiter)
	buf.WriteByte('\n')

	for _, pair := range fm.Pairs {
		buf.WriteString(pair.Key)
		buf.WriteString(": ")
		buf.WriteString(quoteScalar(pair.Value))
		buf.WriteByte('\n')
	}

	buf.WriteString(delimiter)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// quoteScalar wraps values the line scanner would otherwise misread: empty
// strings, surrounding whitespace, or characters that start YAML structure.
func quoteScalar(value string) string {
	if value == "" {
		return `""`
	}
	if value != strings.TrimSpace(value) {
		return strconv.Quote(value)
	}
	if strings.ContainsAny(value, ":#\"'\n") {
		return strconv.Quote(value)
	}
	if strings.HasPrefix(value, "- ") || value == delimiter {
		return strconv.Quote(value)
	}
	return value
}
