// Package document implements the content document parser and validator:
// it splits Jekyll-style source files into a front matter block and a body,
// decodes and checks the metadata, and segments the body into prose and
// fenced code blocks. Parsing is a pure transformation of the input bytes;
// validation collects non-fatal findings without ever aborting.
package document

import (
	"crypto/sha256"
	"time"

	"github.com/goliatone/go-press/pkg/interfaces"
)

// BuildDocument parses source and attaches file metadata plus a SHA-256
// checksum of the original content so sync workflows can detect changes
// without re-importing unchanged files.
func BuildDocument(path, collection string, source []byte, modified time.Time) (*interfaces.Document, error) {
	doc, err := Parse(path, source)
	if err != nil {
		return nil, err
	}

	doc.Collection = collection
	doc.LastModified = modified
	sum := sha256.Sum256(source)
	doc.Checksum = sum[:]

	return doc, nil
}
