// Package store keeps an incremental build index of parsed documents in
// SQLite. The index lets repeated import runs skip unchanged files by
// checksum and delete rows whose source files disappeared.
package store

import (
	"encoding/hex"
	"path/filepath"
	"strings"
	"time"

	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-press/internal/identity"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// Record is the persisted projection of a parsed document. The row id is
// deterministic over the source path so re-imports always address the same
// row.
type Record struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID          uuid.UUID  `bun:",pk,type:uuid"          json:"id"`
	Path        string     `bun:"path,notnull,unique"    json:"path"`
	Collection  string     `bun:"collection"             json:"collection,omitempty"`
	Slug        string     `bun:"slug,notnull"           json:"slug"`
	Layout      string     `bun:"layout,notnull"         json:"layout"`
	Title       string     `bun:"title,notnull"          json:"title"`
	Description string     `bun:"description"            json:"description,omitempty"`
	Date        *time.Time `bun:"date,nullzero"          json:"date,omitempty"`
	Categories  []string   `bun:"categories,type:jsonb"  json:"categories,omitempty"`
	Checksum    string     `bun:"checksum,notnull"       json:"checksum"`
	BodyHTML    string     `bun:"body_html"              json:"body_html,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// recordFromDocument maps a parsed document onto its index row. Slugs come
// from the title, falling back to the file name when normalization yields
// nothing usable.
func recordFromDocument(doc *interfaces.Document) *Record {
	record := &Record{
		ID:          identity.DocumentUUID(doc.FilePath),
		Path:        doc.FilePath,
		Collection:  doc.Collection,
		Slug:        documentSlug(doc),
		Layout:      doc.FrontMatter.Layout,
		Title:       doc.FrontMatter.Title,
		Description: doc.FrontMatter.Description,
		Categories:  append([]string(nil), doc.FrontMatter.Categories...),
		Checksum:    hex.EncodeToString(doc.Checksum),
		BodyHTML:    string(doc.BodyHTML),
	}

	if !doc.FrontMatter.Date.IsZero() {
		date := doc.FrontMatter.Date
		record.Date = &date
	}

	return record
}

func documentSlug(doc *interfaces.Document) string {
	if normalized, err := slug.Normalize(doc.FrontMatter.Title); err == nil && normalized != "" {
		return normalized
	}

	base := filepath.Base(doc.FilePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if normalized, err := slug.Normalize(base); err == nil && normalized != "" {
		return normalized
	}
	return base
}
