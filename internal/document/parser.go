package document

import (
	"bytes"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// Parser implements interfaces.DocumentParser. The zero value is usable; the
// struct exists so hosts can attach a logger and share one instance across
// goroutines (parsing holds no mutable state).
type Parser struct {
	logger interfaces.Logger
}

var _ interfaces.DocumentParser = (*Parser)(nil)

// Option customises parser construction.
type Option func(*Parser)

// WithLogger attaches a logger used for trace-level diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser constructs a document parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse converts raw source bytes into a Document or fails with a ParseError
// that carries the offending path and line. The transformation is pure:
// parsing the same bytes twice yields structurally equal documents.
func (p *Parser) Parse(path string, source []byte) (*interfaces.Document, error) {
	raw, err := scanSource(path, source)
	if err != nil {
		return nil, err
	}

	var env frontMatterEnvelope
	if _, err := frontmatter.MustParse(bytes.NewReader(source), &env); err != nil {
		return nil, malformedError(path, 1, err.Error())
	}

	env.Layout = strings.TrimSpace(env.Layout)
	env.Title = strings.TrimSpace(env.Title)

	if err := requiredFields(env); err != nil {
		return nil, missingFieldError(path, missingField(env))
	}

	date, err := decodeDate(path, env, raw)
	if err != nil {
		return nil, err
	}

	doc := &interfaces.Document{
		FilePath:    path,
		FrontMatter: envelopeToFrontMatter(env, date, raw.pairs),
		Body:        raw.body,
		Blocks:      splitBlocks(raw.body, raw.bodyStart),
	}

	p.logger.Trace("document.parsed", "path", path, "pairs", len(raw.pairs), "blocks", len(doc.Blocks))

	return doc, nil
}

func requiredFields(env frontMatterEnvelope) error {
	return validation.ValidateStruct(&env,
		validation.Field(&env.Layout, validation.Required),
		validation.Field(&env.Title, validation.Required),
	)
}

func missingField(env frontMatterEnvelope) string {
	if env.Layout == "" {
		return "layout"
	}
	return "title"
}

func decodeDate(path string, env frontMatterEnvelope, raw *rawFrontMatter) (time.Time, error) {
	value := strings.TrimSpace(env.Date)
	if value == "" {
		return time.Time{}, nil
	}

	date, err := parseDate(value)
	if err != nil {
		return time.Time{}, invalidDateError(path, pairLine(raw.pairs, "date"), value)
	}
	return date, nil
}

func pairLine(pairs []interfaces.Pair, key string) int {
	for _, pair := range pairs {
		if pair.Key == key {
			return pair.Line
		}
	}
	return 1
}

var defaultParser = NewParser()

// Parse runs the default parser. See Parser.Parse.
func Parse(path string, source []byte) (*interfaces.Document, error) {
	return defaultParser.Parse(path, source)
}

// Validate runs the default parser's validation. See Parser.Validate.
func Validate(doc *interfaces.Document) []interfaces.Warning {
	return defaultParser.Validate(doc)
}
