// Package schema validates front matter against per-layout JSON Schemas.
// Layouts without a registered schema pass untouched; findings surface as
// warnings unless the registry is configured strict.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-press/pkg/interfaces"
)

// ErrSchemaViolation is returned by strict registries when a document's
// front matter fails its layout schema.
var ErrSchemaViolation = errors.New("schema: front matter violates layout schema")

// WarnSchemaViolation is the warning code emitted in non-strict mode.
const WarnSchemaViolation = "schema_violation"

// Registry maps layout names to compiled JSON Schemas.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*jsonschema.Schema
	strict  bool
}

// NewRegistry constructs an empty registry. Strict registries turn schema
// violations into hard errors instead of warnings.
func NewRegistry(strict bool) *Registry {
	return &Registry{
		schemas: map[string]*jsonschema.Schema{},
		strict:  strict,
	}
}

// Register compiles source as a JSON Schema and binds it to the layout name.
// Registering the same layout twice replaces the previous schema.
func (r *Registry) Register(layout string, source []byte) error {
	layout = strings.ToLower(strings.TrimSpace(layout))
	if layout == "" {
		return errors.New("schema: layout name is required")
	}

	url := fmt.Sprintf("press://schemas/%s.json", layout)
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(source)); err != nil {
		return fmt.Errorf("schema: add resource for layout %s: %w", layout, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return fmt.Errorf("schema: compile layout %s: %w", layout, err)
	}

	r.mu.Lock()
	r.schemas[layout] = compiled
	r.mu.Unlock()
	return nil
}

// Layouts lists the registered layout names in sorted order.
func (r *Registry) Layouts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check validates a document's front matter against the schema registered
// for its layout. Documents whose layout has no schema pass with no
// findings. In strict mode the first violation is returned as an error.
func (r *Registry) Check(doc *interfaces.Document) ([]interfaces.Warning, error) {
	if doc == nil {
		return nil, nil
	}

	layout := strings.ToLower(strings.TrimSpace(doc.FrontMatter.Layout))

	r.mu.RLock()
	compiled, ok := r.schemas[layout]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	value, err := jsonValue(doc.FrontMatter.Raw)
	if err != nil {
		return nil, fmt.Errorf("schema: normalise front matter for %s: %w", doc.FilePath, err)
	}

	err = compiled.Validate(value)
	if err == nil {
		return nil, nil
	}

	warnings := violationWarnings(doc, err)
	if r.strict {
		return warnings, fmt.Errorf("%w: %s (layout %s)", ErrSchemaViolation, doc.FilePath, layout)
	}
	return warnings, nil
}

// jsonValue round-trips the raw map through encoding/json so schema
// validation sees plain JSON types (time.Time becomes an RFC3339 string).
func jsonValue(raw map[string]any) (any, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var value any
	if err := json.Unmarshal(encoded, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func violationWarnings(doc *interfaces.Document, err error) []interfaces.Warning {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []interfaces.Warning{{
			Code:    WarnSchemaViolation,
			Message: err.Error(),
			Path:    doc.FilePath,
			Line:    1,
		}}
	}

	var warnings []interfaces.Warning
	for _, cause := range validationErr.BasicOutput().Errors {
		if cause.Error == "" || strings.HasPrefix(cause.Error, "doesn't validate with") {
			continue
		}
		warnings = append(warnings, interfaces.Warning{
			Code:    WarnSchemaViolation,
			Message: fmt.Sprintf("%s: %s", instanceLabel(cause.InstanceLocation), cause.Error),
			Path:    doc.FilePath,
			Line:    1,
		})
	}

	if len(warnings) == 0 {
		warnings = append(warnings, interfaces.Warning{
			Code:    WarnSchemaViolation,
			Message: validationErr.Error(),
			Path:    doc.FilePath,
			Line:    1,
		})
	}
	return warnings
}

func instanceLabel(location string) string {
	trimmed := strings.TrimPrefix(location, "/")
	if trimmed == "" {
		return "front matter"
	}
	return strings.ReplaceAll(trimmed, "/", ".")
}
