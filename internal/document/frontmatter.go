package document

import (
	"strings"
	"time"

	"github.com/goliatone/go-press/pkg/interfaces"
)

// dateLayouts enumerates the timestamp shapes accepted for the date key, in
// match order. Jekyll's `YYYY-MM-DD HH:MM:SS` form comes first.
var dateLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// frontMatterEnvelope is the YAML decode target. Date stays a string so the
// explicit layout parse can reject malformed values with a line number
// instead of silently zeroing them.
type frontMatterEnvelope struct {
	Layout      string         `yaml:"layout"`
	Title       string         `yaml:"title"`
	Date        string         `yaml:"date"`
	Description string         `yaml:"description"`
	Categories  categoryList   `yaml:"categories"`
	Comments    bool           `yaml:"comments"`
	Draft       bool           `yaml:"draft"`
	Custom      map[string]any `yaml:",inline"`
}

// categoryList accepts both Jekyll forms: a space separated scalar
// (`categories: java patterns`) and a YAML sequence.
type categoryList []string

func (c *categoryList) UnmarshalYAML(unmarshal func(any) error) error {
	var scalar string
	if err := unmarshal(&scalar); err == nil {
		*c = categoryList(strings.Fields(scalar))
		return nil
	}

	var list []string
	if err := unmarshal(&list); err != nil {
		return err
	}
	*c = categoryList(list)
	return nil
}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func envelopeToFrontMatter(env frontMatterEnvelope, date time.Time, pairs []interfaces.Pair) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+8)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Layout != "" {
		raw["layout"] = env.Layout
	}
	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Description != "" {
		raw["description"] = env.Description
	}
	if len(env.Categories) > 0 {
		raw["categories"] = append([]string(nil), env.Categories...)
	}
	if !date.IsZero() {
		raw["date"] = date
	}
	raw["comments"] = env.Comments
	raw["draft"] = env.Draft

	return interfaces.FrontMatter{
		Layout:      env.Layout,
		Title:       env.Title,
		Date:        date,
		Description: env.Description,
		Categories:  append([]string(nil), env.Categories...),
		Comments:    env.Comments,
		Draft:       env.Draft,
		Custom:      cloneMap(env.Custom),
		Raw:         raw,
		Pairs:       append([]interfaces.Pair(nil), pairs...),
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
