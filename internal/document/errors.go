package document

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedFrontMatter = errors.New("document: malformed front matter")
	ErrMissingRequiredField = errors.New("document: missing required field")
	ErrInvalidDateFormat    = errors.New("document: invalid date format")
)

// ParseError ties a parse failure to its source location. Line is 1-based;
// zero means the failure could not be attributed to a specific line.
type ParseError struct {
	Path   string
	Line   int
	Field  string
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "document: parse error"
	}

	msg := "document: parse error"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Field)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}

	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, msg)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, msg)
	default:
		return msg
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func malformedError(path string, line int, detail string) error {
	return &ParseError{Path: path, Line: line, Detail: detail, Err: ErrMalformedFrontMatter}
}

func missingFieldError(path, field string) error {
	return &ParseError{Path: path, Line: 1, Field: field, Err: ErrMissingRequiredField}
}

func invalidDateError(path string, line int, value string) error {
	return &ParseError{Path: path, Line: line, Field: "date", Detail: value, Err: ErrInvalidDateFormat}
}
