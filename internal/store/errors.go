package store

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// ErrDocumentNotFound marks lookups for paths that were never indexed.
var ErrDocumentNotFound = errors.New("store: document not found")

// NotFoundError carries the missing key alongside the sentinel.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Key == "" {
		return ErrDocumentNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrDocumentNotFound.Error(), e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrDocumentNotFound
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("document repository error: %w", err)
}
