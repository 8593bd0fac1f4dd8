package commands

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeValidationFailed = "PRESS_CMD_VALIDATION_FAILED"
	codeContextCanceled  = "PRESS_CMD_CANCELED"
	codeContextTimeout   = "PRESS_CMD_TIMEOUT"
	codeContextError     = "PRESS_CMD_CONTEXT_ERROR"
	codeExecutionFailed  = "PRESS_CMD_EXECUTION_FAILED"
)

// wrap classifies err with a category, message, and text code unless it is
// already a wrapped domain error, in which case it passes through untouched.
func wrap(err error, category goerrors.Category, message, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

func wrapValidationError(err error) error {
	return wrap(err, goerrors.CategoryValidation, "command message failed validation", codeValidationFailed)
}

func wrapContextError(err error) error {
	switch err {
	case nil:
		return nil
	case context.Canceled:
		return wrap(err, goerrors.CategoryCommand, "command canceled", codeContextCanceled)
	case context.DeadlineExceeded:
		return wrap(err, goerrors.CategoryCommand, "command deadline exceeded", codeContextTimeout)
	default:
		return wrap(err, goerrors.CategoryCommand, "command context error", codeContextError)
	}
}

func wrapExecuteError(err error) error {
	return wrap(err, goerrors.CategoryCommand, "command execution failed", codeExecutionFailed)
}
