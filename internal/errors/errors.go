package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of the
// innermost AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    GetCode(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetCode returns the code of the first AppError in the chain, or
// CodeInternalError for foreign errors.
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternalError
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return err != nil && GetCode(err) == code
}

// Predefined error codes
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeNotFound         = "NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeLoadFailed       = "LOAD_FAILED"
	CodeMissingColumn    = "MISSING_COLUMN"
	CodeInvalidFilter    = "INVALID_FILTER"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeMissingValue     = "MISSING_VALUE"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func LoadFailed(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeLoadFailed,
		Message: fmt.Sprintf("failed to load %s", path),
		Cause:   cause,
	}
}

// MissingColumn reports a column that a chart references but the table lacks.
func MissingColumn(table, column string) *AppError {
	return New(CodeMissingColumn, fmt.Sprintf("table %q has no column %q", table, column))
}

// InvalidFilter reports a malformed filter predicate.
func InvalidFilter(message string) *AppError {
	return New(CodeInvalidFilter, message)
}

// InsufficientData reports a mean taken over an empty group.
func InsufficientData(group string) *AppError {
	return New(CodeInsufficientData, fmt.Sprintf("group %q has no rows to average", group))
}

// MissingValue reports a null cell where the aggregation cannot ignore it.
func MissingValue(column string, row int) *AppError {
	return New(CodeMissingValue, fmt.Sprintf("row %d has no value in column %q", row, column))
}

func IsMissingColumn(err error) bool    { return HasCode(err, CodeMissingColumn) }
func IsInvalidFilter(err error) bool    { return HasCode(err, CodeInvalidFilter) }
func IsInsufficientData(err error) bool { return HasCode(err, CodeInsufficientData) }
func IsMissingValue(err error) bool     { return HasCode(err, CodeMissingValue) }
func IsNotFound(err error) bool         { return HasCode(err, CodeNotFound) }
