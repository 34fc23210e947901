package utils

import (
	"errors"
	"strings"
)

var ErrorRecordNotFound = errors.New("record not found")

type ErrorKind string

const (
	ErrorKindValidation   ErrorKind = "VALIDATION_ERROR"
	ErrorKindUnauthorized ErrorKind = "UNAUTHORIZED"
	ErrorKindForbidden    ErrorKind = "FORBIDDEN"
	ErrorKindNotFound     ErrorKind = "NOT_FOUND"
	ErrorKindConflict     ErrorKind = "CONFLICT"
)

// default messages per kind, used when a constructor gets an empty message
var defaultErrorMessages = map[ErrorKind]string{
	ErrorKindValidation:   "invalid input",
	ErrorKindUnauthorized: "authentication required",
	ErrorKindForbidden:    "you are not allowed to perform this operation",
	ErrorKindNotFound:     "resource not found",
	ErrorKindConflict:     "resource conflict",
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is a caller-facing failure. Anything that is not an AppError is
// treated as an internal error by the transport.
type AppError struct {
	Kind    ErrorKind
	Message string
	Details []FieldError
}

func (e *AppError) Error() string {
	if len(e.Details) == 0 {
		return string(e.Kind) + ": " + e.Message
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+" "+d.Message)
	}
	return string(e.Kind) + ": " + e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// Is matches any AppError of the same kind, so errors.Is(err, &AppError{Kind: ...}) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newAppError(kind ErrorKind, message string, details ...FieldError) *AppError {
	if message == "" {
		message = defaultErrorMessages[kind]
	}
	return &AppError{Kind: kind, Message: message, Details: details}
}

func NewValidationError(details ...FieldError) *AppError {
	return newAppError(ErrorKindValidation, "", details...)
}

// NewFieldValidationError is the common single-field case.
func NewFieldValidationError(field string, message string) *AppError {
	return NewValidationError(FieldError{Field: field, Message: message})
}

func NewUnauthorizedError(message string) *AppError {
	return newAppError(ErrorKindUnauthorized, message)
}

func NewForbiddenError(message string) *AppError {
	return newAppError(ErrorKindForbidden, message)
}

func NewNotFoundError(message string) *AppError {
	return newAppError(ErrorKindNotFound, message)
}

func NewConflictError(message string) *AppError {
	return newAppError(ErrorKindConflict, message)
}

// AsAppError unwraps err into an AppError if it is (or wraps) one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorKind reports whether err carries the given kind.
func IsErrorKind(err error, kind ErrorKind) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == kind
}
