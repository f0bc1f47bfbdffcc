// Package apperr holds the caller-facing error taxonomy. All three concrete
// kinds are terminal: nothing in the service retries them.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError describes one failing field of a payload.
type FieldError struct {
	Path    string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationError is returned when a payload fails shape/range/format checks.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Path+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError is returned when an id does not resolve to a stored record.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
}

// ConflictError is returned on a status guard violation or a lost
// compare-and-swap.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string { return e.Detail }

func Validation(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Field is shorthand for a single-field validation failure.
func Field(path, code, message string) *ValidationError {
	return Validation(FieldError{Path: path, Code: code, Message: message})
}

func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func Conflict(format string, args ...any) *ConflictError {
	return &ConflictError{Detail: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsCaller reports whether err belongs to the caller-error classes (4xx).
// Anything else is an internal failure.
func IsCaller(err error) bool {
	return IsValidation(err) || IsNotFound(err) || IsConflict(err)
}
