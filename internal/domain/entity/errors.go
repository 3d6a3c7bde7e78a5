package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is reports ErrValidationFailed as a match so callers can test for any validation failure.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// ValidationErrors collects validation failures keyed by field path
// (for example "year", "entity.name", "sources[1]").
type ValidationErrors map[string][]string

// Add records a message for field.
func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Merge adds err to the collection. Nil errors are ignored; a *ValidationError or
// ValidationErrors is merged field by field, anything else lands under "non_field_errors".
func (v ValidationErrors) Merge(err error) {
	if err == nil {
		return
	}
	var many ValidationErrors
	if errors.As(err, &many) {
		for field, msgs := range many {
			v[field] = append(v[field], msgs...)
		}
		return
	}
	var one *ValidationError
	if errors.As(err, &one) {
		v.Add(one.Field, one.Message)
		return
	}
	v.Add("non_field_errors", err.Error())
}

// MergePrefixed merges err with every field path prefixed by prefix and a dot.
func (v ValidationErrors) MergePrefixed(prefix string, err error) {
	inner := ValidationErrors{}
	inner.Merge(err)
	for field, msgs := range inner {
		v[prefix+"."+field] = append(v[prefix+"."+field], msgs...)
	}
}

// OrNil returns nil when no failure was recorded, so the result can be returned as an error.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Error lists the failures in field order.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(v[f], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Is reports ErrValidationFailed as a match.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}
