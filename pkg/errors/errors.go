// Package errors provides the error types used across the vepdiff pipeline.
// The taxonomy mirrors the error handling design: transient oracle errors
// are distinguishable from terminal per-variant errors, and input contract
// violations are distinguishable from everything else so callers can abort
// before any network work starts.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's chain matches target.
// It's an alias for the standard library errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// It's an alias for the standard library errors.As for convenience.
var As = errors.As

// Common sentinel errors for the pipeline.
var (
	// ErrRateLimited indicates the validator returned HTTP 429.
	ErrRateLimited = errors.New("rate limited")

	// ErrOracleUnavailable indicates the validator returned a server error
	// for a specific query. Deterministic per variant, never retried.
	ErrOracleUnavailable = errors.New("validator unavailable")

	// ErrInvalidInput indicates an input contract violation. Fatal at load
	// time, before any network calls.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrRetriesExhausted indicates every retry attempt for a work item
	// failed; the item is demoted to unanswered, not fatal to the batch.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// ValidationError represents an input contract violation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents a non-2xx response from the validator.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("validator API error (status %d) for %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("validator API error for %s: %s", e.Endpoint, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support. A 429 is a rate-limit error; a 5xx is a
// per-variant server error.
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 429 {
		return target == ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return target == ErrOracleUnavailable
	}
	return false
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{StatusCode: statusCode, Endpoint: endpoint, Message: message}
}

// ParseError represents an error when parsing data formats.
type ParseError struct {
	Format  string // "tsv", "json", etc.
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s file %s line %d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support. Parse failures on input files are input
// contract violations.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewParseError creates a new ParseError.
func NewParseError(format, file string, line int, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Line: line, Message: message, Err: err}
}

// IOError represents an error during file I/O.
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Err       error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapParse wraps an error as a ParseError.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// Helper functions for error checking

// IsRateLimited checks if an error is a rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsOracleUnavailable checks if an error is a per-variant server error.
func IsOracleUnavailable(err error) bool {
	return errors.Is(err, ErrOracleUnavailable)
}

// IsValidationError checks if an error is an input contract violation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
