package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeInput represents input-file read/decode errors
	ErrorTypeInput ErrorType = "input"
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeImport represents per-record import errors
	ErrorTypeImport ErrorType = "import"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Input Errors

// ErrInputUnreadable is returned when the input file cannot be read or decoded.
// It is fatal: nothing is imported when it occurs.
type ErrInputUnreadable struct {
	*BaseError
	Path string
}

func NewInputUnreadable(path string, err error) *ErrInputUnreadable {
	return &ErrInputUnreadable{
		BaseError: NewBaseError(ErrorTypeInput, fmt.Sprintf("cannot read input file: %s", path), err),
		Path:      path,
	}
}

// Graph Errors

// ErrGraphConnectionFailed is returned when the Neo4j store is unreachable at startup
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphQueryFailed is returned when a graph query fails
type ErrGraphQueryFailed struct {
	*BaseError
	Query string
}

func NewGraphQueryFailed(query string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("query failed: %s", query), err),
		Query:     query,
	}
}

// Import Errors

// ErrRecordImportFailed is returned when a single record's upsert sequence
// fails. It is absorbed at the orchestrator boundary; the batch continues.
type ErrRecordImportFailed struct {
	*BaseError
	PaperKey string
}

func NewRecordImportFailed(paperKey string, err error) *ErrRecordImportFailed {
	if paperKey == "" {
		paperKey = "N/A"
	}
	return &ErrRecordImportFailed{
		BaseError: NewBaseError(ErrorTypeImport, fmt.Sprintf("failed to import record (key: %s)", paperKey), err),
		PaperKey:  paperKey,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	if baseErr, ok := err.(*BaseError); ok {
		return baseErr.Type == errType
	}
	if wrapped, ok := err.(interface{ Unwrap() error }); ok {
		if inner := wrapped.Unwrap(); inner != nil {
			return IsErrorType(inner, errType)
		}
	}
	return false
}
