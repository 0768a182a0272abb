// Package docxtable provides custom error types for better error handling and reporting.
package docxtable

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched with errors.Is
var (
	// ErrIndexOutOfRange reports a row, column or cell index outside the table
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidOperation reports a call that violates the table contract
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrNotFound reports an unknown style name or setting token
	ErrNotFound = errors.New("not found")
)

// IndexError represents an index outside the bounds of a collection
type IndexError struct {
	Collection string
	Index      int
	Len        int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index [%d] out of range (length %d)", e.Collection, e.Index, e.Len)
}

// Is makes IndexError match ErrIndexOutOfRange
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// NewIndexError creates a new index error
func NewIndexError(collection string, index, length int) error {
	return &IndexError{
		Collection: collection,
		Index:      index,
		Len:        length,
	}
}

func checkIndex(collection string, index, length int) error {
	if index < 0 || index >= length {
		return NewIndexError(collection, index, length)
	}
	return nil
}

// OperationError represents a rejected table mutation or query
type OperationError struct {
	Operation string
	Reason    string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Operation, e.Reason)
}

// Is makes OperationError match ErrInvalidOperation
func (e *OperationError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// NewOperationError creates a new operation error
func NewOperationError(operation, reason string) error {
	return &OperationError{
		Operation: operation,
		Reason:    reason,
	}
}

// LookupError represents a failed lookup of a named setting
type LookupError struct {
	Kind string
	Key  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no %s matching '%s'", e.Kind, e.Key)
}

// Is makes LookupError match ErrNotFound
func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}

// NewLookupError creates a new lookup error
func NewLookupError(kind, key string) error {
	return &LookupError{
		Kind: kind,
		Key:  key,
	}
}

// DocumentError represents an error during document operations
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("document error during %s", e.Operation)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// ContextError adds context to an existing error
type ContextError struct {
	Operation string
	Context   map[string]interface{}
	Cause     error
}

func (e *ContextError) Error() string {
	var contextParts []string
	for k, v := range e.Context {
		contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
	}

	if len(contextParts) > 0 {
		return fmt.Sprintf("%s [%s]: %v", e.Operation, strings.Join(contextParts, ", "), e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext wraps an error with additional context
func WithContext(err error, operation string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ContextError{
		Operation: operation,
		Context:   context,
		Cause:     err,
	}
}

// IsIndexError checks if an error is an index error
func IsIndexError(err error) bool {
	var target *IndexError
	return errors.As(err, &target)
}

// IsOperationError checks if an error is an operation error
func IsOperationError(err error) bool {
	var target *OperationError
	return errors.As(err, &target)
}

// IsLookupError checks if an error is a lookup error
func IsLookupError(err error) bool {
	var target *LookupError
	return errors.As(err, &target)
}

// IsDocumentError checks if an error is a document error
func IsDocumentError(err error) bool {
	var target *DocumentError
	return errors.As(err, &target)
}
