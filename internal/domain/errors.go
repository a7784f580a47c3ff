package domain

import (
	"fmt"
	"strings"
)

// LoadError indicates an unreadable catalog or one missing required columns.
type LoadError struct {
	Source  string
	Missing []string
	cause   error
}

// NewLoadError wraps cause as a LoadError for source.
func NewLoadError(source string, cause error) *LoadError {
	return &LoadError{Source: source, cause: cause}
}

// NewMissingColumnsError reports absent required columns.
func NewMissingColumnsError(source string, missing []string) *LoadError {
	return &LoadError{Source: source, Missing: missing}
}

func (e *LoadError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("load catalog %s: missing required columns: %s", e.Source, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("load catalog %s: %v", e.Source, e.cause)
}

func (e *LoadError) Unwrap() error { return e.cause }

// UnknownCategoryError indicates a value that was never seen in a column.
type UnknownCategoryError struct {
	Column Column
	Value  string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("value not recognized: %s %q", e.Column, e.Value)
}

// InvalidCodeError indicates a decode of a code that was never issued.
type InvalidCodeError struct {
	Column Column
	Code   int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid code %d for column %s", e.Code, e.Column)
}

// InsufficientDataError indicates fewer catalog rows than requested neighbors.
type InsufficientDataError struct {
	Rows int
	K    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d rows, need at least %d", e.Rows, e.K)
}

// NoDataError indicates a cascading filter that matched no rows.
type NoDataError struct {
	Column Column
	Value  string
	cause  error
}

// NewNoDataError reports that no row has column == value.
func NewNoDataError(column Column, value string, cause error) *NoDataError {
	return &NoDataError{Column: column, Value: value, cause: cause}
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data for %s %q", e.Column, e.Value)
}

func (e *NoDataError) Unwrap() error { return e.cause }
