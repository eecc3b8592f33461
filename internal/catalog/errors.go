// Package catalog loads and serves the immutable set of career records.
package catalog

import "fmt"

// DataLoadError represents a catalog source that is missing, unreadable, or malformed.
type DataLoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *DataLoadError) Error() string {
	prefix := "data load error"
	if e.Source != "" {
		prefix = fmt.Sprintf("data load error (%s)", e.Source)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *DataLoadError) Unwrap() error {
	return e.Cause
}

// NotFoundError indicates no career has the requested id.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("career not found: %d", e.ID)
}
