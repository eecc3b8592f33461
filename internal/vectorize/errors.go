// Package vectorize turns free-text skill descriptions into TF-IDF vectors.
package vectorize

import "fmt"

// NotFittedError is returned when Transform is called before Fit.
type NotFittedError struct {
	Message string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("vectorizer not fitted: %s", e.Message)
}

// FitError represents a failure while building the vocabulary.
type FitError struct {
	Message string
	Cause   error
}

func (e *FitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fit error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("fit error: %s", e.Message)
}

func (e *FitError) Unwrap() error {
	return e.Cause
}
