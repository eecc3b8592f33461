package ranking

import "fmt"

// InvalidQueryError means a recommendation could not be computed because an
// internal invariant was broken, such as an unfitted vectorizer. Empty skill or
// interest lists never produce this error.
type InvalidQueryError struct {
	Message string
	Cause   error
}

func (e *InvalidQueryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid query: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid query: %s", e.Message)
}

func (e *InvalidQueryError) Unwrap() error {
	return e.Cause
}

// WeightsError reports an unusable weight configuration.
type WeightsError struct {
	Message string
}

func (e *WeightsError) Error() string {
	return fmt.Sprintf("invalid weights: %s", e.Message)
}
