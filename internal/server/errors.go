package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/jonathan/career-recommender/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrClustersUnavailable means the cluster index was disabled or skipped for
// the current snapshot.
type ErrClustersUnavailable struct{}

func (e *ErrClustersUnavailable) Error() string {
	return "cluster index is not available"
}

// HTTPStatus returns the appropriate HTTP status code for an error. Wrapped
// errors map the same as the error they wrap.
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		schemaErr     *schemas.ValidationError
		fieldErrs     validator.ValidationErrors
		notFound      *catalog.NotFoundError
		noClusters    *ErrClustersUnavailable
		loadErr       *catalog.DataLoadError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &schemaErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.As(err, &noClusters):
		return http.StatusNotFound
	case errors.As(err, &loadErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
