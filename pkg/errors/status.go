package custom_error

import (
	"errors"
	"net/http"
)

// Classify maps an error to the HTTP status and machine readable code used in
// API responses.
func Classify(err error) (int, string) {
	var (
		stockErr      *InsufficientStockError
		stateErr      *InvalidStateError
		notFoundErr   *NotFoundError
		validationErr *ValidationError
		uniqueErr     *UniqueViolationError
		foreignKeyErr *ForeignKeyViolationError
	)

	switch {
	case errors.As(err, &stockErr):
		return http.StatusConflict, "insufficient_stock"
	case errors.As(err, &stateErr):
		return http.StatusConflict, "invalid_state"
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, "not_found"
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, "validation_error"
	case errors.As(err, &uniqueErr):
		return http.StatusConflict, "already_exists"
	case errors.As(err, &foreignKeyErr):
		return http.StatusConflict, "in_use"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
