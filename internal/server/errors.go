package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-match/internal/db"
	"github.com/jonathan/resume-match/internal/extraction"
)

// HTTPStatus returns the appropriate HTTP status code for a pipeline error.
func HTTPStatus(err error) int {
	var invalidInput *extraction.InvalidInputError
	var timeout *extraction.TimeoutError
	var failed *extraction.ExtractionFailedError

	switch {
	case errors.As(err, &invalidInput):
		return http.StatusBadRequest
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &failed):
		return http.StatusBadGateway
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
