package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-match/internal/db"
	"github.com/jonathan/resume-match/internal/extraction"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", &extraction.InvalidInputError{Message: "empty"}, http.StatusBadRequest},
		{"timeout", &extraction.TimeoutError{Provider: "p"}, http.StatusGatewayTimeout},
		{
			"exhausted with schema cause",
			&extraction.ExtractionFailedError{Document: "resume", Attempts: 3,
				Cause: &extraction.SchemaValidationError{Provider: "p", Reason: "r"}},
			http.StatusBadGateway,
		},
		{
			"exhausted with timeout cause",
			&extraction.ExtractionFailedError{Document: "resume", Attempts: 1,
				Cause: &extraction.TimeoutError{Provider: "p"}},
			http.StatusGatewayTimeout,
		},
		{"not found", db.ErrNotFound, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
