package server

import (
	"fmt"
	"net/http"
)

// ErrValidation indicates a bad request parameter.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrAnalysisUnavailable indicates no completion backend is configured.
type ErrAnalysisUnavailable struct{}

func (e *ErrAnalysisUnavailable) Error() string {
	return "analysis unavailable: no API key configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrAnalysisUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
