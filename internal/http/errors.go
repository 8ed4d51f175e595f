package http

import (
	"context"
	"errors"
	"net/http"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/repository"
	"bookcatalog/internal/usecase"

	"github.com/rs/zerolog/log"
)

// writeError maps domain errors to HTTP responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrUnknownBook),
		errors.Is(err, usecase.ErrUnknownAuthor),
		errors.Is(err, usecase.ErrUnknownUser):
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, entity.ErrInvalidArgument):
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "invalid_argument", err.Error(), nil)
	case errors.Is(err, repository.ErrDuplicateKey):
		httpx.JSONErrorWithRequest(r, w, http.StatusConflict, "duplicate", err.Error(), nil)
	case errors.Is(err, repository.ErrInvariantViolation):
		httpx.JSONErrorWithRequest(r, w, http.StatusUnprocessableEntity, "invariant_violation", err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded):
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("request timed out")
		httpx.JSONErrorWithRequest(r, w, http.StatusGatewayTimeout, "timeout", "The request timed out", nil)
	default:
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("request failed")
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "internal_error", "An internal error occurred", nil)
	}
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "bad_request", message, nil)
}
