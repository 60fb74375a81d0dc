package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/iho/bookkeeper/internal/adapter/http/dto"
	"github.com/iho/bookkeeper/internal/domain"
)

// writeJSON writes data wrapped in a success envelope.
func writeJSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.SuccessResponse(data, message))
}

// writeError writes an error envelope.
func writeError(w http.ResponseWriter, status int, message string, errs ...string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse(message, errs...))
}

// respondDomainError maps a domain error to a status code and writes the
// error envelope. Hierarchy corruption is a data integrity fault, not a
// client mistake, so it is logged at error level and surfaced as a 500.
func respondDomainError(w http.ResponseWriter, logger zerolog.Logger, err error, message string) {
	status := mapDomainError(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg(message)
	}

	writeError(w, status, message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrParentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrNonPositiveAmount),
		errors.Is(err, domain.ErrInvalidAccountType),
		errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInsufficientEntries),
		errors.Is(err, domain.ErrAmbiguousEntry),
		errors.Is(err, domain.ErrUnbalancedTransaction):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateCode),
		errors.Is(err, domain.ErrDuplicateReference),
		errors.Is(err, domain.ErrAccountHasEntries):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
