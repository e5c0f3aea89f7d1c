package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/adapter/http/dto"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
)

// headerIdempotencyKey carries the caller-chosen idempotency key for
// money-moving requests.
const headerIdempotencyKey = "Idempotency-Key"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// mapDomainError translates domain errors to HTTP status codes and wire
// error codes.
func mapDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "account_not_found", err.Error())
	case errors.Is(err, domain.ErrTransferNotFound):
		writeError(w, http.StatusNotFound, "transfer_not_found", err.Error())
	case errors.Is(err, domain.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, "transaction_not_found", err.Error())
	case errors.Is(err, domain.ErrHoldNotFound):
		writeError(w, http.StatusNotFound, "hold_not_found", err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		writeError(w, http.StatusUnprocessableEntity, "insufficient_funds", err.Error())
	case errors.Is(err, domain.ErrTransferLimitExceeded):
		writeError(w, http.StatusUnprocessableEntity, "transfer_limit_exceeded", err.Error())
	case errors.Is(err, domain.ErrAccountNotActive):
		writeError(w, http.StatusConflict, "account_not_active", err.Error())
	case errors.Is(err, domain.ErrAccountNotEmpty):
		writeError(w, http.StatusConflict, "account_not_empty", err.Error())
	case errors.Is(err, domain.ErrAccountNumberTaken):
		writeError(w, http.StatusConflict, "account_number_taken", err.Error())
	case errors.Is(err, domain.ErrDuplicateIdempotencyKey):
		writeError(w, http.StatusConflict, "duplicate_idempotency_key", err.Error())
	case errors.Is(err, domain.ErrCannotReverse):
		writeError(w, http.StatusConflict, "cannot_reverse", err.Error())
	case errors.Is(err, domain.ErrTransferAlreadyReversed):
		writeError(w, http.StatusConflict, "transfer_already_reversed", err.Error())
	case errors.Is(err, domain.ErrHoldNotActive):
		writeError(w, http.StatusConflict, "hold_not_active", err.Error())
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrSameAccountTransfer),
		errors.Is(err, domain.ErrMissingIdempotencyKey),
		errors.Is(err, domain.ErrInvalidAccountNumber),
		errors.Is(err, domain.ErrInvalidAccountType),
		errors.Is(err, domain.ErrInvalidAlias),
		errors.Is(err, domain.ErrInvalidDescription):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// parseIntQuery returns the query parameter as int, or the fallback when
// missing or malformed.
func parseIntQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}
