package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/idrissa183/bankledger/internal/adapter/http/dto"
	"github.com/idrissa183/bankledger/internal/adapter/http/middleware"
	"github.com/idrissa183/bankledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrBeneficiaryNotFound),
		errors.Is(err, domain.ErrRecipientNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateBeneficiary):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRateUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrInvalidTransfer),
		errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrAccountNotEmpty),
		errors.Is(err, domain.ErrInvalidAccountName),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidAccountNumber),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrConversionNotSupported):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// principalOrFail extracts the authenticated principal, writing a 401 when the
// auth middleware did not run.
func principalOrFail(w http.ResponseWriter, r *http.Request) (*domain.Principal, bool) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing authentication")
		return nil, false
	}

	return principal, true
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
