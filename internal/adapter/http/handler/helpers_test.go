package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/idrissa183/bankledger/internal/domain"
)

func newTestRouter() chi.Router {
	return chi.NewRouter()
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrTransactionNotFound, http.StatusNotFound},
		{domain.ErrBeneficiaryNotFound, http.StatusNotFound},
		{domain.ErrRecipientNotFound, http.StatusNotFound},
		{domain.ErrDuplicateBeneficiary, http.StatusConflict},
		{domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{domain.ErrRateUnavailable, http.StatusServiceUnavailable},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrInvalidTransfer, http.StatusBadRequest},
		{domain.ErrAccountInactive, http.StatusBadRequest},
		{domain.ErrAccountNotEmpty, http.StatusBadRequest},
		{domain.ErrInvalidCurrency, http.StatusBadRequest},
		{domain.ErrInvalidDateRange, http.StatusBadRequest},
		{domain.ErrConversionNotSupported, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.want {
			t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestMapDomainError_Wrapped(t *testing.T) {
	err := fmt.Errorf("transfer rejected: %w", domain.ErrInsufficientFunds)

	if got := mapDomainError(err); got != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for wrapped error, got %d", got)
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=50&bad=abc", nil)

	if got := parseIntQuery(req, "limit", 20); got != 50 {
		t.Errorf("expected 50, got %d", got)
	}
	if got := parseIntQuery(req, "missing", 20); got != 20 {
		t.Errorf("expected default 20, got %d", got)
	}
	if got := parseIntQuery(req, "bad", 20); got != 20 {
		t.Errorf("expected default for unparsable value, got %d", got)
	}
}
