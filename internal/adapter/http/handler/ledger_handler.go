package handler

import (
	"context"
	"net/http"

	"github.com/idrissa183/bankledger/internal/adapter/http/dto"
	"github.com/idrissa183/bankledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
}

// LedgerHandler handles ledger consistency HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// CheckConsistency verifies that every account balance equals the sum of its
// transaction records.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	if _, ok := principalOrFail(w, r); !ok {
		return
	}

	report, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromUseCase(report))
}
