package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/idrissa183/bankledger/internal/adapter/http/dto"
	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/infrastructure/metrics"
	"github.com/idrissa183/bankledger/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Deposit(ctx context.Context, principal *domain.Principal, input usecase.DepositInput) (*domain.Transaction, error)
	Withdraw(ctx context.Context, principal *domain.Principal, input usecase.WithdrawalInput) (*domain.Transaction, error)
	Transfer(ctx context.Context, principal *domain.Principal, input usecase.TransferInput) (*domain.Transaction, error)
}

// TransferHandler handles money movement HTTP requests.
type TransferHandler struct {
	transferUC TransferService
	metrics    *metrics.Metrics
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService, m *metrics.Metrics) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, metrics: m}
}

// Deposit credits an account.
func (h *TransferHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.transferUC.Deposit(r.Context(), principal, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to deposit", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.DepositsCompleted.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}

// Withdraw debits an account.
func (h *TransferHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	var req dto.WithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.transferUC.Withdraw(r.Context(), principal, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to withdraw", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.WithdrawalsCompleted.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}

// Transfer moves money from one of the caller's accounts to a destination
// referenced by owned account ID, beneficiary ID, or raw account number.
func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input := req.ToUseCaseInput()

	record, err := h.transferUC.Transfer(r.Context(), principal, input)
	if err != nil {
		h.recordTransferError(err)
		writeError(w, mapDomainError(err), "failed to transfer", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.TransfersCompleted.WithLabelValues(string(input.Recipient.Kind)).Inc()
		h.metrics.TransferAmount.Observe(input.Amount.InexactFloat64())
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}

func (h *TransferHandler) recordTransferError(err error) {
	if h.metrics == nil {
		return
	}

	errorType := "internal"
	switch mapDomainError(err) {
	case http.StatusUnprocessableEntity:
		errorType = "insufficient_funds"
	case http.StatusNotFound:
		errorType = "recipient_not_found"
	case http.StatusBadRequest:
		errorType = "validation"
	case http.StatusServiceUnavailable:
		errorType = "rate_unavailable"
	}

	h.metrics.TransferErrors.WithLabelValues(errorType).Inc()
}
