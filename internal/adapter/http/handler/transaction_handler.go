package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/idrissa183/bankledger/internal/adapter/http/dto"
	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	List(ctx context.Context, principal *domain.Principal, input usecase.ListInput) ([]*domain.Transaction, error)
	Get(ctx context.Context, principal *domain.Principal, id string) (*domain.Transaction, error)
}

// TransactionHandler handles transaction history HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// List lists the caller's transactions, newest first. Query parameters:
// account_id, kind, start_date, end_date (YYYY-MM-DD), limit, offset.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	input := usecase.ListInput{
		AccountID: query.Get("account_id"),
		Kind:      query.Get("kind"),
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	}

	transactions, err := h.transactionUC.List(r.Context(), principal, input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(transactions),
		Limit:        input.Limit,
		Offset:       input.Offset,
	})
}

// Get retrieves one of the caller's transactions by row ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	record, err := h.transactionUC.Get(r.Context(), principal, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(record))
}
