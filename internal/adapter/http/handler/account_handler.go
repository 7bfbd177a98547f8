package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/idrissa183/bankledger/internal/adapter/http/dto"
	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/infrastructure/metrics"
	"github.com/idrissa183/bankledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	Open(ctx context.Context, principal *domain.Principal, input usecase.OpenAccountInput) (*domain.Account, error)
	Get(ctx context.Context, principal *domain.Principal, accountID string) (*domain.Account, error)
	List(ctx context.Context, principal *domain.Principal, active *bool) ([]*domain.Account, error)
	Deactivate(ctx context.Context, principal *domain.Principal, accountID string) error
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
	metrics   *metrics.Metrics
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService, m *metrics.Metrics) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, metrics: m}
}

// Open opens a new account for the caller.
func (h *AccountHandler) Open(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	var req dto.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.Open(r.Context(), principal, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to open account", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AccountsOpened.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves one of the caller's accounts by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountUC.Get(r.Context(), principal, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists the caller's accounts. The optional "active" query parameter
// filters by activation state.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	var active *bool
	switch r.URL.Query().Get("active") {
	case "true":
		v := true
		active = &v
	case "false":
		v := false
		active = &v
	}

	accounts, err := h.accountUC.List(r.Context(), principal, active)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// Deactivate closes an empty account.
func (h *AccountHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	if err := h.accountUC.Deactivate(r.Context(), principal, id); err != nil {
		writeError(w, mapDomainError(err), "failed to deactivate account", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AccountsDeactivated.Inc()
	}

	w.WriteHeader(http.StatusNoContent)
}
