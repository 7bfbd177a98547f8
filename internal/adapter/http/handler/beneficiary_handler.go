package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/idrissa183/bankledger/internal/adapter/http/dto"
	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/usecase"
)

// BeneficiaryService defines the behavior needed by BeneficiaryHandler.
type BeneficiaryService interface {
	Create(ctx context.Context, principal *domain.Principal, input usecase.CreateBeneficiaryInput) (*domain.Beneficiary, error)
	List(ctx context.Context, principal *domain.Principal) ([]*domain.Beneficiary, error)
	Delete(ctx context.Context, principal *domain.Principal, id string) error
}

// BeneficiaryHandler handles saved-beneficiary HTTP requests.
type BeneficiaryHandler struct {
	beneficiaryUC BeneficiaryService
}

// NewBeneficiaryHandler creates a new BeneficiaryHandler.
func NewBeneficiaryHandler(beneficiaryUC BeneficiaryService) *BeneficiaryHandler {
	return &BeneficiaryHandler{beneficiaryUC: beneficiaryUC}
}

// Create saves a beneficiary for the caller.
func (h *BeneficiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	var req dto.CreateBeneficiaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	beneficiary, err := h.beneficiaryUC.Create(r.Context(), principal, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create beneficiary", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BeneficiaryFromDomain(beneficiary))
}

// List lists the caller's saved beneficiaries.
func (h *BeneficiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	beneficiaries, err := h.beneficiaryUC.List(r.Context(), principal)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list beneficiaries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListBeneficiariesResponse{
		Beneficiaries: dto.BeneficiariesFromDomain(beneficiaries),
		Total:         int64(len(beneficiaries)),
	})
}

// Delete removes one of the caller's saved beneficiaries.
func (h *BeneficiaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing beneficiary ID", "")
		return
	}

	if err := h.beneficiaryUC.Delete(r.Context(), principal, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete beneficiary", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
