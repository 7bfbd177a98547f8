package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/idrissa183/bankledger/internal/adapter/http/dto"
	"github.com/idrissa183/bankledger/internal/adapter/http/middleware"
	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/usecase"
)

type accountServiceStub struct {
	openFn       func(ctx context.Context, principal *domain.Principal, input usecase.OpenAccountInput) (*domain.Account, error)
	getFn        func(ctx context.Context, principal *domain.Principal, accountID string) (*domain.Account, error)
	listFn       func(ctx context.Context, principal *domain.Principal, active *bool) ([]*domain.Account, error)
	deactivateFn func(ctx context.Context, principal *domain.Principal, accountID string) error
}

func (s *accountServiceStub) Open(ctx context.Context, principal *domain.Principal, input usecase.OpenAccountInput) (*domain.Account, error) {
	return s.openFn(ctx, principal, input)
}

func (s *accountServiceStub) Get(ctx context.Context, principal *domain.Principal, accountID string) (*domain.Account, error) {
	return s.getFn(ctx, principal, accountID)
}

func (s *accountServiceStub) List(ctx context.Context, principal *domain.Principal, active *bool) ([]*domain.Account, error) {
	return s.listFn(ctx, principal, active)
}

func (s *accountServiceStub) Deactivate(ctx context.Context, principal *domain.Principal, accountID string) error {
	return s.deactivateFn(ctx, principal, accountID)
}

func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	principal := &domain.Principal{OwnerID: "owner-1", Email: "owner@example.com", BankingEnabled: true}

	return req.WithContext(context.WithValue(req.Context(), middleware.PrincipalContextKey, principal))
}

func TestAccountHandler_Open_Success(t *testing.T) {
	account := &domain.Account{
		ID:       "acc-1",
		OwnerID:  "owner-1",
		Number:   "ACC0011AABBCC22",
		Name:     "Checking",
		Balance:  decimal.Zero,
		Currency: "USD",
		Primary:  true,
		Active:   true,
	}

	var captured usecase.OpenAccountInput
	h := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, principal *domain.Principal, input usecase.OpenAccountInput) (*domain.Account, error) {
			captured = input
			return account, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.OpenAccountRequest{Name: "Checking", Currency: "usd"})

	rec := httptest.NewRecorder()
	h.Open(rec, authedRequest(http.MethodPost, "/accounts", bytes.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Name != "Checking" || captured.Currency != "usd" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "acc-1" || resp.Number != "ACC0011AABBCC22" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAccountHandler_Open_InvalidJSON(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, principal *domain.Principal, input usecase.OpenAccountInput) (*domain.Account, error) {
			t.Fatal("Open should not be called for invalid payload")
			return nil, nil
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.Open(rec, authedRequest(http.MethodPost, "/accounts", bytes.NewReader([]byte("{not json"))))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Open_MissingPrincipal(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, principal *domain.Principal, input usecase.OpenAccountInput) (*domain.Account, error) {
			t.Fatal("Open should not be called without a principal")
			return nil, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.OpenAccountRequest{Name: "Checking", Currency: "USD"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))

	rec := httptest.NewRecorder()
	h.Open(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, principal *domain.Principal, accountID string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}, nil)

	r := newTestRouter()
	r.Get("/accounts/{id}", h.Get)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(http.MethodGet, "/accounts/acc-missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAccountHandler_List_ActiveFilter(t *testing.T) {
	var captured *bool
	h := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context, principal *domain.Principal, active *bool) ([]*domain.Account, error) {
			captured = active
			return []*domain.Account{{ID: "acc-1", Active: true}}, nil
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/accounts?active=true", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if captured == nil || !*captured {
		t.Fatalf("expected active=true filter, got %v", captured)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected total 1, got %d", resp.Total)
	}
}

func TestAccountHandler_Deactivate_NotEmpty(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		deactivateFn: func(ctx context.Context, principal *domain.Principal, accountID string) error {
			return domain.ErrAccountNotEmpty
		},
	}, nil)

	r := newTestRouter()
	r.Post("/accounts/{id}/deactivate", h.Deactivate)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(http.MethodPost, "/accounts/acc-1/deactivate", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
