package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/idrissa183/bankledger/internal/adapter/http/dto"
	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/usecase"
)

type transferServiceStub struct {
	depositFn  func(ctx context.Context, principal *domain.Principal, input usecase.DepositInput) (*domain.Transaction, error)
	withdrawFn func(ctx context.Context, principal *domain.Principal, input usecase.WithdrawalInput) (*domain.Transaction, error)
	transferFn func(ctx context.Context, principal *domain.Principal, input usecase.TransferInput) (*domain.Transaction, error)
}

func (s *transferServiceStub) Deposit(ctx context.Context, principal *domain.Principal, input usecase.DepositInput) (*domain.Transaction, error) {
	return s.depositFn(ctx, principal, input)
}

func (s *transferServiceStub) Withdraw(ctx context.Context, principal *domain.Principal, input usecase.WithdrawalInput) (*domain.Transaction, error) {
	return s.withdrawFn(ctx, principal, input)
}

func (s *transferServiceStub) Transfer(ctx context.Context, principal *domain.Principal, input usecase.TransferInput) (*domain.Transaction, error) {
	return s.transferFn(ctx, principal, input)
}

func TestTransferHandler_Transfer_OwnedAccount(t *testing.T) {
	record := &domain.Transaction{
		ID:            "row-1",
		TransactionID: "TRN00AA11BB22CC",
		AccountID:     "acc-1",
		Kind:          domain.KindTransfer,
		Amount:        decimal.NewFromInt(-100),
		Currency:      "USD",
	}

	var captured usecase.TransferInput
	h := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, principal *domain.Principal, input usecase.TransferInput) (*domain.Transaction, error) {
			captured = input
			return record, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.TransferRequest{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
		Amount:        decimal.NewFromInt(100),
		Description:   "savings",
	})

	rec := httptest.NewRecorder()
	h.Transfer(rec, authedRequest(http.MethodPost, "/transactions/transfer", bytes.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Recipient.Kind != domain.RecipientOwnedAccount || captured.Recipient.Value != "acc-2" {
		t.Fatalf("expected owned account recipient, got %+v", captured.Recipient)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TransactionID != "TRN00AA11BB22CC" {
		t.Fatalf("unexpected transaction ID %s", resp.TransactionID)
	}
}

func TestTransferHandler_Transfer_BeneficiaryRecipient(t *testing.T) {
	var captured usecase.TransferInput
	h := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, principal *domain.Principal, input usecase.TransferInput) (*domain.Transaction, error) {
			captured = input
			return &domain.Transaction{ID: "row-1"}, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.TransferRequest{
		FromAccountID: "acc-1",
		BeneficiaryID: "ben-1",
		Amount:        decimal.NewFromInt(50),
	})

	rec := httptest.NewRecorder()
	h.Transfer(rec, authedRequest(http.MethodPost, "/transactions/transfer", bytes.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	if captured.Recipient.Kind != domain.RecipientBeneficiary || captured.Recipient.Value != "ben-1" {
		t.Fatalf("expected beneficiary recipient, got %+v", captured.Recipient)
	}
}

func TestTransferHandler_Transfer_InsufficientFunds(t *testing.T) {
	h := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, principal *domain.Principal, input usecase.TransferInput) (*domain.Transaction, error) {
			return nil, domain.ErrInsufficientFunds
		},
	}, nil)

	body, _ := json.Marshal(dto.TransferRequest{
		FromAccountID: "acc-1",
		AccountNumber: "ACC99999999",
		Amount:        decimal.NewFromInt(1000),
	})

	rec := httptest.NewRecorder()
	h.Transfer(rec, authedRequest(http.MethodPost, "/transactions/transfer", bytes.NewReader(body)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestTransferHandler_Deposit_Success(t *testing.T) {
	var captured usecase.DepositInput
	h := NewTransferHandler(&transferServiceStub{
		depositFn: func(ctx context.Context, principal *domain.Principal, input usecase.DepositInput) (*domain.Transaction, error) {
			captured = input
			return &domain.Transaction{
				ID:            "row-1",
				TransactionID: "DEP00AA11BB22CC",
				Kind:          domain.KindDeposit,
				Amount:        input.Amount,
			}, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.DepositRequest{
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(250),
	})

	rec := httptest.NewRecorder()
	h.Deposit(rec, authedRequest(http.MethodPost, "/transactions/deposit", bytes.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.AccountID != "acc-1" || !captured.Amount.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
}

func TestTransferHandler_Withdraw_InvalidJSON(t *testing.T) {
	h := NewTransferHandler(&transferServiceStub{
		withdrawFn: func(ctx context.Context, principal *domain.Principal, input usecase.WithdrawalInput) (*domain.Transaction, error) {
			t.Fatal("Withdraw should not be called for invalid payload")
			return nil, nil
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.Withdraw(rec, authedRequest(http.MethodPost, "/transactions/withdrawal", bytes.NewReader([]byte("{"))))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
