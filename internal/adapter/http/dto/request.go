package dto

import (
	"github.com/shopspring/decimal"

	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/usecase"
)

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Primary  bool   `json:"primary"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenAccountRequest) ToUseCaseInput() usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		Name:     r.Name,
		Currency: r.Currency,
		Primary:  r.Primary,
	}
}

// DepositRequest represents a request to deposit into an account.
type DepositRequest struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *DepositRequest) ToUseCaseInput() usecase.DepositInput {
	return usecase.DepositInput{
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// WithdrawalRequest represents a request to withdraw from an account.
type WithdrawalRequest struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *WithdrawalRequest) ToUseCaseInput() usecase.WithdrawalInput {
	return usecase.WithdrawalInput{
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// TransferRequest represents a request to transfer money. The destination is
// given through exactly one of ToAccountID, BeneficiaryID, or AccountNumber.
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id,omitempty"`
	BeneficiaryID string          `json:"beneficiary_id,omitempty"`
	AccountNumber string          `json:"account_number,omitempty"`
	RecipientName string          `json:"recipient_name,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	var recipient domain.RecipientRef
	switch {
	case r.ToAccountID != "":
		recipient = domain.OwnedAccountRef(r.ToAccountID)
	case r.BeneficiaryID != "":
		recipient = domain.BeneficiaryRef(r.BeneficiaryID)
	default:
		recipient = domain.AccountNumberRef(r.AccountNumber)
	}

	return usecase.TransferInput{
		FromAccountID: r.FromAccountID,
		Recipient:     recipient,
		RecipientName: r.RecipientName,
		Amount:        r.Amount,
		Description:   r.Description,
	}
}

// CreateBeneficiaryRequest represents a request to save a beneficiary.
type CreateBeneficiaryRequest struct {
	Name     string `json:"name"`
	Number   string `json:"number"`
	BankName string `json:"bank_name,omitempty"`
	Favorite bool   `json:"favorite"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBeneficiaryRequest) ToUseCaseInput() usecase.CreateBeneficiaryInput {
	return usecase.CreateBeneficiaryInput{
		Name:     r.Name,
		Number:   r.Number,
		BankName: r.BankName,
		Favorite: r.Favorite,
	}
}

// ConvertRequest represents a currency conversion request.
type ConvertRequest struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}
