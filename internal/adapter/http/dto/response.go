package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID              string          `json:"id"`
	Number          string          `json:"number"`
	Name            string          `json:"name"`
	Balance         decimal.Decimal `json:"balance"`
	Currency        string          `json:"currency"`
	Primary         bool            `json:"primary"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	LastTransaction *time.Time      `json:"last_transaction,omitempty"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:              a.ID,
		Number:          a.Number,
		Name:            a.Name,
		Balance:         a.Balance,
		Currency:        a.Currency,
		Primary:         a.Primary,
		Active:          a.Active,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		LastTransaction: a.LastTransaction,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransactionResponse represents a transaction record in API responses.
type TransactionResponse struct {
	ID              string          `json:"id"`
	TransactionID   string          `json:"transaction_id"`
	AccountID       string          `json:"account_id"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description,omitempty"`
	Status          string          `json:"status"`
	RecipientName   string          `json:"recipient_name,omitempty"`
	RecipientNumber string          `json:"recipient_number,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		TransactionID:   t.TransactionID,
		AccountID:       t.AccountID,
		Kind:            string(t.Kind),
		Amount:          t.Amount,
		Currency:        t.Currency,
		Description:     t.Description,
		Status:          string(t.Status),
		RecipientName:   t.RecipientName,
		RecipientNumber: t.RecipientNumber,
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// BeneficiaryResponse represents a saved beneficiary in API responses.
type BeneficiaryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Number    string    `json:"number"`
	BankName  string    `json:"bank_name,omitempty"`
	Favorite  bool      `json:"favorite"`
	CreatedAt time.Time `json:"created_at"`
}

// BeneficiaryFromDomain converts a domain beneficiary to a response.
func BeneficiaryFromDomain(b *domain.Beneficiary) *BeneficiaryResponse {
	return &BeneficiaryResponse{
		ID:        b.ID,
		Name:      b.Name,
		Number:    b.Number,
		BankName:  b.BankName,
		Favorite:  b.Favorite,
		CreatedAt: b.CreatedAt,
	}
}

// BeneficiariesFromDomain converts domain beneficiaries to responses.
func BeneficiariesFromDomain(beneficiaries []*domain.Beneficiary) []*BeneficiaryResponse {
	result := make([]*BeneficiaryResponse, len(beneficiaries))
	for i, b := range beneficiaries {
		result[i] = BeneficiaryFromDomain(b)
	}
	return result
}

// ConversionResponse represents a currency conversion in API responses.
type ConversionResponse struct {
	From            string          `json:"from"`
	To              string          `json:"to"`
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
	Rate            decimal.Decimal `json:"rate"`
	Date            time.Time       `json:"date"`
}

// ConversionFromUseCase converts a conversion result to a response.
func ConversionFromUseCase(c *usecase.ConversionResult) *ConversionResponse {
	return &ConversionResponse{
		From:            c.FromCurrency,
		To:              c.ToCurrency,
		Amount:          c.Amount,
		ConvertedAmount: c.ConvertedAmount,
		Rate:            c.Rate,
		Date:            c.Date,
	}
}

// BalanceMismatchResponse reports one inconsistent account.
type BalanceMismatchResponse struct {
	AccountID   string          `json:"account_id"`
	Number      string          `json:"number"`
	Balance     decimal.Decimal `json:"balance"`
	RecordedSum decimal.Decimal `json:"recorded_sum"`
}

// ConsistencyResponse represents a ledger consistency report.
type ConsistencyResponse struct {
	Consistent bool                      `json:"consistent"`
	Mismatches []BalanceMismatchResponse `json:"mismatches"`
}

// ConsistencyFromUseCase converts a consistency report to a response.
func ConsistencyFromUseCase(r *usecase.ConsistencyReport) *ConsistencyResponse {
	mismatches := make([]BalanceMismatchResponse, len(r.Mismatches))
	for i, m := range r.Mismatches {
		mismatches[i] = BalanceMismatchResponse{
			AccountID:   m.AccountID,
			Number:      m.Number,
			Balance:     m.Balance,
			RecordedSum: m.RecordedSum,
		}
	}
	return &ConsistencyResponse{
		Consistent: r.Consistent,
		Mismatches: mismatches,
	}
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Limit        int                    `json:"limit"`
	Offset       int                    `json:"offset"`
}

// ListBeneficiariesResponse wraps the caller's saved beneficiaries.
type ListBeneficiariesResponse struct {
	Beneficiaries []*BeneficiaryResponse `json:"beneficiaries"`
	Total         int64                  `json:"total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
