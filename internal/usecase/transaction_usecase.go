package usecase

import (
	"context"

	"github.com/idrissa183/bankledger/internal/domain"
)

// TransactionUseCase serves the caller's transaction history.
type TransactionUseCase struct {
	transactions TransactionRepository
	accounts     AccountRepository
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(transactions TransactionRepository, accounts AccountRepository) *TransactionUseCase {
	return &TransactionUseCase{
		transactions: transactions,
		accounts:     accounts,
	}
}

// ListInput represents filters for a transaction listing.
type ListInput struct {
	AccountID string
	Kind      string
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

// List returns the caller's transactions, newest first. Filters narrow the
// result to one account, one kind, or a date range.
func (uc *TransactionUseCase) List(ctx context.Context, principal *domain.Principal, input ListInput) ([]*domain.Transaction, error) {
	filter, err := uc.buildFilter(ctx, principal, input)
	if err != nil {
		return nil, err
	}

	if len(filter.AccountIDs) == 0 {
		return []*domain.Transaction{}, nil
	}

	return uc.transactions.List(ctx, filter)
}

// Get returns a single transaction, checked against the caller's accounts.
func (uc *TransactionUseCase) Get(ctx context.Context, principal *domain.Principal, id string) (*domain.Transaction, error) {
	txn, err := uc.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	account, err := uc.accounts.GetByID(ctx, txn.AccountID)
	if err != nil || !account.OwnedBy(principal.OwnerID) {
		return nil, domain.ErrTransactionNotFound
	}

	return txn, nil
}

func (uc *TransactionUseCase) buildFilter(ctx context.Context, principal *domain.Principal, input ListInput) (domain.TransactionFilter, error) {
	var filter domain.TransactionFilter

	if input.AccountID != "" {
		account, err := uc.accounts.GetByID(ctx, input.AccountID)
		if err != nil {
			return filter, err
		}

		if !account.OwnedBy(principal.OwnerID) {
			return filter, domain.ErrAccountNotFound
		}

		filter.AccountIDs = []string{account.ID}
	} else {
		accounts, err := uc.accounts.List(ctx, principal.OwnerID, nil)
		if err != nil {
			return filter, err
		}

		for _, account := range accounts {
			filter.AccountIDs = append(filter.AccountIDs, account.ID)
		}
	}

	if input.Kind != "" {
		kind := domain.TransactionKind(input.Kind)
		if !kind.IsValid() {
			return filter, domain.ErrTransactionNotFound
		}

		filter.Kind = &kind
	}

	start, end, err := domain.ValidateDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return filter, err
	}

	filter.StartDate = start
	filter.EndDate = end
	filter.Limit, filter.Offset = domain.ValidatePagination(input.Limit, input.Offset)

	return filter, nil
}
