package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/idrissa183/bankledger/internal/domain"
)

// AccountUseCase manages the lifecycle of ledger accounts.
type AccountUseCase struct {
	accounts AccountRepository
	rowID    IDGenerator
	refs     RefGenerator
	clock    Clock
	logger   zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accounts AccountRepository, rowID IDGenerator, refs RefGenerator, clock Clock, logger zerolog.Logger) *AccountUseCase {
	return &AccountUseCase{
		accounts: accounts,
		rowID:    rowID,
		refs:     refs,
		clock:    clock,
		logger:   logger,
	}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	Name     string
	Currency string
	Primary  bool
}

// Open creates an account for the caller. The first account an owner opens
// becomes primary regardless of the flag; opening a later account as primary
// demotes the previous one.
func (uc *AccountUseCase) Open(ctx context.Context, principal *domain.Principal, input OpenAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if err := domain.ValidateCurrency(currency); err != nil {
		return nil, err
	}

	existing, err := uc.accounts.List(ctx, principal.OwnerID, nil)
	if err != nil {
		return nil, err
	}

	primary := input.Primary || len(existing) == 0

	now := uc.clock.Now()

	if primary && len(existing) > 0 {
		if err := uc.accounts.DemotePrimary(ctx, principal.OwnerID, now); err != nil {
			return nil, err
		}
	}

	account := &domain.Account{
		ID:        uc.rowID.Generate(),
		OwnerID:   principal.OwnerID,
		Number:    uc.refs.NewRef(domain.AccountNumberPrefix),
		Name:      input.Name,
		Balance:   decimal.Zero,
		Currency:  currency,
		Primary:   primary,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("account_id", account.ID).
		Str("owner_id", principal.OwnerID).
		Str("currency", currency).
		Bool("primary", primary).
		Msg("account opened")

	return account, nil
}

// Get returns one of the caller's accounts by ID.
func (uc *AccountUseCase) Get(ctx context.Context, principal *domain.Principal, accountID string) (*domain.Account, error) {
	account, err := uc.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if !account.OwnedBy(principal.OwnerID) {
		return nil, domain.ErrAccountNotFound
	}

	return account, nil
}

// List returns the caller's accounts, optionally filtered by active state.
func (uc *AccountUseCase) List(ctx context.Context, principal *domain.Principal, active *bool) ([]*domain.Account, error) {
	return uc.accounts.List(ctx, principal.OwnerID, active)
}

// Deactivate closes one of the caller's accounts. The balance must be zero.
func (uc *AccountUseCase) Deactivate(ctx context.Context, principal *domain.Principal, accountID string) error {
	account, err := uc.Get(ctx, principal, accountID)
	if err != nil {
		return err
	}

	if !account.Active {
		return domain.ErrAccountInactive
	}

	if !account.Balance.IsZero() {
		return domain.ErrAccountNotEmpty
	}

	if err := uc.accounts.Deactivate(ctx, accountID, uc.clock.Now()); err != nil {
		return err
	}

	uc.logger.Info().
		Str("account_id", accountID).
		Str("owner_id", principal.OwnerID).
		Msg("account deactivated")

	return nil
}
