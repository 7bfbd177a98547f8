package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountNumberPrefix starts every generated account number.
const AccountNumberPrefix = "ACC"

// Account represents a bank account holding a balance in a single currency.
//
// Balances are mutated only through ledger operations; an account is never
// hard-deleted, it is deactivated instead.
type Account struct {
	ID              string
	OwnerID         string
	Number          string
	Name            string
	Balance         decimal.Decimal
	Currency        string
	Primary         bool
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	LastTransaction *time.Time
}

// ValidateDebit checks that the account balance covers amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	return nil
}

// ApplyDebit returns the balance after debiting amount.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after crediting amount.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// OwnedBy reports whether the account belongs to the given owner.
func (a *Account) OwnedBy(ownerID string) bool {
	return a.OwnerID == ownerID
}
