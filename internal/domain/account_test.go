package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ValidateDebit(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		debitAmount decimal.Decimal
		expectError bool
	}{
		{
			name:        "debit less than balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(50),
			expectError: false,
		},
		{
			name:        "debit exact balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(100),
			expectError: false,
		},
		{
			name:        "debit more than balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(150),
			expectError: true,
		},
		{
			name:        "debit exceeding by a cent",
			balance:     decimal.RequireFromString("10.00"),
			debitAmount: decimal.RequireFromString("10.01"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: tt.balance}

			err := acc.ValidateDebit(tt.debitAmount)

			if tt.expectError && !errors.Is(err, ErrInsufficientFunds) {
				t.Errorf("expected ErrInsufficientFunds, got %v", err)
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			// A rejected debit must leave the balance untouched.
			if !acc.Balance.Equal(tt.balance) {
				t.Errorf("balance changed from %s to %s", tt.balance, acc.Balance)
			}
		})
	}
}

func TestAccount_ApplyDebitCredit(t *testing.T) {
	acc := &Account{Balance: decimal.RequireFromString("100.00")}

	if got := acc.ApplyDebit(decimal.RequireFromString("50.25")); !got.Equal(decimal.RequireFromString("49.75")) {
		t.Errorf("ApplyDebit = %s, want 49.75", got)
	}

	if got := acc.ApplyCredit(decimal.RequireFromString("8.00")); !got.Equal(decimal.RequireFromString("108.00")) {
		t.Errorf("ApplyCredit = %s, want 108.00", got)
	}
}

func TestAccount_OwnedBy(t *testing.T) {
	acc := &Account{OwnerID: "user-1"}

	if !acc.OwnedBy("user-1") {
		t.Error("expected account to be owned by user-1")
	}

	if acc.OwnedBy("user-2") {
		t.Error("expected account not to be owned by user-2")
	}
}
