package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/usecase"
	"github.com/idrissa183/bankledger/internal/usecase/mocks"
)

func newAccountUseCase(accounts *mocks.MockAccountRepository) *usecase.AccountUseCase {
	return usecase.NewAccountUseCase(
		accounts,
		&mocks.StubIDGenerator{},
		&mocks.StubRefGenerator{},
		&mocks.FixedClock{Time: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		zerolog.Nop(),
	)
}

func TestAccountUseCase_Open(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	uc := newAccountUseCase(accounts)

	first, err := uc.Open(context.Background(), principal(), usecase.OpenAccountInput{
		Name:     "Checking",
		Currency: "usd",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The first account is primary even without the flag, with a zero
	// balance and a generated ACC number.
	if !first.Primary {
		t.Error("first account must be primary")
	}
	if !first.Balance.IsZero() {
		t.Errorf("expected zero balance, got %s", first.Balance)
	}
	if first.Currency != "USD" {
		t.Errorf("expected normalized USD, got %s", first.Currency)
	}
	if !strings.HasPrefix(first.Number, "ACC") || len(first.Number) != 15 {
		t.Errorf("unexpected account number %s", first.Number)
	}
	if !first.Active {
		t.Error("new account must be active")
	}

	second, err := uc.Open(context.Background(), principal(), usecase.OpenAccountInput{
		Name:     "Savings",
		Currency: "EUR",
		Primary:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !second.Primary {
		t.Error("second account opened as primary must be primary")
	}
	if first.Primary {
		t.Error("previous primary must be demoted")
	}
}

func TestAccountUseCase_OpenValidation(t *testing.T) {
	uc := newAccountUseCase(mocks.NewMockAccountRepository())

	if _, err := uc.Open(context.Background(), principal(), usecase.OpenAccountInput{
		Name:     "",
		Currency: "USD",
	}); !errors.Is(err, domain.ErrInvalidAccountName) {
		t.Errorf("expected ErrInvalidAccountName, got %v", err)
	}

	if _, err := uc.Open(context.Background(), principal(), usecase.OpenAccountInput{
		Name:     "Checking",
		Currency: "ZZZ",
	}); !errors.Is(err, domain.ErrInvalidCurrency) {
		t.Errorf("expected ErrInvalidCurrency, got %v", err)
	}
}

func TestAccountUseCase_GetOwnership(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	accounts.Seed(
		usdAccount("ACC1SOURCE", "owner-1", "100"),
		usdAccount("ACC3OTHER", "owner-2", "0"),
	)

	uc := newAccountUseCase(accounts)

	if _, err := uc.Get(context.Background(), principal(), "ACC1SOURCE"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Another owner's account reads as not found.
	if _, err := uc.Get(context.Background(), principal(), "ACC3OTHER"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_Deactivate(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	funded := usdAccount("ACC1SOURCE", "owner-1", "100")
	empty := usdAccount("ACC2TARGET", "owner-1", "0")
	accounts.Seed(funded, empty)

	uc := newAccountUseCase(accounts)

	if err := uc.Deactivate(context.Background(), principal(), funded.ID); !errors.Is(err, domain.ErrAccountNotEmpty) {
		t.Errorf("expected ErrAccountNotEmpty, got %v", err)
	}

	if err := uc.Deactivate(context.Background(), principal(), empty.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.Active {
		t.Error("account must be inactive after deactivation")
	}

	if err := uc.Deactivate(context.Background(), principal(), empty.ID); !errors.Is(err, domain.ErrAccountInactive) {
		t.Errorf("expected ErrAccountInactive, got %v", err)
	}
}

func TestAccountUseCase_List(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	active := usdAccount("ACC1SOURCE", "owner-1", "100")
	closed := usdAccount("ACC2TARGET", "owner-1", "0")
	closed.Active = false
	accounts.Seed(active, closed, usdAccount("ACC3OTHER", "owner-2", "0"))

	uc := newAccountUseCase(accounts)

	all, err := uc.List(context.Background(), principal(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(all))
	}

	onlyActive := true
	filtered, err := uc.List(context.Background(), principal(), &onlyActive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != active.ID {
		t.Errorf("expected only the active account, got %d", len(filtered))
	}
}
