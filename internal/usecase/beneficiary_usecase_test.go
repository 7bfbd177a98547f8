package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/usecase"
	"github.com/idrissa183/bankledger/internal/usecase/mocks"
)

func newBeneficiaryUseCase(repo *mocks.MockBeneficiaryRepository) *usecase.BeneficiaryUseCase {
	return usecase.NewBeneficiaryUseCase(
		repo,
		&mocks.StubIDGenerator{},
		&mocks.FixedClock{Time: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		zerolog.Nop(),
	)
}

func TestBeneficiaryUseCase_Create(t *testing.T) {
	repo := mocks.NewMockBeneficiaryRepository()
	uc := newBeneficiaryUseCase(repo)

	created, err := uc.Create(context.Background(), principal(), usecase.CreateBeneficiaryInput{
		Name:     "Alice",
		Number:   "EXT00000001",
		BankName: "Acme Bank",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated id")
	}

	// Same number again for the same owner is a duplicate.
	if _, err := uc.Create(context.Background(), principal(), usecase.CreateBeneficiaryInput{
		Name:   "Alice again",
		Number: "EXT00000001",
	}); !errors.Is(err, domain.ErrDuplicateBeneficiary) {
		t.Errorf("expected ErrDuplicateBeneficiary, got %v", err)
	}

	if _, err := uc.Create(context.Background(), principal(), usecase.CreateBeneficiaryInput{
		Name:   "Bob",
		Number: "short",
	}); !errors.Is(err, domain.ErrInvalidAccountNumber) {
		t.Errorf("expected ErrInvalidAccountNumber, got %v", err)
	}
}

func TestBeneficiaryUseCase_Delete(t *testing.T) {
	repo := mocks.NewMockBeneficiaryRepository()
	repo.Seed(
		&domain.Beneficiary{ID: "ben-1", OwnerID: "owner-1", Name: "Alice", Number: "EXT00000001"},
		&domain.Beneficiary{ID: "ben-2", OwnerID: "owner-2", Name: "Bob", Number: "EXT00000002"},
	)

	uc := newBeneficiaryUseCase(repo)

	if err := uc.Delete(context.Background(), principal(), "ben-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Another owner's beneficiary reads as not found.
	if err := uc.Delete(context.Background(), principal(), "ben-2"); !errors.Is(err, domain.ErrBeneficiaryNotFound) {
		t.Errorf("expected ErrBeneficiaryNotFound, got %v", err)
	}

	remaining, err := uc.List(context.Background(), principal())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected no beneficiaries left, got %d", len(remaining))
	}
}
