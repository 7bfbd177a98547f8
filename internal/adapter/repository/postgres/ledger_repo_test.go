package postgres

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
)

func TestLedgerRepositoryFindInconsistentAccounts(t *testing.T) {
	mockPool := newMockPool(t)

	rows := pgxmock.NewRows([]string{"id", "number", "balance", "recorded_sum"}).
		AddRow("acc-1", "ACC0011AABBCC22", "150", "100")

	// Only completed rows may count against the stored balance.
	mockPool.ExpectQuery(`LEFT JOIN transactions t ON t\.account_id = a\.id AND t\.status = 'completed'`).
		WillReturnRows(rows)

	repo := &LedgerRepository{pool: mockPool}

	mismatches, err := repo.FindInconsistentAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mismatches) != 1 {
		t.Fatalf("expected 1 mismatch, got %d", len(mismatches))
	}

	mismatch := mismatches[0]
	if mismatch.AccountID != "acc-1" || mismatch.Number != "ACC0011AABBCC22" {
		t.Fatalf("unexpected mismatch identity: %+v", mismatch)
	}

	if mismatch.Balance.String() != "150" || mismatch.RecordedSum.String() != "100" {
		t.Fatalf("unexpected mismatch amounts: balance=%s recorded=%s", mismatch.Balance, mismatch.RecordedSum)
	}

	assertExpectations(t, mockPool)
}

func TestLedgerRepositoryFindInconsistentAccountsEmpty(t *testing.T) {
	mockPool := newMockPool(t)

	mockPool.ExpectQuery(`HAVING a\.balance <> COALESCE\(SUM\(t\.amount\), 0\)`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "number", "balance", "recorded_sum"}))

	repo := &LedgerRepository{pool: mockPool}

	mismatches, err := repo.FindInconsistentAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mismatches) != 0 {
		t.Fatalf("expected no mismatches, got %d", len(mismatches))
	}

	assertExpectations(t, mockPool)
}
