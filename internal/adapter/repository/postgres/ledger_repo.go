package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/idrissa183/bankledger/internal/domain"
)

type ledgerQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool ledgerQuerier
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// FindInconsistentAccounts returns accounts whose balance disagrees with the
// sum of their completed transactions. Pending or failed rows have not moved
// the balance, so they stay out of the sum.
func (r *LedgerRepository) FindInconsistentAccounts(ctx context.Context) ([]domain.BalanceMismatch, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.number, a.balance, COALESCE(SUM(t.amount), 0) AS recorded_sum
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.id AND t.status = 'completed'
		GROUP BY a.id, a.number, a.balance
		HAVING a.balance <> COALESCE(SUM(t.amount), 0)
		ORDER BY a.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mismatches []domain.BalanceMismatch

	for rows.Next() {
		var (
			mismatch domain.BalanceMismatch
			balance  pgtype.Numeric
			recorded pgtype.Numeric
		)

		if err := rows.Scan(&mismatch.AccountID, &mismatch.Number, &balance, &recorded); err != nil {
			return nil, err
		}

		mismatch.Balance = numericToDecimal(balance)
		mismatch.RecordedSum = numericToDecimal(recorded)
		mismatches = append(mismatches, mismatch)
	}

	return mismatches, rows.Err()
}
