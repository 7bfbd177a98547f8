package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/idrissa183/bankledger/internal/domain"
)

// LedgerUseCase verifies ledger-wide consistency: every account balance must
// equal the sum of its recorded transactions.
type LedgerUseCase struct {
	ledger LedgerRepository
	logger zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledger LedgerRepository, logger zerolog.Logger) *LedgerUseCase {
	return &LedgerUseCase{
		ledger: ledger,
		logger: logger,
	}
}

// ConsistencyReport is the outcome of a consistency check.
type ConsistencyReport struct {
	Consistent bool
	Mismatches []domain.BalanceMismatch
}

// CheckConsistency compares every account balance against the sum of its
// transactions and reports the accounts that disagree.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	mismatches, err := uc.ledger.FindInconsistentAccounts(ctx)
	if err != nil {
		return nil, err
	}

	for _, mismatch := range mismatches {
		uc.logger.Warn().
			Str("account_id", mismatch.AccountID).
			Str("balance", mismatch.Balance.String()).
			Str("recorded_sum", mismatch.RecordedSum.String()).
			Msg("ledger balance mismatch")
	}

	return &ConsistencyReport{
		Consistent: len(mismatches) == 0,
		Mismatches: mismatches,
	}, nil
}
