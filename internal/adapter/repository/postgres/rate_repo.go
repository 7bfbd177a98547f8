package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/idrissa183/bankledger/internal/domain"
)

// RateRepository implements usecase.RateRepository. Each base currency has
// one row; the per-currency rates live in a JSONB column.
type RateRepository struct {
	pool *pgxpool.Pool
}

// NewRateRepository creates a new RateRepository.
func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}

// Get retrieves the stored rate table for a base currency.
func (r *RateRepository) Get(ctx context.Context, base string) (*domain.RateTable, error) {
	var (
		rates   []byte
		updated pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, `
		SELECT rates, updated_at FROM exchange_rates WHERE base_currency = $1`, base).
		Scan(&rates, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRateUnavailable
		}

		return nil, err
	}

	parsed := make(map[string]decimal.Decimal)
	if err := json.Unmarshal(rates, &parsed); err != nil {
		return nil, err
	}

	return &domain.RateTable{
		Base:      base,
		Rates:     parsed,
		UpdatedAt: updated.Time,
	}, nil
}

// Save upserts the rate table for its base currency.
func (r *RateRepository) Save(ctx context.Context, table *domain.RateTable) error {
	rates, err := json.Marshal(table.Rates)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO exchange_rates (base_currency, rates, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (base_currency)
		DO UPDATE SET rates = EXCLUDED.rates, updated_at = EXCLUDED.updated_at`,
		table.Base, rates, timeToPgTimestamptz(table.UpdatedAt))

	return err
}
