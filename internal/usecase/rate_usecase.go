package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/idrissa183/bankledger/internal/domain"
)

// RateUseCase owns the cached exchange-rate table and serves conversions.
//
// The table is cached in process and persisted through RateRepository; a
// refresh is triggered when the table is missing or older than the TTL.
// Refresh failures are logged and swallowed so callers keep getting the last
// cached rates. Concurrent refreshes may race and redundantly hit the
// upstream source; the overwrite is idempotent.
type RateUseCase struct {
	repo   RateRepository
	source RateSource
	base   string
	ttl    time.Duration
	clock  Clock
	logger zerolog.Logger

	cacheHits   Counter
	cacheMisses Counter

	mu     sync.RWMutex
	cached *domain.RateTable
}

// NewRateUseCase creates a new RateUseCase.
func NewRateUseCase(
	repo RateRepository,
	source RateSource,
	base string,
	ttl time.Duration,
	clock Clock,
	logger zerolog.Logger,
) *RateUseCase {
	if base == "" {
		base = DefaultBaseCurrency
	}

	if ttl <= 0 {
		ttl = DefaultRateTTL
	}

	return &RateUseCase{
		repo:   repo,
		source: source,
		base:   base,
		ttl:    ttl,
		clock:  clock,
		logger: logger,
	}
}

// InstrumentCache attaches hit/miss counters for the in-process rate table.
func (uc *RateUseCase) InstrumentCache(hits, misses Counter) {
	uc.cacheHits = hits
	uc.cacheMisses = misses
}

// GetRate returns the exchange rate from one currency to another. A rate from
// a currency to itself is exactly one and never touches the cache.
func (uc *RateUseCase) GetRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from = normalizeCurrency(from)
	to = normalizeCurrency(to)

	if err := domain.ValidateCurrency(from); err != nil {
		return decimal.Zero, err
	}

	if err := domain.ValidateCurrency(to); err != nil {
		return decimal.Zero, err
	}

	if from == to {
		return decimal.NewFromInt(1), nil
	}

	table, err := uc.table(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return table.Rate(from, to)
}

// ConversionResult is the outcome of a currency conversion.
type ConversionResult struct {
	FromCurrency    string
	ToCurrency      string
	Amount          decimal.Decimal
	ConvertedAmount decimal.Decimal
	Rate            decimal.Decimal
	Date            time.Time
}

// Convert converts amount between two currencies using the cached table.
func (uc *RateUseCase) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (*ConversionResult, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	rate, err := uc.GetRate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &ConversionResult{
		FromCurrency:    normalizeCurrency(from),
		ToCurrency:      normalizeCurrency(to),
		Amount:          amount,
		ConvertedAmount: domain.RoundSignificant(amount.Mul(rate), domain.RatePrecision),
		Rate:            rate,
		Date:            uc.clock.Now(),
	}, nil
}

// RefreshRates forces an upstream fetch and overwrites the stored table.
func (uc *RateUseCase) RefreshRates(ctx context.Context) error {
	_, err := uc.refresh(ctx)
	return err
}

// table returns a usable rate table: the in-process copy while fresh, then the
// stored row, refreshing from upstream when both are missing or stale.
func (uc *RateUseCase) table(ctx context.Context) (*domain.RateTable, error) {
	now := uc.clock.Now()

	uc.mu.RLock()
	cached := uc.cached
	uc.mu.RUnlock()

	if cached != nil && !cached.Expired(now, uc.ttl) {
		if uc.cacheHits != nil {
			uc.cacheHits.Inc()
		}

		return cached, nil
	}

	if uc.cacheMisses != nil {
		uc.cacheMisses.Inc()
	}

	stored, err := uc.repo.Get(ctx, uc.base)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("failed to read stored exchange rates")
		stored = nil
	}

	if stored != nil && !stored.Expired(now, uc.ttl) {
		uc.setCached(stored)
		return stored, nil
	}

	fresh, err := uc.refresh(ctx)
	if err == nil {
		return fresh, nil
	}

	uc.logger.Warn().Err(err).Msg("exchange rate refresh failed, serving last cached rates")

	// Stale rates beat no rates.
	if stored != nil {
		uc.setCached(stored)
		return stored, nil
	}

	if cached != nil {
		return cached, nil
	}

	return nil, domain.ErrRateUnavailable
}

func (uc *RateUseCase) refresh(ctx context.Context) (*domain.RateTable, error) {
	table, err := uc.source.Fetch(ctx, uc.base)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Save(ctx, table); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to persist refreshed exchange rates")
	}

	uc.setCached(table)
	uc.logger.Info().
		Str("base", table.Base).
		Int("currencies", len(table.Rates)).
		Msg("exchange rates refreshed")

	return table, nil
}

func (uc *RateUseCase) setCached(table *domain.RateTable) {
	uc.mu.Lock()
	uc.cached = table
	uc.mu.Unlock()
}

func normalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
