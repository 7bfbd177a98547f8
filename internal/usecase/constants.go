package usecase

import "time"

const (
	// DefaultRateTTL is how long a cached exchange-rate table stays valid.
	DefaultRateTTL = 6 * time.Hour

	// DefaultBaseCurrency is the base currency of the cached rate table.
	DefaultBaseCurrency = "USD"

	// RefSuffixLength is the number of random hex characters appended to
	// prefixed business identifiers.
	RefSuffixLength = 12

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
