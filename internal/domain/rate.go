package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatePrecision is the number of significant digits kept when applying
// exchange rates.
const RatePrecision = 6

// RateTable is the cached set of exchange rates for one base currency.
// All rates are expressed relative to Base.
type RateTable struct {
	Base      string
	Rates     map[string]decimal.Decimal
	UpdatedAt time.Time
}

// Rate returns the cross rate from one currency to another, derived from the
// table's base-relative rates and rounded to RatePrecision significant digits.
func (t *RateTable) Rate(from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	fromRate, ok := t.Rates[from]
	if !ok || fromRate.IsZero() {
		return decimal.Zero, ErrConversionNotSupported
	}

	toRate, ok := t.Rates[to]
	if !ok {
		return decimal.Zero, ErrConversionNotSupported
	}

	return RoundSignificant(toRate.Div(fromRate), RatePrecision), nil
}

// Expired reports whether the table is older than ttl at the given instant.
func (t *RateTable) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(t.UpdatedAt) > ttl
}

// RoundSignificant rounds d to the given number of significant digits.
func RoundSignificant(d decimal.Decimal, digits int32) decimal.Decimal {
	if d.IsZero() {
		return d
	}

	// Digits before the decimal point; can be zero or negative for values
	// below one.
	order := int32(d.NumDigits()) + d.Exponent()

	return d.Round(digits - order)
}
