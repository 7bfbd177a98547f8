package domain

import "github.com/shopspring/decimal"

// BalanceMismatch reports an account whose stored balance disagrees with the
// sum of its completed transaction records.
type BalanceMismatch struct {
	AccountID   string
	Number      string
	Balance     decimal.Decimal
	RecordedSum decimal.Decimal
}
