package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountName   = errors.New("invalid account name")
	ErrInvalidCurrency      = errors.New("invalid currency code")
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrInvalidDateRange     = errors.New("end date must be after start date")
	ErrAmountTooLarge       = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MinAccountNumberLen  = 8
	MaxTransferAmount    = "1000000000000" // 1 trillion
)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"XOF": true, "NGN": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "MAD": true, "TRY": true, "HKD": true,
}

var accountNumberRegex = regexp.MustCompile(`^[A-Z0-9]{8,}$`)

// ValidateAccountName validates an account display name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateCurrency validates a currency code.
func ValidateCurrency(currency string) error {
	if !validCurrencies[strings.ToUpper(strings.TrimSpace(currency))] {
		return fmt.Errorf("%w: %s is not a supported ISO 4217 currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateAccountNumber validates an account number: at least eight
// uppercase alphanumeric characters.
func ValidateAccountNumber(number string) error {
	if !accountNumberRegex.MatchString(number) {
		return fmt.Errorf("%w: must be at least %d uppercase alphanumeric characters", ErrInvalidAccountNumber, MinAccountNumberLen)
	}

	return nil
}

// ValidateAmount validates a deposit/withdrawal/transfer amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxTransferAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxTransferAmount)
	}

	return nil
}

// ValidateDateRange parses optional YYYY-MM-DD date filters. The end date is
// pushed to the end of its day so a single-day range matches that day's
// transactions.
func ValidateDateRange(start, end string) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time

	if start != "" {
		parsed, err := time.Parse("2006-01-02", start)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid start date %q", ErrInvalidDateRange, start)
		}

		startDate = &parsed
	}

	if end != "" {
		parsed, err := time.Parse("2006-01-02", end)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid end date %q", ErrInvalidDateRange, end)
		}

		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
		endDate = &parsed
	}

	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, nil, ErrInvalidDateRange
	}

	return startDate, endDate, nil
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 100
	const DefaultPageSize = 20

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
