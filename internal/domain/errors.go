package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountInactive   = errors.New("account is inactive")
	ErrAccountNotEmpty   = errors.New("account balance must be zero")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Transfer errors
	ErrInvalidTransfer     = errors.New("cannot transfer to the same account")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Beneficiary errors
	ErrBeneficiaryNotFound  = errors.New("beneficiary not found")
	ErrDuplicateBeneficiary = errors.New("beneficiary with this account number already exists")

	// Currency errors
	ErrRateUnavailable        = errors.New("exchange rates not available")
	ErrConversionNotSupported = errors.New("conversion between these currencies is not supported")
)

// Authentication errors
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrBankingDisabled = errors.New("banking is not enabled for this user")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token has expired")
)
