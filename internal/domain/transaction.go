package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a ledger transaction.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
	KindTransfer   TransactionKind = "transfer"
	KindFee        TransactionKind = "fee"
)

// Valid transaction kinds
var validKinds = map[TransactionKind]bool{
	KindDeposit:    true,
	KindWithdrawal: true,
	KindTransfer:   true,
	KindFee:        true,
}

// IsValid checks if the kind is a known transaction kind.
func (k TransactionKind) IsValid() bool {
	return validKinds[k]
}

// Prefix returns the three-letter prefix used in business transaction IDs.
func (k TransactionKind) Prefix() string {
	switch k {
	case KindDeposit:
		return "DEP"
	case KindWithdrawal:
		return "WIT"
	case KindTransfer:
		return "TRN"
	case KindFee:
		return "FEE"
	default:
		return "TXN"
	}
}

// TransactionStatus is the settlement state of a transaction record.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Transaction is an append-only record paired with a balance mutation.
//
// TransactionID is the customer-facing identifier (kind prefix + 12 uppercase
// hex characters). The two rows of a transfer share one TransactionID, each
// scoped to one account's signed delta; a completed record is immutable.
type Transaction struct {
	ID              string
	TransactionID   string
	AccountID       string
	Kind            TransactionKind
	Amount          decimal.Decimal
	Currency        string
	Description     string
	Status          TransactionStatus
	RecipientID     *string
	RecipientName   string
	RecipientNumber string
	TransactionDate time.Time
	CreatedAt       time.Time
}

// FeeTransactionID derives the fee record identifier from a transfer
// identifier, reusing its hex suffix.
func FeeTransactionID(transferID string) string {
	if len(transferID) <= 3 {
		return KindFee.Prefix() + transferID
	}

	return KindFee.Prefix() + transferID[3:]
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	AccountIDs []string
	Kind       *TransactionKind
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}
