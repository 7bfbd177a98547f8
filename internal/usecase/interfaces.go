package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/idrissa183/bankledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	List(ctx context.Context, ownerID string, active *bool) ([]*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, at time.Time) error
	DemotePrimary(ctx context.Context, ownerID string, at time.Time) error
	Deactivate(ctx context.Context, id string, at time.Time) error
}

// TransactionRepository defines data access for transaction records.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
}

// BeneficiaryRepository defines data access for saved beneficiaries.
type BeneficiaryRepository interface {
	Create(ctx context.Context, beneficiary *domain.Beneficiary) error
	GetByID(ctx context.Context, id string) (*domain.Beneficiary, error)
	GetByOwnerAndNumber(ctx context.Context, ownerID, number string) (*domain.Beneficiary, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Beneficiary, error)
	Delete(ctx context.Context, id string) error
}

// RateRepository stores the cached exchange-rate table, one row per base
// currency.
type RateRepository interface {
	Get(ctx context.Context, base string) (*domain.RateTable, error)
	Save(ctx context.Context, table *domain.RateTable) error
}

// RateSource fetches a fresh rate table from the upstream provider.
type RateSource interface {
	Fetch(ctx context.Context, base string) (*domain.RateTable, error)
}

// RateProvider serves exchange rates to the transfer path.
type RateProvider interface {
	GetRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// LedgerRepository defines ledger-wide consistency queries.
type LedgerRepository interface {
	FindInconsistentAccounts(ctx context.Context) ([]domain.BalanceMismatch, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique row IDs.
type IDGenerator interface {
	Generate() string
}

// RefGenerator generates prefixed business identifiers such as transaction
// references and account numbers.
type RefGenerator interface {
	NewRef(prefix string) string
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Counter is a monotonically increasing metric. Prometheus counters satisfy
// it; a nil Counter disables the instrumentation point.
type Counter interface {
	Inc()
}

// Clock supplies the current time; injectable for tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation of Clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
