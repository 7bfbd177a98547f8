package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByNumberFunc       func(ctx context.Context, number string) (*domain.Account, error)
	ListFunc              func(ctx context.Context, ownerID string, active *bool) ([]*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, at time.Time) error
	DemotePrimaryFunc     func(ctx context.Context, ownerID string, at time.Time) error
	DeactivateFunc        func(ctx context.Context, id string, at time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed stores accounts directly, bypassing Create hooks.
func (m *MockAccountRepository) Seed(accounts ...*domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range accounts {
		m.accounts[acc.ID] = acc
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Number == number {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, ownerID string, active *bool) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, active)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.OwnerID != ownerID {
			continue
		}
		if active != nil && acc.Active != *active {
			continue
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, at time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = at
		lastTx := at
		acc.LastTransaction = &lastTx
	}
	return nil
}

func (m *MockAccountRepository) DemotePrimary(ctx context.Context, ownerID string, at time.Time) error {
	if m.DemotePrimaryFunc != nil {
		return m.DemotePrimaryFunc(ctx, ownerID, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range m.accounts {
		if acc.OwnerID == ownerID && acc.Primary {
			acc.Primary = false
			acc.UpdatedAt = at
		}
	}
	return nil
}

func (m *MockAccountRepository) Deactivate(ctx context.Context, id string, at time.Time) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Active = false
		acc.UpdatedAt = at
	}
	return nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu      sync.RWMutex
	records []*domain.Transaction

	CreateFunc  func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Transaction, error)
	ListFunc    func(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// Records returns every transaction created so far, in creation order.
func (m *MockTransactionRepository) Records() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, len(m.records))
	copy(out, m.records)
	return out
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, txn)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, txn := range m.records {
		if txn.ID == id {
			return txn, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	allowed := make(map[string]bool, len(filter.AccountIDs))
	for _, id := range filter.AccountIDs {
		allowed[id] = true
	}
	var out []*domain.Transaction
	for _, txn := range m.records {
		if !allowed[txn.AccountID] {
			continue
		}
		if filter.Kind != nil && txn.Kind != *filter.Kind {
			continue
		}
		out = append(out, txn)
	}
	return out, nil
}

// MockBeneficiaryRepository is a mock implementation of BeneficiaryRepository.
type MockBeneficiaryRepository struct {
	mu            sync.RWMutex
	beneficiaries map[string]*domain.Beneficiary

	CreateFunc              func(ctx context.Context, beneficiary *domain.Beneficiary) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Beneficiary, error)
	GetByOwnerAndNumberFunc func(ctx context.Context, ownerID, number string) (*domain.Beneficiary, error)
	ListByOwnerFunc         func(ctx context.Context, ownerID string) ([]*domain.Beneficiary, error)
	DeleteFunc              func(ctx context.Context, id string) error
}

func NewMockBeneficiaryRepository() *MockBeneficiaryRepository {
	return &MockBeneficiaryRepository{
		beneficiaries: make(map[string]*domain.Beneficiary),
	}
}

func (m *MockBeneficiaryRepository) Seed(beneficiaries ...*domain.Beneficiary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range beneficiaries {
		m.beneficiaries[b.ID] = b
	}
}

func (m *MockBeneficiaryRepository) Create(ctx context.Context, beneficiary *domain.Beneficiary) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, beneficiary)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.beneficiaries[beneficiary.ID] = beneficiary
	return nil
}

func (m *MockBeneficiaryRepository) GetByID(ctx context.Context, id string) (*domain.Beneficiary, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.beneficiaries[id]; ok {
		return b, nil
	}
	return nil, domain.ErrBeneficiaryNotFound
}

func (m *MockBeneficiaryRepository) GetByOwnerAndNumber(ctx context.Context, ownerID, number string) (*domain.Beneficiary, error) {
	if m.GetByOwnerAndNumberFunc != nil {
		return m.GetByOwnerAndNumberFunc(ctx, ownerID, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.beneficiaries {
		if b.OwnerID == ownerID && b.Number == number {
			return b, nil
		}
	}
	return nil, domain.ErrBeneficiaryNotFound
}

func (m *MockBeneficiaryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Beneficiary, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Beneficiary
	for _, b := range m.beneficiaries {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *MockBeneficiaryRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.beneficiaries[id]; !ok {
		return domain.ErrBeneficiaryNotFound
	}
	delete(m.beneficiaries, id)
	return nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	FindInconsistentAccountsFunc func(ctx context.Context) ([]domain.BalanceMismatch, error)
}

func (m *MockLedgerRepository) FindInconsistentAccounts(ctx context.Context) ([]domain.BalanceMismatch, error) {
	if m.FindInconsistentAccountsFunc != nil {
		return m.FindInconsistentAccountsFunc(ctx)
	}
	return nil, nil
}

// MockRateProvider is a mock implementation of RateProvider.
type MockRateProvider struct {
	GetRateFunc func(ctx context.Context, from, to string) (decimal.Decimal, error)
}

func (m *MockRateProvider) GetRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if m.GetRateFunc != nil {
		return m.GetRateFunc(ctx, from, to)
	}
	return decimal.NewFromInt(1), nil
}

// MockTransaction is a mock database transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock transaction manager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu    sync.Mutex
	Begun []*MockTransaction
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Begun = append(m.Begun, tx)
	return tx, nil
}

// StubIDGenerator yields sequential row IDs.
type StubIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *StubIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%04d", g.n)
}

// StubRefGenerator yields deterministic prefixed references with
// twelve-character uppercase hex suffixes.
type StubRefGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *StubRefGenerator) NewRef(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return prefix + strings.ToUpper(fmt.Sprintf("%012x", g.n))
}

// FixedClock always returns the same instant.
type FixedClock struct {
	Time time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.Time
}

// PassthroughRetrier runs the operation exactly once.
type PassthroughRetrier struct{}

func (PassthroughRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}
