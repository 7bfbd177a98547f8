package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/usecase"
)

const accountColumns = `id, owner_id, number, name, balance, currency, is_primary, is_active, created_at, updated_at, last_transaction_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		account.ID,
		account.OwnerID,
		account.Number,
		account.Name,
		decimalToNumeric(account.Balance),
		account.Currency,
		account.Primary,
		account.Active,
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
		nil,
	)

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	return scanAccount(row)
}

// GetByNumber retrieves an account by its ACC number.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE number = $1`, number)

	return scanAccount(row)
}

// List lists an owner's accounts, optionally filtered by active state.
// Primary accounts sort first.
func (r *AccountRepository) List(ctx context.Context, ownerID string, active *bool) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_id = $1`
	args := []any{ownerID}

	if active != nil {
		query += ` AND is_active = $2`
		args = append(args, *active)
	}

	query += ` ORDER BY is_primary DESC, created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// GetByIDsForUpdate retrieves accounts by IDs with FOR UPDATE locks. Callers
// pass IDs in sorted order so concurrent transfers acquire locks in the same
// sequence.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// UpdateBalance updates the balance of an account inside a transaction.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, at time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE accounts
		SET balance = $2, updated_at = $3, last_transaction_at = $3
		WHERE id = $1`,
		id, decimalToNumeric(balance), timeToPgTimestamptz(at))

	return err
}

// DemotePrimary clears the primary flag on all of an owner's accounts.
func (r *AccountRepository) DemotePrimary(ctx context.Context, ownerID string, at time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET is_primary = FALSE, updated_at = $2
		WHERE owner_id = $1 AND is_primary`,
		ownerID, timeToPgTimestamptz(at))

	return err
}

// Deactivate marks an account as inactive.
func (r *AccountRepository) Deactivate(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET is_active = FALSE, updated_at = $2
		WHERE id = $1`,
		id, timeToPgTimestamptz(at))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account domain.Account
		balance pgtype.Numeric
		created pgtype.Timestamptz
		updated pgtype.Timestamptz
		lastTxn pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.OwnerID,
		&account.Number,
		&account.Name,
		&balance,
		&account.Currency,
		&account.Primary,
		&account.Active,
		&created,
		&updated,
		&lastTxn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.Balance = numericToDecimal(balance)
	account.CreatedAt = created.Time
	account.UpdatedAt = updated.Time
	account.LastTransaction = pgTimestamptzToTimePtr(lastTxn)

	return &account, nil
}

func scanAccounts(rows pgx.Rows) ([]*domain.Account, error) {
	var accounts []*domain.Account

	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}
