package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/usecase"
)

const transactionColumns = `id, transaction_id, account_id, kind, amount, currency, description, status, recipient_id, recipient_name, recipient_number, transaction_date, created_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction record inside a database transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		txn.ID,
		txn.TransactionID,
		txn.AccountID,
		string(txn.Kind),
		decimalToNumeric(txn.Amount),
		txn.Currency,
		txn.Description,
		string(txn.Status),
		txn.RecipientID,
		txn.RecipientName,
		txn.RecipientNumber,
		timeToPgTimestamptz(txn.TransactionDate),
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// GetByID retrieves a transaction record by row ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)

	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return txn, nil
}

// List retrieves transaction records matching the filter, newest first.
func (r *TransactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = ANY($1)`
	args := []any{filter.AccountIDs}

	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		query += fmt.Sprintf(` AND kind = $%d`, len(args))
	}

	if filter.StartDate != nil {
		args = append(args, timeToPgTimestamptz(*filter.StartDate))
		query += fmt.Sprintf(` AND transaction_date >= $%d`, len(args))
	}

	if filter.EndDate != nil {
		args = append(args, timeToPgTimestamptz(*filter.EndDate))
		query += fmt.Sprintf(` AND transaction_date <= $%d`, len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(` ORDER BY transaction_date DESC, created_at DESC LIMIT $%d`, len(args))

	args = append(args, filter.Offset)
	query += fmt.Sprintf(` OFFSET $%d`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction

	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn     domain.Transaction
		kind    string
		status  string
		amount  pgtype.Numeric
		txnDate pgtype.Timestamptz
		created pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID,
		&txn.TransactionID,
		&txn.AccountID,
		&kind,
		&amount,
		&txn.Currency,
		&txn.Description,
		&status,
		&txn.RecipientID,
		&txn.RecipientName,
		&txn.RecipientNumber,
		&txnDate,
		&created,
	)
	if err != nil {
		return nil, err
	}

	txn.Kind = domain.TransactionKind(kind)
	txn.Status = domain.TransactionStatus(status)
	txn.Amount = numericToDecimal(amount)
	txn.TransactionDate = txnDate.Time
	txn.CreatedAt = created.Time

	return &txn, nil
}
