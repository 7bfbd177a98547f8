package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/idrissa183/bankledger/internal/domain"
)

const beneficiaryColumns = `id, owner_id, name, number, bank_name, is_favorite, created_at`

// BeneficiaryRepository implements usecase.BeneficiaryRepository.
type BeneficiaryRepository struct {
	pool *pgxpool.Pool
}

// NewBeneficiaryRepository creates a new BeneficiaryRepository.
func NewBeneficiaryRepository(pool *pgxpool.Pool) *BeneficiaryRepository {
	return &BeneficiaryRepository{pool: pool}
}

// Create inserts a beneficiary.
func (r *BeneficiaryRepository) Create(ctx context.Context, beneficiary *domain.Beneficiary) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO beneficiaries (`+beneficiaryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		beneficiary.ID,
		beneficiary.OwnerID,
		beneficiary.Name,
		beneficiary.Number,
		beneficiary.BankName,
		beneficiary.Favorite,
		timeToPgTimestamptz(beneficiary.CreatedAt),
	)

	return err
}

// GetByID retrieves a beneficiary by ID.
func (r *BeneficiaryRepository) GetByID(ctx context.Context, id string) (*domain.Beneficiary, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+beneficiaryColumns+` FROM beneficiaries WHERE id = $1`, id)

	return scanBeneficiary(row)
}

// GetByOwnerAndNumber retrieves an owner's beneficiary by account number.
func (r *BeneficiaryRepository) GetByOwnerAndNumber(ctx context.Context, ownerID, number string) (*domain.Beneficiary, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+beneficiaryColumns+` FROM beneficiaries
		WHERE owner_id = $1 AND number = $2`, ownerID, number)

	return scanBeneficiary(row)
}

// ListByOwner lists an owner's beneficiaries, favorites first.
func (r *BeneficiaryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Beneficiary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+beneficiaryColumns+` FROM beneficiaries
		WHERE owner_id = $1
		ORDER BY is_favorite DESC, name ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var beneficiaries []*domain.Beneficiary

	for rows.Next() {
		beneficiary, err := scanBeneficiary(rows)
		if err != nil {
			return nil, err
		}

		beneficiaries = append(beneficiaries, beneficiary)
	}

	return beneficiaries, rows.Err()
}

// Delete removes a beneficiary.
func (r *BeneficiaryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM beneficiaries WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrBeneficiaryNotFound
	}

	return nil
}

func scanBeneficiary(row pgx.Row) (*domain.Beneficiary, error) {
	var (
		beneficiary domain.Beneficiary
		created     pgtype.Timestamptz
	)

	err := row.Scan(
		&beneficiary.ID,
		&beneficiary.OwnerID,
		&beneficiary.Name,
		&beneficiary.Number,
		&beneficiary.BankName,
		&beneficiary.Favorite,
		&created,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBeneficiaryNotFound
		}

		return nil, err
	}

	beneficiary.CreatedAt = created.Time

	return &beneficiary, nil
}
