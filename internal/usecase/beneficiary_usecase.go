package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/idrissa183/bankledger/internal/domain"
)

// BeneficiaryUseCase manages saved transfer recipients.
type BeneficiaryUseCase struct {
	beneficiaries BeneficiaryRepository
	rowID         IDGenerator
	clock         Clock
	logger        zerolog.Logger
}

// NewBeneficiaryUseCase creates a new BeneficiaryUseCase.
func NewBeneficiaryUseCase(beneficiaries BeneficiaryRepository, rowID IDGenerator, clock Clock, logger zerolog.Logger) *BeneficiaryUseCase {
	return &BeneficiaryUseCase{
		beneficiaries: beneficiaries,
		rowID:         rowID,
		clock:         clock,
		logger:        logger,
	}
}

// CreateBeneficiaryInput represents input for saving a beneficiary.
type CreateBeneficiaryInput struct {
	Name     string
	Number   string
	BankName string
	Favorite bool
}

// Create saves a beneficiary for the caller. Each owner can save a given
// account number only once.
func (uc *BeneficiaryUseCase) Create(ctx context.Context, principal *domain.Principal, input CreateBeneficiaryInput) (*domain.Beneficiary, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateAccountNumber(input.Number); err != nil {
		return nil, err
	}

	if _, err := uc.beneficiaries.GetByOwnerAndNumber(ctx, principal.OwnerID, input.Number); err == nil {
		return nil, domain.ErrDuplicateBeneficiary
	}

	beneficiary := &domain.Beneficiary{
		ID:        uc.rowID.Generate(),
		OwnerID:   principal.OwnerID,
		Name:      input.Name,
		Number:    input.Number,
		BankName:  input.BankName,
		Favorite:  input.Favorite,
		CreatedAt: uc.clock.Now(),
	}

	if err := uc.beneficiaries.Create(ctx, beneficiary); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("beneficiary_id", beneficiary.ID).
		Str("owner_id", principal.OwnerID).
		Msg("beneficiary created")

	return beneficiary, nil
}

// List returns the caller's beneficiaries.
func (uc *BeneficiaryUseCase) List(ctx context.Context, principal *domain.Principal) ([]*domain.Beneficiary, error) {
	return uc.beneficiaries.ListByOwner(ctx, principal.OwnerID)
}

// Delete removes one of the caller's beneficiaries.
func (uc *BeneficiaryUseCase) Delete(ctx context.Context, principal *domain.Principal, id string) error {
	beneficiary, err := uc.beneficiaries.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if beneficiary.OwnerID != principal.OwnerID {
		return domain.ErrBeneficiaryNotFound
	}

	if err := uc.beneficiaries.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info().
		Str("beneficiary_id", id).
		Str("owner_id", principal.OwnerID).
		Msg("beneficiary deleted")

	return nil
}
