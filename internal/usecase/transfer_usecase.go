package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/idrissa183/bankledger/internal/domain"
)

// TransferUseCase executes deposits, withdrawals and transfers.
//
// Every mutation sequence runs inside one database transaction with the
// touched accounts locked in sorted-ID order, and is retried on transient
// storage failures. Validation and business-rule rejections happen before any
// write.
type TransferUseCase struct {
	txManager     TransactionManager
	accounts      AccountRepository
	transactions  TransactionRepository
	beneficiaries BeneficiaryRepository
	rates         RateProvider
	rowID         IDGenerator
	refs          RefGenerator
	retrier       Retrier
	clock         Clock
	feePercent    decimal.Decimal
	feesCharged   Counter
	logger        zerolog.Logger
}

// TransferDeps bundles the collaborators of a TransferUseCase.
type TransferDeps struct {
	TxManager     TransactionManager
	Accounts      AccountRepository
	Transactions  TransactionRepository
	Beneficiaries BeneficiaryRepository
	Rates         RateProvider
	RowID         IDGenerator
	Refs          RefGenerator
	Retrier       Retrier
	Clock         Clock
	FeePercent    decimal.Decimal
	FeesCharged   Counter
	Logger        zerolog.Logger
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(deps TransferDeps) *TransferUseCase {
	return &TransferUseCase{
		txManager:     deps.TxManager,
		accounts:      deps.Accounts,
		transactions:  deps.Transactions,
		beneficiaries: deps.Beneficiaries,
		rates:         deps.Rates,
		rowID:         deps.RowID,
		refs:          deps.Refs,
		retrier:       deps.Retrier,
		clock:         deps.Clock,
		feePercent:    deps.FeePercent,
		feesCharged:   deps.FeesCharged,
		logger:        deps.Logger,
	}
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Description string
}

// WithdrawalInput represents input for a withdrawal.
type WithdrawalInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Description string
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	FromAccountID string
	Recipient     domain.RecipientRef
	RecipientName string
	Amount        decimal.Decimal
	Description   string
}

// Deposit credits an account and records a DEP transaction.
func (uc *TransferUseCase) Deposit(ctx context.Context, principal *domain.Principal, input DepositInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	account, err := uc.sourceAccount(ctx, principal, input.AccountID)
	if err != nil {
		return nil, err
	}

	description := input.Description
	if description == "" {
		description = "Deposit"
	}

	ref := uc.refs.NewRef(domain.KindDeposit.Prefix())

	var txn *domain.Transaction
	err = uc.retrier.Retry(ctx, func() error {
		var rerr error
		txn, rerr = uc.applySingle(ctx, account.ID, domain.KindDeposit, ref, input.Amount, description)
		return rerr
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("transaction_id", txn.TransactionID).
		Str("account_id", account.ID).
		Str("amount", input.Amount.String()).
		Msg("deposit completed")

	return txn, nil
}

// Withdraw debits an account and records a WIT transaction. The account
// balance must cover the full amount.
func (uc *TransferUseCase) Withdraw(ctx context.Context, principal *domain.Principal, input WithdrawalInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	account, err := uc.sourceAccount(ctx, principal, input.AccountID)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	description := input.Description
	if description == "" {
		description = "Withdrawal"
	}

	ref := uc.refs.NewRef(domain.KindWithdrawal.Prefix())

	var txn *domain.Transaction
	err = uc.retrier.Retry(ctx, func() error {
		var rerr error
		txn, rerr = uc.applySingle(ctx, account.ID, domain.KindWithdrawal, ref, input.Amount, description)
		return rerr
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("transaction_id", txn.TransactionID).
		Str("account_id", account.ID).
		Str("amount", input.Amount.String()).
		Msg("withdrawal completed")

	return txn, nil
}

// Transfer moves value from the caller's account to a destination resolved
// from a tagged recipient reference, converting across currencies when needed
// and charging a percentage fee on destinations outside the caller's own
// accounts. It returns the sender-side transaction.
func (uc *TransferUseCase) Transfer(ctx context.Context, principal *domain.Principal, input TransferInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := input.Recipient.Validate(); err != nil {
		return nil, err
	}

	source, err := uc.sourceAccount(ctx, principal, input.FromAccountID)
	if err != nil {
		return nil, err
	}

	recipient, err := uc.resolveRecipient(ctx, principal, input)
	if err != nil {
		return nil, err
	}

	if recipient.account != nil && !recipient.account.Active {
		return nil, domain.ErrAccountInactive
	}

	// No fee between the caller's own accounts.
	fee := decimal.Zero
	if !recipient.ownedByCaller && uc.feePercent.IsPositive() {
		fee = input.Amount.Mul(uc.feePercent).Div(decimal.NewFromInt(100))
	}

	// The funds check covers the fee on top of the principal, so the
	// balance can never go negative by the fee amount.
	if source.Balance.LessThan(input.Amount.Add(fee)) {
		return nil, domain.ErrInsufficientFunds
	}

	if recipient.account != nil && recipient.account.ID == source.ID {
		return nil, domain.ErrInvalidTransfer
	}

	// Rate lookup happens before any lock is taken; the upstream fetch is
	// a suspension point that must not stall the mutation sequence.
	converted := input.Amount
	rate := decimal.NewFromInt(1)
	conversionNote := ""

	if recipient.account != nil && recipient.account.Currency != source.Currency {
		rate, err = uc.rates.GetRate(ctx, source.Currency, recipient.account.Currency)
		if err != nil {
			return nil, err
		}

		converted = domain.RoundSignificant(input.Amount.Mul(rate), domain.RatePrecision)
		conversionNote = fmt.Sprintf(" (rate: 1 %s = %s %s)", source.Currency, rate, recipient.account.Currency)
	}

	plan := transferPlan{
		sourceID:       source.ID,
		recipient:      recipient,
		amount:         input.Amount,
		converted:      converted,
		fee:            fee,
		description:    input.Description,
		conversionNote: conversionNote,
		ref:            uc.refs.NewRef(domain.KindTransfer.Prefix()),
	}

	var sender *domain.Transaction
	err = uc.retrier.Retry(ctx, func() error {
		var rerr error
		sender, rerr = uc.executeTransfer(ctx, plan)
		return rerr
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("transaction_id", sender.TransactionID).
		Str("from_account_id", source.ID).
		Str("amount", input.Amount.String()).
		Str("fee", fee.String()).
		Bool("internal", recipient.account != nil).
		Msg("transfer completed")

	return sender, nil
}

// transferPlan carries the precomputed values of a transfer into the
// transactional section.
type transferPlan struct {
	sourceID       string
	recipient      *resolvedRecipient
	amount         decimal.Decimal
	converted      decimal.Decimal
	fee            decimal.Decimal
	description    string
	conversionNote string
	ref            string
}

// resolvedRecipient is the outcome of recipient resolution. account is nil
// for destinations that do not exist in this ledger.
type resolvedRecipient struct {
	account       *domain.Account
	name          string
	number        string
	ownedByCaller bool
}

// resolveRecipient dispatches on the recipient reference: owned account,
// saved beneficiary, then raw account number.
func (uc *TransferUseCase) resolveRecipient(ctx context.Context, principal *domain.Principal, input TransferInput) (*resolvedRecipient, error) {
	ref := input.Recipient

	switch ref.Kind {
	case domain.RecipientOwnedAccount:
		account, err := uc.accounts.GetByID(ctx, ref.Value)
		if err != nil || !account.OwnedBy(principal.OwnerID) {
			return nil, domain.ErrRecipientNotFound
		}

		return &resolvedRecipient{
			account:       account,
			name:          account.Name,
			number:        account.Number,
			ownedByCaller: true,
		}, nil

	case domain.RecipientBeneficiary:
		beneficiary, err := uc.beneficiaries.GetByID(ctx, ref.Value)
		if err != nil || beneficiary.OwnerID != principal.OwnerID {
			return nil, domain.ErrBeneficiaryNotFound
		}

		resolved := &resolvedRecipient{
			name:   beneficiary.Name,
			number: beneficiary.Number,
		}

		// A beneficiary number may point at an account in this ledger;
		// credit it when it does.
		if account, err := uc.accounts.GetByNumber(ctx, beneficiary.Number); err == nil {
			resolved.account = account
		}

		return resolved, nil

	case domain.RecipientAccountNumber:
		if err := domain.ValidateAccountNumber(ref.Value); err != nil {
			return nil, err
		}

		resolved := &resolvedRecipient{
			name:   input.RecipientName,
			number: ref.Value,
		}

		if account, err := uc.accounts.GetByNumber(ctx, ref.Value); err == nil {
			resolved.account = account
			resolved.ownedByCaller = account.OwnedBy(principal.OwnerID)
			if resolved.name == "" {
				resolved.name = account.Name
			}
		}

		return resolved, nil

	default:
		return nil, domain.ErrRecipientNotFound
	}
}

// sourceAccount resolves the caller's account: by ID with an ownership check,
// or the caller's primary account when no ID is given.
func (uc *TransferUseCase) sourceAccount(ctx context.Context, principal *domain.Principal, accountID string) (*domain.Account, error) {
	if accountID != "" {
		account, err := uc.accounts.GetByID(ctx, accountID)
		if err != nil {
			return nil, err
		}

		if !account.OwnedBy(principal.OwnerID) {
			return nil, domain.ErrAccountNotFound
		}

		if !account.Active {
			return nil, domain.ErrAccountInactive
		}

		return account, nil
	}

	active := true

	accounts, err := uc.accounts.List(ctx, principal.OwnerID, &active)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if account.Primary {
			return account, nil
		}
	}

	if len(accounts) > 0 {
		return accounts[0], nil
	}

	return nil, domain.ErrAccountNotFound
}

// applySingle runs a one-account mutation (deposit or withdrawal) and its
// paired transaction record as a single database transaction.
func (uc *TransferUseCase) applySingle(ctx context.Context, accountID string, kind domain.TransactionKind, ref string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accounts.GetByIDsForUpdate(ctx, tx, []string{accountID})
	if err != nil {
		return nil, err
	}

	if len(accounts) != 1 {
		return nil, domain.ErrAccountNotFound
	}

	account := accounts[0]
	now := uc.clock.Now()

	var newBalance, delta decimal.Decimal

	switch kind {
	case domain.KindWithdrawal:
		if err := account.ValidateDebit(amount); err != nil {
			return nil, err
		}

		newBalance = account.ApplyDebit(amount)
		delta = amount.Neg()
	default:
		newBalance = account.ApplyCredit(amount)
		delta = amount
	}

	txn := &domain.Transaction{
		ID:              uc.rowID.Generate(),
		TransactionID:   ref,
		AccountID:       account.ID,
		Kind:            kind,
		Amount:          delta,
		Currency:        account.Currency,
		Description:     description,
		Status:          domain.StatusCompleted,
		TransactionDate: now,
		CreatedAt:       now,
	}

	if err := uc.transactions.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := uc.accounts.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// executeTransfer applies the transfer mutation sequence under locks: debit
// sender by amount plus fee, credit the recipient when it lives in this
// ledger, then record the paired transaction rows.
func (uc *TransferUseCase) executeTransfer(ctx context.Context, plan transferPlan) (*domain.Transaction, error) {
	ids := []string{plan.sourceID}
	if plan.recipient.account != nil {
		ids = append(ids, plan.recipient.account.ID)
	}

	// Lock accounts in sorted order to prevent deadlocks.
	sort.Strings(ids)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	locked, err := uc.accounts.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(locked) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	byID := make(map[string]*domain.Account, len(locked))
	for _, account := range locked {
		byID[account.ID] = account
	}

	source := byID[plan.sourceID]
	if source == nil {
		return nil, domain.ErrAccountNotFound
	}

	total := plan.amount.Add(plan.fee)

	// Authoritative funds check on the locked row.
	if err := source.ValidateDebit(total); err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	if err := uc.accounts.UpdateBalance(ctx, tx, source.ID, source.ApplyDebit(total), now); err != nil {
		return nil, err
	}

	var dest *domain.Account
	if plan.recipient.account != nil {
		dest = byID[plan.recipient.account.ID]
		if dest == nil {
			return nil, domain.ErrRecipientNotFound
		}

		if err := uc.accounts.UpdateBalance(ctx, tx, dest.ID, dest.ApplyCredit(plan.converted), now); err != nil {
			return nil, err
		}
	}

	description := plan.description
	if description == "" {
		description = fmt.Sprintf("Transfer to %s", plan.recipient.name)
	}

	sender := &domain.Transaction{
		ID:              uc.rowID.Generate(),
		TransactionID:   plan.ref,
		AccountID:       source.ID,
		Kind:            domain.KindTransfer,
		Amount:          plan.amount.Neg(),
		Currency:        source.Currency,
		Description:     description + plan.conversionNote,
		Status:          domain.StatusCompleted,
		RecipientName:   plan.recipient.name,
		RecipientNumber: plan.recipient.number,
		TransactionDate: now,
		CreatedAt:       now,
	}

	if dest != nil {
		sender.RecipientID = &dest.ID
	}

	if err := uc.transactions.Create(ctx, tx, sender); err != nil {
		return nil, err
	}

	// The recipient-side row shares the sender's transaction reference.
	if dest != nil {
		credit := &domain.Transaction{
			ID:              uc.rowID.Generate(),
			TransactionID:   plan.ref,
			AccountID:       dest.ID,
			Kind:            domain.KindDeposit,
			Amount:          plan.converted,
			Currency:        dest.Currency,
			Description:     fmt.Sprintf("Transfer from %s", source.Name) + plan.conversionNote,
			Status:          domain.StatusCompleted,
			TransactionDate: now,
			CreatedAt:       now,
		}

		if err := uc.transactions.Create(ctx, tx, credit); err != nil {
			return nil, err
		}
	}

	if plan.fee.IsPositive() {
		feeTxn := &domain.Transaction{
			ID:              uc.rowID.Generate(),
			TransactionID:   domain.FeeTransactionID(plan.ref),
			AccountID:       source.ID,
			Kind:            domain.KindFee,
			Amount:          plan.fee.Neg(),
			Currency:        source.Currency,
			Description:     fmt.Sprintf("Transfer fee (%s%%)", uc.feePercent),
			Status:          domain.StatusCompleted,
			TransactionDate: now,
			CreatedAt:       now,
		}

		if err := uc.transactions.Create(ctx, tx, feeTxn); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if plan.fee.IsPositive() && uc.feesCharged != nil {
		uc.feesCharged.Inc()
	}

	return sender, nil
}
