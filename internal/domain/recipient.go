package domain

// RecipientKind tags the way a transfer destination is referenced.
type RecipientKind string

const (
	// RecipientOwnedAccount targets another account of the sender by ID.
	RecipientOwnedAccount RecipientKind = "owned_account"

	// RecipientBeneficiary targets a saved beneficiary by ID.
	RecipientBeneficiary RecipientKind = "beneficiary"

	// RecipientAccountNumber targets a raw account number.
	RecipientAccountNumber RecipientKind = "account_number"
)

// RecipientRef is a tagged reference to a transfer destination. Exactly one
// variant applies per transfer; resolution tries owned account, then
// beneficiary, then raw number.
type RecipientRef struct {
	Kind  RecipientKind
	Value string
}

// OwnedAccountRef references one of the sender's own accounts.
func OwnedAccountRef(accountID string) RecipientRef {
	return RecipientRef{Kind: RecipientOwnedAccount, Value: accountID}
}

// BeneficiaryRef references a saved beneficiary.
func BeneficiaryRef(beneficiaryID string) RecipientRef {
	return RecipientRef{Kind: RecipientBeneficiary, Value: beneficiaryID}
}

// AccountNumberRef references a destination by raw account number.
func AccountNumberRef(number string) RecipientRef {
	return RecipientRef{Kind: RecipientAccountNumber, Value: number}
}

// Validate checks that the reference carries a usable value.
func (r RecipientRef) Validate() error {
	switch r.Kind {
	case RecipientOwnedAccount, RecipientBeneficiary, RecipientAccountNumber:
		if r.Value == "" {
			return ErrRecipientNotFound
		}

		return nil
	default:
		return ErrRecipientNotFound
	}
}
