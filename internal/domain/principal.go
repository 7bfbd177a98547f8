package domain

// Principal is the authenticated caller, as supplied by the authorization
// layer. The ledger trusts this input.
type Principal struct {
	OwnerID        string
	Email          string
	BankingEnabled bool
}

// CanUseBanking reports whether the caller may reach ledger operations.
func (p *Principal) CanUseBanking() bool {
	return p.OwnerID != "" && p.BankingEnabled
}
