package domain

import "time"

// Beneficiary is a saved external transfer recipient.
type Beneficiary struct {
	ID        string
	OwnerID   string
	Name      string
	Number    string
	BankName  string
	Favorite  bool
	CreatedAt time.Time
}
