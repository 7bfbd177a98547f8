package domain

import "testing"

func TestTransactionKind_Prefix(t *testing.T) {
	tests := []struct {
		kind   TransactionKind
		prefix string
	}{
		{KindDeposit, "DEP"},
		{KindWithdrawal, "WIT"},
		{KindTransfer, "TRN"},
		{KindFee, "FEE"},
		{TransactionKind("unknown"), "TXN"},
	}

	for _, tt := range tests {
		if got := tt.kind.Prefix(); got != tt.prefix {
			t.Errorf("Prefix(%s) = %s, want %s", tt.kind, got, tt.prefix)
		}
	}
}

func TestFeeTransactionID(t *testing.T) {
	t.Run("reuses the transfer suffix", func(t *testing.T) {
		got := FeeTransactionID("TRN1A2B3C4D5E6F")
		if got != "FEE1A2B3C4D5E6F" {
			t.Errorf("FeeTransactionID = %s, want FEE1A2B3C4D5E6F", got)
		}
	})

	t.Run("short input", func(t *testing.T) {
		got := FeeTransactionID("X")
		if got != "FEEX" {
			t.Errorf("FeeTransactionID = %s, want FEEX", got)
		}
	})
}

func TestTransactionKind_IsValid(t *testing.T) {
	for _, k := range []TransactionKind{KindDeposit, KindWithdrawal, KindTransfer, KindFee} {
		if !k.IsValid() {
			t.Errorf("expected %s to be valid", k)
		}
	}

	if TransactionKind("interest").IsValid() {
		t.Error("expected unknown kind to be invalid")
	}
}
