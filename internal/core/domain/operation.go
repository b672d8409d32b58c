package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationKind represents the direction of a balance mutation.
type OperationKind string

const (
	OperationDeposit  OperationKind = "DEPOSIT"
	OperationWithdraw OperationKind = "WITHDRAW"
)

// Valid reports whether the kind is one of the known values.
func (k OperationKind) Valid() bool {
	return k == OperationDeposit || k == OperationWithdraw
}

// Operation is an immutable ledger entry recording one balance mutation.
// Operations are created exactly once per committed mutation and never
// updated or deleted.
type Operation struct {
	ID        uuid.UUID       `json:"id"`
	WalletID  uuid.UUID       `json:"wallet_id"`
	Kind      OperationKind   `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewOperation constructs a ledger entry with a server-assigned timestamp.
func NewOperation(walletID uuid.UUID, kind OperationKind, amount decimal.Decimal) *Operation {
	return &Operation{
		ID:        uuid.New(),
		WalletID:  walletID,
		Kind:      kind,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
}

// Signed returns the amount with the sign the ledger invariant uses:
// positive for deposits, negative for withdrawals.
func (o *Operation) Signed() decimal.Decimal {
	if o.Kind == OperationWithdraw {
		return o.Amount.Neg()
	}
	return o.Amount
}
