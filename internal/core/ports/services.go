package ports

import (
	"context"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletService is the wallet directory plus the read-only query facade.
type WalletService interface {
	Create(ctx context.Context, email string) (*domain.Wallet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByEmail(ctx context.Context, email string) (*domain.Wallet, error)
}

// LedgerService is the balance mutation engine and ledger read side.
type LedgerService interface {
	// Apply atomically validates and records one balance mutation. It is
	// deliberately not idempotent: two identical calls append two operations.
	Apply(ctx context.Context, req OperationRequest) (*domain.Operation, error)
	ListOperations(ctx context.Context, params OperationListParams) ([]domain.Operation, int64, error)
	// Audit recomputes the balance from the operation ledger and returns it
	// alongside the stored balance.
	Audit(ctx context.Context, walletID uuid.UUID) (*AuditResult, error)
}

// OperationRequest holds validated input for a balance mutation. Amount is
// already parsed, positive, and within the configured scale by the time it
// reaches the engine.
type OperationRequest struct {
	WalletID uuid.UUID
	Kind     domain.OperationKind
	Amount   decimal.Decimal
}

// AuditResult compares the stored balance with the sum of recorded operations.
type AuditResult struct {
	WalletID          uuid.UUID       `json:"wallet_id"`
	StoredBalance     decimal.Decimal `json:"stored_balance"`
	RecomputedBalance decimal.Decimal `json:"recomputed_balance"`
	Consistent        bool            `json:"consistent"`
}

// BalanceCache is a read-through cache of wallet snapshots keyed by wallet id.
// It is strictly best-effort: a miss or an error falls through to the store,
// and every committed mutation invalidates the entry.
type BalanceCache interface {
	Get(ctx context.Context, walletID uuid.UUID) ([]byte, error) // nil, nil on miss
	Set(ctx context.Context, walletID uuid.UUID, snapshot []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, walletID uuid.UUID) error
}
