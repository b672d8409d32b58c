package ports

import (
	"context"
	"errors"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ErrDuplicateEmail is returned by WalletRepository.Create when the store's
// uniqueness constraint rejects the email. Concurrent creation races resolve
// here: exactly one insert wins, the rest see this error.
var ErrDuplicateEmail = errors.New("email already bound to a wallet")

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByEmail(ctx context.Context, email string) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error
}

// OperationRepository defines persistence for the append-only operation ledger.
type OperationRepository interface {
	Create(ctx context.Context, tx pgx.Tx, op *domain.Operation) error
	ListByWallet(ctx context.Context, params OperationListParams) ([]domain.Operation, int64, error)
	// SumByWallet returns the signed sum of all operations for a wallet
	// (deposits positive, withdrawals negative). Used for audit recomputation.
	SumByWallet(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error)
}

// OperationListParams holds pagination for listing a wallet's operations.
type OperationListParams struct {
	WalletID uuid.UUID
	Page     int
	PageSize int
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
