package postgres

import (
	"context"
	"fmt"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OperationRepo implements ports.OperationRepository. Operations are
// append-only: there is deliberately no update or delete here.
type OperationRepo struct {
	pool Pool
}

// NewOperationRepo creates a new OperationRepo.
func NewOperationRepo(pool Pool) *OperationRepo {
	return &OperationRepo{pool: pool}
}

// Create inserts a ledger entry within a database transaction.
func (r *OperationRepo) Create(ctx context.Context, tx pgx.Tx, op *domain.Operation) error {
	query := `INSERT INTO operations (id, wallet_id, kind, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query, op.ID, op.WalletID, op.Kind, op.Amount, op.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// ListByWallet fetches a wallet's operations, newest first, with pagination.
func (r *OperationRepo) ListByWallet(ctx context.Context, params ports.OperationListParams) ([]domain.Operation, int64, error) {
	countQuery := `SELECT COUNT(*) FROM operations WHERE wallet_id = $1`

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, params.WalletID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count operations: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := `SELECT id, wallet_id, kind, amount, created_at
		FROM operations WHERE wallet_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, dataQuery, params.WalletID, params.PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	var ops []domain.Operation
	for rows.Next() {
		op := domain.Operation{}
		if err := rows.Scan(&op.ID, &op.WalletID, &op.Kind, &op.Amount, &op.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan operation row: %w", err)
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate operation rows: %w", err)
	}
	return ops, total, nil
}

// SumByWallet recomputes the signed operation sum for a wallet: deposits
// count positive, withdrawals negative. Served by idx_operations_wallet_id.
func (r *OperationRepo) SumByWallet(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(CASE WHEN kind = 'DEPOSIT' THEN amount ELSE -amount END), 0)
		FROM operations WHERE wallet_id = $1`

	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, walletID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum operations: %w", err)
	}
	return sum, nil
}
