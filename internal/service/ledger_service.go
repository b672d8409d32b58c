package service

import (
	"context"
	"fmt"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LedgerServiceImpl implements ports.LedgerService.
type LedgerServiceImpl struct {
	walletRepo ports.WalletRepository
	opRepo     ports.OperationRepository
	cache      ports.BalanceCache
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	walletRepo ports.WalletRepository,
	opRepo ports.OperationRepository,
	cache ports.BalanceCache,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		walletRepo: walletRepo,
		opRepo:     opRepo,
		cache:      cache,
		transactor: transactor,
		log:        log,
	}
}

// Apply mutates a wallet balance with pessimistic locking. The wallet row is
// locked for the duration of the transaction, so concurrent operations on the
// same wallet serialize and each one sees the balance left by the previous.
func (s *LedgerServiceImpl) Apply(ctx context.Context, req ports.OperationRequest) (*domain.Operation, error) {
	if !req.Kind.Valid() {
		return nil, apperror.ErrInvalidOperationKind()
	}
	if req.Amount.Sign() <= 0 {
		return nil, apperror.ErrInvalidAmount("amount must be positive")
	}

	// Begin database transaction
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock & get wallet
	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, req.WalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	// Business rule: sufficient funds
	if req.Kind == domain.OperationWithdraw && !wallet.CanWithdraw(req.Amount) {
		return nil, apperror.ErrInsufficientFunds()
	}

	op := domain.NewOperation(wallet.ID, req.Kind, req.Amount)
	newBalance := wallet.Balance.Add(op.Signed())

	// Persist: update wallet balance
	if err := s.walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	// Persist: append operation record
	if err := s.opRepo.Create(ctx, dbTx, op); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create operation: %w", err))
	}

	// Commit
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	// Post-process: drop stale cached snapshot (best-effort)
	if err := s.cache.Invalidate(ctx, wallet.ID); err != nil {
		s.log.Warn().Err(err).Str("wallet_id", wallet.ID.String()).Msg("failed to invalidate balance cache")
	}

	s.log.Info().
		Str("operation_id", op.ID.String()).
		Str("wallet_id", wallet.ID.String()).
		Str("kind", string(op.Kind)).
		Str("amount", op.Amount.String()).
		Str("balance", newBalance.String()).
		Msg("operation applied")

	return op, nil
}

// ListOperations returns a page of a wallet's operation history, newest first.
func (s *LedgerServiceImpl) ListOperations(ctx context.Context, params ports.OperationListParams) ([]domain.Operation, int64, error) {
	wallet, err := s.walletRepo.GetByID(ctx, params.WalletID)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, 0, apperror.ErrWalletNotFound()
	}

	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}

	ops, total, err := s.opRepo.ListByWallet(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list operations: %w", err))
	}
	return ops, total, nil
}

// Audit recomputes a wallet's balance from its operation history and compares
// it with the stored balance.
func (s *LedgerServiceImpl) Audit(ctx context.Context, walletID uuid.UUID) (*ports.AuditResult, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	recomputed, err := s.opRepo.SumByWallet(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("sum operations: %w", err))
	}

	result := &ports.AuditResult{
		WalletID:          walletID,
		StoredBalance:     wallet.Balance,
		RecomputedBalance: recomputed,
		Consistent:        wallet.Balance.Equal(recomputed),
	}

	if !result.Consistent {
		s.log.Error().
			Str("wallet_id", walletID.String()).
			Str("stored", wallet.Balance.String()).
			Str("recomputed", recomputed.String()).
			Msg("ledger inconsistency detected")
	}

	return result, nil
}
