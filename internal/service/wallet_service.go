package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	cache      ports.BalanceCache
	cacheTTL   time.Duration
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	cache ports.BalanceCache,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		log:        log,
	}
}

// Create registers a new wallet with a zero balance. Email uniqueness is
// enforced by the store's unique constraint, not a read-then-write check, so
// concurrent creations with the same email cannot both succeed.
func (s *WalletServiceImpl) Create(ctx context.Context, email string) (*domain.Wallet, error) {
	wallet := domain.NewWallet(email)

	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		if errors.Is(err, ports.ErrDuplicateEmail) {
			return nil, apperror.ErrEmailConflict()
		}
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("email", wallet.Email).
		Msg("wallet created")

	return wallet, nil
}

// GetByID returns a wallet snapshot, reading through the balance cache.
func (s *WalletServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("wallet_id", id.String()).Msg("balance cache read failed, falling through to DB")
	}
	if cached != nil {
		var wallet domain.Wallet
		if err := json.Unmarshal(cached, &wallet); err == nil {
			return &wallet, nil
		}
		s.log.Warn().Str("wallet_id", id.String()).Msg("discarding malformed cached wallet snapshot")
	}

	wallet, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	// Best-effort cache fill
	if snapshot, err := json.Marshal(wallet); err == nil {
		if err := s.cache.Set(ctx, id, snapshot, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Str("wallet_id", id.String()).Msg("failed to cache wallet snapshot")
		}
	}

	return wallet, nil
}

// GetByEmail finds the wallet bound to an email address.
func (s *WalletServiceImpl) GetByEmail(ctx context.Context, email string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet by email: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}
