package handler

import (
	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet directory endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
	scale     int32
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService, scale int32) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc, scale: scale}
}

// CreateWallet handles POST /api/v1/wallets.
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(dto.ValidationMessage(err)))
		return
	}
	dto.SanitizeStruct(&req)

	wallet, err := h.walletSvc.Create(c.Request.Context(), req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toWalletResponse(wallet, h.scale))
}

// GetWallet handles GET /api/v1/wallets/:id.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	id, ok := parseWalletID(c)
	if !ok {
		return
	}

	wallet, err := h.walletSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWalletResponse(wallet, h.scale))
}

// FindWallet handles GET /api/v1/wallets?email=.
func (h *WalletHandler) FindWallet(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Error(c, apperror.Validation("email query parameter is required"))
		return
	}

	wallet, err := h.walletSvc.GetByEmail(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWalletResponse(wallet, h.scale))
}

// parseWalletID extracts and validates the :id path parameter. On failure it
// writes the error response and returns ok=false.
func parseWalletID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("wallet id must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func toWalletResponse(w *domain.Wallet, scale int32) dto.WalletResponse {
	return dto.WalletResponse{
		ID:        w.ID.String(),
		Email:     w.Email,
		Balance:   w.Balance.StringFixed(scale),
		CreatedAt: w.CreatedAt.UTC().Format(timeFormat),
		UpdatedAt: w.UpdatedAt.UTC().Format(timeFormat),
	}
}
