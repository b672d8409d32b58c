package handler

import (
	"strconv"
	"time"

	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

const timeFormat = time.RFC3339Nano

// LedgerHandler handles balance mutation and history endpoints.
type LedgerHandler struct {
	ledgerSvc ports.LedgerService
	scale     int32
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerSvc ports.LedgerService, scale int32) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc, scale: scale}
}

// ApplyOperation handles POST /api/v1/wallets/:id/operation.
func (h *LedgerHandler) ApplyOperation(c *gin.Context) {
	walletID, ok := parseWalletID(c)
	if !ok {
		return
	}

	var req dto.OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(dto.ValidationMessage(err)))
		return
	}
	dto.SanitizeStruct(&req)

	kind := domain.OperationKind(req.OperationType)
	if !kind.Valid() {
		response.Error(c, apperror.ErrInvalidOperationKind())
		return
	}

	amount, err := domain.ParseAmount(req.Amount, h.scale)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount(err.Error()))
		return
	}

	op, err := h.ledgerSvc.Apply(c.Request.Context(), ports.OperationRequest{
		WalletID: walletID,
		Kind:     kind,
		Amount:   amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toOperationResponse(op, h.scale))
}

// ListOperations handles GET /api/v1/wallets/:id/operations.
func (h *LedgerHandler) ListOperations(c *gin.Context) {
	walletID, ok := parseWalletID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	ops, total, err := h.ledgerSvc.ListOperations(c.Request.Context(), ports.OperationListParams{
		WalletID: walletID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.OperationResponse, 0, len(ops))
	for i := range ops {
		items = append(items, toOperationResponse(&ops[i], h.scale))
	}

	response.OK(c, dto.OperationListResponse{
		Operations: items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
	})
}

// Audit handles GET /api/v1/wallets/:id/audit.
func (h *LedgerHandler) Audit(c *gin.Context) {
	walletID, ok := parseWalletID(c)
	if !ok {
		return
	}

	result, err := h.ledgerSvc.Audit(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.AuditResponse{
		WalletID:          result.WalletID.String(),
		StoredBalance:     result.StoredBalance.StringFixed(h.scale),
		RecomputedBalance: result.RecomputedBalance.StringFixed(h.scale),
		Consistent:        result.Consistent,
	})
}

func toOperationResponse(op *domain.Operation, scale int32) dto.OperationResponse {
	return dto.OperationResponse{
		ID:            op.ID.String(),
		WalletID:      op.WalletID.String(),
		OperationType: string(op.Kind),
		Amount:        op.Amount.StringFixed(scale),
		CreatedAt:     op.CreatedAt.UTC().Format(timeFormat),
	}
}
