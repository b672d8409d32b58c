package dto

// CreateWalletRequest is the request body for wallet registration.
type CreateWalletRequest struct {
	Email string `json:"email" binding:"required,email,max=254"`
}

// OperationRequest is the request body for a balance mutation.
// Amount is a decimal string so values survive the trip without
// floating-point rounding.
type OperationRequest struct {
	OperationType string `json:"operation_type" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
}

// WalletResponse is the response body for wallet queries.
type WalletResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Balance   string `json:"balance"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// OperationResponse is the response body for an applied operation.
type OperationResponse struct {
	ID            string `json:"id"`
	WalletID      string `json:"wallet_id"`
	OperationType string `json:"operation_type"`
	Amount        string `json:"amount"`
	CreatedAt     string `json:"created_at"`
}

// OperationListResponse wraps a paginated operation history.
type OperationListResponse struct {
	Operations []OperationResponse `json:"operations"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
}

// AuditResponse is the response for a ledger consistency check.
type AuditResponse struct {
	WalletID          string `json:"wallet_id"`
	StoredBalance     string `json:"stored_balance"`
	RecomputedBalance string `json:"recomputed_balance"`
	Consistent        bool   `json:"consistent"`
}
