package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet & Ledger Business Logic (WAL) ----

// ErrWalletNotFound signals a lookup or mutation against an unknown wallet.
func ErrWalletNotFound() *AppError {
	return New("WAL_001", "Wallet not found", http.StatusNotFound)
}

// ErrEmailConflict signals that the email is already bound to a wallet.
func ErrEmailConflict() *AppError {
	return New("WAL_002", "Email already bound to a wallet", http.StatusConflict)
}

// ErrInsufficientFunds signals a withdrawal that would drive the balance
// negative. Nothing is mutated.
func ErrInsufficientFunds() *AppError {
	return New("WAL_003", "Insufficient funds", http.StatusUnprocessableEntity)
}

// ErrInvalidAmount signals a non-positive, malformed, or over-scale amount.
func ErrInvalidAmount(detail string) *AppError {
	msg := "Invalid amount"
	if detail != "" {
		msg = fmt.Sprintf("Invalid amount: %s", detail)
	}
	return New("WAL_004", msg, http.StatusBadRequest)
}

// ErrInvalidOperationKind signals an operation type outside {DEPOSIT, WITHDRAW}.
func ErrInvalidOperationKind() *AppError {
	return New("WAL_005", "Operation type must be DEPOSIT or WITHDRAW", http.StatusBadRequest)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps a storage or infrastructure failure. These are the only
// errors logged at error severity; the client sees a generic message and may
// safely retry since the transaction rolled back entirely.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a boundary validation error.
func Validation(message string) *AppError {
	return New("WAL_400", message, http.StatusBadRequest)
}
