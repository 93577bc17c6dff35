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

// ---- Challenge authentication (AUTH) ----

func ErrChallengeRejected() *AppError {
	return New("AUTH_001", "Signature verification failed", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrInvalidAddress() *AppError {
	return New("AUTH_003", "Invalid wallet address", http.StatusBadRequest)
}

// ---- Account provisioning (ACCT) ----

func ErrUserNotFound() *AppError {
	return New("ACCT_001", "User not found", http.StatusNotFound)
}

func ErrNoWalletAddress() *AppError {
	return New("ACCT_002", "Self-custody user has no wallet address", http.StatusUnprocessableEntity)
}

func ErrNoActiveSigningKey() *AppError {
	return New("ACCT_003", "No active signing key for user", http.StatusConflict)
}

// ---- Transaction orchestration (TX) ----

func ErrTransactionNotFound() *AppError {
	return New("TX_001", "Transaction not found", http.StatusNotFound)
}

func ErrTransactionNotPending() *AppError {
	return New("TX_002", "Transaction already reached a terminal state", http.StatusConflict)
}

func ErrEmptySubmission() *AppError {
	return New("TX_003", "Submission contains no calldata items", http.StatusBadRequest)
}

// ---- Validation (VAL) ----

// Validation returns a generic request validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// ---- Configuration (CFG) ----

func ErrUnsupportedChain(chainID int64) *AppError {
	return New("CFG_001", fmt.Sprintf("Chain %d is not configured", chainID), http.StatusUnprocessableEntity)
}

func ConfigurationError(err error) *AppError {
	return Wrap("CFG_002", "Invalid or incomplete configuration", http.StatusInternalServerError, err)
}

// ---- System & infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrVaultFailure(err error) *AppError {
	return Wrap("SYS_002", "Key vault failure", http.StatusInternalServerError, err)
}

func ErrUpstream(err error) *AppError {
	return Wrap("SYS_003", "Upstream relay error", http.StatusBadGateway, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
