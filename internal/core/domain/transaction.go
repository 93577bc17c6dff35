package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus represents the lifecycle state of a relayed transaction.
// The only legal transitions are PENDING -> CONFIRMED and PENDING -> FAILED;
// both are terminal and applied exactly once.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusConfirmed TransactionStatus = "CONFIRMED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Error codes recorded on failed transactions.
const (
	ErrorCodeExecutionFailed = "EXECUTION_FAILED"
	ErrorCodeNoSmartAccount  = "NO_SMART_ACCOUNT"
	ErrorCodePollTimeout     = "POLL_TIMEOUT"
)

// Transaction tracks one relayed bundle submission from creation to its
// terminal state.
type Transaction struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"user_id"`
	ChainID      int64             `json:"chain_id"`
	Status       TransactionStatus `json:"status"`
	BundleID     *string           `json:"bundle_id,omitempty"`
	TxHash       *string           `json:"tx_hash,omitempty"`
	BlockNumber  *int64            `json:"block_number,omitempty"`
	ErrorCode    *string           `json:"error_code,omitempty"`
	ErrorMessage *string           `json:"error_message,omitempty"`
	ConfirmedAt  *time.Time        `json:"confirmed_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// IsTerminal returns true once the transaction can no longer change state.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusConfirmed || t.Status == TransactionStatusFailed
}
