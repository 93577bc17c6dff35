package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stablecoin-relay-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository. Terminal
// transitions are guarded in SQL by status = 'PENDING'; the boolean return
// reports whether this call performed the transition.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new pending transaction.
func (r *TransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, user_id, chain_id, status, bundle_id, tx_hash,
		block_number, error_code, error_message, confirmed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.UserID, t.ChainID, t.Status, t.BundleID, t.TxHash,
		t.BlockNumber, t.ErrorCode, t.ErrorMessage, t.ConfirmedAt, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID. Returns (nil, nil) when it does not
// exist.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT id, user_id, chain_id, status, bundle_id, tx_hash,
		block_number, error_code, error_message, confirmed_at, created_at
		FROM transactions WHERE id = $1`

	t := &domain.Transaction{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.ChainID, &t.Status, &t.BundleID, &t.TxHash,
		&t.BlockNumber, &t.ErrorCode, &t.ErrorMessage, &t.ConfirmedAt, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}

// SetBundleID records the relay bundle id on a still-pending transaction.
func (r *TransactionRepo) SetBundleID(ctx context.Context, id uuid.UUID, bundleID string) error {
	query := `UPDATE transactions SET bundle_id = $2 WHERE id = $1 AND status = 'PENDING'`

	tag, err := r.pool.Exec(ctx, query, id, bundleID)
	if err != nil {
		return fmt.Errorf("set bundle id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not pending: %s", id)
	}
	return nil
}

// MarkConfirmed transitions a pending transaction to CONFIRMED. Returns false
// without error when the transaction already reached a terminal state.
func (r *TransactionRepo) MarkConfirmed(ctx context.Context, id uuid.UUID, txHash string, blockNumber int64, confirmedAt time.Time) (bool, error) {
	query := `UPDATE transactions
		SET status = 'CONFIRMED', tx_hash = $2, block_number = $3, confirmed_at = $4
		WHERE id = $1 AND status = 'PENDING'`

	tag, err := r.pool.Exec(ctx, query, id, txHash, blockNumber, confirmedAt)
	if err != nil {
		return false, fmt.Errorf("mark transaction confirmed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkFailed transitions a pending transaction to FAILED. Returns false
// without error when the transaction already reached a terminal state.
func (r *TransactionRepo) MarkFailed(ctx context.Context, id uuid.UUID, code, message string) (bool, error) {
	query := `UPDATE transactions
		SET status = 'FAILED', error_code = $2, error_message = $3
		WHERE id = $1 AND status = 'PENDING'`

	tag, err := r.pool.Exec(ctx, query, id, code, message)
	if err != nil {
		return false, fmt.Errorf("mark transaction failed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
