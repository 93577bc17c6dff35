package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stablecoin-relay-gateway/internal/core/domain"
	"stablecoin-relay-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SigningKeyRepo implements ports.SigningKeyRepository. A partial unique
// index on (user_id) WHERE active enforces at most one active key per user.
type SigningKeyRepo struct {
	pool Pool
}

// NewSigningKeyRepo creates a new SigningKeyRepo.
func NewSigningKeyRepo(pool Pool) *SigningKeyRepo {
	return &SigningKeyRepo{pool: pool}
}

// Create inserts a signing key within a database transaction. Violating the
// single-active-key index surfaces as ports.ErrDuplicate.
func (r *SigningKeyRepo) Create(ctx context.Context, tx pgx.Tx, k *domain.SigningKey) error {
	query := `INSERT INTO signing_keys (id, user_id, address, encrypted_key, active, revoked_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		k.ID, k.UserID, k.Address, k.EncryptedKey, k.Active, k.RevokedAt, k.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ports.ErrDuplicate
		}
		return fmt.Errorf("insert signing key: %w", err)
	}
	return nil
}

// GetActiveByUser fetches the user's active signing key, or (nil, nil) when
// the user has none.
func (r *SigningKeyRepo) GetActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.SigningKey, error) {
	query := `SELECT id, user_id, address, encrypted_key, active, revoked_at, created_at
		FROM signing_keys WHERE user_id = $1 AND active = TRUE`

	k := &domain.SigningKey{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&k.ID, &k.UserID, &k.Address, &k.EncryptedKey, &k.Active, &k.RevokedAt, &k.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan signing key: %w", err)
	}
	return k, nil
}

// Revoke soft-revokes a key within a database transaction. The row is kept;
// only the active flag flips.
func (r *SigningKeyRepo) Revoke(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) error {
	query := `UPDATE signing_keys SET active = FALSE, revoked_at = $2 WHERE id = $1 AND active = TRUE`

	tag, err := tx.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("revoke signing key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("signing key not found or already revoked: %s", id)
	}
	return nil
}
