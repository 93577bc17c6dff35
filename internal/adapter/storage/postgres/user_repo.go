package postgres

import (
	"context"
	"errors"
	"fmt"

	"stablecoin-relay-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	pool Pool
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(pool Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// GetByID fetches a user by UUID. Returns (nil, nil) when the user does not
// exist.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, wallet_address, locale, account_salt, created_at, updated_at
		FROM users WHERE id = $1`

	u := &domain.User{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.WalletAddress, &u.Locale, &u.AccountSalt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// GetByWalletAddress fetches a user by external wallet address,
// case-insensitively. Returns (nil, nil) when no user carries the address.
func (r *UserRepo) GetByWalletAddress(ctx context.Context, address string) (*domain.User, error) {
	query := `SELECT id, wallet_address, locale, account_salt, created_at, updated_at
		FROM users WHERE LOWER(wallet_address) = LOWER($1)`

	u := &domain.User{}
	err := r.pool.QueryRow(ctx, query, address).Scan(
		&u.ID, &u.WalletAddress, &u.Locale, &u.AccountSalt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// EnsureAccountSalt persists salt for the user only if no salt is stored yet,
// then reads back whichever value won. The guarded UPDATE makes concurrent
// first-time provisioners converge on one salt.
func (r *UserRepo) EnsureAccountSalt(ctx context.Context, userID uuid.UUID, salt string) (string, error) {
	update := `UPDATE users SET account_salt = $2, updated_at = NOW()
		WHERE id = $1 AND account_salt IS NULL`
	if _, err := r.pool.Exec(ctx, update, userID, salt); err != nil {
		return "", fmt.Errorf("set account salt: %w", err)
	}

	var stored *string
	query := `SELECT account_salt FROM users WHERE id = $1`
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&stored); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("user not found: %s", userID)
		}
		return "", fmt.Errorf("read account salt: %w", err)
	}
	if stored == nil {
		return "", fmt.Errorf("account salt not persisted for user %s", userID)
	}
	return *stored, nil
}
