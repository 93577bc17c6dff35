package postgres

import (
	"context"
	"errors"
	"fmt"

	"stablecoin-relay-gateway/internal/core/domain"
	"stablecoin-relay-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// SmartAccountRepo implements ports.SmartAccountRepository.
type SmartAccountRepo struct {
	pool Pool
}

// NewSmartAccountRepo creates a new SmartAccountRepo.
func NewSmartAccountRepo(pool Pool) *SmartAccountRepo {
	return &SmartAccountRepo{pool: pool}
}

// Create inserts a smart account within a database transaction. A unique
// constraint violation on (user_id, chain_id) surfaces as ports.ErrDuplicate.
func (r *SmartAccountRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.SmartAccount) error {
	query := `INSERT INTO smart_accounts (id, user_id, chain_id, address, salt, owner_address,
		custody_kind, deployed, deploy_tx_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		a.ID, a.UserID, a.ChainID, a.Address, a.Salt, a.OwnerAddress,
		a.CustodyKind, a.Deployed, a.DeployTxHash, a.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ports.ErrDuplicate
		}
		return fmt.Errorf("insert smart account: %w", err)
	}
	return nil
}

// GetByUserAndChain fetches the user's smart account on a chain. Returns
// (nil, nil) when none exists.
func (r *SmartAccountRepo) GetByUserAndChain(ctx context.Context, userID uuid.UUID, chainID int64) (*domain.SmartAccount, error) {
	query := `SELECT id, user_id, chain_id, address, salt, owner_address,
		custody_kind, deployed, deploy_tx_hash, created_at
		FROM smart_accounts WHERE user_id = $1 AND chain_id = $2`

	a := &domain.SmartAccount{}
	err := r.pool.QueryRow(ctx, query, userID, chainID).Scan(
		&a.ID, &a.UserID, &a.ChainID, &a.Address, &a.Salt, &a.OwnerAddress,
		&a.CustodyKind, &a.Deployed, &a.DeployTxHash, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan smart account: %w", err)
	}
	return a, nil
}

// MarkDeployed flips the deployed flag once and records the deploying
// transaction hash. Repeat calls are no-ops.
func (r *SmartAccountRepo) MarkDeployed(ctx context.Context, id uuid.UUID, deployTxHash string) error {
	query := `UPDATE smart_accounts SET deployed = TRUE, deploy_tx_hash = $2
		WHERE id = $1 AND deployed = FALSE`

	if _, err := r.pool.Exec(ctx, query, id, deployTxHash); err != nil {
		return fmt.Errorf("mark smart account deployed: %w", err)
	}
	return nil
}
