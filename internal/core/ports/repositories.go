package ports

import (
	"context"
	"errors"
	"time"

	"stablecoin-relay-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrDuplicate is returned by Create methods when a uniqueness constraint
// rejects the row. Callers are expected to re-read the winning row instead
// of treating this as a failure.
var ErrDuplicate = errors.New("duplicate row")

// UserRepository reads users and manages the one field this service owns on
// them: the per-user account salt.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetByWalletAddress looks a user up by external wallet address,
	// case-insensitively. Returns nil when no user carries the address.
	GetByWalletAddress(ctx context.Context, address string) (*domain.User, error)
	// EnsureAccountSalt persists salt for the user if none is set yet and
	// returns the salt that ended up stored. Concurrent callers with
	// different candidate salts converge on a single persisted value.
	EnsureAccountSalt(ctx context.Context, userID uuid.UUID, salt string) (string, error)
}

// SmartAccountRepository persists counterfactual smart accounts.
// (user_id, chain_id) carries a uniqueness constraint; Create surfaces a
// violation as ErrDuplicate so provisioning can converge.
type SmartAccountRepository interface {
	Create(ctx context.Context, tx pgx.Tx, account *domain.SmartAccount) error
	GetByUserAndChain(ctx context.Context, userID uuid.UUID, chainID int64) (*domain.SmartAccount, error)
	MarkDeployed(ctx context.Context, id uuid.UUID, deployTxHash string) error
}

// SigningKeyRepository persists vaulted signing keys. Methods accepting
// pgx.Tx participate in provisioning/rotation transactions so the
// one-active-key-per-user invariant holds atomically.
type SigningKeyRepository interface {
	Create(ctx context.Context, tx pgx.Tx, key *domain.SigningKey) error
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.SigningKey, error)
	Revoke(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) error
}

// TransactionRepository persists relayed transactions. Both terminal
// transitions are guarded in SQL by status = PENDING and report whether the
// transition actually happened, making repeat calls no-ops.
type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	SetBundleID(ctx context.Context, id uuid.UUID, bundleID string) error
	MarkConfirmed(ctx context.Context, id uuid.UUID, txHash string, blockNumber int64, confirmedAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID, code, message string) (bool, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ChallengeStore is the ephemeral nonce store backing challenge auth.
type ChallengeStore interface {
	// Put stores the challenge keyed by the lowercased address with the
	// given TTL, replacing any prior unconsumed challenge for that address.
	Put(ctx context.Context, address string, ch domain.Challenge, ttl time.Duration) error
	// ConsumeIfMatch atomically deletes the stored challenge if its nonce
	// equals nonce. Returns true only when the challenge existed, matched
	// and was deleted by this call.
	ConsumeIfMatch(ctx context.Context, address, nonce string) (bool, error)
}
