package ports

import (
	"context"
	"crypto/ecdsa"
	"time"

	"stablecoin-relay-gateway/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// TypedDataSigner owns EIP-712 hashing/signing for forward requests,
// forwarder calldata encoding and counterfactual address derivation. The
// only failure modes are configuration ones (unsupported chain, missing
// factory constants); per-call inputs are validated upstream.
type TypedDataSigner interface {
	DomainSeparator(chainID int64) (common.Hash, error)
	HashForwardRequest(req domain.ForwardRequest) common.Hash
	TypedDataHash(chainID int64, req domain.ForwardRequest) (common.Hash, error)
	SignForwardRequest(key *ecdsa.PrivateKey, chainID int64, req domain.ForwardRequest) (*domain.SignedForwardRequest, error)
	EncodeExecuteCalldata(req domain.ForwardRequest, signature []byte) ([]byte, error)
	CounterfactualAddress(salt string, owner common.Address) (common.Address, error)
}

// KeyVault encrypts and decrypts raw signing-key material with an
// authenticated cipher. There is no API to export plaintext persistently;
// decrypted bytes live only inside the scope of a signing call.
type KeyVault interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(ciphertext string) ([]byte, error)
}

// ChallengeAuthService implements the wallet sign-in challenge flow.
type ChallengeAuthService interface {
	GenerateNonce(ctx context.Context, address string) (string, error)
	BuildMessage(address, nonce string, chainID int64) string
	// Verify returns the checksummed verified address and true on success.
	// Every failure mode — unknown or expired nonce, nonce mismatch, bad
	// signature, recovered address mismatch — yields ("", false); the
	// caller treats it as a rejected login, never as a server error.
	Verify(ctx context.Context, address, message string, signature []byte) (string, bool)
}

// AccountProvisioner creates and maintains smart accounts and their managed
// signing keys.
type AccountProvisioner interface {
	EnsureSmartAccount(ctx context.Context, userID uuid.UUID, chainID int64) (*domain.SmartAccount, error)
	RotateSigningKey(ctx context.Context, userID uuid.UUID) (*domain.SigningKey, error)
}

// SubmitRequest is the validated input for a bundle submission.
type SubmitRequest struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	ChainID       int64
	Items         []domain.CalldataItem
	// SignedRequests, when non-empty, selects the self-custody path: the
	// requests were signed client-side and the gateway never touches a key.
	SignedRequests []domain.SignedForwardRequest
}

// BundleOrchestrator submits transaction bundles to the relay and drives the
// transaction state machine off recurring status polls.
type BundleOrchestrator interface {
	Submit(ctx context.Context, req SubmitRequest) (*domain.Transaction, error)
	HandlePoll(ctx context.Context, task Task) error
}

// TokenService issues and validates session tokens handed out after a
// successful challenge verification.
type TokenService interface {
	Generate(userID uuid.UUID, walletAddress string) (string, time.Time, error)
	Validate(token string) (*TokenClaims, error)
}

// TokenClaims holds the parsed session claims.
type TokenClaims struct {
	UserID        uuid.UUID
	WalletAddress string
}
