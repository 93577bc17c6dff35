package domain

import (
	"time"

	"github.com/google/uuid"
)

// SigningKey is a vaulted secp256k1 key owned by the gateway on behalf of a
// managed user. At most one key per user is active at a time. Keys are
// soft-revoked on rotation, never physically destroyed; EncryptedKey only
// ever holds vault ciphertext.
type SigningKey struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	Address      string     `json:"address"`
	EncryptedKey string     `json:"-"`
	Active       bool       `json:"active"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
