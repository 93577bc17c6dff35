package domain

import (
	"time"

	"github.com/google/uuid"
)

// CustodyKind distinguishes who controls the smart account's owner key.
type CustodyKind string

const (
	// CustodyManaged means the gateway generated and vaulted the owner key.
	CustodyManaged CustodyKind = "MANAGED"
	// CustodySelfCustody means the user's own wallet is the owner.
	CustodySelfCustody CustodyKind = "SELF_CUSTODY"
)

// User is referenced, not owned, by this service. AccountSalt is the one
// field the gateway writes: a per-user CREATE2 salt generated exactly once.
type User struct {
	ID            uuid.UUID  `json:"id"`
	WalletAddress *string    `json:"wallet_address,omitempty"`
	Locale        string     `json:"locale"`
	AccountSalt   *string    `json:"-"` // 32-byte hex, stable across provisioning
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// Custody returns the custody kind implied by the presence of an external
// wallet address. The dispatch is exhaustive: every user is one or the other.
func (u *User) Custody() CustodyKind {
	if u.WalletAddress != nil && *u.WalletAddress != "" {
		return CustodySelfCustody
	}
	return CustodyManaged
}
