package domain

import (
	"time"

	"github.com/google/uuid"
)

// SmartAccount is a counterfactual smart-contract account, one per
// (user, chain). Address and Salt are immutable after creation; the address
// is a pure function of (factory, salt, owner, init code hash) and is never
// recomputed to paper over drift. Deployed flips once, on first on-chain use,
// by a collaborator outside this service.
type SmartAccount struct {
	ID           uuid.UUID   `json:"id"`
	UserID       uuid.UUID   `json:"user_id"`
	ChainID      int64       `json:"chain_id"`
	Address      string      `json:"address"`
	Salt         string      `json:"-"` // 32-byte hex CREATE2 salt
	OwnerAddress string      `json:"owner_address"`
	CustodyKind  CustodyKind `json:"custody_kind"`
	Deployed     bool        `json:"deployed"`
	DeployTxHash *string     `json:"deploy_tx_hash,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}
