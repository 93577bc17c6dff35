package domain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// maxUint48 bounds the forwarder's nonce and deadline fields, which are
// uint48 on-chain.
const maxUint48 = 1<<48 - 1

// ForwardRequest is the struct a user (or the gateway on their behalf) signs
// so a relayer can execute the call through the trusted forwarder. It is
// built per submission and never persisted beyond its signature artifact.
type ForwardRequest struct {
	From     common.Address
	To       common.Address
	Value    *big.Int
	Gas      *big.Int
	Nonce    uint64
	Deadline uint64 // unix seconds
	Data     []byte
}

// Validate rejects requests the forwarder contract would revert on, before
// any signing or submission happens.
func (r *ForwardRequest) Validate() error {
	if r.To == (common.Address{}) {
		return fmt.Errorf("forward request: zero target address")
	}
	if r.Value == nil || r.Value.Sign() < 0 {
		return fmt.Errorf("forward request: value must be a non-negative integer")
	}
	if r.Gas == nil || r.Gas.Sign() <= 0 {
		return fmt.Errorf("forward request: gas must be a positive integer")
	}
	if r.Nonce > maxUint48 {
		return fmt.Errorf("forward request: nonce %d exceeds uint48", r.Nonce)
	}
	if r.Deadline > maxUint48 {
		return fmt.Errorf("forward request: deadline %d exceeds uint48", r.Deadline)
	}
	return nil
}

// SignedForwardRequest pairs a forward request with its EIP-712 signature.
type SignedForwardRequest struct {
	Request       ForwardRequest
	Signature     []byte // 65-byte r||s||v
	TypedDataHash common.Hash
}

// CalldataItem is one pre-encoded contract call inside a submission; the
// orchestrator wraps each item into a forward request on the managed path.
type CalldataItem struct {
	To       common.Address
	Value    *big.Int
	Gas      *big.Int
	Nonce    uint64
	Calldata []byte
}

// Validate applies the same forwarder bounds a wrapped request must satisfy,
// so a malformed item is rejected before any row is created or key touched.
func (i *CalldataItem) Validate() error {
	if i.To == (common.Address{}) {
		return fmt.Errorf("calldata item: zero target address")
	}
	if i.Value != nil && i.Value.Sign() < 0 {
		return fmt.Errorf("calldata item: value must be a non-negative integer")
	}
	if i.Gas == nil || i.Gas.Sign() <= 0 {
		return fmt.Errorf("calldata item: gas must be a positive integer")
	}
	if i.Nonce > maxUint48 {
		return fmt.Errorf("calldata item: nonce %d exceeds uint48", i.Nonce)
	}
	return nil
}
