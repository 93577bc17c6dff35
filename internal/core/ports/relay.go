package ports

import (
	"context"

	"stablecoin-relay-gateway/internal/core/domain"

	"github.com/google/uuid"
)

// BundleState is the relay's view of a submitted bundle.
type BundleState string

const (
	BundleStatePending   BundleState = "PENDING"
	BundleStateConfirmed BundleState = "CONFIRMED"
	BundleStateFailed    BundleState = "FAILED"
)

// BundleResult is returned by the relay on a successful submission.
type BundleResult struct {
	BundleID string
	TxUUIDs  []string
}

// BundleStatus is a point-in-time snapshot of a bundle's progress.
type BundleStatus struct {
	Status       BundleState
	TxHash       string
	BlockNumber  int64
	ErrorCode    string
	ErrorMessage string
}

// RelayClient talks to the external relay service that batches forward
// requests into bundles and sponsors their gas.
type RelayClient interface {
	// CreateBalanceBundle submits a managed user's bundle. The requests were
	// signed gateway-side from the user's vaulted key; the relay attributes
	// the bundle to the user's smart account.
	CreateBalanceBundle(ctx context.Context, chainID int64, reqs []domain.SignedForwardRequest, userID uuid.UUID, smartAccount string) (*BundleResult, error)
	// CreateBalanceBundleWithSignedRequests submits forward requests that
	// were already signed, either server-side from a vaulted key or
	// client-side for self-custody wallets.
	CreateBalanceBundleWithSignedRequests(ctx context.Context, chainID int64, reqs []domain.SignedForwardRequest) (*BundleResult, error)
	GetBundleStatus(ctx context.Context, bundleID string) (*BundleStatus, error)
}
