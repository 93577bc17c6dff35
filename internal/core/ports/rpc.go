package ports

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// ErrNoResult is returned by ContractReader when every endpoint failed or
// returned an empty result.
var ErrNoResult = errors.New("no result from any rpc endpoint")

// ContractReader performs advisory read-only contract calls against a list of
// fallback RPC endpoints. It never mutates chain state.
type ContractReader interface {
	Call(ctx context.Context, rpcURLs []string, target common.Address, calldata []byte) ([]byte, error)
}
