// Package rpc reads contract state over JSON-RPC. Reads are advisory: every
// endpoint in the list is tried in priority order and a failure moves on to
// the next rather than surfacing to the caller.
package rpc

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stablecoin-relay-gateway/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

const endpointTimeout = 5 * time.Second

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ReadThroughReader implements ports.ContractReader over plain JSON-RPC
// eth_call, falling back across endpoints.
type ReadThroughReader struct {
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewReadThroughReader creates a reader with a default HTTP client.
func NewReadThroughReader(log zerolog.Logger) *ReadThroughReader {
	return &ReadThroughReader{
		httpClient: &http.Client{Timeout: endpointTimeout},
		log:        log,
	}
}

// NewReadThroughReaderWithHTTP creates a reader with a caller-supplied HTTP client.
func NewReadThroughReaderWithHTTP(httpClient HTTPClient, log zerolog.Logger) *ReadThroughReader {
	return &ReadThroughReader{httpClient: httpClient, log: log}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result string    `json:"result"`
	Error  *rpcError `json:"error"`
}

// Call tries each endpoint in order until one yields a non-empty result.
// Returns ports.ErrNoResult when every endpoint failed or returned nothing.
func (r *ReadThroughReader) Call(ctx context.Context, rpcURLs []string, target common.Address, calldata []byte) ([]byte, error) {
	for _, url := range rpcURLs {
		out, err := r.callOne(ctx, url, target, calldata)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.log.Debug().Err(err).Str("endpoint", url).Msg("RPC endpoint failed, trying next")
			continue
		}
		return out, nil
	}
	return nil, ports.ErrNoResult
}

func (r *ReadThroughReader) callOne(ctx context.Context, url string, target common.Address, calldata []byte) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, endpointTimeout)
	defer cancel()

	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "eth_call",
		Params: []any{
			map[string]string{
				"to":   target.Hex(),
				"data": "0x" + hex.EncodeToString(calldata),
			},
			"latest",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rpc request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read rpc response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rpc returned %d", resp.StatusCode)
	}

	var out rpcResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode rpc response: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("rpc error %d: %s", out.Error.Code, out.Error.Message)
	}

	result := strings.TrimPrefix(out.Result, "0x")
	if result == "" {
		return nil, fmt.Errorf("rpc returned empty result")
	}
	decoded, err := hex.DecodeString(result)
	if err != nil {
		return nil, fmt.Errorf("decode rpc result: %w", err)
	}
	return decoded, nil
}
