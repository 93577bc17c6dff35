package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"stablecoin-relay-gateway/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTarget = common.HexToAddress("0x6666666666666666666666666666666666666666")

func rpcServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestCall_FirstEndpointSucceeds(t *testing.T) {
	srv := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, "eth_call", req.Method)
		require.Len(t, req.Params, 2)
		call := req.Params[0].(map[string]any)
		assert.Equal(t, testTarget.Hex(), call["to"])
		assert.Equal(t, "0xdeadbeef", call["data"])
		assert.Equal(t, "latest", req.Params[1])

		json.NewEncoder(w).Encode(rpcResponse{Result: "0x0102"})
	})

	reader := NewReadThroughReader(zerolog.Nop())
	out, err := reader.Call(context.Background(), []string{srv.URL}, testTarget, []byte{0xde, 0xad, 0xbe, 0xef})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, out)
}

func TestCall_FallsBackOnFailure(t *testing.T) {
	bad := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})
	rpcErr := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(rpcResponse{Error: &rpcError{Code: -32000, Message: "execution reverted"}})
	})
	empty := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(rpcResponse{Result: "0x"})
	})
	var goodHits atomic.Int32
	good := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		goodHits.Add(1)
		json.NewEncoder(w).Encode(rpcResponse{Result: "0xff"})
	})

	reader := NewReadThroughReader(zerolog.Nop())
	out, err := reader.Call(context.Background(), []string{bad.URL, rpcErr.URL, empty.URL, good.URL}, testTarget, []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff}, out)
	assert.Equal(t, int32(1), goodHits.Load())
}

func TestCall_AllEndpointsFail(t *testing.T) {
	down := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})
	empty := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(rpcResponse{Result: "0x"})
	})

	reader := NewReadThroughReader(zerolog.Nop())
	_, err := reader.Call(context.Background(), []string{down.URL, empty.URL}, testTarget, []byte{0x01})
	assert.ErrorIs(t, err, ports.ErrNoResult)
}

func TestCall_NoEndpoints(t *testing.T) {
	reader := NewReadThroughReader(zerolog.Nop())
	_, err := reader.Call(context.Background(), nil, testTarget, []byte{0x01})
	assert.ErrorIs(t, err, ports.ErrNoResult)
}

func TestCall_CanceledContext(t *testing.T) {
	srv := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(rpcResponse{Result: "0x01"})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewReadThroughReader(zerolog.Nop())
	_, err := reader.Call(ctx, []string{srv.URL, srv.URL}, testTarget, []byte{0x01})
	assert.ErrorIs(t, err, context.Canceled)
}
