// Package relay is the HTTP client for the external relay service that
// batches forward requests into sponsored bundles.
package relay

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"stablecoin-relay-gateway/config"
	"stablecoin-relay-gateway/internal/core/domain"
	"stablecoin-relay-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.RelayClient against the relay's JSON API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewClient creates a relay client from configuration.
func NewClient(cfg config.RelayConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

// NewClientWithHTTP creates a relay client with a caller-supplied HTTP client.
func NewClientWithHTTP(cfg config.RelayConfig, httpClient HTTPClient, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		log:        log,
	}
}

type wireForwardRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Value    string `json:"value"`
	Gas      string `json:"gas"`
	Nonce    uint64 `json:"nonce"`
	Deadline uint64 `json:"deadline"`
	Data     string `json:"data"`
}

type wireSignedRequest struct {
	Request   wireForwardRequest `json:"request"`
	Signature string             `json:"signature"`
}

type createBundleRequest struct {
	ChainID        int64               `json:"chain_id"`
	UserID         string              `json:"user_id,omitempty"`
	SmartAccount   string              `json:"smart_account,omitempty"`
	SignedRequests []wireSignedRequest `json:"signed_requests"`
}

type createBundleResponse struct {
	BundleID string   `json:"bundle_id"`
	TxUUIDs  []string `json:"tx_uuids"`
}

type bundleStatusResponse struct {
	Status       string `json:"status"`
	TxHash       string `json:"tx_hash,omitempty"`
	BlockNumber  int64  `json:"block_number,omitempty"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func encodeSignedRequests(reqs []domain.SignedForwardRequest) []wireSignedRequest {
	out := make([]wireSignedRequest, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, wireSignedRequest{
			Request: wireForwardRequest{
				From:     r.Request.From.Hex(),
				To:       r.Request.To.Hex(),
				Value:    r.Request.Value.String(),
				Gas:      r.Request.Gas.String(),
				Nonce:    r.Request.Nonce,
				Deadline: r.Request.Deadline,
				Data:     "0x" + hex.EncodeToString(r.Request.Data),
			},
			Signature: "0x" + hex.EncodeToString(r.Signature),
		})
	}
	return out
}

// CreateBalanceBundle submits a managed user's gateway-signed bundle.
func (c *Client) CreateBalanceBundle(ctx context.Context, chainID int64, reqs []domain.SignedForwardRequest, userID uuid.UUID, smartAccount string) (*ports.BundleResult, error) {
	body := createBundleRequest{
		ChainID:        chainID,
		UserID:         userID.String(),
		SmartAccount:   smartAccount,
		SignedRequests: encodeSignedRequests(reqs),
	}
	return c.postBundle(ctx, "/v1/bundles/balance", body)
}

// CreateBalanceBundleWithSignedRequests submits client-signed requests.
func (c *Client) CreateBalanceBundleWithSignedRequests(ctx context.Context, chainID int64, reqs []domain.SignedForwardRequest) (*ports.BundleResult, error) {
	body := createBundleRequest{
		ChainID:        chainID,
		SignedRequests: encodeSignedRequests(reqs),
	}
	return c.postBundle(ctx, "/v1/bundles/signed", body)
}

func (c *Client) postBundle(ctx context.Context, path string, body createBundleRequest) (*ports.BundleResult, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal bundle request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build bundle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read relay response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("relay returned %d: %s", resp.StatusCode, string(raw))
	}

	var out createBundleResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode relay response: %w", err)
	}
	if out.BundleID == "" {
		return nil, fmt.Errorf("relay response missing bundle id")
	}

	c.log.Debug().
		Str("bundle_id", out.BundleID).
		Int("tx_count", len(out.TxUUIDs)).
		Msg("Relay bundle created")

	return &ports.BundleResult{BundleID: out.BundleID, TxUUIDs: out.TxUUIDs}, nil
}

// GetBundleStatus fetches the relay's view of a bundle.
func (c *Client) GetBundleStatus(ctx context.Context, bundleID string) (*ports.BundleStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/bundles/"+bundleID, nil)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay status request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read relay status: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("relay returned %d: %s", resp.StatusCode, string(raw))
	}

	var out bundleStatusResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode relay status: %w", err)
	}

	status := ports.BundleStatus{
		TxHash:       out.TxHash,
		BlockNumber:  out.BlockNumber,
		ErrorCode:    out.ErrorCode,
		ErrorMessage: out.ErrorMessage,
	}
	switch out.Status {
	case "CONFIRMED":
		status.Status = ports.BundleStateConfirmed
	case "FAILED":
		status.Status = ports.BundleStateFailed
	case "PENDING", "SUBMITTED", "PROCESSING":
		status.Status = ports.BundleStatePending
	default:
		return nil, fmt.Errorf("relay reported unknown bundle status %q", out.Status)
	}

	return &status, nil
}
