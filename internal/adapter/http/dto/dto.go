package dto

// NonceRequest asks for a sign-in challenge for a wallet address.
type NonceRequest struct {
	Address string `json:"address" binding:"required,eth_addr"`
	ChainID int64  `json:"chain_id" binding:"required,gt=0"`
}

// NonceResponse carries the issued nonce and the canonical message the
// wallet must sign verbatim.
type NonceResponse struct {
	Nonce   string `json:"nonce"`
	Message string `json:"message"`
}

// VerifyRequest submits the signed challenge.
type VerifyRequest struct {
	Address   string `json:"address" binding:"required,eth_addr"`
	Message   string `json:"message" binding:"required"`
	Signature string `json:"signature" binding:"required,hex_data"`
}

// VerifyResponse is the session issued after a verified challenge.
type VerifyResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
	UserID string `json:"user_id"`
}

// EnsureAccountRequest asks for the user's smart account on a chain,
// creating it if it does not exist yet.
type EnsureAccountRequest struct {
	ChainID int64 `json:"chain_id" binding:"required,gt=0"`
}

// SmartAccountResponse describes a counterfactual smart account.
type SmartAccountResponse struct {
	ID           string  `json:"id"`
	ChainID      int64   `json:"chain_id"`
	Address      string  `json:"address"`
	OwnerAddress string  `json:"owner_address"`
	CustodyKind  string  `json:"custody_kind"`
	Deployed     bool    `json:"deployed"`
	DeployTxHash *string `json:"deploy_tx_hash,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// RotateKeyResponse describes the freshly activated signing key. The key
// material itself never leaves the vault.
type RotateKeyResponse struct {
	KeyID     string `json:"key_id"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
}

// TokenBalanceResponse is an advisory token balance read off fallback RPC.
type TokenBalanceResponse struct {
	Token   string `json:"token"`
	Account string `json:"account"`
	ChainID int64  `json:"chain_id"`
	Balance string `json:"balance"` // decimal string, token base units
}

// CalldataItemRequest is one pre-encoded contract call on the managed path.
type CalldataItemRequest struct {
	To       string `json:"to" binding:"required,eth_addr"`
	Value    string `json:"value" binding:"required"` // decimal string
	Gas      string `json:"gas" binding:"required"`   // decimal string
	Nonce    uint64 `json:"nonce"`
	Calldata string `json:"calldata" binding:"required,hex_data"`
}

// ForwardRequestBody mirrors the EIP-712 struct a self-custody wallet signed.
type ForwardRequestBody struct {
	From     string `json:"from" binding:"required,eth_addr"`
	To       string `json:"to" binding:"required,eth_addr"`
	Value    string `json:"value" binding:"required"` // decimal string
	Gas      string `json:"gas" binding:"required"`   // decimal string
	Nonce    uint64 `json:"nonce"`
	Deadline uint64 `json:"deadline" binding:"required"`
	Data     string `json:"data" binding:"required,hex_data"`
}

// SignedRequestBody pairs a forward request with its client-side signature.
type SignedRequestBody struct {
	Request   ForwardRequestBody `json:"request" binding:"required"`
	Signature string             `json:"signature" binding:"required,hex_data"`
}

// SubmitRequest is the request body for a bundle submission. Exactly one of
// Items (managed custody) or SignedRequests (self custody) must be populated.
type SubmitRequest struct {
	ChainID        int64                 `json:"chain_id" binding:"required,gt=0"`
	Items          []CalldataItemRequest `json:"items,omitempty"`
	SignedRequests []SignedRequestBody   `json:"signed_requests,omitempty"`
}

// TransactionResponse is the outward view of a relayed transaction.
type TransactionResponse struct {
	ID           string  `json:"id"`
	ChainID      int64   `json:"chain_id"`
	Status       string  `json:"status"`
	BundleID     *string `json:"bundle_id,omitempty"`
	TxHash       *string `json:"tx_hash,omitempty"`
	BlockNumber  *int64  `json:"block_number,omitempty"`
	ErrorCode    *string `json:"error_code,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`
	ConfirmedAt  *string `json:"confirmed_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
