package handler

import (
	"math/big"
	"strconv"
	"time"

	"stablecoin-relay-gateway/config"
	"stablecoin-relay-gateway/internal/adapter/http/dto"
	"stablecoin-relay-gateway/internal/adapter/http/middleware"
	"stablecoin-relay-gateway/internal/core/domain"
	"stablecoin-relay-gateway/internal/core/ports"
	"stablecoin-relay-gateway/pkg/apperror"
	"stablecoin-relay-gateway/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountHandler handles smart account endpoints.
type AccountHandler struct {
	provisioner ports.AccountProvisioner
	accounts    ports.SmartAccountRepository
	reader      ports.ContractReader
	cfg         *config.Config
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(provisioner ports.AccountProvisioner, accounts ports.SmartAccountRepository, reader ports.ContractReader, cfg *config.Config) *AccountHandler {
	return &AccountHandler{provisioner: provisioner, accounts: accounts, reader: reader, cfg: cfg}
}

// EnsureAccount handles POST /api/v1/accounts. Idempotent: returns the
// existing smart account for (user, chain) or provisions one.
func (h *AccountHandler) EnsureAccount(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.EnsureAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	account, err := h.provisioner.EnsureSmartAccount(c.Request.Context(), userID.(uuid.UUID), req.ChainID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toSmartAccountResponse(account))
}

// RotateKey handles POST /api/v1/accounts/rotate-key. Managed custody only.
func (h *AccountHandler) RotateKey(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	key, err := h.provisioner.RotateSigningKey(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.RotateKeyResponse{
		KeyID:     key.ID.String(),
		Address:   key.Address,
		CreatedAt: key.CreatedAt.Format(time.RFC3339),
	})
}

// erc20BalanceOf is the 4-byte selector for balanceOf(address).
var erc20BalanceOf = []byte{0x70, 0xa0, 0x82, 0x31}

// TokenBalance handles GET /api/v1/accounts/balance. Reads the smart
// account's stablecoin balance via fallback RPC. The read is advisory;
// an unreachable chain is reported as an upstream failure, not retried.
func (h *AccountHandler) TokenBalance(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	chainID, err := strconv.ParseInt(c.Query("chain_id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.Validation("malformed chain_id"))
		return
	}
	token := c.Query("token")
	if !common.IsHexAddress(token) {
		response.Error(c, apperror.Validation("malformed token address"))
		return
	}

	chain := h.cfg.Chain(chainID)
	if chain == nil {
		response.Error(c, apperror.ErrUnsupportedChain(chainID))
		return
	}

	account, err := h.accounts.GetByUserAndChain(c.Request.Context(), userID.(uuid.UUID), chainID)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	if account == nil {
		response.Error(c, apperror.ErrUserNotFound())
		return
	}

	holder := common.HexToAddress(account.Address)
	calldata := append(append([]byte{}, erc20BalanceOf...), common.LeftPadBytes(holder.Bytes(), 32)...)

	raw, err := h.reader.Call(c.Request.Context(), chain.RPCURLs, common.HexToAddress(token), calldata)
	if err != nil {
		response.Error(c, apperror.ErrUpstream(err))
		return
	}

	response.OK(c, dto.TokenBalanceResponse{
		Token:   common.HexToAddress(token).Hex(),
		Account: account.Address,
		ChainID: chainID,
		Balance: new(big.Int).SetBytes(raw).String(),
	})
}

// toSmartAccountResponse converts domain.SmartAccount to DTO.
func toSmartAccountResponse(account *domain.SmartAccount) dto.SmartAccountResponse {
	return dto.SmartAccountResponse{
		ID:           account.ID.String(),
		ChainID:      account.ChainID,
		Address:      account.Address,
		OwnerAddress: account.OwnerAddress,
		CustodyKind:  string(account.CustodyKind),
		Deployed:     account.Deployed,
		DeployTxHash: account.DeployTxHash,
		CreatedAt:    account.CreatedAt.Format(time.RFC3339),
	}
}
