package handler

import (
	"math/big"
	"time"

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

// PaymentHandler handles bundle submission and transaction lookup.
type PaymentHandler struct {
	orchestrator ports.BundleOrchestrator
	transactions ports.TransactionRepository
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(orchestrator ports.BundleOrchestrator, transactions ports.TransactionRepository) *PaymentHandler {
	return &PaymentHandler{orchestrator: orchestrator, transactions: transactions}
}

// Submit handles POST /api/v1/payments. The submission is accepted and
// settled asynchronously; the response carries the transaction to poll.
func (h *PaymentHandler) Submit(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	if len(req.Items) > 0 && len(req.SignedRequests) > 0 {
		response.Error(c, apperror.Validation("items and signed_requests are mutually exclusive"))
		return
	}

	submit := ports.SubmitRequest{
		UserID:  userID.(uuid.UUID),
		ChainID: req.ChainID,
	}

	for _, item := range req.Items {
		parsed, err := toCalldataItem(item)
		if err != nil {
			response.Error(c, err)
			return
		}
		submit.Items = append(submit.Items, parsed)
	}
	for _, sr := range req.SignedRequests {
		parsed, err := toSignedForwardRequest(sr)
		if err != nil {
			response.Error(c, err)
			return
		}
		submit.SignedRequests = append(submit.SignedRequests, parsed)
	}

	txn, err := h.orchestrator.Submit(c.Request.Context(), submit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Accepted(c, toTransactionResponse(txn))
}

// GetTransaction handles GET /api/v1/payments/:id. Callers only see their
// own transactions.
func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("malformed transaction id"))
		return
	}

	txn, err := h.transactions.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	if txn == nil || txn.UserID != userID.(uuid.UUID) {
		response.Error(c, apperror.ErrTransactionNotFound())
		return
	}

	response.OK(c, toTransactionResponse(txn))
}

func toCalldataItem(item dto.CalldataItemRequest) (domain.CalldataItem, error) {
	value, ok := new(big.Int).SetString(item.Value, 10)
	if !ok || value.Sign() < 0 {
		return domain.CalldataItem{}, apperror.Validation("value must be a non-negative decimal string")
	}
	gas, ok := new(big.Int).SetString(item.Gas, 10)
	if !ok || gas.Sign() <= 0 {
		return domain.CalldataItem{}, apperror.Validation("gas must be a positive decimal string")
	}
	calldata, err := dto.DecodeHex(item.Calldata)
	if err != nil {
		return domain.CalldataItem{}, apperror.Validation("malformed calldata")
	}
	return domain.CalldataItem{
		To:       common.HexToAddress(item.To),
		Value:    value,
		Gas:      gas,
		Nonce:    item.Nonce,
		Calldata: calldata,
	}, nil
}

func toSignedForwardRequest(sr dto.SignedRequestBody) (domain.SignedForwardRequest, error) {
	value, ok := new(big.Int).SetString(sr.Request.Value, 10)
	if !ok || value.Sign() < 0 {
		return domain.SignedForwardRequest{}, apperror.Validation("value must be a non-negative decimal string")
	}
	gas, ok := new(big.Int).SetString(sr.Request.Gas, 10)
	if !ok || gas.Sign() <= 0 {
		return domain.SignedForwardRequest{}, apperror.Validation("gas must be a positive decimal string")
	}
	data, err := dto.DecodeHex(sr.Request.Data)
	if err != nil {
		return domain.SignedForwardRequest{}, apperror.Validation("malformed request data")
	}
	signature, err := dto.DecodeHex(sr.Signature)
	if err != nil || len(signature) != 65 {
		return domain.SignedForwardRequest{}, apperror.Validation("signature must be 65 bytes")
	}
	return domain.SignedForwardRequest{
		Request: domain.ForwardRequest{
			From:     common.HexToAddress(sr.Request.From),
			To:       common.HexToAddress(sr.Request.To),
			Value:    value,
			Gas:      gas,
			Nonce:    sr.Request.Nonce,
			Deadline: sr.Request.Deadline,
			Data:     data,
		},
		Signature: signature,
	}, nil
}

// toTransactionResponse converts domain.Transaction to DTO.
func toTransactionResponse(txn *domain.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:           txn.ID.String(),
		ChainID:      txn.ChainID,
		Status:       string(txn.Status),
		BundleID:     txn.BundleID,
		TxHash:       txn.TxHash,
		BlockNumber:  txn.BlockNumber,
		ErrorCode:    txn.ErrorCode,
		ErrorMessage: txn.ErrorMessage,
		CreatedAt:    txn.CreatedAt.Format(time.RFC3339),
	}
	if txn.ConfirmedAt != nil {
		s := txn.ConfirmedAt.Format(time.RFC3339)
		resp.ConfirmedAt = &s
	}
	return resp
}
