package handler

import (
	"net/http"

	"stablecoin-relay-gateway/internal/adapter/http/dto"
	"stablecoin-relay-gateway/internal/core/ports"
	"stablecoin-relay-gateway/pkg/apperror"
	"stablecoin-relay-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles the wallet sign-in challenge endpoints.
type AuthHandler struct {
	authSvc  ports.ChallengeAuthService
	users    ports.UserRepository
	tokenSvc ports.TokenService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.ChallengeAuthService, users ports.UserRepository, tokenSvc ports.TokenService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, users: users, tokenSvc: tokenSvc}
}

// Nonce handles POST /api/v1/auth/nonce. Issues a fresh challenge nonce and
// the canonical message the wallet must sign.
func (h *AuthHandler) Nonce(c *gin.Context) {
	var req dto.NonceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	nonce, err := h.authSvc.GenerateNonce(c.Request.Context(), req.Address)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NonceResponse{
		Nonce:   nonce,
		Message: h.authSvc.BuildMessage(req.Address, nonce, req.ChainID),
	})
}

// Verify handles POST /api/v1/auth/verify. A verified challenge is exchanged
// for a session token; every verification failure is the same rejection.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	signature, err := dto.DecodeHex(req.Signature)
	if err != nil {
		response.Error(c, apperror.Validation("malformed signature"))
		return
	}

	verified, ok := h.authSvc.Verify(c.Request.Context(), req.Address, req.Message, signature)
	if !ok {
		response.Error(c, apperror.ErrChallengeRejected())
		return
	}

	user, err := h.users.GetByWalletAddress(c.Request.Context(), verified)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	if user == nil {
		response.Error(c, apperror.ErrUserNotFound())
		return
	}

	token, expiry, err := h.tokenSvc.Generate(user.ID, verified)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	response.OK(c, dto.VerifyResponse{
		Token:  token,
		Expiry: expiry.Unix(),
		UserID: user.ID.String(),
	})
}

// HealthCheck handles GET /health — deep health check verifying all dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
