package handler

import (
	"stablecoin-relay-gateway/config"
	"stablecoin-relay-gateway/internal/adapter/http/middleware"
	"stablecoin-relay-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.ChallengeAuthService
	UserRepo       ports.UserRepository
	TokenSvc       ports.TokenService
	Provisioner    ports.AccountProvisioner
	AccountRepo    ports.SmartAccountRepository
	Reader         ports.ContractReader
	Orchestrator   ports.BundleOrchestrator
	TxRepo         ports.TransactionRepository
	HealthCheckers []ports.HealthChecker
	Config         *config.Config
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc, deps.UserRepo, deps.TokenSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/nonce", authHandler.Nonce)
		auth.POST("/verify", authHandler.Verify)
	}

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	accountHandler := NewAccountHandler(deps.Provisioner, deps.AccountRepo, deps.Reader, deps.Config)
	paymentHandler := NewPaymentHandler(deps.Orchestrator, deps.TxRepo)

	accounts := v1.Group("/accounts", jwtAuth)
	{
		accounts.POST("", accountHandler.EnsureAccount)
		accounts.POST("/rotate-key", accountHandler.RotateKey)
		accounts.GET("/balance", accountHandler.TokenBalance)
	}

	payments := v1.Group("/payments", jwtAuth)
	{
		payments.POST("", paymentHandler.Submit)
		payments.GET("/:id", paymentHandler.GetTransaction)
	}

	return r
}
