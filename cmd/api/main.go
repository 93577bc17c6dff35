package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stablecoin-relay-gateway/config"
	httpHandler "stablecoin-relay-gateway/internal/adapter/http/handler"
	"stablecoin-relay-gateway/internal/adapter/queue"
	"stablecoin-relay-gateway/internal/adapter/relay"
	"stablecoin-relay-gateway/internal/adapter/rpc"
	pgStorage "stablecoin-relay-gateway/internal/adapter/storage/postgres"
	redisStorage "stablecoin-relay-gateway/internal/adapter/storage/redis"
	"stablecoin-relay-gateway/internal/core/ports"
	"stablecoin-relay-gateway/internal/service"
	"stablecoin-relay-gateway/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("relay-gateway", cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Int("chains", len(cfg.Chains)).
		Msg("Starting Stablecoin Relay Gateway")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	userRepo := pgStorage.NewUserRepo(pool)
	accountRepo := pgStorage.NewSmartAccountRepo(pool)
	keyRepo := pgStorage.NewSigningKeyRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	challengeStore := redisStorage.NewChallengeStore(rdb)

	// Initialize core services
	signer, err := service.NewEIP712Signer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize typed data signer")
	}
	vault, err := service.NewAESKeyVault(cfg.Vault.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize key vault")
	}
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	authSvc := service.NewChallengeAuthService(cfg, challengeStore, log)

	// Initialize relay client, RPC reader and poll worker
	relayClient := relay.NewClient(cfg.Relay, log)
	reader := rpc.NewReadThroughReader(log)
	worker := queue.NewWorker(log)

	// Initialize business services
	accountSvc := service.NewAccountService(userRepo, accountRepo, keyRepo, signer, vault, transactor, cfg, log)
	bundleSvc := service.NewBundleService(txRepo, accountRepo, keyRepo, vault, signer, relayClient, worker, cfg, log)
	worker.Register(ports.TaskKindPollBundle, bundleSvc.HandlePoll)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		UserRepo:       userRepo,
		TokenSvc:       tokenSvc,
		Provisioner:    accountSvc,
		AccountRepo:    accountRepo,
		Reader:         reader,
		Orchestrator:   bundleSvc,
		TxRepo:         txRepo,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Config:         cfg,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Drain in-flight poll tasks before exiting
	worker.Stop()

	log.Info().Msg("Server exited")
}
