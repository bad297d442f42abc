package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"settlement-ledger/config"
	httpHandler "settlement-ledger/internal/adapter/http/handler"
	pgStorage "settlement-ledger/internal/adapter/storage/postgres"
	redisStorage "settlement-ledger/internal/adapter/storage/redis"
	"settlement-ledger/internal/adapter/token"
	"settlement-ledger/internal/core/domain"
	"settlement-ledger/internal/core/ports"
	"settlement-ledger/internal/service"
	"settlement-ledger/pkg/logger"
	"settlement-ledger/pkg/percent"

	"github.com/rs/zerolog"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Settlement Ledger")

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
	merchantRepo := pgStorage.NewMerchantRepo(pool)
	operatorRepo := pgStorage.NewOperatorRepo(pool)
	setlRepo := pgStorage.NewSettlementRepo(pool)
	ledgerRepo := pgStorage.NewLedgerRepo(pool)
	commRepo := pgStorage.NewCommissionRepo(pool)
	eventRepo := pgStorage.NewEventRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	nonceStore := redisStorage.NewNonceStore(rdb)
	opLock := redisStorage.NewOperationLock(rdb)
	payerCtr := redisStorage.NewPayerCounter(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize the bridge transferor. All value enters and leaves the
	// ledger through the custody account on the token bridge.
	bridgeClient := token.NewHTTPBridgeClient(cfg.Bridge, log)
	transferor := token.NewTransferor(bridgeClient, cfg.Bridge.CustodyAccount)

	// Initialize core services
	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	sigSvc := service.NewHMACSignatureService()
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Seed commission settings on first start. Later changes go through
	// the admin API, never through config reloads.
	if err := seedCommissionSettings(ctx, commRepo, cfg.Commission, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed commission settings")
	}

	// Initialize business services. The directory service doubles as the
	// settlement engine's read-only merchant view, so it goes first.
	authSvc := service.NewAuthService(operatorRepo, hashSvc, tokenSvc, log)
	directorySvc := service.NewDirectoryService(merchantRepo, encSvc, eventRepo, log)
	settlementSvc := service.NewSettlementService(
		setlRepo,
		ledgerRepo,
		commRepo,
		directorySvc,
		transferor,
		opLock,
		payerCtr,
		eventRepo,
		transactor,
		log,
	)
	custodySvc := service.NewCustodyService(ledgerRepo, commRepo, transferor, opLock, eventRepo, log)
	reportingSvc := service.NewReportingService(setlRepo, ledgerRepo, commRepo, eventRepo)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		SettlementSvc:  settlementSvc,
		CustodySvc:     custodySvc,
		DirectorySvc:   directorySvc,
		ReportingSvc:   reportingSvc,
		MerchantRepo:   merchantRepo,
		EncSvc:         encSvc,
		SigSvc:         sigSvc,
		NonceStore:     nonceStore,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
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

	log.Info().Msg("Server exited")
}

// seedCommissionSettings writes the bootstrap commission row when the
// database has none yet. An existing row always wins over config. The
// seeded values pass the same checks the admin API enforces, so a bad
// SL_COMMISSION_RATE fails startup instead of pricing payments.
func seedCommissionSettings(ctx context.Context, repo ports.CommissionRepository, cfg config.CommissionConfig, log zerolog.Logger) error {
	settings, err := repo.GetSettings(ctx)
	if err != nil {
		return err
	}
	if settings != nil {
		return nil
	}

	if !percent.InRange(cfg.Rate, 0, percent.RateScale) {
		return fmt.Errorf("commission rate %d outside 0..%d", cfg.Rate, percent.RateScale)
	}
	if domain.IsZeroAddress(cfg.Receiver) {
		return fmt.Errorf("commission receiver is not set")
	}

	if err := repo.UpdateSettings(ctx, &domain.CommissionSettings{
		Receiver: cfg.Receiver,
		Rate:     cfg.Rate,
	}); err != nil {
		return err
	}

	log.Info().
		Str("receiver", cfg.Receiver).
		Uint32("rate", cfg.Rate).
		Msg("Commission settings seeded from config")
	return nil
}
