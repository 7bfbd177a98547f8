package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	httpAdapter "github.com/idrissa183/bankledger/internal/adapter/http"
	"github.com/idrissa183/bankledger/internal/adapter/http/handler"
	"github.com/idrissa183/bankledger/internal/adapter/http/middleware"
	"github.com/idrissa183/bankledger/internal/adapter/ratesource"
	postgresRepo "github.com/idrissa183/bankledger/internal/adapter/repository/postgres"
	redisRepo "github.com/idrissa183/bankledger/internal/adapter/repository/redis"
	"github.com/idrissa183/bankledger/internal/infrastructure/auth"
	"github.com/idrissa183/bankledger/internal/infrastructure/config"
	"github.com/idrissa183/bankledger/internal/infrastructure/logger"
	"github.com/idrissa183/bankledger/internal/infrastructure/metrics"
	"github.com/idrissa183/bankledger/internal/infrastructure/postgres"
	"github.com/idrissa183/bankledger/internal/infrastructure/redis"
	"github.com/idrissa183/bankledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	feePercent, err := decimal.NewFromString(cfg.TransferFeePercent)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.TransferFeePercent).Msg("invalid transfer fee percent")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()
	clock := usecase.SystemClock{}

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	beneficiaryRepo := postgresRepo.NewBeneficiaryRepository(pool)
	rateRepo := postgresRepo.NewRateRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	refGen := postgresRepo.NewHexRefGenerator()
	retrier := postgresRepo.NewRetrier(log)

	rateSource := ratesource.NewClient(cfg.ExchangeAPIBaseURL, cfg.ExchangeHTTPTimeout, log)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen, refGen, clock, log)
	rateUC := usecase.NewRateUseCase(rateRepo, rateSource, cfg.ExchangeBaseCurrency, cfg.ExchangeRateTTL, clock, log)
	transferUC := usecase.NewTransferUseCase(usecase.TransferDeps{
		TxManager:     txManager,
		Accounts:      accountRepo,
		Transactions:  transactionRepo,
		Beneficiaries: beneficiaryRepo,
		Rates:         rateUC,
		RowID:         idGen,
		Refs:          refGen,
		Retrier:       retrier,
		Clock:         clock,
		FeePercent:    feePercent,
		FeesCharged:   m.FeesCharged,
		Logger:        log,
	})
	transactionUC := usecase.NewTransactionUseCase(transactionRepo, accountRepo)
	beneficiaryUC := usecase.NewBeneficiaryUseCase(beneficiaryRepo, idGen, clock, log)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo, log)

	rateUC.InstrumentCache(m.RateCacheHits, m.RateCacheMisses)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC, m),
		TransferHandler:    handler.NewTransferHandler(transferUC, m),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		BeneficiaryHandler: handler.NewBeneficiaryHandler(beneficiaryUC),
		RateHandler:        handler.NewRateHandler(rateUC, m),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		JWTManager:         jwtManager,
		AuthEnabled:        cfg.AuthEnabled,
		RateLimiter:        rateLimiter,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		Metrics:            m,
		Logger:             log,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
