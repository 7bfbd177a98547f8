package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/idrissa183/bankledger/internal/adapter/http/handler"
	"github.com/idrissa183/bankledger/internal/adapter/http/middleware"
	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/infrastructure/auth"
	"github.com/idrissa183/bankledger/internal/infrastructure/metrics"
	"github.com/idrissa183/bankledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	TransferHandler    *handler.TransferHandler
	TransactionHandler *handler.TransactionHandler
	BeneficiaryHandler *handler.BeneficiaryHandler
	RateHandler        *handler.RateHandler
	LedgerHandler      *handler.LedgerHandler
	HealthHandler      *handler.HealthHandler
	JWTManager         *auth.JWTManager
	AuthEnabled        bool
	RateLimiter        *middleware.RateLimiter
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	Metrics            *metrics.Metrics
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthEnabled && cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager, cfg.Metrics))
			r.Use(middleware.RequireBanking)
		} else {
			// Auth disabled: every request runs as a local development
			// principal so the ledger endpoints stay reachable.
			r.Use(middleware.StaticPrincipal(&domain.Principal{
				OwnerID:        "local-dev",
				Email:          "dev@localhost",
				BankingEnabled: true,
			}))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Open)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Post("/{id}/deactivate", cfg.AccountHandler.Deactivate)
		})

		// Transactions and money movement
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Post("/deposit", cfg.TransferHandler.Deposit)
			r.Post("/withdrawal", cfg.TransferHandler.Withdraw)
			r.Post("/transfer", cfg.TransferHandler.Transfer)
		})

		// Beneficiaries
		r.Route("/beneficiaries", func(r chi.Router) {
			r.Post("/", cfg.BeneficiaryHandler.Create)
			r.Get("/", cfg.BeneficiaryHandler.List)
			r.Delete("/{id}", cfg.BeneficiaryHandler.Delete)
		})

		// Exchange rates
		r.Post("/currency/convert", cfg.RateHandler.Convert)
		r.Get("/currency/convert", cfg.RateHandler.Convert)
		r.Post("/rates/refresh", cfg.RateHandler.Refresh)

		// Ledger
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
