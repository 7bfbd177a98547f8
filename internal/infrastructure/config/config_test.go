package config_test

import (
	"testing"
	"time"

	"github.com/idrissa183/bankledger/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.ExchangeRateTTL != 6*time.Hour {
		t.Fatalf("expected default rate TTL 6h, got %s", cfg.ExchangeRateTTL)
	}

	if cfg.ExchangeBaseCurrency != "USD" {
		t.Fatalf("expected default base currency USD, got %s", cfg.ExchangeBaseCurrency)
	}

	if cfg.TransferFeePercent != "0.5" {
		t.Fatalf("expected default transfer fee 0.5, got %s", cfg.TransferFeePercent)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("EXCHANGE_RATE_TTL", "1h")
	t.Setenv("EXCHANGE_API_BASE_URL", "http://rates.internal/latest")
	t.Setenv("JWT_SECRET", "top-secret")
	t.Setenv("AUTH_ENABLED", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.ExchangeRateTTL != time.Hour {
		t.Fatalf("expected rate TTL override, got %s", cfg.ExchangeRateTTL)
	}

	if cfg.ExchangeAPIBaseURL != "http://rates.internal/latest" {
		t.Fatalf("expected exchange URL override, got %s", cfg.ExchangeAPIBaseURL)
	}

	if cfg.JWTSecret != "top-secret" || !cfg.AuthEnabled {
		t.Fatalf("expected auth settings to be set, got secret=%s enabled=%v", cfg.JWTSecret, cfg.AuthEnabled)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("EXCHANGE_RATE_TTL", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
