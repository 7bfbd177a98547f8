package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Transfer metrics
	TransfersCompleted *prometheus.CounterVec
	TransferAmount     prometheus.Histogram
	TransferErrors     *prometheus.CounterVec
	FeesCharged        prometheus.Counter

	// Account metrics
	AccountsOpened       prometheus.Counter
	AccountsDeactivated  prometheus.Counter
	DepositsCompleted    prometheus.Counter
	WithdrawalsCompleted prometheus.Counter

	// Exchange rate metrics
	RateRefreshes     *prometheus.CounterVec
	RateCacheHits     prometheus.Counter
	RateCacheMisses   prometheus.Counter
	ConversionsServed prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransfersCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankledger_transfers_completed_total",
				Help: "Total number of completed transfers",
			},
			[]string{"destination"},
		),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankledger_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankledger_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),
		FeesCharged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_fees_charged_total",
			Help: "Total number of transfer fees charged",
		}),

		AccountsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),
		AccountsDeactivated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_accounts_deactivated_total",
			Help: "Total number of accounts deactivated",
		}),
		DepositsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_deposits_completed_total",
			Help: "Total number of completed deposits",
		}),
		WithdrawalsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_withdrawals_completed_total",
			Help: "Total number of completed withdrawals",
		}),

		RateRefreshes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankledger_rate_refreshes_total",
				Help: "Total exchange rate refreshes by outcome",
			},
			[]string{"outcome"},
		),
		RateCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_rate_cache_hits_total",
			Help: "Total exchange rate cache hits",
		}),
		RateCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_rate_cache_misses_total",
			Help: "Total exchange rate cache misses",
		}),
		ConversionsServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_conversions_served_total",
			Help: "Total currency conversions served",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankledger_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
