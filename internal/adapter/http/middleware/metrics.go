package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/idrissa183/bankledger/internal/infrastructure/metrics"
)

// MetricsMiddleware records HTTP metrics.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with request metrics.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// normalizePath collapses resource IDs so metric labels stay low-cardinality,
// e.g. /api/v1/accounts/01ABC -> /api/v1/accounts/:id.
func normalizePath(path string) string {
	for _, prefix := range []string{
		"/api/v1/accounts/",
		"/api/v1/transactions/",
		"/api/v1/beneficiaries/",
	} {
		if strings.HasPrefix(path, prefix) && len(path) > len(prefix) {
			rest := path[len(prefix):]

			head := rest
			suffix := ""
			if i := strings.IndexByte(rest, '/'); i >= 0 {
				head = rest[:i]
				suffix = rest[i:]
			}

			// Verb sub-routes (deposit, withdrawal, transfer) are not IDs.
			switch head {
			case "deposit", "withdrawal", "transfer":
				return path
			}

			return prefix + ":id" + suffix
		}
	}

	return path
}
