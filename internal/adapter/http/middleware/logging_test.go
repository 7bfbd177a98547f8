package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddlewareEmitsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	lm := NewLoggingMiddleware(logger)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"acc-1"}`))
	})

	// RequestID runs first so the log line can pick up the generated id.
	wrapped := chimiddleware.RequestID(lm.Wrap(handler))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.NotEmpty(t, entry["request_id"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/api/v1/accounts/", entry["path"])
	assert.Equal(t, float64(http.StatusCreated), entry["status"])
	assert.Equal(t, float64(len(`{"id":"acc-1"}`)), entry["bytes"])
}

func TestLoggingMiddlewareDefaultsTo200(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	lm := NewLoggingMiddleware(logger)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	lm.Wrap(handler).ServeHTTP(rec, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(http.StatusOK), entry["status"])
}
