package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/infrastructure/auth"
)

func TestAuthMiddlewareCountsFailures(t *testing.T) {
	m := sharedMetrics()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	wrapped := AuthMiddleware(jwtManager, m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	testCases := []struct {
		name   string
		header string
		reason string
	}{
		{name: "missing header", header: "", reason: "missing_header"},
		{name: "malformed header", header: "Basic abc", reason: "malformed_header"},
		{name: "invalid token", header: "Bearer not-a-token", reason: "invalid_token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := testutil.ToFloat64(m.AuthFailures.WithLabelValues(tc.reason))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}

			after := testutil.ToFloat64(m.AuthFailures.WithLabelValues(tc.reason))
			if after-before != 1 {
				t.Fatalf("expected %s failure to be counted once, got %v", tc.reason, after-before)
			}
		})
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate(&domain.Principal{
		OwnerID:        "owner-1",
		Email:          "owner@example.com",
		BankingEnabled: true,
	})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var got *domain.Principal
	wrapped := AuthMiddleware(jwtManager, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetPrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got == nil || got.OwnerID != "owner-1" {
		t.Fatalf("expected principal owner-1 in context, got %+v", got)
	}
}

func TestStaticPrincipalInjectsPrincipal(t *testing.T) {
	dev := &domain.Principal{OwnerID: "local-dev", BankingEnabled: true}

	var got *domain.Principal
	wrapped := StaticPrincipal(dev)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetPrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/", nil))

	if got != dev {
		t.Fatalf("expected the injected principal, got %+v", got)
	}
}
