package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/idrissa183/bankledger/internal/domain"
	"github.com/idrissa183/bankledger/internal/infrastructure/auth"
	"github.com/idrissa183/bankledger/internal/infrastructure/metrics"
)

// ContextKey is the type for context keys.
type ContextKey string

// PrincipalContextKey is the context key for the authenticated principal.
const PrincipalContextKey ContextKey = "principal"

// AuthMiddleware verifies the bearer token and stores the caller's principal
// in the request context. m may be nil.
func AuthMiddleware(jwtManager *auth.JWTManager, m *metrics.Metrics) func(http.Handler) http.Handler {
	authFailure := func(reason string) {
		if m != nil {
			m.AuthFailures.WithLabelValues(reason).Inc()
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				authFailure("missing_header")
				http.Error(w, "missing authorization header", http.StatusUnauthorized)

				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				authFailure("malformed_header")
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)

				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				authFailure("invalid_token")
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)

				return
			}

			ctx := context.WithValue(r.Context(), PrincipalContextKey, claims.Principal())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaticPrincipal injects a fixed principal into every request. It backs the
// auth-disabled mode used in local development, where the API must still
// reach the usecases that expect an authenticated caller.
func StaticPrincipal(principal *domain.Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), PrincipalContextKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireBanking rejects callers whose account does not have the banking
// entitlement.
func RequireBanking(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := GetPrincipalFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if !principal.CanUseBanking() {
			http.Error(w, domain.ErrBankingDisabled.Error(), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetPrincipalFromContext extracts the authenticated principal from context.
func GetPrincipalFromContext(ctx context.Context) (*domain.Principal, bool) {
	principal, ok := ctx.Value(PrincipalContextKey).(*domain.Principal)
	return principal, ok
}
