package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"reclaim/pkg/requestcontext"

	id "reclaim/pkg/domain"
)

// JWTValidator validates bearer tokens issued by the external auth system.
// Token issuance is not this service's job; it only verifies and extracts the
// acting user.
type JWTValidator interface {
	ValidateToken(tokenString string) (id.UserID, error)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated user ID in the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				http.Error(w, `{"error":"missing bearer token"}`, http.StatusUnauthorized)
				return
			}
			userID, err := validator.ValidateToken(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected",
					"error", err,
					"request_id", requestcontext.RequestID(r.Context()),
				)
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := requestcontext.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the user ID when a valid token is present but lets
// anonymous requests through. Item reports may be anonymous; a valid token
// just records the reporter as the item's owning user.
func OptionalAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := validator.ValidateToken(token)
			if err != nil {
				// A present-but-invalid token is rejected rather than treated
				// as anonymous, so callers notice expired credentials.
				logger.DebugContext(r.Context(), "token rejected",
					"error", err,
					"request_id", requestcontext.RequestID(r.Context()),
				)
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := requestcontext.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
