package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/google/uuid"
)

type ctxKey string

const (
	claimsKey    ctxKey = "claims"
	requestIDKey ctxKey = "requestID"
)

// ClaimsFromContext returns the claims attached by the access guard.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// requireAccessToken is the access guard: it rejects requests without a
// bearer token (401) or with a token that fails verification against the
// access secret (403), and attaches the decoded claims to the request
// context for downstream handlers.
func (s *Server) requireAccessToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			s.writeError(r.Context(), w, http.StatusUnauthorized, "missing token")
			return
		}

		claims, err := s.verifier.VerifyAccess(token)
		if err != nil {
			s.writeError(r.Context(), w, http.StatusForbidden, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withRequestID assigns a request id to every inbound request and logs it.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-Id", reqID)

		ctx := context.WithValue(r.Context(), requestIDKey, reqID)
		s.logger.With("req_id", reqID).Info(ctx, "request", "method", r.Method, "path", r.URL.Path)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
