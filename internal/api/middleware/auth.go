package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/clinicdesk/backend/internal/domain/entities"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionValidator resolves a bearer token to a session.
type SessionValidator interface {
	Authenticate(ctx context.Context, token string) (*entities.Session, error)
}

// AuthMiddleware rejects requests without a valid bearer token and puts
// the resolved session on the request context.
func AuthMiddleware(validator SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			session, err := validator.Authenticate(r.Context(), token)
			if err != nil {
				unauthorized(w, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the authenticated session, if any.
func SessionFromContext(ctx context.Context) (*entities.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*entities.Session)
	return session, ok
}

// BearerToken extracts the token from an Authorization header. An empty
// string means the header is missing or not a bearer scheme.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
