package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// SessionCookie is the name of the cookie carrying the session id.
const SessionCookie = "sid"

type ctxKey string

const userKey ctxKey = "user"

// Authenticator resolves a session id to a user id, returning 0 when the
// session is unknown or expired.
type Authenticator interface {
	Authenticate(ctx context.Context, sid string) (int64, error)
}

// WithSession loads the user of the request's session cookie into the
// context. Requests without a valid session pass through anonymously; a
// failing session store is logged and treated the same way.
func WithSession(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := auth.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				logger.Error("failed to load session", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// RequireUser rejects requests that carry no authenticated user with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserIDFromContext(r.Context()) == 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Not authenticated"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// GetUserIDFromContext extracts the authenticated user id from the request
// context. Returns 0 if not found.
func GetUserIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(userKey).(int64); ok {
		return id
	}
	return 0
}
