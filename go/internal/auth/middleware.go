package auth

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mcdev12/timesync/go/internal/api"
)

type contextKey struct{}

// userIDHeader carries the caller's identity as asserted by the client after
// it authenticated with the external identity provider. The API trusts it
// without verification; this is the delegated trust boundary of the system.
const userIDHeader = "User-Id"

// Middleware extracts the User-Id header into the request context. Requests
// without a valid header pass through unauthenticated; handlers that require
// identity use RequireUser or UserID.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.Header.Get(userIDHeader); raw != "" {
			if id, err := strconv.Atoi(raw); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), contextKey{}, id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// UserID returns the authenticated user id from the context.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(contextKey{}).(int)
	return id, ok
}

// RequireUser wraps a handler that needs an authenticated caller, answering
// 401 when the User-Id header is missing or malformed.
func RequireUser(next func(w http.ResponseWriter, r *http.Request, userID int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserID(r.Context())
		if !ok {
			api.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, id)
	}
}
