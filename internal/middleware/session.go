package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/baharkarakas/ereceipt-backend/internal/api/httpx"
	"github.com/baharkarakas/ereceipt-backend/internal/auth"
)

type sessionKey struct{}

// SessionReceipt returns the receipt id carried by a verified view session.
func SessionReceipt(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(sessionKey{}).(string)
	return v, ok
}

// ViewSession reads "Authorization: Bearer <viewToken>". A present but invalid
// token is always rejected; a missing one only when required is set.
func ViewSession(sm *auth.SessionManager, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if ah == "" {
				if required {
					httpx.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "Missing token", nil)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			if len(ah) < 7 || !strings.EqualFold(ah[:7], "bearer ") {
				httpx.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "Invalid token", nil)
				return
			}
			rid, err := sm.Parse(strings.TrimSpace(ah[7:]))
			if err != nil {
				httpx.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "Invalid token", nil)
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey{}, rid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
