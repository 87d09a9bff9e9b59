package middleware

import (
	"net/http"
	"strings"

	"github.com/rkotecha/tilebill-backend/api/responses"
	pkgerrors "github.com/rkotecha/tilebill-backend/pkg/errors"
	"github.com/rkotecha/tilebill-backend/pkg/logger"
)

const (
	sessionIDHeader = "X-Session-Id"
	userIDHeader    = "X-User-Id"
	userEmailHeader = "X-User-Email"
)

// Identity seeds the request context with the caller's session and user
// identity from trusted gateway headers. It never rejects; route groups
// that need a session add RequireSession on top.
func Identity(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID := strings.TrimSpace(r.Header.Get(sessionIDHeader))
			userID := strings.TrimSpace(r.Header.Get(userIDHeader))
			email := strings.TrimSpace(r.Header.Get(userEmailHeader))

			if sessionID != "" {
				ctx = WithSessionID(ctx, sessionID)
				if logg != nil {
					ctx = logg.WithSessionID(ctx, sessionID)
				}
			}
			if userID != "" || email != "" {
				ctx = WithUserIdentity(ctx, userID, email)
				if logg != nil && userID != "" {
					ctx = logg.WithOwnerID(ctx, userID)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests whose context carries no session id.
func RequireSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SessionIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
