package middleware

import (
	"context"
	"net/http"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/httputil"
)

type contextKeyType string

const userIDKey contextKeyType = "user_id"

// SessionLookup reports the id of the signed-in storefront user, if any.
type SessionLookup func(ctx context.Context) (userID string, ok bool)

// Session puts the signed-in user's id into the request context. Requests
// without a session pass through untouched.
func Session(lookup SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := lookup(r.Context()); ok {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession rejects requests that carry no signed-in user with 401.
// Mount it after Session.
func RequireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserIDFromContext(r.Context()) == "" {
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "please log in"},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext extracts the user ID set by Session.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// WithUserID returns ctx carrying userID the way Session stores it.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
