package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/vhforbes/boot-webserver/pkg/errors"
)

type contextKeyType string

const userIDKey contextKeyType = "user_id"

// Authenticator resolves the authenticated user id from request headers.
// The service injects its own header parsing and token codec so this
// middleware stays transport-only and a single parser owns the header
// contract.
type Authenticator func(headers http.Header) (string, error)

// Auth authenticates requests through the injected Authenticator and puts
// the resolved user id into the request context. Any authentication failure
// is rejected with 401.
func Auth(authenticate Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := authenticate(r.Header)
			if err != nil {
				message := "invalid or expired token"
				var appErr *apperrors.AppError
				if errors.As(err, &appErr) {
					message = appErr.Message
				}
				writeAuthError(w, message)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user id from the request context.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
