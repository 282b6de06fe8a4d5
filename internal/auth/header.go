package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	apperrors "github.com/vhforbes/boot-webserver/pkg/errors"
)

const (
	bearerPrefix = "Bearer "
	apiKeyPrefix = "ApiKey "
)

// GetBearerToken extracts the token from an `Authorization: Bearer <token>`
// header. A missing or malformed header is unauthorized.
func GetBearerToken(headers http.Header) (string, error) {
	return tokenFromHeader(headers, bearerPrefix)
}

// GetAPIKey extracts the key from an `Authorization: ApiKey <key>` header.
// A missing or malformed header is unauthorized.
func GetAPIKey(headers http.Header) (string, error) {
	return tokenFromHeader(headers, apiKeyPrefix)
}

func tokenFromHeader(headers http.Header, prefix string) (string, error) {
	authHeader := headers.Get("Authorization")
	if authHeader == "" {
		return "", apperrors.Unauthorized("missing authorization header")
	}

	if !strings.HasPrefix(authHeader, prefix) {
		return "", apperrors.Unauthorized("malformed authorization header")
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
	if token == "" {
		return "", apperrors.Unauthorized("malformed authorization header")
	}

	return token, nil
}

// ValidateAPIKey compares a presented API key against the configured one in
// constant time, so the comparison does not leak key length or content via
// timing. Any mismatch is unauthorized.
func ValidateAPIKey(presented, configured string) error {
	if configured == "" {
		return apperrors.Unauthorized("api key not configured")
	}
	if subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) != 1 {
		return apperrors.Unauthorized("invalid api key")
	}
	return nil
}
