package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	apperrors "github.com/vhforbes/boot-webserver/pkg/errors"
)

// refreshTokenBytes is the entropy of an opaque refresh token.
const refreshTokenBytes = 32

// MakeRefreshToken generates an opaque session token from 32 bytes of
// cryptographically secure randomness, hex-encoded.
func MakeRefreshToken() (string, error) {
	raw := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", apperrors.Internal(fmt.Errorf("generate refresh token: %w", err))
	}
	return hex.EncodeToString(raw), nil
}
