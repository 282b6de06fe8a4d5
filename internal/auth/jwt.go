package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/vhforbes/boot-webserver/pkg/errors"
)

// TokenIssuer is the iss claim stamped into every access token.
const TokenIssuer = "chirpy"

// MakeJWT signs a short-lived access token asserting the given user id.
// The payload is exactly {iss, sub, iat, exp}; the subject is never taken
// from untrusted input by callers.
func MakeJWT(userID string, expiresIn time.Duration, secret string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", apperrors.Internal(apperrors.Wrap(err, "sign access token"))
	}

	return signed, nil
}

// ValidateJWT verifies an access token and returns its subject user id.
// It fails with an unauthorized error when the signature does not verify,
// the token is malformed, the signing method is not HMAC, the issuer is
// wrong, exp has passed, or the subject claim is absent.
func ValidateJWT(tokenString, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("invalid or expired token")
	}

	if claims.Subject == "" {
		return "", apperrors.Unauthorized("token has no subject")
	}

	return claims.Subject, nil
}
