package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vhforbes/boot-webserver/pkg/errors"
)

const jwtTestSecret = "jwt-test-secret-key-32-characters!"

func TestMakeJWT_RoundTrip(t *testing.T) {
	token, err := MakeJWT("u-1234", time.Hour, jwtTestSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := ValidateJWT(token, jwtTestSecret)
	require.NoError(t, err)
	assert.Equal(t, "u-1234", subject)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := MakeJWT("u-1234", time.Hour, jwtTestSecret)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "a-completely-different-secret-key")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized), "expected ErrUnauthorized, got: %v", err)
}

func TestValidateJWT_Expired(t *testing.T) {
	token, err := MakeJWT("u-1234", -time.Minute, jwtTestSecret)
	require.NoError(t, err)

	_, err = ValidateJWT(token, jwtTestSecret)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized), "expected ErrUnauthorized, got: %v", err)
}

func TestValidateJWT_Malformed(t *testing.T) {
	for _, tokenString := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := ValidateJWT(tokenString, jwtTestSecret)
		require.Error(t, err, "token %q", tokenString)
		assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	}
}

func TestValidateJWT_EveryFlippedByteRejected(t *testing.T) {
	token, err := MakeJWT("u-1234", time.Hour, jwtTestSecret)
	require.NoError(t, err)

	for i := 0; i < len(token); i++ {
		altered := []byte(token)
		altered[i] ^= 0x01
		if string(altered) == token {
			continue
		}

		subject, err := ValidateJWT(string(altered), jwtTestSecret)
		if err == nil {
			// A flip inside base64 padding bits can decode to the same
			// payload; the subject must still be intact.
			assert.Equal(t, "u-1234", subject, "byte %d", i)
			continue
		}
		assert.True(t, errors.Is(err, apperrors.ErrUnauthorized), "byte %d: %v", i, err)
	}
}

func TestValidateJWT_WrongIssuer(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "u-1234",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtTestSecret))
	require.NoError(t, err)

	_, err = ValidateJWT(token, jwtTestSecret)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestValidateJWT_MissingSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtTestSecret))
	require.NoError(t, err)

	_, err = ValidateJWT(token, jwtTestSecret)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestValidateJWT_MissingExpiry(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:   TokenIssuer,
		Subject:  "u-1234",
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtTestSecret))
	require.NoError(t, err)

	_, err = ValidateJWT(token, jwtTestSecret)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestValidateJWT_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Subject:   "u-1234",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateJWT(token, jwtTestSecret)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}
