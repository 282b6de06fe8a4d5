package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Sentinel error identity ---

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrBadRequest, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrInternal,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

// --- AppError behavior ---

func TestAppError_ErrorString_WithWrappedError(t *testing.T) {
	inner := fmt.Errorf("db connection lost")
	appErr := &AppError{Message: "something broke", Err: inner}
	assert.Contains(t, appErr.Error(), "something broke")
	assert.Contains(t, appErr.Error(), "db connection lost")
}

func TestAppError_ErrorString_WithoutWrappedError(t *testing.T) {
	appErr := &AppError{Message: "user not found"}
	assert.Equal(t, "user not found", appErr.Error())
}

func TestAppError_Unwrap_PrefersWrappedError(t *testing.T) {
	inner := fmt.Errorf("scan failed")
	appErr := &AppError{Message: "nope", Kind: ErrNotFound, Err: inner}
	assert.Equal(t, inner, appErr.Unwrap())
}

func TestAppError_Unwrap_FallsBackToKind(t *testing.T) {
	appErr := &AppError{Message: "nope", Kind: ErrNotFound}
	assert.Equal(t, ErrNotFound, appErr.Unwrap())
}

func TestAppError_Is_MatchesKind(t *testing.T) {
	appErr := &AppError{Message: "bad token", Kind: ErrUnauthorized, Err: fmt.Errorf("parse failed")}
	assert.True(t, errors.Is(appErr, ErrUnauthorized))
	assert.False(t, errors.Is(appErr, ErrForbidden))
}

// --- Constructor functions ---

func TestBadRequest(t *testing.T) {
	err := BadRequest("email is required")
	require.NotNil(t, err)
	assert.Equal(t, "email is required", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.True(t, errors.Is(err, ErrBadRequest))
}

func TestUnauthorized(t *testing.T) {
	err := Unauthorized("invalid token")
	require.NotNil(t, err)
	assert.Equal(t, "invalid token", err.Message)
	assert.Equal(t, http.StatusUnauthorized, err.Status)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestForbidden(t *testing.T) {
	err := Forbidden("not allowed")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Status)
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestNotFound(t *testing.T) {
	err := NotFound("chirp", "abc-123")
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "chirp")
	assert.Contains(t, err.Message, "abc-123")
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInternal_HidesRootCauseFromMessage(t *testing.T) {
	inner := fmt.Errorf("segfault")
	err := Internal(inner)
	require.NotNil(t, err)
	assert.Equal(t, "something went wrong on our end", err.Message)
	assert.NotContains(t, err.Message, "segfault")
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.True(t, errors.Is(err, ErrInternal))
	assert.Contains(t, err.Error(), "segfault")
}

func TestInternal_WrappedCauseIsReachable(t *testing.T) {
	inner := fmt.Errorf("corrupt: %w", ErrNotFound)
	err := Internal(inner)
	assert.True(t, errors.Is(err, ErrNotFound))
}

// --- Wrap ---

func TestWrap(t *testing.T) {
	inner := ErrNotFound
	wrapped := Wrap(inner, "get user")
	assert.Contains(t, wrapped.Error(), "get user")
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

// --- HTTPStatus ---

func TestHTTPStatus_AppError(t *testing.T) {
	appErr := NotFound("chirp", "1")
	assert.Equal(t, http.StatusNotFound, HTTPStatus(appErr))
}

func TestHTTPStatus_SentinelErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{ErrBadRequest, http.StatusBadRequest},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrNotFound, http.StatusNotFound},
		{ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatus_WrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", ErrUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(wrapped))
}

func TestHTTPStatus_WrappedAppError(t *testing.T) {
	wrapped := Wrap(Forbidden("nope"), "delete chirp")
	assert.Equal(t, http.StatusForbidden, HTTPStatus(wrapped))
}

func TestHTTPStatus_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("unknown")))
}
