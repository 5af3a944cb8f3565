package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrInvalidInput, ErrUnauthorized,
		ErrForbidden, ErrInternal, ErrUpstreamDegraded,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

func TestAppError_ErrorString(t *testing.T) {
	inner := fmt.Errorf("disk full")
	appErr := &AppError{Code: "INTERNAL_ERROR", Message: "something broke", Err: inner}
	assert.Contains(t, appErr.Error(), "INTERNAL_ERROR")
	assert.Contains(t, appErr.Error(), "disk full")

	bare := &AppError{Code: "NOT_FOUND", Message: "moto not found"}
	assert.Equal(t, "NOT_FOUND: moto not found", bare.Error())
}

func TestNotFound(t *testing.T) {
	err := NotFound("moto", "00123")
	require.NotNil(t, err)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Contains(t, err.Message, "00123")
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpstreamDegraded(t *testing.T) {
	cause := fmt.Errorf("flexxus returned HTML")
	err := UpstreamDegraded(cause)
	require.NotNil(t, err)
	assert.Equal(t, "UPSTREAM_DEGRADED", err.Code)
	assert.True(t, errors.Is(err, ErrUpstreamDegraded))
	assert.Contains(t, err.Error(), "flexxus returned HTML")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrAlreadyExists, http.StatusConflict},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrUpstreamDegraded, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}

	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("outer: %w", ErrNotFound)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("unknown")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("casco", "9")))
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "get override")
	assert.Contains(t, wrapped.Error(), "get override")
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}
