package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageError(t *testing.T) {
	err := NewStorageError("insert", context.DeadlineExceeded)
	wrapped := fmt.Errorf("create address: %w", err)

	assert.True(t, IsStorage(wrapped))
	assert.False(t, IsParse(wrapped))
	assert.ErrorIs(t, wrapped, context.DeadlineExceeded)
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(wrapped))
	assert.Equal(t, "STORAGE_ERROR", GetErrorCode(wrapped))
	assert.Contains(t, err.Error(), "insert")
}

func TestParseError(t *testing.T) {
	err := NewParseError("csv", 3, "expected 2 fields, got 3", nil)

	assert.True(t, IsParse(err))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(err))
	assert.Equal(t, "PARSE_ERROR", GetErrorCode(err))
	assert.Equal(t, "invalid csv at line 3: expected 2 fields, got 3", err.Error())

	noLine := NewParseError("json", 0, "unexpected end of input", nil)
	assert.Equal(t, "invalid json: unexpected end of input", noLine.Error())
}

func TestUnknownErrorDefaults(t *testing.T) {
	err := fmt.Errorf("boom")
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(err))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(err))
}

func TestInternalError(t *testing.T) {
	err := NewInternalError("unexpected inserted id type int", nil)

	assert.True(t, IsAppError(err))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(err))
	assert.Equal(t, "INTERNAL_ERROR", GetErrorCode(err))
	assert.Equal(t, "internal error: unexpected inserted id type int", err.Error())

	caused := NewInternalError("request failed", context.Canceled)
	assert.ErrorIs(t, caused, context.Canceled)
	assert.Contains(t, caused.Error(), "caused by")
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(fmt.Errorf("wrapped: %w", NewConflictError("user", "username", "taken"))))
	assert.False(t, IsAppError(fmt.Errorf("boom")))
	assert.False(t, IsAppError(nil))
}
