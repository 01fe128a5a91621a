package dropbox

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code     int
		expected error
	}{
		{http.StatusOK, nil},
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusRequestEntityTooLarge, ErrPayloadTooLarge},
		{http.StatusTooManyRequests, ErrThrottled},
		{http.StatusInternalServerError, ErrServerError},
		{http.StatusServiceUnavailable, ErrServerError},
		{http.StatusTeapot, nil},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyStatus(tt.code))
		})
	}
}

func TestAPIError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	err := &APIError{
		StatusCode: http.StatusConflict,
		RequestID:  "req-1",
		Summary:    "path/insufficient_space/..",
		Err:        ErrConflict,
	}

	assert.Equal(t, "dropbox: HTTP 409 (request-id: req-1): path/insufficient_space/..", err.Error())
	assert.True(t, errors.Is(err, ErrConflict))

	noID := &APIError{StatusCode: http.StatusBadRequest, Payload: "Error in call to API function", Err: ErrBadRequest}
	assert.Equal(t, "dropbox: HTTP 400: Error in call to API function", noID.Error())
}

func TestNewAPIError_ParsesTaggedUnion(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rec.Header().Set("X-Dropbox-Request-Id", "abc123")
	rec.WriteHeader(http.StatusConflict)

	body := []byte(`{
		"error_summary": "path/insufficient_space/...",
		"error": {".tag": "path", "reason": {".tag": "insufficient_space"}, "upload_session_id": "x"}
	}`)

	apiErr := newAPIError(rec.Result(), body)

	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "abc123", apiErr.RequestID)
	assert.Equal(t, "path/insufficient_space/...", apiErr.Summary)
	assert.Equal(t, "path", apiErr.Tag)
	assert.Equal(t, "insufficient_space", apiErr.Reason)
	assert.Equal(t, string(body), apiErr.Payload)
	assert.ErrorIs(t, apiErr, ErrConflict)
}

func TestNewAPIError_PlainTextBody(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rec.WriteHeader(http.StatusBadRequest)

	apiErr := newAPIError(rec.Result(), []byte("Error in call to API function \"files/upload\": bad header"))

	assert.Empty(t, apiErr.Summary)
	assert.Empty(t, apiErr.Tag)
	assert.Contains(t, apiErr.Error(), "bad header")
	assert.ErrorIs(t, apiErr, ErrBadRequest)
}

func TestNewAPIError_ExpiredToken(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rec.WriteHeader(http.StatusUnauthorized)

	apiErr := newAPIError(rec.Result(),
		[]byte(`{"error_summary": "expired_access_token/", "error": {".tag": "expired_access_token"}}`))

	require.ErrorIs(t, apiErr, ErrUnauthorized)
	assert.Equal(t, "expired_access_token", apiErr.Tag)
	assert.Empty(t, apiErr.Reason)
}
