// Package dropbox provides a minimal HTTP client for the Dropbox API v2:
// refresh-token exchange, single-request file upload and account lookups.
// Requests are never retried; a failed attempt is returned to the caller.
package dropbox

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Sentinel errors for HTTP status code classification.
// Use errors.Is(err, dropbox.ErrUnauthorized) to check.
var (
	ErrBadRequest      = errors.New("dropbox: bad request")
	ErrUnauthorized    = errors.New("dropbox: unauthorized")
	ErrForbidden       = errors.New("dropbox: forbidden")
	ErrNotFound        = errors.New("dropbox: not found")
	ErrConflict        = errors.New("dropbox: endpoint-specific error")
	ErrPayloadTooLarge = errors.New("dropbox: payload too large")
	ErrThrottled       = errors.New("dropbox: rate limited")
	ErrServerError     = errors.New("dropbox: server error")
)

// Sentinel errors for obtaining and using access tokens.
var (
	ErrTokenRefresh  = errors.New("dropbox: access token refresh failed")
	ErrNotConfigured = errors.New("dropbox: credentials not configured")
	ErrNoAccessToken = errors.New("dropbox: empty access token")
)

// APIError carries the structured error payload returned by Dropbox.
// Endpoint-specific failures (bad path, insufficient space, ...) arrive as
// HTTP 409 with a JSON body holding error_summary and a tagged error union.
type APIError struct {
	StatusCode int
	RequestID  string
	Summary    string // error_summary, e.g. "path/insufficient_space/.."
	Tag        string // error[".tag"], e.g. "path"
	Reason     string // error.reason[".tag"] when present, e.g. "insufficient_space"
	Payload    string // raw response body
	Err        error  // sentinel, for errors.Is()
}

func (e *APIError) Error() string {
	detail := e.Summary
	if detail == "" {
		detail = e.Payload
	}

	if e.RequestID != "" {
		return fmt.Sprintf("dropbox: HTTP %d (request-id: %s): %s", e.StatusCode, e.RequestID, detail)
	}

	return fmt.Sprintf("dropbox: HTTP %d: %s", e.StatusCode, detail)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// newAPIError builds an APIError from a non-2xx response. Bodies that are not
// JSON (Dropbox answers 400 with plain text) keep only the raw payload.
func newAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get("X-Dropbox-Request-Id"),
		Payload:    string(body),
		Err:        classifyStatus(resp.StatusCode),
	}

	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		apiErr.Summary = parsed.Get("error_summary").String()
		apiErr.Tag = parsed.Get(`error.\.tag`).String()
		apiErr.Reason = parsed.Get(`error.reason.\.tag`).String()
	}

	return apiErr
}

// classifyStatus maps an HTTP status code to a sentinel error.
// Returns nil for 2xx success codes.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusRequestEntityTooLarge:
		return ErrPayloadTooLarge
	case http.StatusTooManyRequests:
		return ErrThrottled
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}

		return nil
	}
}
