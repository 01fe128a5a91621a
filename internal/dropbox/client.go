package dropbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Default Dropbox hosts.
const (
	DefaultAPIURL     = "https://api.dropboxapi.com"
	DefaultContentURL = "https://content.dropboxapi.com"
	DefaultTokenURL   = "https://api.dropbox.com/oauth2/token"
)

const userAgent = "dropbox-uploader/0.1"

// apiArgHeader carries the JSON arguments of content-upload endpoints.
const apiArgHeader = "Dropbox-API-Arg"

// TokenSource provides OAuth2 bearer tokens. Defined at the consumer
// per Go convention "accept interfaces, return structs".
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource that always returns the same access token.
// Access tokens are obtained once per run, so no refresh logic is needed here.
type StaticToken string

// Token returns the wrapped token, or an error if it is empty.
func (s StaticToken) Token() (string, error) {
	if s == "" {
		return "", ErrNoAccessToken
	}

	return string(s), nil
}

// Endpoints holds the base URLs used by the client. Tests point all three
// at an httptest server.
type Endpoints struct {
	API     string // RPC host, e.g. https://api.dropboxapi.com
	Content string // content-upload host, e.g. https://content.dropboxapi.com
	Token   string // OAuth2 token endpoint
}

// DefaultEndpoints returns the production Dropbox endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		API:     DefaultAPIURL,
		Content: DefaultContentURL,
		Token:   DefaultTokenURL,
	}
}

// withDefaults fills empty fields from DefaultEndpoints.
func (e Endpoints) withDefaults() Endpoints {
	def := DefaultEndpoints()

	if e.API == "" {
		e.API = def.API
	}

	if e.Content == "" {
		e.Content = def.Content
	}

	if e.Token == "" {
		e.Token = def.Token
	}

	return e
}

// Client is an HTTP client for the Dropbox API v2.
// It handles request construction, authentication and error classification.
type Client struct {
	endpoints  Endpoints
	httpClient *http.Client
	token      TokenSource
	logger     *slog.Logger
}

// NewClient creates a Dropbox API client. Empty endpoint fields fall back to
// the production hosts.
func NewClient(endpoints Endpoints, httpClient *http.Client, token TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		endpoints:  endpoints.withDefaults(),
		httpClient: httpClient,
		token:      token,
		logger:     logger,
	}
}

// rpc performs an RPC-style call: JSON request body, JSON response body.
// A nil in sends the literal "null" body that argument-less endpoints expect.
// out may be nil when the response body is not needed.
func (c *Client) rpc(ctx context.Context, path string, in, out any) error {
	payload := []byte("null")

	if in != nil {
		var err error

		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("dropbox: encoding %s arguments: %w", path, err)
		}
	}

	resp, err := c.do(ctx, c.endpoints.API+path, "application/json", nil, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}

	if decErr := json.NewDecoder(resp.Body).Decode(out); decErr != nil {
		return fmt.Errorf("dropbox: decoding %s response: %w", path, decErr)
	}

	return nil
}

// do executes a single authenticated POST request. Non-2xx responses are
// converted to *APIError. The caller closes the response body on success.
func (c *Client) do(
	ctx context.Context, url, contentType string, header map[string]string, body io.Reader,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("dropbox: creating request: %w", err)
	}

	tok, err := c.token.Token()
	if err != nil {
		return nil, fmt.Errorf("dropbox: obtaining token: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", userAgent)

	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("dropbox: request canceled: %w", ctx.Err())
		}

		c.logger.Error("request failed",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)

		return nil, fmt.Errorf("dropbox: request to %s failed: %w", url, err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		c.logger.Debug("request succeeded",
			slog.String("url", url),
			slog.Int("status", resp.StatusCode),
		)

		return resp, nil
	}

	errBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()

	if readErr != nil {
		errBody = []byte("(failed to read response body)")
	}

	apiErr := newAPIError(resp, errBody)

	c.logger.Debug("request returned error",
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", apiErr.RequestID),
		slog.String("error_summary", apiErr.Summary),
	)

	return nil, apiErr
}

// headerSafeJSON marshals v to JSON and escapes every non-ASCII rune as
// \uXXXX (surrogate pairs above the BMP). HTTP header values must be ASCII;
// Dropbox rejects Dropbox-API-Arg headers containing raw UTF-8.
func headerSafeJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	b.Grow(len(raw))

	for _, r := range string(raw) {
		switch {
		case r < utf8.RuneSelf:
			b.WriteRune(r)
		case r > 0xFFFF:
			r -= 0x10000
			fmt.Fprintf(&b, `\u%04x\u%04x`, 0xD800+(r>>10), 0xDC00+(r&0x3FF))
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}

	return b.String(), nil
}
