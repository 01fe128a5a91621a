package dropbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/tonimelisma/dropbox-uploader/internal/redact"
)

// placeholderAppKey is the value shipped in sample configs. Treated as unset.
const placeholderAppKey = "your_dropbox_app_key_here"

// Credentials are the long-lived values needed to mint access tokens.
// They are never persisted by this package and never logged unredacted.
type Credentials struct {
	AppKey       string
	AppSecret    string
	RefreshToken string
}

// Missing returns the names of the credential fields that are empty or
// still hold a placeholder value.
func (c Credentials) Missing() []string {
	var missing []string

	if c.AppKey == "" || c.AppKey == placeholderAppKey {
		missing = append(missing, "app_key")
	}

	if c.AppSecret == "" {
		missing = append(missing, "app_secret")
	}

	if c.RefreshToken == "" {
		missing = append(missing, "refresh_token")
	}

	return missing
}

// Validate returns ErrNotConfigured naming every missing field, or nil.
func (c Credentials) Validate() error {
	if missing := c.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(missing, ", "))
	}

	return nil
}

// RefreshAccessToken exchanges the refresh token for a fresh access token at
// tokenURL (DefaultTokenURL when empty). The app key and secret are sent with
// HTTP basic auth and the refresh token in the form body.
//
// Any non-200 answer is logged with its status code and returned as an error
// wrapping ErrTokenRefresh. Tokens and secrets only ever reach the log redacted.
func RefreshAccessToken(
	ctx context.Context, httpClient *http.Client, tokenURL string, creds Credentials, logger *slog.Logger,
) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := creds.Validate(); err != nil {
		return "", err
	}

	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	// oauth2 accepts any 2xx answer; the status is recorded to require 200.
	status := &statusRecorder{base: httpClient.Transport}
	recording := *httpClient
	recording.Transport = status
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &recording)

	cfg := &oauth2.Config{
		ClientID:     creds.AppKey,
		ClientSecret: creds.AppSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: tokenURL,
			// Pinned so a rejected request is not replayed with credentials in the body.
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	logger.Info("refreshing access token",
		slog.String("token_url", tokenURL),
		slog.String("app_key", redact.Secret(creds.AppKey)),
	)

	tok, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken}).Token()
	if err != nil {
		return "", refreshError(ctx, err, logger)
	}

	if status.code != http.StatusOK {
		logger.Error("failed to refresh access token", slog.Int("status", status.code))

		return "", fmt.Errorf("%w: HTTP %d", ErrTokenRefresh, status.code)
	}

	attrs := []any{slog.String("access_token", redact.Secret(tok.AccessToken))}
	if !tok.Expiry.IsZero() {
		attrs = append(attrs, slog.Duration("expires_in", time.Until(tok.Expiry).Round(time.Second)))
	}

	logger.Info("access token refreshed", attrs...)

	return tok.AccessToken, nil
}

// refreshError logs a failed exchange and converts it to an ErrTokenRefresh error.
func refreshError(ctx context.Context, err error, logger *slog.Logger) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		logger.Error("failed to refresh access token",
			slog.Int("status", re.Response.StatusCode),
			slog.String("error_code", re.ErrorCode),
		)
		logger.Debug("token endpoint response",
			slog.String("body", redact.JSON(re.Body)),
		)

		return fmt.Errorf("%w: HTTP %d %s", ErrTokenRefresh, re.Response.StatusCode, re.ErrorCode)
	}

	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ErrTokenRefresh, ctx.Err())
	}

	logger.Error("failed to refresh access token", slog.String("error", err.Error()))

	return fmt.Errorf("%w: %w", ErrTokenRefresh, err)
}

// statusRecorder remembers the status code of the last response it carried.
type statusRecorder struct {
	base http.RoundTripper
	code int
}

func (r *statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	base := r.base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if resp != nil {
		r.code = resp.StatusCode
	}

	return resp, err
}
