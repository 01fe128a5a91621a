// Package config implements TOML configuration loading, validation, and
// platform-specific path resolution for dropbox-uploader. It supports a
// layered override chain (defaults -> config file -> dotenv file ->
// environment -> CLI flags). The result is an explicit Config value built
// once at startup and passed to the components that need it.
package config

import (
	"net/http"
	"time"

	"github.com/tonimelisma/dropbox-uploader/internal/dropbox"
)

// Config is the top-level configuration structure parsed from a TOML file.
// The embedded sections are flat in the file: every key lives at top level.
type Config struct {
	DropboxConfig
	LoggingConfig
	NetworkConfig
	EndpointsConfig
}

// DropboxConfig holds the app credentials and the publishing target.
// Credentials usually come from the environment rather than the file.
type DropboxConfig struct {
	AppKey                  string `toml:"app_key" json:"app_key"`
	AppSecret               string `toml:"app_secret" json:"app_secret"`
	RefreshToken            string `toml:"refresh_token" json:"refresh_token"`
	DefaultFolder           string `toml:"default_folder" json:"default_folder"`
	DisableUploadValidation bool   `toml:"disable_upload_validation" json:"disable_upload_validation"`
}

// LoggingConfig controls log output behavior: level and format.
type LoggingConfig struct {
	LogLevel  string `toml:"log_level" json:"log_level"`
	LogFormat string `toml:"log_format" json:"log_format"`
}

// NetworkConfig controls HTTP client behavior.
type NetworkConfig struct {
	Timeout   string `toml:"timeout" json:"timeout"`
	UserAgent string `toml:"user_agent" json:"user_agent"`
}

// EndpointsConfig overrides the Dropbox hosts. Empty means production.
type EndpointsConfig struct {
	TokenURL   string `toml:"token_url" json:"token_url"`
	APIURL     string `toml:"api_url" json:"api_url"`
	ContentURL string `toml:"content_url" json:"content_url"`
}

// CLIOverrides holds values from CLI flags that override config file and
// environment settings. Pointer fields distinguish "not specified" (nil)
// from "explicitly set to zero value".
type CLIOverrides struct {
	ConfigPath string  // --config flag (empty = use default)
	EnvFile    string  // --env-file flag (empty = use default)
	Folder     *string // --folder flag
}

// Credentials returns the app credentials as the dropbox package expects them.
func (c *Config) Credentials() dropbox.Credentials {
	return dropbox.Credentials{
		AppKey:       c.AppKey,
		AppSecret:    c.AppSecret,
		RefreshToken: c.RefreshToken,
	}
}

// Endpoints returns the Dropbox hosts, falling back to production for
// anything not overridden.
func (c *Config) Endpoints() dropbox.Endpoints {
	return dropbox.Endpoints{
		API:     c.APIURL,
		Content: c.ContentURL,
		Token:   c.TokenURL,
	}
}

// HTTPTimeout returns the parsed timeout, or the default when the value
// does not parse (Validate rejects such values before this is reached).
func (c *Config) HTTPTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeoutDuration
	}

	return d
}

// HTTPClient builds the HTTP client shared by the token exchange and the
// API calls, honoring timeout and user_agent.
func (c *Config) HTTPClient() *http.Client {
	client := &http.Client{Timeout: c.HTTPTimeout()}

	if c.UserAgent != "" {
		client.Transport = &userAgentTransport{
			base:      http.DefaultTransport,
			userAgent: c.UserAgent,
		}
	}

	return client
}

// userAgentTransport overrides the User-Agent header of every request.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)

	return t.base.RoundTrip(clone)
}
