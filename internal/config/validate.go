package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Validation range constants.
const (
	minTimeout = 1 * time.Second
	maxTimeout = 1 * time.Hour
)

// Validate checks all configuration values and returns all errors found.
// It accumulates every error rather than stopping at the first, so users
// see a complete report and can fix all issues in one pass.
func Validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validateLogging(&cfg.LoggingConfig)...)
	errs = append(errs, validateNetwork(&cfg.NetworkConfig)...)
	errs = append(errs, validateEndpoints(&cfg.EndpointsConfig)...)

	return errors.Join(errs...)
}

// ValidateResolved checks the Config after env and CLI overrides have been
// applied. Credentials are not required here: commands that need them
// check with dropbox.Credentials.Validate so that `config show` and
// `upload --access-token` work without them.
func ValidateResolved(cfg *Config) error {
	errs := []error{Validate(cfg)}

	if cfg.DefaultFolder == "" {
		errs = append(errs, errors.New("default_folder: must not be empty"))
	}

	return errors.Join(errs...)
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"auto": true,
	"text": true,
	"json": true,
}

func validateLogging(l *LoggingConfig) []error {
	var errs []error

	if !validLogLevels[l.LogLevel] {
		errs = append(errs, fmt.Errorf("log_level: must be one of debug, info, warn, error; got %q", l.LogLevel))
	}

	if !validLogFormats[l.LogFormat] {
		errs = append(errs, fmt.Errorf("log_format: must be one of auto, text, json; got %q", l.LogFormat))
	}

	return errs
}

func validateNetwork(n *NetworkConfig) []error {
	d, err := time.ParseDuration(n.Timeout)
	if err != nil {
		return []error{fmt.Errorf("timeout: invalid duration %q: %w", n.Timeout, err)}
	}

	if d < minTimeout || d > maxTimeout {
		return []error{fmt.Errorf("timeout: must be between %s and %s, got %s", minTimeout, maxTimeout, d)}
	}

	return nil
}

func validateEndpoints(e *EndpointsConfig) []error {
	var errs []error

	for _, ep := range []struct{ key, value string }{
		{"token_url", e.TokenURL},
		{"api_url", e.APIURL},
		{"content_url", e.ContentURL},
	} {
		if ep.value == "" {
			continue
		}

		u, err := url.Parse(ep.value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s: must be an absolute http(s) URL, got %q", ep.key, ep.value))
		}
	}

	return errs
}
