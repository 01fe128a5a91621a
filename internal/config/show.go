package config

import (
	"fmt"
	"io"

	"github.com/tonimelisma/dropbox-uploader/internal/redact"
)

// Redacted returns a copy of cfg with credentials masked, safe to print.
func (c *Config) Redacted() *Config {
	out := *c
	out.AppKey = redact.Secret(c.AppKey)
	out.AppSecret = redact.Secret(c.AppSecret)
	out.RefreshToken = redact.Secret(c.RefreshToken)

	return &out
}

// RenderEffective writes the resolved configuration as a human-readable
// annotated summary to w. This powers the "config show" command. Secrets
// are always redacted.
func RenderEffective(cfg *Config, w io.Writer) error {
	ew := &errWriter{w: w}
	safe := cfg.Redacted()

	ew.printf("# Effective configuration\n\n")

	ew.printf("[dropbox]\n")
	ew.printf("  app_key        = %q\n", safe.AppKey)
	ew.printf("  app_secret     = %q\n", safe.AppSecret)
	ew.printf("  refresh_token  = %q\n", safe.RefreshToken)
	ew.printf("  default_folder = %q\n", safe.DefaultFolder)
	ew.printf("  disable_upload_validation = %t\n", safe.DisableUploadValidation)

	if missing := cfg.Credentials().Missing(); len(missing) > 0 {
		ew.printf("  # not configured: %v\n", missing)
	}

	ew.printf("\n[logging]\n")
	ew.printf("  log_level  = %q\n", safe.LogLevel)
	ew.printf("  log_format = %q\n", safe.LogFormat)

	ew.printf("\n[network]\n")
	ew.printf("  timeout    = %q\n", safe.Timeout)

	if safe.UserAgent != "" {
		ew.printf("  user_agent = %q\n", safe.UserAgent)
	}

	if cfg.TokenURL != "" || cfg.APIURL != "" || cfg.ContentURL != "" {
		ew.printf("\n[endpoints]\n")
		ew.printf("  token_url   = %q\n", safe.TokenURL)
		ew.printf("  api_url     = %q\n", safe.APIURL)
		ew.printf("  content_url = %q\n", safe.ContentURL)
	} else {
		ew.printf("\n# endpoints: production Dropbox hosts\n")
	}

	return ew.err
}

// errWriter wraps an io.Writer and captures the first write error.
// Subsequent writes after an error are no-ops, so callers can chain
// printf calls without checking each one individually.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}

	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
