// Package redact masks secrets (tokens, app secrets) before they reach logs
// or terminal output.
package redact

import (
	"log/slog"
	"strings"

	"github.com/tidwall/sjson"
)

// Placeholder replaces a secret that is too short to show any suffix of.
const Placeholder = "***"

// suffixLen is how many trailing characters of a long secret stay visible.
const suffixLen = 3

// minSuffixSecret is the shortest secret that keeps a visible suffix.
// Below it the suffix would expose too large a share of the value.
const minSuffixSecret = 12

// Secret returns a log-safe form of s: "***" followed by the last three
// characters for long values, "***" alone otherwise. Empty stays empty so
// "not set" remains distinguishable from "set".
func Secret(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) < minSuffixSecret:
		return Placeholder
	default:
		return Placeholder + s[len(s)-suffixLen:]
	}
}

// jsonSecretFields are the top-level fields of token endpoint bodies that
// JSON rewrites.
var jsonSecretFields = []string{"access_token", "refresh_token", "id_token"}

// JSON returns body with every known secret field replaced by "...".
// Bodies that are not JSON objects are returned as a fixed placeholder,
// since they cannot be inspected field by field.
func JSON(body []byte) string {
	out := string(body)
	trimmed := strings.TrimSpace(out)

	if trimmed == "" {
		return ""
	}

	if !strings.HasPrefix(trimmed, "{") {
		return Placeholder
	}

	for _, field := range jsonSecretFields {
		if !strings.Contains(out, `"`+field+`"`) {
			continue
		}

		next, err := sjson.Set(out, field, "...")
		if err != nil {
			return Placeholder
		}

		out = next
	}

	return out
}

// sensitiveKeys are slog attribute keys whose values are always masked.
var sensitiveKeys = map[string]bool{
	"access_token":  true,
	"refresh_token": true,
	"app_secret":    true,
	"token":         true,
	"authorization": true,
	"password":      true,
}

// ReplaceAttr is a slog.HandlerOptions.ReplaceAttr hook that masks string
// attributes with sensitive keys. Values already in the shape Secret
// produces pass through unchanged.
func ReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if !sensitiveKeys[strings.ToLower(a.Key)] || a.Value.Kind() != slog.KindString {
		return a
	}

	v := a.Value.String()
	if isRedacted(v) {
		return a
	}

	return slog.String(a.Key, Secret(v))
}

// isRedacted reports whether v is "", "***" or "***" plus a suffixLen tail.
func isRedacted(v string) bool {
	if v == "" {
		return true
	}

	return strings.HasPrefix(v, Placeholder) && len(v) <= len(Placeholder)+suffixLen
}
