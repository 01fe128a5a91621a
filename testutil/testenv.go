// Package testutil provides shared test environment helpers for E2E tests
// that run the built binary against a real Dropbox account.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by the E2E suite.
const (
	EnvTestAccount     = "DROPBOX_TEST_ACCOUNT"
	EnvAllowedAccounts = "DROPBOX_ALLOWED_TEST_ACCOUNTS"
)

// credentialVars must all be set for the E2E suite to run.
var credentialVars = []string{"DROPBOX_APP_KEY", "DROPBOX_APP_SECRET", "DROPBOX_REFRESH_TOKEN"}

// LoadDotEnv reads KEY=VALUE pairs from a .env file at the given path.
// Missing file is not an error (CI sets env vars directly).
// Existing env vars take precedence over .env values.
func LoadDotEnv(envPath string) {
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "WARNING: reading %s: %v\n", envPath, err)
	}
}

// MissingCredentials returns the names of unset credential variables.
func MissingCredentials() []string {
	var missing []string

	for _, name := range credentialVars {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}

	return missing
}

// ValidateAllowlist crashes the process if DROPBOX_ALLOWED_TEST_ACCOUNTS
// is not set or does not contain DROPBOX_TEST_ACCOUNT. The suite overwrites
// files, so it must never run against an account nobody opted in.
func ValidateAllowlist() string {
	allowlist := os.Getenv(EnvAllowedAccounts)
	if allowlist == "" {
		fmt.Fprintf(os.Stderr, "FATAL: %s not set\n", EnvAllowedAccounts)
		fmt.Fprintf(os.Stderr, "Example: %s=tester@example.com\n", EnvAllowedAccounts)
		os.Exit(1)
	}

	account := os.Getenv(EnvTestAccount)
	if account == "" {
		fmt.Fprintf(os.Stderr, "FATAL: %s not set\n", EnvTestAccount)
		os.Exit(1)
	}

	allowed := strings.Split(allowlist, ",")
	for i := range allowed {
		allowed[i] = strings.TrimSpace(allowed[i])
	}

	if !slices.Contains(allowed, account) {
		fmt.Fprintf(os.Stderr, "FATAL: %s=%q is not in %s=%q\n",
			EnvTestAccount, account, EnvAllowedAccounts, allowlist)
		os.Exit(1)
	}

	return account
}

// FindModuleRoot walks up from the current directory to find go.mod.
// Returns the fallback if the root is not found.
func FindModuleRoot(fallback string) string {
	dir, err := os.Getwd()
	if err != nil {
		return fallback
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return fallback
		}

		dir = parent
	}
}
