package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_UnknownKey_TopLevel(t *testing.T) {
	t.Parallel()

	path := writeTestConfig(t, `
unknown_section = "value"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestLoad_UnknownKey_Typo(t *testing.T) {
	t.Parallel()

	path := writeTestConfig(t, `refresh_tokn = "abc"`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
	assert.Contains(t, err.Error(), `did you mean "refresh_token"`)
}

func TestLoad_UnknownKey_InSection(t *testing.T) {
	t.Parallel()

	path := writeTestConfig(t, "[dropbox]\napp_ky = \"k\"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dropbox.app_ky")
	assert.Contains(t, err.Error(), "app_key")
}

func TestLoad_UnknownKey_ReportsAll(t *testing.T) {
	t.Parallel()

	path := writeTestConfig(t, `
log_levl = "info"
timeot = "10s"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "timeout")
}

func TestLevenshtein(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"app_ky", "app_key", 1},
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, levenshtein(tt.a, tt.b))
		})
	}
}

func TestClosestMatch(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "default_folder", closestMatch("default_foldr", knownKeysList))
	assert.Empty(t, closestMatch("completely_unrelated", knownKeysList))
}
