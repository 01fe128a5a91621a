package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every override variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{EnvConfig, EnvFolder, EnvEnvFile, EnvAppKey, EnvAppSecret, EnvRefreshToken} {
		t.Setenv(key, "")
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestReadEnvOverrides_AllSet(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfig, "/custom/config.toml")
	t.Setenv(EnvFolder, "/Inbox")
	t.Setenv(EnvAppKey, "key")
	t.Setenv(EnvAppSecret, "secret")
	t.Setenv(EnvRefreshToken, "refresh")

	t.Chdir(t.TempDir())

	overrides, err := ReadEnvOverrides("", testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "/custom/config.toml", overrides.ConfigPath)
	assert.Equal(t, "/Inbox", overrides.Folder)
	assert.Equal(t, "key", overrides.AppKey)
	assert.Equal(t, "secret", overrides.AppSecret)
	assert.Equal(t, "refresh", overrides.RefreshToken)
}

func TestReadEnvOverrides_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := ReadEnvOverrides(filepath.Join(t.TempDir(), "none.env"), testLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading env file")
}

func TestReadEnvOverrides_NoneSet(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	overrides, err := ReadEnvOverrides("", testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, EnvOverrides{}, overrides)
}

func TestReadEnvOverrides_DotenvFile(t *testing.T) {
	clearEnv(t)

	path := writeEnvFile(t, `
DROPBOX_APP_KEY=file-key
DROPBOX_APP_SECRET=file-secret
DROPBOX_REFRESH_TOKEN="file-refresh"
`)

	overrides, err := ReadEnvOverrides(path, testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "file-key", overrides.AppKey)
	assert.Equal(t, "file-secret", overrides.AppSecret)
	assert.Equal(t, "file-refresh", overrides.RefreshToken)
}

func TestReadEnvOverrides_ProcessEnvBeatsDotenv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAppKey, "process-key")

	path := writeEnvFile(t, "DROPBOX_APP_KEY=file-key\nDROPBOX_APP_SECRET=file-secret\n")

	overrides, err := ReadEnvOverrides(path, testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "process-key", overrides.AppKey)
	assert.Equal(t, "file-secret", overrides.AppSecret)
}

func TestReadEnvOverrides_EnvFileVariable(t *testing.T) {
	clearEnv(t)

	path := writeEnvFile(t, "DROPBOX_UPLOADER_FOLDER=/from-env-file\n")
	t.Setenv(EnvEnvFile, path)

	overrides, err := ReadEnvOverrides("", testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "/from-env-file", overrides.Folder)
}

func TestReadEnvOverrides_DefaultDotenvInWorkingDir(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DROPBOX_REFRESH_TOKEN=cwd-refresh\n"), 0o600))
	t.Chdir(dir)

	overrides, err := ReadEnvOverrides("", testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "cwd-refresh", overrides.RefreshToken)
}

func TestEnvVarConstants(t *testing.T) {
	assert.Equal(t, "DROPBOX_REFRESH_TOKEN", EnvRefreshToken)
	assert.Equal(t, "DROPBOX_APP_KEY", EnvAppKey)
	assert.Equal(t, "DROPBOX_APP_SECRET", EnvAppSecret)
}
