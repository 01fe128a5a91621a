package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger returns a debug-level logger so config debug output appears in
// test output.
func testLogger(t *testing.T) *slog.Logger {
	t.Helper()

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}

func TestLoad_ValidFullConfig(t *testing.T) {
	path := writeTestConfig(t, `
app_key = "key-from-file"
app_secret = "secret-from-file"
refresh_token = "refresh-from-file"
default_folder = "/Books/inbox/"
disable_upload_validation = true

log_level = "debug"
log_format = "json"

timeout = "45s"
user_agent = "custom-agent/1.0"

token_url = "http://127.0.0.1:8080/oauth2/token"
api_url = "http://127.0.0.1:8080"
content_url = "http://127.0.0.1:8080"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "key-from-file", cfg.AppKey)
	assert.Equal(t, "secret-from-file", cfg.AppSecret)
	assert.Equal(t, "refresh-from-file", cfg.RefreshToken)
	assert.Equal(t, "/Books/inbox/", cfg.DefaultFolder)
	assert.True(t, cfg.DisableUploadValidation)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "45s", cfg.Timeout)
	assert.Equal(t, "custom-agent/1.0", cfg.UserAgent)
	assert.Equal(t, "http://127.0.0.1:8080/oauth2/token", cfg.Endpoints().Token)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.Endpoints().API)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.Endpoints().Content)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeTestConfig(t, `log_level = "warn"`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, defaultLogFormat, cfg.LogFormat)
	assert.Equal(t, defaultFolder, cfg.DefaultFolder)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeTestConfig(t, `log_level = `)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeTestConfig(t, `
log_level = "verbose"
timeout = "soon"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "timeout")
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOrDefault_EmptyPath(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	path := writeTestConfig(t, `
app_key = "file-key"
app_secret = "file-secret"
refresh_token = "file-refresh"
default_folder = "/file/folder"
`)

	cfg, err := Resolve(EnvOverrides{
		AppKey:       "env-key",
		RefreshToken: "env-refresh",
	}, CLIOverrides{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.AppKey)
	assert.Equal(t, "file-secret", cfg.AppSecret)
	assert.Equal(t, "env-refresh", cfg.RefreshToken)
	assert.Equal(t, "/file/folder", cfg.DefaultFolder)
}

func TestResolve_CLIFolderWins(t *testing.T) {
	path := writeTestConfig(t, `default_folder = "/file/folder"`)
	folder := "/cli/folder"

	cfg, err := Resolve(EnvOverrides{Folder: "/env/folder"}, CLIOverrides{ConfigPath: path, Folder: &folder})
	require.NoError(t, err)
	assert.Equal(t, "/cli/folder", cfg.DefaultFolder)
}

func TestResolve_EnvConfigPath(t *testing.T) {
	path := writeTestConfig(t, `log_level = "error"`)

	cfg, err := Resolve(EnvOverrides{ConfigPath: path}, CLIOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestResolve_CLIConfigPathBeatsEnv(t *testing.T) {
	envPath := writeTestConfig(t, `log_level = "error"`)
	cliPath := writeTestConfig(t, `log_level = "debug"`)

	cfg, err := Resolve(EnvOverrides{ConfigPath: envPath}, CLIOverrides{ConfigPath: cliPath})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestResolve_EmptyFolderRejected(t *testing.T) {
	path := writeTestConfig(t, `default_folder = ""`)

	_, err := Resolve(EnvOverrides{}, CLIOverrides{ConfigPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_folder")
}

func TestResolve_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Resolve(EnvOverrides{}, CLIOverrides{ConfigPath: filepath.Join(t.TempDir(), "absent.toml")})
	require.NoError(t, err)
	assert.Equal(t, defaultFolder, cfg.DefaultFolder)
	assert.Empty(t, cfg.Credentials().AppKey)
}
