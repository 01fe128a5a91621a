package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names for overrides.
const (
	EnvConfig       = "DROPBOX_UPLOADER_CONFIG"
	EnvFolder       = "DROPBOX_UPLOADER_FOLDER"
	EnvEnvFile      = "DROPBOX_UPLOADER_ENV_FILE"
	EnvAppKey       = "DROPBOX_APP_KEY"
	EnvAppSecret    = "DROPBOX_APP_SECRET"
	EnvRefreshToken = "DROPBOX_REFRESH_TOKEN"
)

// defaultEnvFile is read from the working directory when present.
const defaultEnvFile = ".env"

// EnvOverrides holds values derived from environment variables (and the
// dotenv file). Empty fields mean "not set".
type EnvOverrides struct {
	ConfigPath   string // DROPBOX_UPLOADER_CONFIG: override config file path
	Folder       string // DROPBOX_UPLOADER_FOLDER: default remote folder
	AppKey       string // DROPBOX_APP_KEY
	AppSecret    string // DROPBOX_APP_SECRET
	RefreshToken string // DROPBOX_REFRESH_TOKEN
}

// ReadEnvOverrides reads the override variables from the process
// environment, falling back to a dotenv file. The file is envFile when
// given, else $DROPBOX_UPLOADER_ENV_FILE, else ./.env. A missing default
// file is not an error; a missing explicitly named file is. Variables set
// in the process environment always win over the file.
func ReadEnvOverrides(envFile string, logger *slog.Logger) (EnvOverrides, error) {
	explicit := true
	if envFile == "" {
		envFile = os.Getenv(EnvEnvFile)
	}

	if envFile == "" {
		envFile = defaultEnvFile
		explicit = false
	}

	fileVals, err := godotenv.Read(envFile)
	switch {
	case err == nil:
		logger.Debug("loaded dotenv file",
			slog.String("path", envFile),
			slog.Int("vars", len(fileVals)),
		)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		fileVals = nil
	default:
		return EnvOverrides{}, fmt.Errorf("reading env file %s: %w", envFile, err)
	}

	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}

		return fileVals[key]
	}

	return EnvOverrides{
		ConfigPath:   lookup(EnvConfig),
		Folder:       lookup(EnvFolder),
		AppKey:       lookup(EnvAppKey),
		AppSecret:    lookup(EnvAppSecret),
		RefreshToken: lookup(EnvRefreshToken),
	}, nil
}
