package config

import "time"

// Default values for configuration options. These represent "layer 0" of the
// override chain and work without any config file.
const (
	defaultFolder    = "/Apps/Dropbox PocketBook/from-bot/"
	defaultLogLevel  = "info"
	defaultLogFormat = "auto"
	defaultTimeout   = "30s"
)

// defaultTimeoutDuration mirrors defaultTimeout for callers needing a Duration.
const defaultTimeoutDuration = 30 * time.Second

// DefaultConfig returns a Config populated with all default values.
// This is used both as the starting point for TOML decoding (so unset
// fields retain defaults) and as the fallback when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		DropboxConfig: DropboxConfig{
			DefaultFolder: defaultFolder,
		},
		LoggingConfig: LoggingConfig{
			LogLevel:  defaultLogLevel,
			LogFormat: defaultLogFormat,
		},
		NetworkConfig: NetworkConfig{
			Timeout: defaultTimeout,
		},
	}
}
