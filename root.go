package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tonimelisma/dropbox-uploader/internal/config"
	"github.com/tonimelisma/dropbox-uploader/internal/redact"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd().
var (
	flagConfigPath string
	flagEnvFile    string
	flagJSON       bool
	flagVerbose    bool
	flagQuiet      bool
)

// resolvedCfg holds the effective configuration loaded by PersistentPreRunE.
// It is available to all subcommands after the root pre-run phase completes.
var resolvedCfg *config.Config

// runID tags every log line of one invocation.
var runID = uuid.NewString()

// newRootCmd builds and returns the fully-assembled root command with all
// subcommands registered. Called once from main().
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dropbox-uploader",
		Short:   "Upload files to Dropbox",
		Long:    "Publish local files to a Dropbox folder using a long-lived refresh token.",
		Version: version,
		// Silence Cobra's default error/usage printing; exitOnError reports instead.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "dotenv file with credentials (default .env)")
	cmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output in JSON format")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "only log errors")

	cmd.AddCommand(newUploadCmd())
	cmd.AddCommand(newPutCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// loadConfig resolves the effective configuration from the override chain
// and stores the result in resolvedCfg for use by subcommands.
func loadConfig(cmd *cobra.Command) error {
	cli := config.CLIOverrides{
		ConfigPath: flagConfigPath,
		EnvFile:    flagEnvFile,
	}

	// Only pass --folder to the resolver if the user explicitly set it.
	if f := cmd.Flags().Lookup("folder"); f != nil && f.Changed {
		folder := f.Value.String()
		cli.Folder = &folder
	}

	env, err := config.ReadEnvOverrides(cli.EnvFile, bootstrapLogger())
	if err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	resolved, err := config.Resolve(env, cli)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	resolvedCfg = resolved

	return nil
}

// bootstrapLogger is used before the configuration is loaded. It only
// honors the CLI flags.
func bootstrapLogger() *slog.Logger {
	level := slog.LevelWarn

	if flagVerbose {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redact.ReplaceAttr,
	}))
}

// buildLogger creates the logger for a command from the resolved config and
// CLI flags, and installs it as the slog default.
func buildLogger() *slog.Logger {
	fd := os.Stderr.Fd()
	logger := newLogger(os.Stderr, isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	slog.SetDefault(logger)

	return logger
}

// newLogger builds a logger writing to w. Config-file log level provides
// the baseline; --verbose and --quiet override it because CLI flags always
// win. log_format "auto" picks text on a terminal and JSON otherwise.
func newLogger(w io.Writer, terminal bool) *slog.Logger {
	level := slog.LevelWarn
	format := "auto"

	if resolvedCfg != nil {
		switch resolvedCfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}

		format = resolvedCfg.LogFormat
	}

	if flagVerbose {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: redact.ReplaceAttr}

	var handler slog.Handler
	if format == "json" || (format == "auto" && !terminal) {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(slog.String("run_id", runID))
}

// httpClient returns the client shared by token refresh and API calls.
func httpClient() *http.Client {
	if resolvedCfg == nil {
		return config.DefaultConfig().HTTPClient()
	}

	return resolvedCfg.HTTPClient()
}

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
