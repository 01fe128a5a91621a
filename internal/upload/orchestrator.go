package upload

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"

	"golang.org/x/text/unicode/norm"

	"github.com/tonimelisma/dropbox-uploader/internal/dropbox"
)

// Settings is everything an Orchestrator needs, built once at startup.
type Settings struct {
	Credentials   dropbox.Credentials
	Folder        string // remote folder files are published into
	Endpoints     dropbox.Endpoints
	VerifyContent bool
}

// Orchestrator publishes a local file into the configured folder: it
// derives the remote name, obtains a fresh access token and runs a
// FileUploader in-process.
type Orchestrator struct {
	settings   Settings
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOrchestrator creates an Orchestrator. httpClient is shared by the token
// exchange and the upload.
func NewOrchestrator(settings Settings, httpClient *http.Client, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Orchestrator{settings: settings, httpClient: httpClient, logger: logger}
}

// Destination returns the remote path localPath is published to: the
// configured folder joined with the file's base name. The name is converted
// to NFC so files created on macOS (NFD names) land under the same name.
func (o *Orchestrator) Destination(localPath string) string {
	name := norm.NFC.String(filepath.Base(localPath))

	return dropbox.JoinPath(o.settings.Folder, name)
}

// Run publishes localPath. The local file is checked before any network
// call; a failed token exchange is KindRemoteAuth and skips the upload.
func (o *Orchestrator) Run(ctx context.Context, localPath string) (*Result, error) {
	fi, err := statLocal(localPath)
	if err != nil {
		logFailure(o.logger, err)

		return nil, err
	}

	dest := o.Destination(localPath)

	o.logger.Info("publishing file",
		slog.String("local_path", localPath),
		slog.Int64("size", fi.Size()),
		slog.String("folder", o.settings.Folder),
		slog.String("path", dest),
	)

	token, err := AccessToken(ctx, o.httpClient, o.settings.Endpoints, o.settings.Credentials, o.logger)
	if err != nil {
		return nil, err
	}

	client := dropbox.NewClient(o.settings.Endpoints, o.httpClient, dropbox.StaticToken(token), o.logger)

	return NewFileUploader(client, o.settings.VerifyContent, o.logger).Upload(ctx, localPath, dest)
}

// AccessToken refreshes an access token and reports failure as a
// KindRemoteAuth *Error.
func AccessToken(
	ctx context.Context, httpClient *http.Client, endpoints dropbox.Endpoints,
	creds dropbox.Credentials, logger *slog.Logger,
) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	token, err := dropbox.RefreshAccessToken(ctx, httpClient, endpoints.Token, creds, logger)
	if err != nil {
		ue := &Error{Kind: KindRemoteAuth, Op: "refresh", Err: err}
		logFailure(logger, ue)

		return "", ue
	}

	return token, nil
}
