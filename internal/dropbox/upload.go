package dropbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// MaxUploadSize is the largest file files/upload accepts in a single request
// (150 MiB). Larger files need upload sessions, which this client does not use.
const MaxUploadSize = 150 * 1024 * 1024

// clientModifiedLayout is the timestamp format Dropbox expects: UTC, whole seconds.
const clientModifiedLayout = "2006-01-02T15:04:05Z"

// UploadOptions controls a files/upload call.
type UploadOptions struct {
	Mode WriteMode // defaults to WriteModeOverwrite

	// ClientModified is recorded as the file's modification time on Dropbox.
	// Zero leaves it to the server.
	ClientModified time.Time
}

type uploadArg struct {
	Path           string    `json:"path"`
	Mode           WriteMode `json:"mode"`
	Autorename     bool      `json:"autorename"`
	ClientModified string    `json:"client_modified,omitempty"`
	Mute           bool      `json:"mute"`
}

// Upload writes the content of r to path in a single request. The path is
// normalized before use. With WriteModeOverwrite an existing file at path is
// replaced rather than renamed or rejected.
func (c *Client) Upload(ctx context.Context, path string, r io.Reader, opts UploadOptions) (*FileMetadata, error) {
	path = NormalizePath(path)

	mode := opts.Mode
	if mode == "" {
		mode = WriteModeOverwrite
	}

	arg := uploadArg{Path: path, Mode: mode}
	if !opts.ClientModified.IsZero() {
		arg.ClientModified = opts.ClientModified.UTC().Format(clientModifiedLayout)
	}

	header, err := headerSafeJSON(arg)
	if err != nil {
		return nil, fmt.Errorf("dropbox: encoding upload arguments: %w", err)
	}

	c.logger.Info("uploading file",
		slog.String("path", path),
		slog.String("mode", string(mode)),
	)

	resp, err := c.do(ctx, c.endpoints.Content+"/2/files/upload", "application/octet-stream",
		map[string]string{apiArgHeader: header}, r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var md FileMetadata
	if decErr := json.NewDecoder(resp.Body).Decode(&md); decErr != nil {
		return nil, fmt.Errorf("dropbox: decoding upload response: %w", decErr)
	}

	c.logger.Info("upload complete",
		slog.String("id", md.ID),
		slog.String("path", md.PathDisplay),
		slog.Int64("size", md.Size),
		slog.String("rev", md.Rev),
	)

	return &md, nil
}
