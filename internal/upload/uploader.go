package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/tonimelisma/dropbox-uploader/internal/dropbox"
	"github.com/tonimelisma/dropbox-uploader/pkg/contenthash"
)

// Remote is the Dropbox operation FileUploader depends on.
// *dropbox.Client satisfies it.
type Remote interface {
	Upload(ctx context.Context, path string, r io.Reader, opts dropbox.UploadOptions) (*dropbox.FileMetadata, error)
}

// Result describes a file stored on Dropbox.
type Result struct {
	ID          string `json:"id"`
	Size        int64  `json:"size"`
	Path        string `json:"path"`
	Rev         string `json:"rev,omitempty"`
	ContentHash string `json:"content_hash,omitempty"`
}

// FileUploader uploads single local files in overwrite mode.
type FileUploader struct {
	remote Remote
	verify bool
	logger *slog.Logger
}

// NewFileUploader returns a FileUploader backed by remote. When verify is
// true the content hash reported by Dropbox must match the bytes read.
func NewFileUploader(remote Remote, verify bool, logger *slog.Logger) *FileUploader {
	if logger == nil {
		logger = slog.Default()
	}

	return &FileUploader{remote: remote, verify: verify, logger: logger}
}

// Upload reads localPath and writes it to destPath on Dropbox, replacing any
// existing file there. destPath gets a leading "/" when it lacks one.
// No network call is made when the local file cannot be read.
func (u *FileUploader) Upload(ctx context.Context, localPath, destPath string) (*Result, error) {
	fi, err := statLocal(localPath)
	if err != nil {
		return nil, u.fail(err)
	}

	if fi.Size() > dropbox.MaxUploadSize {
		return nil, u.fail(&Error{
			Kind: KindUnknown,
			Op:   "stat",
			Path: localPath,
			Err:  fmt.Errorf("%w: %d bytes", ErrFileTooLarge, fi.Size()),
		})
	}

	remotePath := dropbox.NormalizePath(destPath)
	if remotePath != destPath {
		u.logger.Debug("normalized remote path",
			slog.String("requested", destPath),
			slog.String("path", remotePath),
		)
	}

	data, err := readLocal(localPath)
	if err != nil {
		return nil, u.fail(err)
	}

	u.logger.Info("read local file",
		slog.String("local_path", localPath),
		slog.Int("size", len(data)),
	)

	md, err := u.remote.Upload(ctx, remotePath, bytes.NewReader(data), dropbox.UploadOptions{
		Mode:           dropbox.WriteModeOverwrite,
		ClientModified: fi.ModTime(),
	})
	if err != nil {
		return nil, u.fail(&Error{Kind: classifyRemote(err), Op: "upload", Path: remotePath, Err: err})
	}

	if err := u.check(md, data, remotePath); err != nil {
		return nil, u.fail(err)
	}

	return &Result{
		ID:          md.ID,
		Size:        md.Size,
		Path:        md.PathDisplay,
		Rev:         md.Rev,
		ContentHash: md.ContentHash,
	}, nil
}

// check compares the returned metadata with what was sent. The confirmed
// path may differ from the requested one only in case and the stored size
// must equal the bytes read. A content hash mismatch is an error when
// verification is enabled.
func (u *FileUploader) check(md *dropbox.FileMetadata, data []byte, remotePath string) error {
	if md.Size != int64(len(data)) {
		return &Error{
			Kind: KindUnknown,
			Op:   "verify",
			Path: remotePath,
			Err:  fmt.Errorf("%w: remote size %d, local size %d", ErrMetadataMismatch, md.Size, len(data)),
		}
	}

	if !strings.EqualFold(md.PathDisplay, remotePath) {
		return &Error{
			Kind: KindUnknown,
			Op:   "verify",
			Path: remotePath,
			Err:  fmt.Errorf("%w: confirmed path %q", ErrMetadataMismatch, md.PathDisplay),
		}
	}

	if md.PathDisplay != remotePath {
		u.logger.Debug("confirmed path differs in case",
			slog.String("requested", remotePath),
			slog.String("confirmed", md.PathDisplay),
		)
	}

	if !u.verify || md.ContentHash == "" {
		return nil
	}

	local := contenthash.Sum(data)
	if !strings.EqualFold(local, md.ContentHash) {
		return &Error{
			Kind: KindUnknown,
			Op:   "verify",
			Path: remotePath,
			Err:  fmt.Errorf("%w: local %s, remote %s", ErrContentHashMismatch, local, md.ContentHash),
		}
	}

	u.logger.Debug("content hash verified", slog.String("path", remotePath))

	return nil
}

// fail logs err once at the operation boundary and returns it unchanged.
func (u *FileUploader) fail(err error) error {
	logFailure(u.logger, err)

	return err
}

// logFailure writes a single structured line describing an *Error.
func logFailure(logger *slog.Logger, err error) {
	var ue *Error
	if !errors.As(err, &ue) {
		logger.Error("upload failed", slog.String("error", err.Error()))

		return
	}

	attrs := []any{
		slog.String("kind", ue.Kind.String()),
		slog.String("op", ue.Op),
		slog.String("path", ue.Path),
		slog.String("error", ue.Err.Error()),
	}

	var apiErr *dropbox.APIError
	if errors.As(ue.Err, &apiErr) {
		attrs = append(attrs,
			slog.Int("status", apiErr.StatusCode),
			slog.String("error_summary", apiErr.Summary),
			slog.String("request_id", apiErr.RequestID),
		)
	}

	logger.Error("upload failed", attrs...)
}

// statLocal verifies that path names an existing regular file.
func statLocal(path string) (fs.FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, localError("stat", path, err)
	}

	if !fi.Mode().IsRegular() {
		return nil, &Error{Kind: KindLocalFileNotFound, Op: "stat", Path: path, Err: ErrNotRegularFile}
	}

	return fi, nil
}

// readLocal reads the whole file. The descriptor is closed on every path.
func readLocal(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, localError("open", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, localError("read", path, err)
	}

	return data, nil
}

// localError classifies a filesystem error: missing paths (including a
// path component that is a file) are KindLocalFileNotFound, the rest KindLocalIO.
func localError(op, path string, err error) *Error {
	kind := KindLocalIO
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		kind = KindLocalFileNotFound
	}

	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// classifyRemote maps an error from the Dropbox client to a Kind.
func classifyRemote(err error) Kind {
	var apiErr *dropbox.APIError

	switch {
	case errors.As(err, &apiErr):
		return KindRemoteAPI
	case errors.Is(err, dropbox.ErrNoAccessToken), errors.Is(err, dropbox.ErrTokenRefresh):
		return KindRemoteAuth
	default:
		return KindUnknown
	}
}
