// Package upload reads a local file and publishes it to Dropbox with
// overwrite semantics. Every failure is returned as an *Error tagged with a
// Kind, so callers branch on the kind instead of on error strings.
package upload

import (
	"errors"
	"fmt"
)

// Kind classifies an upload failure.
type Kind int

// Failure kinds. KindUnknown is the zero value so an unclassified error
// never masquerades as a specific kind.
const (
	KindUnknown           Kind = iota
	KindLocalFileNotFound      // local path missing or not a regular file
	KindLocalIO                // local read failed for another reason (permissions, ...)
	KindRemoteAuth             // access token could not be obtained
	KindRemoteAPI              // Dropbox answered the upload with an API error
)

var kindNames = map[Kind]string{
	KindUnknown:           "UnknownError",
	KindLocalFileNotFound: "LocalFileNotFound",
	KindLocalIO:           "LocalIoError",
	KindRemoteAuth:        "RemoteAuthError",
	KindRemoteAPI:         "RemoteApiError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinel errors wrapped by *Error for conditions detected locally.
var (
	ErrNotRegularFile      = errors.New("not a regular file")
	ErrFileTooLarge        = errors.New("file exceeds the single-request upload limit")
	ErrContentHashMismatch = errors.New("content hash mismatch after upload")
	ErrMetadataMismatch    = errors.New("stored file does not match the upload")
)

// Error is the failure type returned by FileUploader and Orchestrator.
type Error struct {
	Kind Kind
	Op   string // operation that failed: "stat", "read", "refresh", "upload", "verify"
	Path string // local or remote path the operation worked on
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s %s: %v", e.Kind, e.Op, e.Path, e.Err)
	}

	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err. Errors that are not an *Error (and nil)
// report KindUnknown.
func KindOf(err error) Kind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}

	return KindUnknown
}
