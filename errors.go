package client

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyAPIKey       = errors.New("api key cannot be empty")
	ErrEmptyOutputPath   = errors.New("output file not provided")
	ErrUnsupportedURL    = errors.New("the supported protocols are http:// and https://")
	ErrEmptySearchText   = errors.New("search text cannot be empty")
	ErrEmptyHTML         = errors.New("html string cannot be empty")
	ErrEmptyJobID        = errors.New("job id cannot be empty")
	ErrNoInputFiles      = errors.New("no input files were added")
	ErrEmptyFileData     = errors.New("file data cannot be empty")
	ErrMissingJobID      = errors.New("server accepted the job but returned no job id")
	ErrJobTimeout        = errors.New("asynchronous call did not finish in expected timeframe")
	ErrFilesNotEncodable = errors.New("file and binary parts require multipart encoding")
	ErrConcurrentUse     = errors.New("client is already running a request")
)

// ValidationError reports a parameter rejected before any network activity.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// APIError is returned when the service answers with a status other than 200 or 202.
// Message holds the response body verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("(%d) request failed", e.StatusCode)
	}
	return fmt.Sprintf("(%d) %s", e.StatusCode, e.Message)
}

// TransportError wraps network-level failures: DNS, refused connections, timeouts.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("post %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// FileError reports a local file that could not be read or written.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func invalidErr(field string, err error) error {
	return &ValidationError{Field: field, Reason: err.Error(), Err: err}
}

// errAsyncLaunch wraps failures of the submission step of an async operation.
func errAsyncLaunch(operation Operation, err error) error {
	return fmt.Errorf("%s: launch async job: %w", operation, err)
}
