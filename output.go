package client

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bytedance/sonic"
)

var httpURLPattern = regexp.MustCompile(`(?i)^https?://.*$`)

func validateURL(field, url string) error {
	if !httpURLPattern.MatchString(url) {
		return invalidErr(field, ErrUnsupportedURL)
	}
	return nil
}

// writeResult stores data at path, creating missing parent directories.
func writeResult(path string, data []byte) error {
	if path == "" {
		return ErrEmptyOutputPath
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &FileError{Op: "create dir", Path: dir, Err: err}
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}

	return nil
}

// decodeJSON decodes an endpoint's JSON answer. An empty body yields the
// zero-length value supplied by the caller.
func decodeJSON[T any](operation Operation, data []byte, empty T) (T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return empty, nil
	}

	var out T
	if err := sonic.Unmarshal(data, &out); err != nil {
		return empty, fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return out, nil
}

// WriteText stores extracted text at path as UTF-8.
func WriteText(path, text string) error {
	return writeResult(path, []byte(text))
}
