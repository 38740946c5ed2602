package client

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// EncodedBody is a serialized ParameterBag ready to be posted.
type EncodedBody struct {
	ContentType string
	Data        []byte
}

// EncodeForm serializes the plain fields of bag as
// application/x-www-form-urlencoded in insertion order. Empty values are
// skipped. Bags holding file or binary parts are rejected.
func EncodeForm(bag *ParameterBag) (*EncodedBody, error) {
	if bag.HasFiles() {
		return nil, ErrFilesNotEncodable
	}

	var sb strings.Builder
	_ = bag.fields.each(func(key, value string) error {
		if value == "" {
			return nil
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(value))
		return nil
	})

	return &EncodedBody{ContentType: ContentTypeForm, Data: []byte(sb.String())}, nil
}

// EncodeMultipart serializes bag as multipart/form-data using
// MultipartBoundary. Parts are written fields first, then files, then binary
// blobs, each group in insertion order. Empty entries are skipped. Local files
// are read in full; a read failure is returned as a *FileError.
func EncodeMultipart(bag *ParameterBag) (*EncodedBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(MultipartBoundary); err != nil {
		return nil, fmt.Errorf("set multipart boundary: %w", err)
	}

	err := bag.fields.each(func(key, value string) error {
		if value == "" {
			return nil
		}
		return w.WriteField(key, value)
	})
	if err != nil {
		return nil, fmt.Errorf("write form field: %w", err)
	}

	err = bag.files.each(func(key, path string) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return &FileError{Op: "read", Path: path, Err: err}
		}
		return writeFilePart(w, key, filepath.Base(path), data)
	})
	if err != nil {
		return nil, err
	}

	err = bag.binary.each(func(key string, data []byte) error {
		if len(data) == 0 {
			return nil
		}
		return writeFilePart(w, key, key, data)
	})
	if err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	return &EncodedBody{ContentType: ContentTypeMultipart + "; boundary=" + w.Boundary(), Data: buf.Bytes()}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFilePart(w *multipart.Writer, name, filename string, data []byte) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(name), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", ContentTypeBinary)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part %s: %w", name, err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write part %s: %w", name, err)
	}
	return nil
}
