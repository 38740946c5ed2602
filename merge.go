package client

import (
	"context"
	"fmt"
	"strconv"
)

// PdfMergeClient merges local, remote and in-memory PDF documents. Inputs are
// merged in the order they were added and are cleared after every save.
type PdfMergeClient struct {
	*apiCall
	documentSettings

	fileIdx int
}

var (
	_ Merger = (*PdfMergeClient)(nil)
	_ Info   = (*PdfMergeClient)(nil)
)

func NewPdfMergeClient(apiKey string, opts ...Option) (*PdfMergeClient, error) {
	call, err := newAPICall(apiKey, EndpointPdfMerge, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return &PdfMergeClient{apiCall: call, documentSettings: documentSettings{bag: call.params}}, nil
}

// AddFile appends a local PDF. password may be empty.
func (c *PdfMergeClient) AddFile(path, password string) error {
	if path == "" {
		return invalid("file", "input file path cannot be empty")
	}

	idx := c.next()
	c.params.SetFile("file_"+idx, path)
	c.params.Set("url_"+idx, "")
	c.params.Set("password_"+idx, password)
	return nil
}

// AddURLFile appends a PDF the service downloads from url.
func (c *PdfMergeClient) AddURLFile(url, password string) error {
	if err := validateURL("url", url); err != nil {
		return err
	}

	idx := c.next()
	c.params.Set("url_"+idx, url)
	c.params.Set("password_"+idx, password)
	return nil
}

// AddBytes appends an in-memory PDF.
func (c *PdfMergeClient) AddBytes(data []byte, password string) error {
	if len(data) == 0 {
		return ErrEmptyFileData
	}

	idx := c.next()
	c.params.SetBinary("file_"+idx, data)
	c.params.Set("url_"+idx, "")
	c.params.Set("password_"+idx, password)
	return nil
}

// Inputs returns how many documents are queued for the next save.
func (c *PdfMergeClient) Inputs() int { return c.fileIdx }

// SetTimeout bounds the server-side merge time, in seconds.
func (c *PdfMergeClient) SetTimeout(seconds int) { c.setInt("timeout", seconds) }

// Save merges the queued documents and returns the resulting PDF.
func (c *PdfMergeClient) Save(ctx context.Context) ([]byte, error) {
	release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if err := c.prepare(); err != nil {
		return nil, err
	}
	defer c.reset()

	resp, err := c.doSync(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", OperationMerge, err)
	}
	return resp.Body, nil
}

func (c *PdfMergeClient) SaveToFile(ctx context.Context, path string) error {
	if path == "" {
		return ErrEmptyOutputPath
	}
	data, err := c.Save(ctx)
	if err != nil {
		return err
	}
	return writeResult(path, data)
}

// SaveAsync merges the queued documents through an asynchronous job.
func (c *PdfMergeClient) SaveAsync(ctx context.Context) ([]byte, error) {
	release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if err := c.prepare(); err != nil {
		return nil, err
	}
	defer c.reset()

	resp, err := c.doAsync(ctx, OperationMerge, true)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", OperationMerge, err)
	}
	return resp.Body, nil
}

func (c *PdfMergeClient) SaveToFileAsync(ctx context.Context, path string) error {
	if path == "" {
		return ErrEmptyOutputPath
	}
	data, err := c.SaveAsync(ctx)
	if err != nil {
		return err
	}
	return writeResult(path, data)
}

func (c *PdfMergeClient) next() string {
	c.fileIdx++
	return strconv.Itoa(c.fileIdx)
}

func (c *PdfMergeClient) prepare() error {
	if c.fileIdx == 0 {
		return ErrNoInputFiles
	}
	c.setInt("files_no", c.fileIdx)
	return nil
}

// reset drops every per-input field so the next merge starts empty.
func (c *PdfMergeClient) reset() {
	for i := 1; i <= c.fileIdx; i++ {
		idx := strconv.Itoa(i)
		c.params.Delete("file_" + idx)
		c.params.Delete("url_" + idx)
		c.params.Delete("password_" + idx)
	}
	c.params.Delete("files_no")
	c.fileIdx = 0
}
