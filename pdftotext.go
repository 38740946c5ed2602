package client

import (
	"context"
	"fmt"
)

// TextMatch is one search hit with its position in the document, as reported
// by the service.
type TextMatch map[string]any

// PdfToTextClient extracts text from PDF documents and searches in them.
type PdfToTextClient struct {
	*apiCall
}

var (
	_ TextExtractor = (*PdfToTextClient)(nil)
	_ Info          = (*PdfToTextClient)(nil)
)

const inputPdfField = "inputPdf"

func NewPdfToTextClient(apiKey string, opts ...Option) (*PdfToTextClient, error) {
	call, err := newAPICall(apiKey, EndpointPdfToText, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return &PdfToTextClient{apiCall: call}, nil
}

// textSource selects the document the next call works on.
type textSource func(c *PdfToTextClient) error

func fromFile(path string) textSource {
	return func(c *PdfToTextClient) error {
		if path == "" {
			return invalid(inputPdfField, "input file path cannot be empty")
		}
		c.params.ClearFiles()
		c.params.SetFile(inputPdfField, path)
		c.params.Set("url", "")
		return nil
	}
}

func fromURL(url string) textSource {
	return func(c *PdfToTextClient) error {
		if err := validateURL("url", url); err != nil {
			return err
		}
		c.params.ClearFiles()
		c.params.Set("url", url)
		return nil
	}
}

func fromBytes(data []byte) textSource {
	return func(c *PdfToTextClient) error {
		if len(data) == 0 {
			return ErrEmptyFileData
		}
		c.params.ClearFiles()
		c.params.SetBinary(inputPdfField, data)
		c.params.Set("url", "")
		return nil
	}
}

// TextFromFile extracts the text of a local PDF.
func (c *PdfToTextClient) TextFromFile(ctx context.Context, path string) (string, error) {
	return c.text(ctx, fromFile(path), false)
}

func (c *PdfToTextClient) TextFromFileToFile(ctx context.Context, path, outputPath string) error {
	return c.textToFile(ctx, fromFile(path), outputPath, false)
}

func (c *PdfToTextClient) TextFromFileAsync(ctx context.Context, path string) (string, error) {
	return c.text(ctx, fromFile(path), true)
}

func (c *PdfToTextClient) TextFromFileToFileAsync(ctx context.Context, path, outputPath string) error {
	return c.textToFile(ctx, fromFile(path), outputPath, true)
}

// TextFromURL extracts the text of a PDF the service downloads from url.
func (c *PdfToTextClient) TextFromURL(ctx context.Context, url string) (string, error) {
	return c.text(ctx, fromURL(url), false)
}

func (c *PdfToTextClient) TextFromURLToFile(ctx context.Context, url, outputPath string) error {
	return c.textToFile(ctx, fromURL(url), outputPath, false)
}

func (c *PdfToTextClient) TextFromURLAsync(ctx context.Context, url string) (string, error) {
	return c.text(ctx, fromURL(url), true)
}

func (c *PdfToTextClient) TextFromURLToFileAsync(ctx context.Context, url, outputPath string) error {
	return c.textToFile(ctx, fromURL(url), outputPath, true)
}

// TextFromBytes extracts the text of an in-memory PDF.
func (c *PdfToTextClient) TextFromBytes(ctx context.Context, data []byte) (string, error) {
	return c.text(ctx, fromBytes(data), false)
}

func (c *PdfToTextClient) TextFromBytesToFile(ctx context.Context, data []byte, outputPath string) error {
	return c.textToFile(ctx, fromBytes(data), outputPath, false)
}

func (c *PdfToTextClient) TextFromBytesAsync(ctx context.Context, data []byte) (string, error) {
	return c.text(ctx, fromBytes(data), true)
}

func (c *PdfToTextClient) TextFromBytesToFileAsync(ctx context.Context, data []byte, outputPath string) error {
	return c.textToFile(ctx, fromBytes(data), outputPath, true)
}

// SearchFile searches text in a local PDF.
func (c *PdfToTextClient) SearchFile(ctx context.Context, path, text string, caseSensitive, wholeWordsOnly bool) ([]TextMatch, error) {
	return c.search(ctx, fromFile(path), text, caseSensitive, wholeWordsOnly, false)
}

func (c *PdfToTextClient) SearchFileAsync(ctx context.Context, path, text string, caseSensitive, wholeWordsOnly bool) ([]TextMatch, error) {
	return c.search(ctx, fromFile(path), text, caseSensitive, wholeWordsOnly, true)
}

// SearchURL searches text in a PDF the service downloads from url.
func (c *PdfToTextClient) SearchURL(ctx context.Context, url, text string, caseSensitive, wholeWordsOnly bool) ([]TextMatch, error) {
	return c.search(ctx, fromURL(url), text, caseSensitive, wholeWordsOnly, false)
}

func (c *PdfToTextClient) SearchURLAsync(ctx context.Context, url, text string, caseSensitive, wholeWordsOnly bool) ([]TextMatch, error) {
	return c.search(ctx, fromURL(url), text, caseSensitive, wholeWordsOnly, true)
}

// SearchBytes searches text in an in-memory PDF.
func (c *PdfToTextClient) SearchBytes(ctx context.Context, data []byte, text string, caseSensitive, wholeWordsOnly bool) ([]TextMatch, error) {
	return c.search(ctx, fromBytes(data), text, caseSensitive, wholeWordsOnly, false)
}

func (c *PdfToTextClient) SearchBytesAsync(ctx context.Context, data []byte, text string, caseSensitive, wholeWordsOnly bool) ([]TextMatch, error) {
	return c.search(ctx, fromBytes(data), text, caseSensitive, wholeWordsOnly, true)
}

func (c *PdfToTextClient) SetStartPage(page int) { c.params.SetInt("start_page", page) }

// SetEndPage sets the last processed page. 0 processes to the end.
func (c *PdfToTextClient) SetEndPage(page int) { c.params.SetInt("end_page", page) }

func (c *PdfToTextClient) SetUserPassword(password string) { c.params.Set("user_password", password) }

func (c *PdfToTextClient) SetTextLayout(layout TextLayout) error {
	if layout != TextLayoutOriginal && layout != TextLayoutReading {
		return invalid("text_layout", "allowed values: 0 (Original), 1 (Reading)")
	}
	c.params.SetInt("text_layout", int(layout))
	return nil
}

func (c *PdfToTextClient) SetOutputFormat(format OutputFormat) error {
	if format != OutputText && format != OutputHTML {
		return invalid("output_format", "allowed values: 0 (Text), 1 (Html)")
	}
	c.params.SetInt("output_format", int(format))
	return nil
}

// SetTimeout bounds the server-side processing time, in seconds.
func (c *PdfToTextClient) SetTimeout(seconds int) { c.params.SetInt("timeout", seconds) }

func (c *PdfToTextClient) text(ctx context.Context, source textSource, async bool) (string, error) {
	release, err := c.acquire()
	if err != nil {
		return "", err
	}
	defer release()

	if err := source(c); err != nil {
		return "", err
	}
	c.params.Set("action", string(ActionConvert))
	c.params.Delete("search_text")
	c.params.Delete("case_sensitive")
	c.params.Delete("whole_words_only")
	delete(c.headers, "Accept")

	resp, err := c.run(ctx, OperationText, async)
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", OperationText, err)
	}
	return string(resp.Body), nil
}

func (c *PdfToTextClient) textToFile(ctx context.Context, source textSource, outputPath string, async bool) error {
	if outputPath == "" {
		return ErrEmptyOutputPath
	}
	text, err := c.text(ctx, source, async)
	if err != nil {
		return err
	}
	return WriteText(outputPath, text)
}

func (c *PdfToTextClient) search(ctx context.Context, source textSource, text string, caseSensitive, wholeWordsOnly, async bool) ([]TextMatch, error) {
	if text == "" {
		return nil, ErrEmptySearchText
	}

	release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if err := source(c); err != nil {
		return nil, err
	}
	c.params.Set("action", string(ActionSearch))
	c.params.Set("search_text", text)
	c.params.Set("case_sensitive", FormatBool(caseSensitive))
	c.params.Set("whole_words_only", FormatBool(wholeWordsOnly))
	c.headers["Accept"] = ContentTypeJSON

	resp, err := c.run(ctx, OperationSearch, async)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", OperationSearch, err)
	}
	return decodeJSON(OperationSearch, resp.Body, []TextMatch{})
}

func (c *PdfToTextClient) run(ctx context.Context, operation Operation, async bool) (*Response, error) {
	if async {
		return c.doAsync(ctx, operation, true)
	}
	return c.doSync(ctx, true)
}
