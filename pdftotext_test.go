package client

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPdfToText(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	input := filepath.Join(dir, "in.pdf")
	require.NoError(t, os.WriteFile(input, []byte("%PDF-in"), 0o644))

	t.Run("text from file", func(t *testing.T) {
		exec := newScript(okStep("héllo", 1, ""))
		c, err := NewPdfToTextClient("key", testOptions(exec)...)
		require.NoError(t, err)
		c.SetStartPage(2)
		c.SetEndPage(0)
		require.NoError(t, c.SetTextLayout(TextLayoutReading))

		text, err := c.TextFromFile(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "héllo", text)

		req := exec.request(t, 0)
		assert.Equal(t, EndpointPdfToText, req.Endpoint)
		byName := partsByName(multipartParts(t, req.Body))
		assert.Equal(t, "Convert", byName["action"].data)
		assert.Equal(t, "2", byName["start_page"].data)
		assert.Equal(t, "0", byName["end_page"].data)
		assert.Equal(t, "1", byName["text_layout"].data)
		assert.Equal(t, "in.pdf", byName[inputPdfField].filename)
		assert.Equal(t, "%PDF-in", byName[inputPdfField].data)
		assert.NotContains(t, byName, "url")
	})

	t.Run("text from url to file async", func(t *testing.T) {
		exec := newScript(accepted("t-1"), okStep("text", 4, ""))
		c, err := NewPdfToTextClient("key", testOptions(exec)...)
		require.NoError(t, err)

		out := filepath.Join(dir, "out.txt")
		require.NoError(t, c.TextFromURLToFileAsync(ctx, "https://example.com/a.pdf", out))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "text", string(data))
		assert.Equal(t, 4, c.Pages())

		byName := partsByName(multipartParts(t, exec.request(t, 0).Body))
		assert.Equal(t, "https://example.com/a.pdf", byName["url"].data)
		assert.Equal(t, True, byName["async"].data)
		assert.NotContains(t, byName, inputPdfField)
	})

	t.Run("search bytes", func(t *testing.T) {
		exec := newScript(okStep(`[{"page":1,"text":"pdf"},{"page":2,"text":"PDF"}]`, 2, ""))
		c, err := NewPdfToTextClient("key", testOptions(exec)...)
		require.NoError(t, err)

		matches, err := c.SearchBytes(ctx, []byte("%PDF"), "pdf", false, true)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "PDF", matches[1]["text"])

		req := exec.request(t, 0)
		assert.Equal(t, ContentTypeJSON, req.Headers["Accept"])
		byName := partsByName(multipartParts(t, req.Body))
		assert.Equal(t, "Search", byName["action"].data)
		assert.Equal(t, "pdf", byName["search_text"].data)
		assert.Equal(t, False, byName["case_sensitive"].data)
		assert.Equal(t, True, byName["whole_words_only"].data)
		assert.Equal(t, inputPdfField, byName[inputPdfField].filename)
	})

	t.Run("empty search result", func(t *testing.T) {
		exec := newScript(okStep("", 1, ""))
		c, err := NewPdfToTextClient("key", testOptions(exec)...)
		require.NoError(t, err)

		matches, err := c.SearchURL(ctx, "https://example.com/a.pdf", "none", true, false)
		require.NoError(t, err)
		assert.NotNil(t, matches)
		assert.Empty(t, matches)
	})

	t.Run("search then convert drops search fields", func(t *testing.T) {
		exec := newScript(okStep("[]", 1, ""), okStep("text", 1, ""))
		c, err := NewPdfToTextClient("key", testOptions(exec)...)
		require.NoError(t, err)

		_, err = c.SearchFile(ctx, input, "x", false, false)
		require.NoError(t, err)
		_, err = c.TextFromBytes(ctx, []byte("%PDF"))
		require.NoError(t, err)

		req := exec.request(t, 1)
		assert.NotContains(t, req.Headers, "Accept")
		byName := partsByName(multipartParts(t, req.Body))
		assert.NotContains(t, byName, "search_text")
		assert.Equal(t, "Convert", byName["action"].data)
	})

	t.Run("validation", func(t *testing.T) {
		exec := newScript()
		c, err := NewPdfToTextClient("key", testOptions(exec)...)
		require.NoError(t, err)

		_, err = c.SearchFile(ctx, input, "", false, false)
		assert.ErrorIs(t, err, ErrEmptySearchText)
		_, err = c.TextFromURL(ctx, "example.com/a.pdf")
		assert.ErrorIs(t, err, ErrUnsupportedURL)
		_, err = c.TextFromBytes(ctx, nil)
		assert.ErrorIs(t, err, ErrEmptyFileData)
		assert.ErrorIs(t, c.TextFromFileToFile(ctx, input, ""), ErrEmptyOutputPath)
		assert.Error(t, c.SetTextLayout(2))
		assert.Error(t, c.SetOutputFormat(2))
		assert.Zero(t, exec.calls())
	})

	t.Run("malformed search response", func(t *testing.T) {
		exec := newScript(okStep("not json", 1, ""))
		c, err := NewPdfToTextClient("key", testOptions(exec)...)
		require.NoError(t, err)

		_, err = c.SearchFile(ctx, input, "x", false, false)
		assert.ErrorContains(t, err, "decode response")
	})
}
