package client

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPdfMerge(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	first := filepath.Join(dir, "first.pdf")
	require.NoError(t, os.WriteFile(first, []byte("%PDF-1"), 0o644))

	t.Run("inputs are posted in order", func(t *testing.T) {
		exec := newScript(okStep("%PDF-merged", 3, ""))
		c, err := NewPdfMergeClient("key", testOptions(exec)...)
		require.NoError(t, err)
		c.SetDocTitle("Merged")

		require.NoError(t, c.AddFile(first, ""))
		require.NoError(t, c.AddURLFile("https://example.com/second.pdf", "secret"))
		require.NoError(t, c.AddBytes([]byte("%PDF-3"), ""))
		assert.Equal(t, 3, c.Inputs())

		data, err := c.Save(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-merged"), data)
		assert.Equal(t, 3, c.Pages())

		req := exec.request(t, 0)
		assert.Equal(t, EndpointPdfMerge, req.Endpoint)
		parts := multipartParts(t, req.Body)
		byName := partsByName(parts)
		assert.Equal(t, "key", byName["key"].data)
		assert.Equal(t, "Merged", byName["doc_title"].data)
		assert.Equal(t, "https://example.com/second.pdf", byName["url_2"].data)
		assert.Equal(t, "secret", byName["password_2"].data)
		assert.Equal(t, "3", byName["files_no"].data)
		assert.Equal(t, False, byName["async"].data)
		assert.Equal(t, "first.pdf", byName["file_1"].filename)
		assert.Equal(t, "%PDF-3", byName["file_3"].data)
		assert.NotContains(t, byName, "url_1")

		var fileOrder []string
		for _, p := range parts {
			if p.filename != "" {
				fileOrder = append(fileOrder, p.name)
			}
		}
		assert.Equal(t, []string{"file_1", "file_3"}, fileOrder)
	})

	t.Run("inputs are cleared after save", func(t *testing.T) {
		exec := newScript(okStep("a", 1, ""), okStep("b", 1, ""))
		c, err := NewPdfMergeClient("key", testOptions(exec)...)
		require.NoError(t, err)

		require.NoError(t, c.AddFile(first, ""))
		require.NoError(t, c.AddFile(first, ""))
		_, err = c.Save(ctx)
		require.NoError(t, err)
		assert.Zero(t, c.Inputs())

		_, err = c.Save(ctx)
		assert.ErrorIs(t, err, ErrNoInputFiles)

		require.NoError(t, c.AddURLFile("https://example.com/x.pdf", ""))
		_, err = c.Save(ctx)
		require.NoError(t, err)

		byName := partsByName(multipartParts(t, exec.request(t, 1).Body))
		assert.Equal(t, "1", byName["files_no"].data)
		assert.NotContains(t, byName, "file_2")
		assert.NotContains(t, byName, "file_1")
	})

	t.Run("async", func(t *testing.T) {
		exec := newScript(accepted("m-1"), okStep("%PDF", 2, ""))
		c, err := NewPdfMergeClient("key", testOptions(exec)...)
		require.NoError(t, err)
		require.NoError(t, c.AddURLFile("https://example.com/x.pdf", ""))

		out := filepath.Join(dir, "merged.pdf")
		require.NoError(t, c.SaveToFileAsync(ctx, out))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(data))
		assert.Equal(t, "m-1", c.JobID())

		byName := partsByName(multipartParts(t, exec.request(t, 0).Body))
		assert.Equal(t, True, byName["async"].data)
	})

	t.Run("validation", func(t *testing.T) {
		exec := newScript()
		c, err := NewPdfMergeClient("key", testOptions(exec)...)
		require.NoError(t, err)

		assert.Error(t, c.AddFile("", ""))
		assert.ErrorIs(t, c.AddURLFile("ftp://x", ""), ErrUnsupportedURL)
		assert.ErrorIs(t, c.AddBytes(nil, ""), ErrEmptyFileData)
		assert.ErrorIs(t, c.SaveToFile(ctx, ""), ErrEmptyOutputPath)
		_, err = c.SaveAsync(ctx)
		assert.ErrorIs(t, err, ErrNoInputFiles)
		assert.Zero(t, exec.calls())
	})

	t.Run("unreadable input", func(t *testing.T) {
		exec := newScript()
		c, err := NewPdfMergeClient("key", testOptions(exec)...)
		require.NoError(t, err)
		require.NoError(t, c.AddFile(filepath.Join(dir, "missing.pdf"), ""))

		_, err = c.Save(ctx)
		var fileErr *FileError
		assert.ErrorAs(t, err, &fileErr)
		assert.Zero(t, exec.calls())
		assert.Zero(t, c.Inputs())
	})
}
