package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	for _, u := range []string{"http://a", "https://a/b?c=d", "HTTPS://A"} {
		assert.NoError(t, validateURL("url", u), u)
	}
	for _, u := range []string{"", "ftp://a", "a.com", " https://a", "file:///etc"} {
		assert.ErrorIs(t, validateURL("url", u), ErrUnsupportedURL, u)
	}
}

func TestWriteText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")
	require.NoError(t, WriteText(path, "ünïcode"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ünïcode", string(data))

	assert.ErrorIs(t, WriteText("", "x"), ErrEmptyOutputPath)
}

func TestDecodeJSON(t *testing.T) {
	got, err := decodeJSON(OperationUsage, []byte(" \n"), UsageInfo{})
	require.NoError(t, err)
	assert.Equal(t, UsageInfo{}, got)

	got, err = decodeJSON(OperationUsage, []byte(`{"available":3}`), UsageInfo{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, got["available"])

	_, err = decodeJSON(OperationUsage, []byte(`[1,`), UsageInfo{})
	assert.Error(t, err)
}
