package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsage(t *testing.T) {
	ctx := context.Background()

	t.Run("over http", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, EndpointUsage, r.URL.Path)
			assert.Equal(t, ContentTypeJSON, r.Header.Get("Accept"))
			body, _ := io.ReadAll(r.Body)
			values, err := url.ParseQuery(string(body))
			assert.NoError(t, err)
			assert.Equal(t, "key", values.Get("key"))
			assert.Equal(t, True, values.Get("get_history"))
			assert.NotContains(t, values, "async")

			_, _ = w.Write([]byte(`{"available":120,"history":[]}`))
		}))
		defer srv.Close()

		c, err := NewUsageClient("key", WithBaseURL(srv.URL))
		require.NoError(t, err)

		info, err := c.Usage(ctx, true)
		require.NoError(t, err)
		assert.EqualValues(t, 120, info["available"])
	})

	t.Run("history flag is removed again", func(t *testing.T) {
		exec := newScript(okStep("{}", 0, ""), okStep("", 0, ""))
		c, err := NewUsageClient("key", testOptions(exec)...)
		require.NoError(t, err)

		_, err = c.Usage(ctx, true)
		require.NoError(t, err)
		info, err := c.Usage(ctx, false)
		require.NoError(t, err)
		assert.NotNil(t, info)
		assert.Empty(t, info)

		assert.NotContains(t, formValues(t, exec.request(t, 1).Body), "get_history")
	})

	t.Run("api error", func(t *testing.T) {
		c, err := NewUsageClient("key", testOptions(newScript(failed(401, "bad key")))...)
		require.NoError(t, err)

		_, err = c.Usage(ctx, false)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 401, c.StatusCode())
	})
}

func TestWebElementsClient(t *testing.T) {
	_, err := NewWebElementsClient("key", "")
	assert.ErrorIs(t, err, ErrEmptyJobID)
	_, err = NewWebElementsClient("", "job")
	assert.ErrorIs(t, err, ErrEmptyAPIKey)

	exec := newScript(okStep("", 0, ""))
	c, err := NewWebElementsClient("key", "job", testOptions(exec)...)
	require.NoError(t, err)

	elements, err := c.WebElements(context.Background())
	require.NoError(t, err)
	assert.Empty(t, elements)
	assert.Equal(t, "job", formValues(t, exec.request(t, 0).Body).Get("job_id"))
}
