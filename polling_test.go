package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAsyncJob(t *testing.T) {
	_, err := NewAsyncJob("", "job")
	assert.ErrorIs(t, err, ErrEmptyAPIKey)

	_, err = NewAsyncJob("key", "")
	assert.ErrorIs(t, err, ErrEmptyJobID)

	job, err := NewAsyncJob("key", "job")
	require.NoError(t, err)
	assert.Equal(t, "job", job.ID())
}

func TestAsyncJobWait(t *testing.T) {
	ctx := context.Background()

	t.Run("finishes on 200", func(t *testing.T) {
		exec := newScript(accepted("job"), accepted("job"), okStep("%PDF", 4, ""))
		job, err := NewAsyncJob("key", "job", testOptions(exec)...)
		require.NoError(t, err)

		resp, err := job.Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF"), resp.Body)
		assert.Equal(t, 4, resp.Pages)
		assert.Equal(t, 3, exec.calls())
		assert.Equal(t, 2, job.Polls())

		req := exec.request(t, 0)
		assert.Equal(t, EndpointAsyncJob, req.Endpoint)
		values := formValues(t, req.Body)
		assert.Equal(t, "key", values.Get("key"))
		assert.Equal(t, "job", values.Get("job_id"))
	})

	t.Run("gives up after max polls", func(t *testing.T) {
		exec := newScript(accepted("job"), accepted("job"), accepted("job"))
		job, err := NewAsyncJob("key", "job", append(testOptions(exec), WithMaxPolls(2))...)
		require.NoError(t, err)

		_, err = job.Wait(ctx)
		assert.ErrorIs(t, err, ErrJobTimeout)
		assert.Equal(t, 2, exec.calls())
		assert.Equal(t, 2, job.Polls())
	})

	t.Run("api error aborts", func(t *testing.T) {
		exec := newScript(accepted("job"), failed(401, "Invalid API key"), accepted("job"))
		job, err := NewAsyncJob("key", "job", testOptions(exec)...)
		require.NoError(t, err)

		_, err = job.Wait(ctx)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 401, apiErr.StatusCode)
		assert.Equal(t, 2, exec.calls())
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		exec := newScript(accepted("job"), accepted("job"))
		job, err := NewAsyncJob("key", "job", WithExecutor(exec), WithPollInterval(time.Hour))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(20*time.Millisecond, cancel)

		_, err = job.Wait(ctx)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, 1, exec.calls())
	})
}

func TestAsyncJobStart(t *testing.T) {
	exec := newScript(accepted("job"), okStep("done", 1, ""))
	job, err := NewAsyncJob("key", "job", testOptions(exec)...)
	require.NoError(t, err)

	select {
	case res := <-job.Start(context.Background()):
		require.NoError(t, res.Err)
		assert.Equal(t, []byte("done"), res.Response.Body)
	case <-time.After(5 * time.Second):
		t.Fatal("job did not finish")
	}
}

// timedExecutor wraps a script and records when each request arrived.
type timedExecutor struct {
	*scriptedExecutor
	at []time.Time
}

func (e *timedExecutor) Execute(ctx context.Context, req *Request) (*Response, error) {
	e.at = append(e.at, time.Now())
	return e.scriptedExecutor.Execute(ctx, req)
}

func TestAsyncJobPollSpacing(t *testing.T) {
	const interval = 40 * time.Millisecond

	exec := &timedExecutor{scriptedExecutor: newScript(accepted("job"), accepted("job"), accepted("job"), okStep("%PDF", 1, ""))}
	job, err := NewAsyncJob("key", "job", WithExecutor(exec), WithPollInterval(interval))
	require.NoError(t, err)

	_, err = job.Wait(context.Background())
	require.NoError(t, err)
	require.Len(t, exec.at, 4)

	for i := 1; i < len(exec.at); i++ {
		gap := exec.at[i].Sub(exec.at[i-1])
		assert.GreaterOrEqual(t, gap, interval, "gap before poll %d", i+1)
	}
}
