package client

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// AsyncJob polls the job-status endpoint for one asynchronous job until it
// finishes, fails or exhausts its poll budget. Polls never overlap: the next
// one is scheduled only after the previous exchange has returned.
type AsyncJob struct {
	apiKey   string
	id       string
	interval time.Duration
	maxPolls int
	executor Executor
	logger   *zap.Logger
	polls    int
}

// JobResult is the single eventual outcome of an AsyncJob.
type JobResult struct {
	Response *Response
	Err      error
}

// NewAsyncJob returns a poller for an already submitted job.
func NewAsyncJob(apiKey, jobID string, opts ...Option) (*AsyncJob, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}
	if jobID == "" {
		return nil, ErrEmptyJobID
	}
	return newAsyncJob(apiKey, jobID, newConfig(opts)), nil
}

func newAsyncJob(apiKey, jobID string, cfg config) *AsyncJob {
	return &AsyncJob{
		apiKey:   apiKey,
		id:       jobID,
		interval: cfg.pollInterval,
		maxPolls: cfg.maxPolls,
		executor: cfg.executor,
		logger:   cfg.logger,
	}
}

// ID returns the job identifier.
func (j *AsyncJob) ID() string { return j.id }

// Polls returns how many status checks came back unfinished so far.
func (j *AsyncJob) Polls() int { return j.polls }

// Wait blocks until the job reaches a terminal state. A 200 answer from the
// status endpoint is the completion signal; its body and page count are the
// job result. Protocol and transport errors abort immediately. Running out of
// polls returns an error wrapping ErrJobTimeout.
func (j *AsyncJob) Wait(ctx context.Context) (*Response, error) {
	params := NewParameterBag()
	params.Set("key", j.apiKey)
	params.Set("job_id", j.id)

	body, err := EncodeForm(params)
	if err != nil {
		return nil, err
	}

	for {
		resp, err := j.executor.Execute(ctx, &Request{Endpoint: EndpointAsyncJob, Body: body})
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", OperationAsyncJob, j.id, err)
		}

		if resp.Finished() {
			j.logger.Debug("async job finished", zap.String("job_id", j.id), zap.Int("polls", j.polls), zap.Int("pages", resp.Pages))
			return resp, nil
		}

		j.polls++
		if j.polls >= j.maxPolls {
			return nil, fmt.Errorf("%s %s after %d polls: %w", OperationAsyncJob, j.id, j.polls, ErrJobTimeout)
		}

		j.logger.Debug("async job still running", zap.String("job_id", j.id), zap.Int("polls", j.polls))

		if err := waitForNextPoll(ctx, j.interval, j.id); err != nil {
			return nil, err
		}
	}
}

// Start runs Wait in the background and delivers its outcome on the returned
// channel, which receives exactly one value.
func (j *AsyncJob) Start(ctx context.Context) <-chan JobResult {
	ch := make(chan JobResult, 1)
	go func() {
		resp, err := j.Wait(ctx)
		ch <- JobResult{Response: resp, Err: err}
	}()
	return ch
}

// waitForNextPoll blocks until the interval elapses or the context is cancelled.
func waitForNextPoll(ctx context.Context, interval time.Duration, jobID string) error {
	timer := time.NewTimer(interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting for job %s cancelled: %w", jobID, ctx.Err())
	case <-timer.C:
		return nil
	}
}
