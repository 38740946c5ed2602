package client

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// apiCall is the request state shared by every endpoint client: the target
// endpoint, the parameters and headers accumulated for it, and what the last
// exchange reported. One apiCall runs at most one operation at a time.
type apiCall struct {
	cfg      config
	endpoint string
	params   *ParameterBag
	headers  map[string]string

	busy sync.Mutex

	statusCode int
	pages      int
	jobID      string
}

func newAPICall(apiKey, endpoint string, cfg config) (*apiCall, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}
	c := &apiCall{
		cfg:      cfg,
		endpoint: endpoint,
		params:   NewParameterBag(),
		headers:  make(map[string]string),
	}
	c.params.Set("key", apiKey)
	return c, nil
}

func (c *apiCall) apiKey() string {
	key, _ := c.params.Get("key")
	return key
}

// acquire claims the client for one operation. Every public operation calls
// it before touching the parameters and releases it once the exchange and any
// cleanup are done, so a rejected call leaves the client untouched.
func (c *apiCall) acquire() (release func(), err error) {
	if !c.busy.TryLock() {
		return nil, ErrConcurrentUse
	}
	return c.busy.Unlock, nil
}

// doSync runs the operation synchronously. The caller holds the lock.
func (c *apiCall) doSync(ctx context.Context, multipart bool) (*Response, error) {
	c.params.Set("async", False)
	return c.exchange(ctx, multipart)
}

// doAsync submits the operation as an asynchronous job and polls the job
// status endpoint until it completes. The submission job id stays available
// through jobID; pages come from the final poll. The caller holds the lock.
func (c *apiCall) doAsync(ctx context.Context, operation Operation, multipart bool) (*Response, error) {
	c.params.Set("async", True)
	resp, err := c.exchange(ctx, multipart)
	if err != nil {
		return nil, errAsyncLaunch(operation, err)
	}

	if resp.Finished() {
		return resp, nil
	}
	if resp.JobID == "" {
		return nil, errAsyncLaunch(operation, ErrMissingJobID)
	}

	c.cfg.logger.Debug("async job submitted", zap.String("operation", string(operation)), zap.String("job_id", resp.JobID))

	job := newAsyncJob(c.apiKey(), resp.JobID, c.cfg)
	result, err := job.Wait(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			c.statusCode = apiErr.StatusCode
		}
		return nil, err
	}

	c.statusCode = result.StatusCode
	c.pages = result.Pages
	return result, nil
}

// exchange encodes the parameters and posts them once. Status, pages and job
// id are cleared first so values from an earlier exchange never leak.
func (c *apiCall) exchange(ctx context.Context, multipart bool) (*Response, error) {
	c.statusCode, c.pages, c.jobID = 0, 0, ""

	var (
		body *EncodedBody
		err  error
	)
	if multipart {
		body, err = EncodeMultipart(c.params)
	} else {
		body, err = EncodeForm(c.params)
	}
	if err != nil {
		return nil, err
	}

	resp, err := c.cfg.executor.Execute(ctx, &Request{Endpoint: c.endpoint, Body: body, Headers: c.headers})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			c.statusCode = apiErr.StatusCode
		}
		return nil, err
	}

	c.statusCode = resp.StatusCode
	c.pages = resp.Pages
	c.jobID = resp.JobID
	return resp, nil
}

// StatusCode returns the HTTP status of the last exchange, 0 before any.
func (c *apiCall) StatusCode() int { return c.statusCode }

// Pages returns the page count reported by the last completed operation.
func (c *apiCall) Pages() int { return c.pages }

// JobID returns the job id reported by the last operation.
func (c *apiCall) JobID() string { return c.jobID }

// SetCustomParameter sets a raw API parameter.
func (c *apiCall) SetCustomParameter(name, value string) {
	c.params.Set(name, value)
}

// Name returns the service name.
func (c *apiCall) Name() string { return ServiceName }

// Version returns the client library version.
func (c *apiCall) Version() string { return ClientVersion }
