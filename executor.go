package client

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Request is one POST to an API endpoint.
type Request struct {
	Endpoint string
	Body     *EncodedBody
	Headers  map[string]string
}

// Response is the outcome of an exchange answered with 200 or 202.
// A 202 carries no body.
type Response struct {
	StatusCode int
	Body       []byte
	Pages      int
	JobID      string
}

// Finished reports whether the exchange returned a complete result.
func (r *Response) Finished() bool {
	return r != nil && r.StatusCode == http.StatusOK
}

// Accepted reports whether the server queued the work for later.
func (r *Response) Accepted() bool {
	return r != nil && r.StatusCode == http.StatusAccepted
}

type restyExecutor struct {
	restyClient *resty.Client
	baseURL     string
	timeout     time.Duration
	limiter     *rate.Limiter
	headers     map[string]string
	logger      *zap.Logger
}

var _ Executor = (*restyExecutor)(nil)

func newRestyExecutor(c config) *restyExecutor {
	return &restyExecutor{
		restyClient: c.restyClient,
		baseURL:     strings.TrimRight(c.baseURL, "/"),
		timeout:     c.timeout,
		limiter:     c.limiter,
		headers:     c.headers,
		logger:      c.logger,
	}
}

// Execute posts req and classifies the answer by status code.
func (e *restyExecutor) Execute(ctx context.Context, req *Request) (*Response, error) {
	endpoint := e.resolve(req.Endpoint)
	body := req.Body
	if body == nil {
		body = &EncodedBody{ContentType: ContentTypeForm}
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("rate limit: %w", err)}
		}
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.restyClient.R().
		SetContext(ctx).
		SetHeader(HeaderClient, clientIdentifier()).
		SetHeaders(e.headers).
		SetHeaders(req.Headers).
		SetHeader("Content-Type", body.ContentType).
		SetBody(body.Data).
		Post(endpoint)

	if err != nil {
		e.logger.Debug("exchange failed", zap.String("endpoint", req.Endpoint), zap.Error(err))
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	jobID := resp.Header().Get(HeaderJobID)
	pages := parsePages(resp.Header().Get(HeaderPages))

	e.logger.Debug("exchange completed",
		zap.String("endpoint", req.Endpoint),
		zap.Int("status", resp.StatusCode()),
		zap.String("job_id", jobID),
		zap.Int("pages", pages),
		zap.Duration("elapsed", resp.Time()),
	)

	switch resp.StatusCode() {
	case http.StatusOK:
		return &Response{StatusCode: http.StatusOK, Body: resp.Body(), Pages: pages, JobID: jobID}, nil
	case http.StatusAccepted:
		return &Response{StatusCode: http.StatusAccepted, Pages: pages, JobID: jobID}, nil
	default:
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: string(resp.Body())}
	}
}

func (e *restyExecutor) resolve(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return e.baseURL + endpoint
}

func parsePages(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func clientIdentifier() string {
	return fmt.Sprintf("go-%s-%s", runtime.Version(), ClientVersion)
}
