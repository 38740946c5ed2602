package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type step struct {
	resp *Response
	err  error
}

func okStep(body string, pages int, jobID string) step {
	return step{resp: &Response{StatusCode: 200, Body: []byte(body), Pages: pages, JobID: jobID}}
}

func accepted(jobID string) step {
	return step{resp: &Response{StatusCode: 202, JobID: jobID}}
}

func failed(status int, msg string) step {
	return step{err: &APIError{StatusCode: status, Message: msg}}
}

// scriptedExecutor answers requests with a fixed script and records them.
type scriptedExecutor struct {
	mu       sync.Mutex
	steps    []step
	requests []*Request
}

func newScript(steps ...step) *scriptedExecutor {
	return &scriptedExecutor{steps: steps}
}

func (s *scriptedExecutor) Execute(ctx context.Context, req *Request) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Endpoint: req.Endpoint, Err: err}
	}
	if len(s.steps) == 0 {
		return nil, errors.New("unexpected request")
	}
	next := s.steps[0]
	s.steps = s.steps[1:]
	return next.resp, next.err
}

func (s *scriptedExecutor) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *scriptedExecutor) request(t *testing.T, i int) *Request {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.Greater(t, len(s.requests), i)
	return s.requests[i]
}

// testOptions wires exec in and keeps async polling fast.
func testOptions(exec Executor) []Option {
	return []Option{WithExecutor(exec), WithPollInterval(time.Millisecond)}
}

func formValues(t *testing.T, body *EncodedBody) url.Values {
	t.Helper()
	require.Equal(t, ContentTypeForm, body.ContentType)
	values, err := url.ParseQuery(string(body.Data))
	require.NoError(t, err)
	return values
}

type formPart struct {
	name        string
	filename    string
	contentType string
	data        string
}

func multipartParts(t *testing.T, body *EncodedBody) []formPart {
	t.Helper()
	r := multipart.NewReader(bytes.NewReader(body.Data), MultipartBoundary)

	var parts []formPart
	for {
		p, err := r.NextPart()
		if errors.Is(err, io.EOF) {
			return parts
		}
		require.NoError(t, err)
		data, err := io.ReadAll(p)
		require.NoError(t, err)
		parts = append(parts, formPart{
			name:        p.FormName(),
			filename:    p.FileName(),
			contentType: p.Header.Get("Content-Type"),
			data:        string(data),
		})
	}
}

func partsByName(parts []formPart) map[string]formPart {
	out := make(map[string]formPart, len(parts))
	for _, p := range parts {
		out[p.name] = p
	}
	return out
}
