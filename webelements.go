package client

import (
	"context"
	"fmt"
)

// WebElement describes where one element matched by the web elements
// selectors was placed in the PDF. Keys are as reported by the service.
type WebElement map[string]any

// WebElementsClient fetches the element positions recorded by a conversion job.
type WebElementsClient struct {
	*apiCall
}

// NewWebElementsClient returns a client for the job identified by jobID.
func NewWebElementsClient(apiKey, jobID string, opts ...Option) (*WebElementsClient, error) {
	return newWebElementsClient(apiKey, jobID, newConfig(opts))
}

func newWebElementsClient(apiKey, jobID string, cfg config) (*WebElementsClient, error) {
	if jobID == "" {
		return nil, ErrEmptyJobID
	}
	call, err := newAPICall(apiKey, EndpointWebElements, cfg)
	if err != nil {
		return nil, err
	}
	call.params.Set("job_id", jobID)
	call.headers["Accept"] = ContentTypeJSON
	return &WebElementsClient{apiCall: call}, nil
}

// WebElements returns the recorded element positions. A job without
// matches yields an empty slice.
func (c *WebElementsClient) WebElements(ctx context.Context) ([]WebElement, error) {
	release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	resp, err := c.exchange(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", OperationWebElements, err)
	}
	return decodeJSON(OperationWebElements, resp.Body, []WebElement{})
}
