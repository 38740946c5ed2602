package client

import (
	"context"
	"fmt"
)

// UsageInfo is the account usage document, e.g. the "available" conversions
// left this month and, on request, the usage history.
type UsageInfo map[string]any

// UsageClient reads API usage for an account.
type UsageClient struct {
	*apiCall
}

func NewUsageClient(apiKey string, opts ...Option) (*UsageClient, error) {
	call, err := newAPICall(apiKey, EndpointUsage, newConfig(opts))
	if err != nil {
		return nil, err
	}
	call.headers["Accept"] = ContentTypeJSON
	return &UsageClient{apiCall: call}, nil
}

// Usage returns the usage document, including history when history is true.
func (c *UsageClient) Usage(ctx context.Context, history bool) (UsageInfo, error) {
	release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if history {
		c.params.Set("get_history", True)
	} else {
		c.params.Delete("get_history")
	}

	resp, err := c.exchange(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", OperationUsage, err)
	}
	return decodeJSON(OperationUsage, resp.Body, UsageInfo{})
}
