package client

import (
	"maps"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// config is resolved once per client from its options and never mutated afterwards.
type config struct {
	baseURL      string
	timeout      time.Duration
	pollInterval time.Duration
	maxPolls     int
	restyClient  *resty.Client
	executor     Executor
	logger       *zap.Logger
	limiter      *rate.Limiter
	headers      map[string]string
}

type Option func(*config)

func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithTimeout bounds the wall-clock time of a single HTTP exchange.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithPollInterval sets the delay between two status checks of an async job.
func WithPollInterval(interval time.Duration) Option {
	return func(c *config) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithMaxPolls sets how many unfinished status checks are tolerated before
// an async job is reported as timed out.
func WithMaxPolls(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxPolls = n
		}
	}
}

// WithRestyClient allows callers to provide a preconfigured HTTP client.
func WithRestyClient(restyClient *resty.Client) Option {
	return func(c *config) {
		if restyClient != nil {
			c.restyClient = restyClient
		}
	}
}

// WithExecutor replaces the HTTP layer entirely. Base URL, timeout, rate limit
// and extra headers are then the executor's responsibility.
func WithExecutor(executor Executor) Option {
	return func(c *config) {
		if executor != nil {
			c.executor = executor
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRateLimit caps outgoing exchanges per second. Zero or less disables the limit.
func WithRateLimit(rps float64) Option {
	return func(c *config) {
		c.limiter = NewLimiter(rps)
	}
}

// NewLimiter returns a limiter allowing rps requests per second with a burst of
// at least one, or nil when rps is not positive.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// WithLimiter shares an existing limiter, so several clients draw from one budget.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *config) {
		c.limiter = limiter
	}
}

// WithHeader adds an HTTP header to every request.
func WithHeader(key, value string) Option {
	return func(c *config) {
		if c.headers == nil {
			c.headers = make(map[string]string)
		}
		c.headers[key] = value
	}
}

func newConfig(opts []Option) config {
	c := config{
		baseURL:      DefaultBaseURL,
		timeout:      DefaultTimeout,
		pollInterval: DefaultPollInterval,
		maxPolls:     DefaultMaxPolls,
		logger:       zap.NewNop(),
	}

	for _, opt := range opts {
		opt(&c)
	}

	c.headers = maps.Clone(c.headers)

	if c.executor == nil {
		if c.restyClient == nil {
			c.restyClient = newDefaultAPIClient()
		}
		c.executor = newRestyExecutor(c)
	}

	return c
}

// newDefaultAPIClient builds a resty client on the pooled retryablehttp
// transport. RetryMax is 0: each exchange is sent exactly once.
func newDefaultAPIClient() *resty.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	return resty.New().
		SetTransport(retryClient.HTTPClient.Transport).
		SetRetryCount(0)
}
