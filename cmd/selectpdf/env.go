package main

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
)

// envConfig is the SELECTPDF_* environment layer. Unset variables keep the
// flag defaults; flags given on the command line win over both.
type envConfig struct {
	APIKey       string        `envconfig:"API_KEY"`
	BaseURL      string        `envconfig:"BASE_URL"`
	Timeout      time.Duration `envconfig:"TIMEOUT"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL"`
	MaxPolls     int           `envconfig:"MAX_POLLS"`
	RateLimit    float64       `envconfig:"RATE_LIMIT"`
	LogLevel     string        `envconfig:"LOG_LEVEL"`
	LogDev       *bool         `envconfig:"LOG_DEV"`
	FailLog      string        `envconfig:"FAIL_LOG"`
}

const envPrefix = "SELECTPDF"

func loadEnv() (envConfig, error) {
	var env envConfig
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return envConfig{}, fmt.Errorf("load %s_* environment: %w", envPrefix, err)
	}
	return env, nil
}

func (o *cliOptions) applyEnv(flags *pflag.FlagSet) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	set := func(name string, present bool, apply func()) {
		if present && !flags.Changed(name) {
			apply()
		}
	}

	set("api-key", env.APIKey != "", func() { o.apiKey = env.APIKey })
	set("base-url", env.BaseURL != "", func() { o.baseURL = env.BaseURL })
	set("timeout", env.Timeout > 0, func() { o.timeout = env.Timeout })
	set("poll-interval", env.PollInterval > 0, func() { o.pollInterval = env.PollInterval })
	set("max-polls", env.MaxPolls > 0, func() { o.maxPolls = env.MaxPolls })
	set("rate-limit", env.RateLimit > 0, func() { o.rateLimit = env.RateLimit })
	set("log-level", env.LogLevel != "", func() { o.logLevel = env.LogLevel })
	set("log-dev", env.LogDev != nil, func() { o.logDev = *env.LogDev })
	set("fail-log", env.FailLog != "", func() { o.failLogPath = env.FailLog })

	return nil
}
