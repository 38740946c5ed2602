package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	client "github.com/hsn0918/selectpdf-client"
	"github.com/hsn0918/selectpdf-client/internal/logging"
)

type cliOptions struct {
	apiKey       string
	baseURL      string
	timeout      time.Duration
	pollInterval time.Duration
	maxPolls     int
	rateLimit    float64
	logLevel     string
	logDev       bool
	failLogPath  string
	paramsFile   string

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "selectpdf",
		Short:         "SelectPdf API CLI helper",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.applyEnv(cmd.Flags()); err != nil {
				return err
			}
			logCfg := logging.DefaultConfig()
			if opts.logLevel != "" {
				logCfg.Level = opts.logLevel
			}
			logCfg.Development = opts.logDev
			logger, err := logging.New(logCfg)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = opts.logger.Sync()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.apiKey, "api-key", "", "SelectPdf API key (or set SELECTPDF_API_KEY)")
	flags.StringVar(&opts.baseURL, "base-url", client.DefaultBaseURL, "Base URL for the SelectPdf API")
	flags.DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "HTTP timeout for a single API request")
	flags.DurationVar(&opts.pollInterval, "poll-interval", client.DefaultPollInterval, "Delay between async job status checks")
	flags.IntVar(&opts.maxPolls, "max-polls", client.DefaultMaxPolls, "Unfinished status checks tolerated before giving up")
	flags.Float64Var(&opts.rateLimit, "rate-limit", 0, "Maximum API requests per second across all conversions (0 disables)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	flags.BoolVar(&opts.logDev, "log-dev", false, "Human readable console logs")
	flags.StringVar(&opts.failLogPath, "fail-log", "fail.log", "Path to write failed task logs")
	flags.StringVar(&opts.paramsFile, "params-file", "", "YAML file of raw API parameters applied to every request")

	cmd.AddCommand(newHTMLCmd(opts))
	cmd.AddCommand(newMergeCmd(opts))
	cmd.AddCommand(newTextCmd(opts))
	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newUsageCmd(opts))
	cmd.AddCommand(newCompletionCmd())

	return cmd
}
