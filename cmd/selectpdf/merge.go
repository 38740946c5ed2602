package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	client "github.com/hsn0918/selectpdf-client"
)

func newMergeCmd(opts *cliOptions) *cobra.Command {
	mo := &mergeOptions{opts: opts}

	cmd := &cobra.Command{
		Use:               "merge <pdf|url>...",
		Short:             "Merge local and remote PDF documents in the given order",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: pdfFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := mo.complete(args); err != nil {
				return fail(opts, "", strings.Join(args, ","), err)
			}
			return mo.run(cmd)
		},
	}

	cmd.Flags().StringVarP(&mo.output, "output", "o", "merged.pdf", "Output PDF path")
	cmd.Flags().StringSliceVar(&mo.passwords, "password", nil, "User passwords matching the inputs by position")
	cmd.Flags().BoolVar(&mo.async, "async", false, "Use an asynchronous job")
	cmd.Flags().IntVar(&mo.timeout, "server-timeout", 0, "Server-side merge timeout in seconds (0 keeps the service default)")

	return cmd
}

type mergeOptions struct {
	inputs    []string
	passwords []string
	output    string
	async     bool
	timeout   int

	opts   *cliOptions
	params []param
}

func (o *mergeOptions) complete(args []string) error {
	if o.output == "" {
		return errors.New("flag --output cannot be empty")
	}
	for _, input := range args {
		if isRemote(input) {
			continue
		}
		if err := checkPDF(input); err != nil {
			return err
		}
	}
	o.inputs = args

	params, err := loadParams(o.opts.paramsFile)
	if err != nil {
		return err
	}
	o.params = params
	return nil
}

func (o *mergeOptions) password(i int) string {
	if i < len(o.passwords) {
		return o.passwords[i]
	}
	return ""
}

func (o *mergeOptions) run(cmd *cobra.Command) error {
	target := strings.Join(o.inputs, ",")

	apiKey, err := resolveAPIKey(o.opts)
	if err != nil {
		return fail(o.opts, "", target, err)
	}

	c, err := client.NewPdfMergeClient(apiKey, clientOptions(o.opts, client.NewLimiter(o.opts.rateLimit))...)
	if err != nil {
		return fail(o.opts, "", target, err)
	}
	if o.timeout > 0 {
		c.SetTimeout(o.timeout)
	}
	applyParams(c, o.params)

	for i, input := range o.inputs {
		if isRemote(input) {
			err = c.AddURLFile(input, o.password(i))
		} else {
			err = c.AddFile(input, o.password(i))
		}
		if err != nil {
			return fail(o.opts, "", input, err)
		}
	}

	if o.async {
		err = c.SaveToFileAsync(cmd.Context(), o.output)
	} else {
		err = c.SaveToFile(cmd.Context(), o.output)
	}
	if err != nil {
		return fail(o.opts, c.JobID(), target, err)
	}

	o.opts.logger.Info("merge finished",
		zap.Int("inputs", len(o.inputs)),
		zap.String("path", o.output),
		zap.Int("pages", c.Pages()),
	)
	return nil
}
