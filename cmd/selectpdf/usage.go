package main

import (
	"github.com/spf13/cobra"

	client "github.com/hsn0918/selectpdf-client"
)

func newUsageCmd(opts *cliOptions) *cobra.Command {
	var history bool

	cmd := &cobra.Command{
		Use:               "usage",
		Short:             "Print API usage for the account as JSON",
		Args:              cobra.NoArgs,
		ValidArgsFunction: flagsOnlyCompletion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			apiKey, err := resolveAPIKey(opts)
			if err != nil {
				return fail(opts, "", "usage", err)
			}

			c, err := client.NewUsageClient(apiKey, clientOptions(opts, nil)...)
			if err != nil {
				return fail(opts, "", "usage", err)
			}

			info, err := c.Usage(cmd.Context(), history)
			if err != nil {
				return fail(opts, "", "usage", err)
			}
			return writeJSON(cmd.OutOrStdout(), info)
		},
	}

	cmd.Flags().BoolVar(&history, "history", false, "Include usage history")

	return cmd
}
