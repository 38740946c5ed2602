package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	client "github.com/hsn0918/selectpdf-client"
)

func newSearchCmd(opts *cliOptions) *cobra.Command {
	src := &pdfSourceOptions{}
	var (
		text           string
		caseSensitive  bool
		wholeWordsOnly bool
		output         string
	)

	cmd := &cobra.Command{
		Use:               "search",
		Short:             "Search text in a PDF and print match positions as JSON",
		ValidArgsFunction: flagsOnlyCompletion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if text == "" {
				return fail(opts, "", src.target(), errors.New("flag --text is required"))
			}
			if err := src.validate(); err != nil {
				return fail(opts, "", src.target(), err)
			}
			apiKey, err := resolveAPIKey(opts)
			if err != nil {
				return fail(opts, "", src.target(), err)
			}

			c, err := src.newClient(opts, apiKey)
			if err != nil {
				return fail(opts, "", src.target(), err)
			}

			var matches []client.TextMatch
			ctx := cmd.Context()
			switch {
			case src.file != "" && src.async:
				matches, err = c.SearchFileAsync(ctx, src.file, text, caseSensitive, wholeWordsOnly)
			case src.file != "":
				matches, err = c.SearchFile(ctx, src.file, text, caseSensitive, wholeWordsOnly)
			case src.async:
				matches, err = c.SearchURLAsync(ctx, src.url, text, caseSensitive, wholeWordsOnly)
			default:
				matches, err = c.SearchURL(ctx, src.url, text, caseSensitive, wholeWordsOnly)
			}
			if err != nil {
				return fail(opts, c.JobID(), src.target(), err)
			}

			opts.logger.Info("search finished",
				zap.String("target", src.target()),
				zap.Int("matches", len(matches)),
				zap.Int("pages", c.Pages()),
			)
			return writeJSONFile(cmd.OutOrStdout(), output, matches)
		},
	}

	src.addFlags(cmd)
	cmd.Flags().StringVarP(&text, "text", "t", "", "Text to search for")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Match case")
	cmd.Flags().BoolVar(&wholeWordsOnly, "whole-words", false, "Match whole words only")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write matches to this JSON file instead of stdout")

	return cmd
}
