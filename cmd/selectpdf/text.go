package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	client "github.com/hsn0918/selectpdf-client"
)

// pdfSourceOptions selects the document for text and search commands.
type pdfSourceOptions struct {
	file      string
	url       string
	startPage int
	endPage   int
	password  string
	async     bool
}

func (s *pdfSourceOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "Local PDF file")
	cmd.Flags().StringVarP(&s.url, "url", "u", "", "Public URL of a PDF file")
	cmd.Flags().IntVar(&s.startPage, "start-page", 1, "First page to process")
	cmd.Flags().IntVar(&s.endPage, "end-page", 0, "Last page to process (0 processes to the end)")
	cmd.Flags().StringVar(&s.password, "password", "", "User password of the PDF")
	cmd.Flags().BoolVar(&s.async, "async", false, "Use an asynchronous job")
}

func (s *pdfSourceOptions) target() string {
	if s.file != "" {
		return s.file
	}
	return s.url
}

func (s *pdfSourceOptions) validate() error {
	switch {
	case s.file == "" && s.url == "":
		return errors.New("flag --file or --url is required")
	case s.file != "" && s.url != "":
		return errors.New("flags --file and --url are mutually exclusive")
	case s.file != "":
		return checkPDF(s.file)
	}
	return nil
}

func (s *pdfSourceOptions) newClient(opts *cliOptions, apiKey string) (*client.PdfToTextClient, error) {
	c, err := client.NewPdfToTextClient(apiKey, clientOptions(opts, client.NewLimiter(opts.rateLimit))...)
	if err != nil {
		return nil, err
	}
	c.SetStartPage(s.startPage)
	c.SetEndPage(s.endPage)
	if s.password != "" {
		c.SetUserPassword(s.password)
	}

	params, err := loadParams(opts.paramsFile)
	if err != nil {
		return nil, err
	}
	applyParams(c, params)
	return c, nil
}

func newTextCmd(opts *cliOptions) *cobra.Command {
	src := &pdfSourceOptions{}
	var (
		output string
		layout int
		format int
	)

	cmd := &cobra.Command{
		Use:               "text",
		Short:             "Extract text from a PDF",
		ValidArgsFunction: flagsOnlyCompletion,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			if err := c.SetTextLayout(client.TextLayout(layout)); err != nil {
				return fail(opts, "", src.target(), err)
			}
			if err := c.SetOutputFormat(client.OutputFormat(format)); err != nil {
				return fail(opts, "", src.target(), err)
			}

			var text string
			ctx := cmd.Context()
			switch {
			case src.file != "" && src.async:
				text, err = c.TextFromFileAsync(ctx, src.file)
			case src.file != "":
				text, err = c.TextFromFile(ctx, src.file)
			case src.async:
				text, err = c.TextFromURLAsync(ctx, src.url)
			default:
				text, err = c.TextFromURL(ctx, src.url)
			}
			if err != nil {
				return fail(opts, c.JobID(), src.target(), err)
			}

			opts.logger.Info("text extracted", zap.String("target", src.target()), zap.Int("pages", c.Pages()))

			if output == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if err := client.WriteText(output, text); err != nil {
				return fail(opts, c.JobID(), src.target(), err)
			}
			return nil
		},
	}

	src.addFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the text to this file instead of stdout")
	cmd.Flags().IntVar(&layout, "layout", int(client.TextLayoutOriginal), "Text layout: 0 (Original), 1 (Reading)")
	cmd.Flags().IntVar(&format, "format", int(client.OutputText), "Output format: 0 (Text), 1 (Html)")

	return cmd
}
