package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	client "github.com/hsn0918/selectpdf-client"
)

func newHTMLCmd(opts *cliOptions) *cobra.Command {
	ho := &htmlOptions{opts: opts}

	cmd := &cobra.Command{
		Use:               "html",
		Short:             "Convert web pages or an HTML file to PDF",
		ValidArgsFunction: flagsOnlyCompletion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := ho.complete(); err != nil {
				return fail(opts, "", ho.target(), err)
			}
			return ho.run(cmd)
		},
	}

	ho.addFlags(cmd)

	return cmd
}

type htmlOptions struct {
	urls        []string
	htmlFile    string
	baseURL     string
	output      string
	outputDir   string
	async       bool
	concurrency int

	pageSize    string
	orientation string
	engine      string
	margins     int
	pageNumbers bool
	webElements string

	opts   *cliOptions
	params []param

	// outMu serializes writes to the command output across batch workers.
	outMu sync.Mutex
}

func (o *htmlOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&o.urls, "url", "u", nil, "Page URL to convert (repeat or comma separate for a batch)")
	cmd.Flags().StringVar(&o.htmlFile, "html-file", "", "Local HTML file to convert")
	cmd.Flags().StringVar(&o.baseURL, "base-url-resources", "", "Base URL resolving relative resources of --html-file")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output PDF path for a single conversion")
	cmd.Flags().StringVar(&o.outputDir, "output-dir", ".", "Directory for batch conversion results")
	cmd.Flags().BoolVar(&o.async, "async", false, "Use asynchronous jobs")
	cmd.Flags().IntVar(&o.concurrency, "concurrency", 3, "Number of concurrent conversions in a batch")
	cmd.Flags().StringVar(&o.pageSize, "page-size", "", "Page size: A0..A8|Letter|HalfLetter|Ledger|Legal|Custom")
	cmd.Flags().StringVar(&o.orientation, "orientation", "", "Page orientation: Portrait|Landscape")
	cmd.Flags().StringVar(&o.engine, "engine", "", "Rendering engine: WebKit|Restricted|Blink")
	cmd.Flags().IntVar(&o.margins, "margins", -1, "Page margins in points for all sides")
	cmd.Flags().BoolVar(&o.pageNumbers, "page-numbers", false, "Show page numbers in the footer")
	cmd.Flags().StringVar(&o.webElements, "web-elements", "", "CSS selectors whose positions are printed after conversion")
}

func (o *htmlOptions) target() string {
	if o.htmlFile != "" {
		return o.htmlFile
	}
	return strings.Join(o.urls, ",")
}

func (o *htmlOptions) complete() error {
	if len(o.urls) == 0 && o.htmlFile == "" {
		return errors.New("flag --url or --html-file is required")
	}
	if len(o.urls) > 0 && o.htmlFile != "" {
		return errors.New("flags --url and --html-file are mutually exclusive")
	}
	if o.concurrency <= 0 {
		o.concurrency = 3
	}

	params, err := loadParams(o.opts.paramsFile)
	if err != nil {
		return err
	}
	o.params = params

	return nil
}

// newClient builds one configured conversion client. Batch workers each get
// their own since a client runs one operation at a time.
func (o *htmlOptions) newClient(apiKey string, limiter *rate.Limiter) (*client.HTMLToPDFClient, error) {
	c, err := client.NewHTMLToPDFClient(apiKey, clientOptions(o.opts, limiter)...)
	if err != nil {
		return nil, err
	}

	if o.pageSize != "" {
		if err := c.SetPageSize(client.PageSize(o.pageSize)); err != nil {
			return nil, err
		}
	}
	if o.orientation != "" {
		if err := c.SetPageOrientation(client.PageOrientation(o.orientation)); err != nil {
			return nil, err
		}
	}
	if o.engine != "" {
		if err := c.SetRenderingEngine(client.RenderingEngine(o.engine)); err != nil {
			return nil, err
		}
	}
	if o.margins >= 0 {
		c.SetMargins(o.margins)
	}
	if o.pageNumbers {
		c.SetShowFooter(true)
		c.SetShowPageNumbers(true)
	}
	if o.webElements != "" {
		c.SetPDFWebElementsSelectors(o.webElements)
	}

	applyParams(c, o.params)
	return c, nil
}

func (o *htmlOptions) run(cmd *cobra.Command) error {
	apiKey, err := resolveAPIKey(o.opts)
	if err != nil {
		return fail(o.opts, "", o.target(), err)
	}

	ctx := cmd.Context()
	limiter := client.NewLimiter(o.opts.rateLimit)

	if o.htmlFile != "" {
		out := o.output
		if out == "" {
			out = changeExt(filepath.Base(o.htmlFile), ".pdf")
		}
		return o.convertHTMLFile(ctx, cmd, apiKey, limiter, out)
	}

	if len(o.urls) == 1 {
		out := o.output
		if out == "" {
			out = filepath.Join(o.outputDir, outputName(o.urls[0], 0))
		}
		return o.convertURL(ctx, cmd, apiKey, limiter, o.urls[0], out)
	}

	return o.runBatch(ctx, cmd, apiKey, limiter)
}

func (o *htmlOptions) convertURL(ctx context.Context, cmd *cobra.Command, apiKey string, limiter *rate.Limiter, pageURL, out string) error {
	c, err := o.newClient(apiKey, limiter)
	if err != nil {
		return fail(o.opts, "", pageURL, err)
	}

	if o.async {
		err = c.ConvertURLToFileAsync(ctx, pageURL, out)
	} else {
		err = c.ConvertURLToFile(ctx, pageURL, out)
	}
	if err != nil {
		return fail(o.opts, c.JobID(), pageURL, err)
	}

	o.opts.logger.Info("conversion finished",
		zap.String("url", pageURL),
		zap.String("path", out),
		zap.Int("pages", c.Pages()),
		zap.String("job-id", c.JobID()),
	)
	return o.printWebElements(ctx, cmd, c, pageURL)
}

func (o *htmlOptions) convertHTMLFile(ctx context.Context, cmd *cobra.Command, apiKey string, limiter *rate.Limiter, out string) error {
	data, err := os.ReadFile(o.htmlFile)
	if err != nil {
		return fail(o.opts, "", o.htmlFile, fmt.Errorf("read file %s: %w", o.htmlFile, err))
	}

	c, err := o.newClient(apiKey, limiter)
	if err != nil {
		return fail(o.opts, "", o.htmlFile, err)
	}

	if o.async {
		err = c.ConvertHTMLStringWithBaseURLToFileAsync(ctx, string(data), o.baseURL, out)
	} else {
		err = c.ConvertHTMLStringWithBaseURLToFile(ctx, string(data), o.baseURL, out)
	}
	if err != nil {
		return fail(o.opts, c.JobID(), o.htmlFile, err)
	}

	o.opts.logger.Info("conversion finished",
		zap.String("file", o.htmlFile),
		zap.String("path", out),
		zap.Int("pages", c.Pages()),
		zap.String("job-id", c.JobID()),
	)
	return o.printWebElements(ctx, cmd, c, o.htmlFile)
}

func (o *htmlOptions) printWebElements(ctx context.Context, cmd *cobra.Command, c *client.HTMLToPDFClient, target string) error {
	if o.webElements == "" {
		return nil
	}
	elements, err := c.WebElements(ctx)
	if err != nil {
		return fail(o.opts, c.JobID(), target, err)
	}
	o.outMu.Lock()
	defer o.outMu.Unlock()
	return writeJSON(cmd.OutOrStdout(), elements)
}

func (o *htmlOptions) runBatch(ctx context.Context, cmd *cobra.Command, apiKey string, limiter *rate.Limiter) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.concurrency)

	var (
		errs []error
		mu   sync.Mutex
	)

	for i, pageURL := range o.urls {
		pageURL := pageURL
		out := filepath.Join(o.outputDir, outputName(pageURL, i))
		eg.Go(func() error {
			if err := o.convertURL(ctx, cmd, apiKey, limiter, pageURL, out); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if len(errs) > 0 {
		return fmt.Errorf("batch completed with %d errors, first: %w", len(errs), errs[0])
	}

	return nil
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// outputName derives a file name from a page URL. The index keeps names
// unique within a batch.
func outputName(pageURL string, index int) string {
	name := "document"
	if parsed, err := url.Parse(pageURL); err == nil {
		name = strings.Trim(unsafeNameChars.ReplaceAllString(parsed.Host+parsed.Path, "-"), "-.")
		if name == "" {
			name = "document"
		}
	}
	return fmt.Sprintf("%03d-%s.pdf", index+1, name)
}
