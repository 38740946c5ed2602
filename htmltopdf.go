package client

import (
	"context"
	"fmt"
)

// HTMLToPDFClient converts web pages and raw HTML to PDF.
type HTMLToPDFClient struct {
	*apiCall
	documentSettings
}

var (
	_ HTMLConverter = (*HTMLToPDFClient)(nil)
	_ Info          = (*HTMLToPDFClient)(nil)
)

// NewHTMLToPDFClient returns a conversion client authenticated with apiKey.
func NewHTMLToPDFClient(apiKey string, opts ...Option) (*HTMLToPDFClient, error) {
	call, err := newAPICall(apiKey, EndpointConvert, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return &HTMLToPDFClient{apiCall: call, documentSettings: documentSettings{bag: call.params}}, nil
}

// ConvertURL converts a publicly reachable http(s) page to PDF.
func (c *HTMLToPDFClient) ConvertURL(ctx context.Context, url string) ([]byte, error) {
	release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if err := c.useURL(url); err != nil {
		return nil, err
	}

	resp, err := c.doSync(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", OperationConvertURL, err)
	}
	return resp.Body, nil
}

// ConvertURLToFile converts url and writes the PDF to path.
func (c *HTMLToPDFClient) ConvertURLToFile(ctx context.Context, url, path string) error {
	if path == "" {
		return ErrEmptyOutputPath
	}
	data, err := c.ConvertURL(ctx, url)
	if err != nil {
		return err
	}
	return writeResult(path, data)
}

// ConvertURLAsync converts url through an asynchronous job.
func (c *HTMLToPDFClient) ConvertURLAsync(ctx context.Context, url string) ([]byte, error) {
	release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if err := c.useURL(url); err != nil {
		return nil, err
	}

	resp, err := c.doAsync(ctx, OperationConvertURL, false)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", OperationConvertURL, err)
	}
	return resp.Body, nil
}

// ConvertURLToFileAsync converts url through an asynchronous job and writes the PDF to path.
func (c *HTMLToPDFClient) ConvertURLToFileAsync(ctx context.Context, url, path string) error {
	if path == "" {
		return ErrEmptyOutputPath
	}
	data, err := c.ConvertURLAsync(ctx, url)
	if err != nil {
		return err
	}
	return writeResult(path, data)
}

// ConvertHTMLString converts an HTML document given as a string.
func (c *HTMLToPDFClient) ConvertHTMLString(ctx context.Context, html string) ([]byte, error) {
	return c.ConvertHTMLStringWithBaseURL(ctx, html, "")
}

// ConvertHTMLStringToFile converts html and writes the PDF to path.
func (c *HTMLToPDFClient) ConvertHTMLStringToFile(ctx context.Context, html, path string) error {
	return c.ConvertHTMLStringWithBaseURLToFile(ctx, html, "", path)
}

// ConvertHTMLStringAsync converts html through an asynchronous job.
func (c *HTMLToPDFClient) ConvertHTMLStringAsync(ctx context.Context, html string) ([]byte, error) {
	return c.ConvertHTMLStringWithBaseURLAsync(ctx, html, "")
}

// ConvertHTMLStringToFileAsync converts html through an asynchronous job and writes the PDF to path.
func (c *HTMLToPDFClient) ConvertHTMLStringToFileAsync(ctx context.Context, html, path string) error {
	return c.ConvertHTMLStringWithBaseURLToFileAsync(ctx, html, "", path)
}

// ConvertHTMLStringWithBaseURL converts html, resolving relative resources
// (css, images, scripts) against baseURL when it is set.
func (c *HTMLToPDFClient) ConvertHTMLStringWithBaseURL(ctx context.Context, html, baseURL string) ([]byte, error) {
	release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if err := c.useHTML(html, baseURL); err != nil {
		return nil, err
	}

	resp, err := c.doSync(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", OperationConvertHTML, err)
	}
	return resp.Body, nil
}

func (c *HTMLToPDFClient) ConvertHTMLStringWithBaseURLToFile(ctx context.Context, html, baseURL, path string) error {
	if path == "" {
		return ErrEmptyOutputPath
	}
	data, err := c.ConvertHTMLStringWithBaseURL(ctx, html, baseURL)
	if err != nil {
		return err
	}
	return writeResult(path, data)
}

func (c *HTMLToPDFClient) ConvertHTMLStringWithBaseURLAsync(ctx context.Context, html, baseURL string) ([]byte, error) {
	release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if err := c.useHTML(html, baseURL); err != nil {
		return nil, err
	}

	resp, err := c.doAsync(ctx, OperationConvertHTML, false)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", OperationConvertHTML, err)
	}
	return resp.Body, nil
}

func (c *HTMLToPDFClient) ConvertHTMLStringWithBaseURLToFileAsync(ctx context.Context, html, baseURL, path string) error {
	if path == "" {
		return ErrEmptyOutputPath
	}
	data, err := c.ConvertHTMLStringWithBaseURLAsync(ctx, html, baseURL)
	if err != nil {
		return err
	}
	return writeResult(path, data)
}

// WebElements returns the positions of the elements matched by
// SetPDFWebElementsSelectors during the last conversion.
func (c *HTMLToPDFClient) WebElements(ctx context.Context) ([]WebElement, error) {
	release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if c.jobID == "" {
		return nil, ErrEmptyJobID
	}

	wc, err := newWebElementsClient(c.apiKey(), c.jobID, c.cfg)
	if err != nil {
		return nil, err
	}
	return wc.WebElements(ctx)
}

func (c *HTMLToPDFClient) useURL(url string) error {
	if err := validateURL("url", url); err != nil {
		return err
	}
	c.params.Set("url", url)
	c.params.Set("html", "")
	c.params.Set("base_url", "")
	return nil
}

func (c *HTMLToPDFClient) useHTML(html, baseURL string) error {
	if html == "" {
		return ErrEmptyHTML
	}
	if baseURL != "" {
		if err := validateURL("base_url", baseURL); err != nil {
			return err
		}
	}
	c.params.Set("url", "")
	c.params.Set("html", html)
	c.params.Set("base_url", baseURL)
	return nil
}
