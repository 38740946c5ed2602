package client

import (
	"net/url"
	"regexp"
)

var colorPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// documentSettings holds the PDF document properties shared by the
// conversion and merge clients: metadata, security and viewer preferences.
type documentSettings struct {
	bag *ParameterBag
}

func (d documentSettings) setInt(name string, v int) { d.bag.SetInt(name, v) }

func (d documentSettings) setBool(name string, v bool) { d.bag.SetBool(name, v) }

// SetDocTitle sets the PDF document title.
func (d documentSettings) SetDocTitle(title string) { d.bag.Set("doc_title", title) }

// SetDocSubject sets the PDF document subject.
func (d documentSettings) SetDocSubject(subject string) { d.bag.Set("doc_subject", subject) }

// SetDocKeywords sets the PDF document keywords.
func (d documentSettings) SetDocKeywords(keywords string) { d.bag.Set("doc_keywords", keywords) }

// SetDocAuthor sets the PDF document author.
func (d documentSettings) SetDocAuthor(author string) { d.bag.Set("doc_author", author) }

// SetDocAddCreationDate adds the creation date to the document metadata.
func (d documentSettings) SetDocAddCreationDate(v bool) { d.setBool("doc_add_creation_date", v) }

// SetUserPassword protects opening the resulting PDF with a password.
func (d documentSettings) SetUserPassword(password string) { d.bag.Set("user_password", password) }

// SetOwnerPassword sets the password that unlocks the document permissions.
func (d documentSettings) SetOwnerPassword(password string) { d.bag.Set("owner_password", password) }

// SetViewerPageLayout sets the page layout used when the document is opened.
func (d documentSettings) SetViewerPageLayout(layout PageLayout) error {
	if layout < LayoutSinglePage || layout > LayoutTwoColumnRight {
		return invalid("viewer_page_layout", "allowed values: 0 (Single Page), 1 (One Column), 2 (Two Column Left), 3 (Two Column Right)")
	}
	d.setInt("viewer_page_layout", int(layout))
	return nil
}

// SetViewerPageMode sets how the document is displayed when opened.
func (d documentSettings) SetViewerPageMode(mode PageMode) error {
	if mode < PageModeUseNone || mode > PageModeUseAttachments {
		return invalid("viewer_page_mode", "allowed values: 0 (Use None), 1 (Use Outlines), 2 (Use Thumbs), 3 (Full Screen), 4 (Use OC), 5 (Use Attachments)")
	}
	d.setInt("viewer_page_mode", int(mode))
	return nil
}

func (d documentSettings) SetViewerCenterWindow(v bool) { d.setBool("viewer_center_window", v) }

func (d documentSettings) SetViewerDisplayDocTitle(v bool) { d.setBool("viewer_display_doc_title", v) }

func (d documentSettings) SetViewerFitWindow(v bool) { d.setBool("viewer_fit_window", v) }

func (d documentSettings) SetViewerHideMenuBar(v bool) { d.setBool("viewer_hide_menu_bar", v) }

func (d documentSettings) SetViewerHideToolbar(v bool) { d.setBool("viewer_hide_toolbar", v) }

// SetViewerHideWindowUI hides scroll bars and navigation controls in the viewer.
func (d documentSettings) SetViewerHideWindowUI(v bool) { d.setBool("viewer_hide_window_ui", v) }

// SetPageSize sets the PDF page size. Matching is case-insensitive.
func (c *HTMLToPDFClient) SetPageSize(size PageSize) error {
	canonical, ok := matchFold(size, pageSizes)
	if !ok {
		return invalid("page_size", "allowed values: %s", joinAllowed(pageSizes))
	}
	c.params.Set("page_size", string(canonical))
	return nil
}

// SetPageWidth sets a custom page width in points. Used with PageSizeCustom.
func (c *HTMLToPDFClient) SetPageWidth(points int) { c.setInt("page_width", points) }

// SetPageHeight sets a custom page height in points. Used with PageSizeCustom.
func (c *HTMLToPDFClient) SetPageHeight(points int) { c.setInt("page_height", points) }

func (c *HTMLToPDFClient) SetPageOrientation(orientation PageOrientation) error {
	canonical, ok := matchFold(orientation, orientations)
	if !ok {
		return invalid("page_orientation", "allowed values: %s", joinAllowed(orientations))
	}
	c.params.Set("page_orientation", string(canonical))
	return nil
}

func (c *HTMLToPDFClient) SetMarginTop(points int) { c.setInt("margin_top", points) }

func (c *HTMLToPDFClient) SetMarginRight(points int) { c.setInt("margin_right", points) }

func (c *HTMLToPDFClient) SetMarginBottom(points int) { c.setInt("margin_bottom", points) }

func (c *HTMLToPDFClient) SetMarginLeft(points int) { c.setInt("margin_left", points) }

// SetMargins sets all four page margins.
func (c *HTMLToPDFClient) SetMargins(points int) {
	c.SetMarginTop(points)
	c.SetMarginRight(points)
	c.SetMarginBottom(points)
	c.SetMarginLeft(points)
}

// SetPDFName sets the file name the service reports for the document.
func (c *HTMLToPDFClient) SetPDFName(name string) { c.params.Set("pdf_name", name) }

func (c *HTMLToPDFClient) SetRenderingEngine(engine RenderingEngine) error {
	canonical, ok := matchFold(engine, engines)
	if !ok {
		return invalid("engine", "allowed values: %s", joinAllowed(engines))
	}
	c.params.Set("engine", string(canonical))
	return nil
}

// SetWebPageWidth sets the browser viewport width in pixels. 0 lets the page decide.
func (c *HTMLToPDFClient) SetWebPageWidth(pixels int) { c.setInt("web_page_width", pixels) }

// SetWebPageHeight sets the browser viewport height in pixels. 0 renders the full page.
func (c *HTMLToPDFClient) SetWebPageHeight(pixels int) { c.setInt("web_page_height", pixels) }

// SetMinLoadTime waits at least seconds before converting, for pages that render late.
func (c *HTMLToPDFClient) SetMinLoadTime(seconds int) { c.setInt("min_load_time", seconds) }

// SetConversionDelay is an alias of SetMinLoadTime.
func (c *HTMLToPDFClient) SetConversionDelay(seconds int) { c.SetMinLoadTime(seconds) }

// SetMaxLoadTime bounds how long the page may load.
func (c *HTMLToPDFClient) SetMaxLoadTime(seconds int) { c.setInt("max_load_time", seconds) }

// SetNavigationTimeout is an alias of SetMaxLoadTime.
func (c *HTMLToPDFClient) SetNavigationTimeout(seconds int) { c.SetMaxLoadTime(seconds) }

func (c *HTMLToPDFClient) SetSecureProtocol(protocol SecureProtocol) error {
	if protocol < ProtocolTLS11OrNewer || protocol > ProtocolSSLv3Only {
		return invalid("protocol", "allowed values: 0 (TLS 1.1 or newer), 1 (TLS 1.0 only), 2 (SSL v3 only)")
	}
	c.setInt("protocol", int(protocol))
	return nil
}

// SetUseCSSPrint renders the page with the print media type.
func (c *HTMLToPDFClient) SetUseCSSPrint(v bool) { c.setBool("use_css_print", v) }

// SetBackgroundColor sets the PDF background color in #RRGGBB format.
func (c *HTMLToPDFClient) SetBackgroundColor(color string) error {
	if !colorPattern.MatchString(color) {
		return invalid("background_color", "color value must be in #RRGGBB format")
	}
	c.params.Set("background_color", color)
	return nil
}

func (c *HTMLToPDFClient) SetDrawHTMLBackground(v bool) { c.setBool("draw_html_background", v) }

func (c *HTMLToPDFClient) SetDisableJavascript(v bool) { c.setBool("disable_javascript", v) }

func (c *HTMLToPDFClient) SetDisableInternalLinks(v bool) { c.setBool("disable_internal_links", v) }

func (c *HTMLToPDFClient) SetDisableExternalLinks(v bool) { c.setBool("disable_external_links", v) }

// SetRenderOnTimeout converts whatever was loaded when the navigation timeout hits.
func (c *HTMLToPDFClient) SetRenderOnTimeout(v bool) { c.setBool("render_on_timeout", v) }

func (c *HTMLToPDFClient) SetKeepImagesTogether(v bool) { c.setBool("keep_images_together", v) }

func (c *HTMLToPDFClient) SetShowHeader(v bool) { c.setBool("show_header", v) }

func (c *HTMLToPDFClient) SetHeaderHeight(points int) { c.setInt("header_height", points) }

func (c *HTMLToPDFClient) SetHeaderURL(u string) error {
	if err := validateURL("header_url", u); err != nil {
		return err
	}
	c.params.Set("header_url", u)
	return nil
}

func (c *HTMLToPDFClient) SetHeaderHTML(html string) { c.params.Set("header_html", html) }

func (c *HTMLToPDFClient) SetHeaderBaseURL(u string) error {
	if err := validateURL("header_base_url", u); err != nil {
		return err
	}
	c.params.Set("header_base_url", u)
	return nil
}

func (c *HTMLToPDFClient) SetHeaderDisplayOnFirstPage(v bool) {
	c.setBool("header_display_on_first_page", v)
}

func (c *HTMLToPDFClient) SetHeaderDisplayOnOddPages(v bool) {
	c.setBool("header_display_on_odd_pages", v)
}

func (c *HTMLToPDFClient) SetHeaderDisplayOnEvenPages(v bool) {
	c.setBool("header_display_on_even_pages", v)
}

func (c *HTMLToPDFClient) SetHeaderWebPageWidth(pixels int) { c.setInt("header_web_page_width", pixels) }

func (c *HTMLToPDFClient) SetHeaderWebPageHeight(pixels int) {
	c.setInt("header_web_page_height", pixels)
}

func (c *HTMLToPDFClient) SetShowFooter(v bool) { c.setBool("show_footer", v) }

func (c *HTMLToPDFClient) SetFooterHeight(points int) { c.setInt("footer_height", points) }

func (c *HTMLToPDFClient) SetFooterURL(u string) error {
	if err := validateURL("footer_url", u); err != nil {
		return err
	}
	c.params.Set("footer_url", u)
	return nil
}

func (c *HTMLToPDFClient) SetFooterHTML(html string) { c.params.Set("footer_html", html) }

func (c *HTMLToPDFClient) SetFooterBaseURL(u string) error {
	if err := validateURL("footer_base_url", u); err != nil {
		return err
	}
	c.params.Set("footer_base_url", u)
	return nil
}

func (c *HTMLToPDFClient) SetFooterDisplayOnFirstPage(v bool) {
	c.setBool("footer_display_on_first_page", v)
}

func (c *HTMLToPDFClient) SetFooterDisplayOnOddPages(v bool) {
	c.setBool("footer_display_on_odd_pages", v)
}

func (c *HTMLToPDFClient) SetFooterDisplayOnEvenPages(v bool) {
	c.setBool("footer_display_on_even_pages", v)
}

// SetFooterDisplayOnLastPage adds a distinct footer on the last page only.
func (c *HTMLToPDFClient) SetFooterDisplayOnLastPage(v bool) {
	c.setBool("footer_display_on_last_page", v)
}

func (c *HTMLToPDFClient) SetFooterWebPageWidth(pixels int) { c.setInt("footer_web_page_width", pixels) }

func (c *HTMLToPDFClient) SetFooterWebPageHeight(pixels int) {
	c.setInt("footer_web_page_height", pixels)
}

func (c *HTMLToPDFClient) SetShowPageNumbers(v bool) { c.setBool("page_numbers", v) }

func (c *HTMLToPDFClient) SetPageNumbersFirst(n int) { c.setInt("page_numbers_first", n) }

// SetPageNumbersOffset is added to the total page count shown by {page_count}.
func (c *HTMLToPDFClient) SetPageNumbersOffset(n int) { c.setInt("page_numbers_offset", n) }

// SetPageNumbersTemplate sets the page number text, e.g. "Page {page_number} of {total_pages}".
func (c *HTMLToPDFClient) SetPageNumbersTemplate(template string) {
	c.params.Set("page_numbers_template", template)
}

func (c *HTMLToPDFClient) SetPageNumbersFontName(name string) {
	c.params.Set("page_numbers_font_name", name)
}

func (c *HTMLToPDFClient) SetPageNumbersFontSize(size int) { c.setInt("page_numbers_font_size", size) }

func (c *HTMLToPDFClient) SetPageNumbersAlignment(alignment Alignment) error {
	if alignment < AlignLeft || alignment > AlignRight {
		return invalid("page_numbers_alignment", "allowed values: 1 (Left), 2 (Center), 3 (Right)")
	}
	c.setInt("page_numbers_alignment", int(alignment))
	return nil
}

func (c *HTMLToPDFClient) SetPageNumbersColor(color string) error {
	if !colorPattern.MatchString(color) {
		return invalid("page_numbers_color", "color value must be in #RRGGBB format")
	}
	c.params.Set("page_numbers_color", color)
	return nil
}

// SetPageNumbersVerticalPosition sets the page number offset from the footer top, in points.
func (c *HTMLToPDFClient) SetPageNumbersVerticalPosition(points int) {
	c.setInt("page_numbers_pos_y", points)
}

// SetPDFBookmarksSelectors creates bookmarks for elements matching the CSS selectors.
func (c *HTMLToPDFClient) SetPDFBookmarksSelectors(selectors string) {
	c.params.Set("pdf_bookmarks_selectors", selectors)
}

// SetPDFHideElements hides elements matching the CSS selectors.
func (c *HTMLToPDFClient) SetPDFHideElements(selectors string) {
	c.params.Set("pdf_hide_elements", selectors)
}

// SetPDFShowOnlyElementID converts only the element with this id.
func (c *HTMLToPDFClient) SetPDFShowOnlyElementID(id string) {
	c.params.Set("pdf_show_only_element_id", id)
}

// SetPDFWebElementsSelectors records positions of matching elements, later
// available through WebElements.
func (c *HTMLToPDFClient) SetPDFWebElementsSelectors(selectors string) {
	c.params.Set("pdf_web_elements_selectors", selectors)
}

func (c *HTMLToPDFClient) SetStartupMode(mode StartupMode) error {
	canonical, ok := matchFold(mode, startupModes)
	if !ok {
		return invalid("startup_mode", "allowed values: %s", joinAllowed(startupModes))
	}
	c.params.Set("startup_mode", string(canonical))
	return nil
}

// SetSkipDecoding skips URL decoding of the converted url.
func (c *HTMLToPDFClient) SetSkipDecoding(v bool) { c.setBool("skip_decoding", v) }

func (c *HTMLToPDFClient) SetScaleImages(v bool) { c.setBool("scale_images", v) }

func (c *HTMLToPDFClient) SetSinglePagePDF(v bool) { c.setBool("single_page_pdf", v) }

func (c *HTMLToPDFClient) SetPageBreaksEnhancedAlgorithm(v bool) {
	c.setBool("page_breaks_enhanced_algorithm", v)
}

// SetCookies sends cookies to the converted page.
func (c *HTMLToPDFClient) SetCookies(cookies map[string]string) {
	values := make(url.Values, len(cookies))
	for k, v := range cookies {
		values.Set(k, v)
	}
	c.params.Set("cookies_string", values.Encode())
}
