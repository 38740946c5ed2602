package client

import "strings"

// PageSize enumerates PDF page sizes accepted by the conversion endpoint.
type PageSize string

const (
	PageSizeCustom     PageSize = "Custom"
	PageSizeA0         PageSize = "A0"
	PageSizeA1         PageSize = "A1"
	PageSizeA2         PageSize = "A2"
	PageSizeA3         PageSize = "A3"
	PageSizeA4         PageSize = "A4"
	PageSizeA5         PageSize = "A5"
	PageSizeA6         PageSize = "A6"
	PageSizeA7         PageSize = "A7"
	PageSizeA8         PageSize = "A8"
	PageSizeLetter     PageSize = "Letter"
	PageSizeHalfLetter PageSize = "HalfLetter"
	PageSizeLedger     PageSize = "Ledger"
	PageSizeLegal      PageSize = "Legal"
)

var pageSizes = []PageSize{
	PageSizeCustom, PageSizeA0, PageSizeA1, PageSizeA2, PageSizeA3, PageSizeA4, PageSizeA5,
	PageSizeA6, PageSizeA7, PageSizeA8, PageSizeLetter, PageSizeHalfLetter, PageSizeLedger, PageSizeLegal,
}

// PageOrientation enumerates PDF page orientations.
type PageOrientation string

const (
	OrientationPortrait  PageOrientation = "Portrait"
	OrientationLandscape PageOrientation = "Landscape"
)

var orientations = []PageOrientation{OrientationPortrait, OrientationLandscape}

// RenderingEngine enumerates the server-side HTML engines.
type RenderingEngine string

const (
	EngineWebKit     RenderingEngine = "WebKit"
	EngineRestricted RenderingEngine = "Restricted"
	EngineBlink      RenderingEngine = "Blink"
)

var engines = []RenderingEngine{EngineWebKit, EngineRestricted, EngineBlink}

// StartupMode controls when the conversion is triggered.
type StartupMode string

const (
	StartupAutomatic StartupMode = "Automatic"
	StartupManual    StartupMode = "Manual"
)

var startupModes = []StartupMode{StartupAutomatic, StartupManual}

// SecureProtocol selects the TLS protocol used to load the converted page.
type SecureProtocol int

const (
	ProtocolTLS11OrNewer SecureProtocol = 0
	ProtocolTLS10Only    SecureProtocol = 1
	ProtocolSSLv3Only    SecureProtocol = 2
)

// PageLayout is the viewer page layout stored in the PDF.
type PageLayout int

const (
	LayoutSinglePage     PageLayout = 0
	LayoutOneColumn      PageLayout = 1
	LayoutTwoColumnLeft  PageLayout = 2
	LayoutTwoColumnRight PageLayout = 3
)

// PageMode is the viewer page mode stored in the PDF.
type PageMode int

const (
	PageModeUseNone        PageMode = 0
	PageModeUseOutlines    PageMode = 1
	PageModeUseThumbs      PageMode = 2
	PageModeFullScreen     PageMode = 3
	PageModeUseOC          PageMode = 4
	PageModeUseAttachments PageMode = 5
)

// Alignment positions page numbers horizontally.
type Alignment int

const (
	AlignLeft   Alignment = 1
	AlignCenter Alignment = 2
	AlignRight  Alignment = 3
)

// TextLayout controls how extracted text is arranged.
type TextLayout int

const (
	TextLayoutOriginal TextLayout = 0
	TextLayoutReading  TextLayout = 1
)

// OutputFormat selects plain text or HTML for text extraction.
type OutputFormat int

const (
	OutputText OutputFormat = 0
	OutputHTML OutputFormat = 1
)

// TextAction selects what the text endpoint does with the document.
type TextAction string

const (
	ActionConvert TextAction = "Convert"
	ActionSearch  TextAction = "Search"
)

// Operation names a client call for error messages and logs.
type Operation string

const (
	OperationConvertURL  Operation = "convert url"
	OperationConvertHTML Operation = "convert html"
	OperationMerge       Operation = "merge"
	OperationText        Operation = "pdf to text"
	OperationSearch      Operation = "search pdf"
	OperationUsage       Operation = "get usage"
	OperationWebElements Operation = "get web elements"
	OperationAsyncJob    Operation = "async job"
)

// matchFold returns the canonical spelling of value when it matches one of
// allowed ignoring case.
func matchFold[T ~string](value T, allowed []T) (T, bool) {
	for _, a := range allowed {
		if strings.EqualFold(string(value), string(a)) {
			return a, true
		}
	}
	return "", false
}

func joinAllowed[T ~string](allowed []T) string {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}
