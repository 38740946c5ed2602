package client

import "context"

// Info provides metadata about the client
type Info interface {
	Name() string
	Version() string
}

// Executor performs one HTTP exchange. A 200 or 202 answer yields a Response;
// any other status yields an *APIError and network failures a *TransportError.
// Implementations must not retry.
type Executor interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// HTMLConverter converts web pages and HTML strings to PDF.
type HTMLConverter interface {
	ConvertURL(ctx context.Context, url string) ([]byte, error)
	ConvertURLAsync(ctx context.Context, url string) ([]byte, error)
	ConvertHTMLString(ctx context.Context, html string) ([]byte, error)
	ConvertHTMLStringAsync(ctx context.Context, html string) ([]byte, error)
	Pages() int
}

// Merger merges several PDF documents into one.
type Merger interface {
	AddFile(path, password string) error
	AddURLFile(url, password string) error
	Save(ctx context.Context) ([]byte, error)
	SaveAsync(ctx context.Context) ([]byte, error)
	Pages() int
}

// TextExtractor extracts or searches text in PDF documents.
type TextExtractor interface {
	TextFromFile(ctx context.Context, path string) (string, error)
	TextFromURL(ctx context.Context, url string) (string, error)
	SearchFile(ctx context.Context, path, text string, caseSensitive, wholeWordsOnly bool) ([]TextMatch, error)
	SearchURL(ctx context.Context, url, text string, caseSensitive, wholeWordsOnly bool) ([]TextMatch, error)
	Pages() int
}
