package client

import "time"

const (
	ServiceName    = "selectpdf"
	ClientVersion  = "1.4.0"
	DefaultBaseURL = "https://selectpdf.com"
	// DefaultTimeout bounds a single HTTP exchange, not a whole async job.
	DefaultTimeout      = 6000 * time.Second
	DefaultPollInterval = 3 * time.Second
	DefaultMaxPolls     = 1000
)

// API endpoints
const (
	EndpointConvert     = "/api2/convert/"
	EndpointAsyncJob    = "/api2/asyncjob/"
	EndpointWebElements = "/api2/webelements/"
	EndpointUsage       = "/api2/usage/"
	EndpointPdfMerge    = "/api2/pdfmerge/"
	EndpointPdfToText   = "/api2/pdftotext/"
)

// Protocol headers
const (
	HeaderClient = "selectpdf-api-client"
	HeaderJobID  = "selectpdf-api-jobid"
	HeaderPages  = "selectpdf-api-pages"
)

// Content types
const (
	ContentTypeForm      = "application/x-www-form-urlencoded"
	ContentTypeMultipart = "multipart/form-data"
	ContentTypeBinary    = "application/octet-stream"
	ContentTypeJSON      = "application/json"
)

// MultipartBoundary separates parts of every multipart body sent by this client.
const MultipartBoundary = "------------SelectPdf_Api_Boundry_"

// Wire values for booleans.
const (
	True  = "True"
	False = "False"
)
