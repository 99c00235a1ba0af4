package schema

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader retrieves raw schema documents from files, fs.FS entries, URLs, or
// inline payloads. Implementations live under internal/schema/loader and are
// constructed through the top-level schemagen package.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures loader construction.
type LoaderOptions struct {
	// FileSystem serves SourceKindFS loads. Defaults to the process working
	// directory when unset.
	FileSystem fs.FS
	// HTTPClient performs SourceKindURL loads. A default client with
	// RequestTimeout applied is used when unset.
	HTTPClient *http.Client
	// AllowHTTPFallback permits plain http:// URLs. Only https:// is accepted
	// by default.
	AllowHTTPFallback bool
	// RequestTimeout bounds URL fetches when no custom client is supplied.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions during construction.
type LoaderOption func(*LoaderOptions)

// WithLoaderFS serves fs sources from the provided filesystem.
func WithLoaderFS(fsys fs.FS) LoaderOption {
	return func(o *LoaderOptions) {
		o.FileSystem = fsys
	}
}

// WithHTTPClient overrides the HTTP client used for URL sources.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(o *LoaderOptions) {
		o.HTTPClient = client
	}
}

// WithHTTPFallback toggles acceptance of non-TLS URLs.
func WithHTTPFallback(allow bool) LoaderOption {
	return func(o *LoaderOptions) {
		o.AllowHTTPFallback = allow
	}
}

// WithRequestTimeout bounds URL fetch duration for the default client.
func WithRequestTimeout(timeout time.Duration) LoaderOption {
	return func(o *LoaderOptions) {
		if timeout > 0 {
			o.RequestTimeout = timeout
		}
	}
}

// NewLoaderOptions folds the provided options over the defaults.
func NewLoaderOptions(opts ...LoaderOption) LoaderOptions {
	options := LoaderOptions{RequestTimeout: 30 * time.Second}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}
