// Package loader fetches raw schema documents from files, fs.FS entries,
// URLs, and inline payloads. It implements the schema.Loader contract.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/goliatone/go-schemagen/pkg/schema"
)

// Loader dispatches on the source kind to file, fs.FS, HTTP, or inline
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ schema.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options schema.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	if options.HTTPClient != nil {
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	} else {
		httpClient = &http.Client{Timeout: timeout}
	}

	fsys := options.FileSystem
	if fsys == nil {
		fsys = os.DirFS(".")
	}

	return &Loader{
		fs:        fsys,
		http:      httpClient,
		allowHTTP: options.AllowHTTPFallback,
		timeout:   timeout,
	}
}

// Load fetches the bytes behind src and wraps them in a Document.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("schema loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case schema.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case schema.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case schema.SourceKindURL:
		data, err = loadHTTP(ctx, l.http, src.Location(), l.allowHTTP, l.timeout)
	case schema.SourceKindInline:
		data, err = loadInline(ctx, src)
	default:
		err = fmt.Errorf("schema loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return schema.Document{}, err
	}

	return schema.NewDocument(src, data)
}

// payloadCarrier is implemented by inline sources that carry their bytes.
type payloadCarrier interface {
	Payload() []byte
}

func loadInline(ctx context.Context, src schema.Source) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	carrier, ok := src.(payloadCarrier)
	if !ok {
		return nil, fmt.Errorf("schema loader: inline source %q carries no payload", src.Location())
	}
	return carrier.Payload(), nil
}
