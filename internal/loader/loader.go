// Package loader fetches definition documents from files, fs.FS entries, or
// HTTP endpoints. Construction helpers live in the top-level vecgen package.
package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-vecgen/pkg/definition"
)

// Loader implements definition.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// Ensure the implementation satisfies the public interface.
var _ definition.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options definition.LoaderOptions) definition.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a document from the provided source and wraps it in a
// Document.
func (l *Loader) Load(ctx context.Context, src definition.Source) (definition.Document, error) {
	if src == nil {
		return definition.Document{}, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case definition.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case definition.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case definition.SourceKindURL:
		if !l.allowHTTP {
			return definition.Document{}, errors.New("loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("loader: unsupported source kind")
	}
	if err != nil {
		return definition.Document{}, err
	}

	return definition.NewDocument(src, data)
}
