package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Loader implements schema.Loader over files, an fs.FS, stdin and (opt-in)
// HTTP.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	stdin   io.Reader
	timeout time.Duration
	logger  zerolog.Logger
}

var _ schema.Loader = (*Loader)(nil)

// Option tweaks a Loader after the shared options are applied.
type Option func(*Loader)

// WithStdin overrides the reader used for "-" sources.
func WithStdin(r io.Reader) Option {
	return func(l *Loader) {
		l.stdin = r
	}
}

// WithLogger attaches a logger for load events.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New constructs a Loader from resolved options.
func New(options schema.LoaderOptions, extra ...Option) *Loader {
	timeout := options.RequestTimeout

	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		client = &clone
	case options.AllowHTTPFallback:
		client = &http.Client{Timeout: timeout}
	}

	l := &Loader{
		fs:      options.FileSystem,
		http:    client,
		stdin:   os.Stdin,
		timeout: timeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range extra {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load fetches a document from src.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("schemaform loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case schema.SourceKindFile:
		data, err = readFile(ctx, src.Location())
	case schema.SourceKindFS:
		data, err = readFS(ctx, l.fs, src.Location())
	case schema.SourceKindStdin:
		data, err = readStream(ctx, l.stdin)
	case schema.SourceKindURL:
		if l.http == nil {
			return schema.Document{}, errors.New("schemaform loader: http support disabled")
		}
		data, err = readHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = fmt.Errorf("schemaform loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return schema.Document{}, err
	}

	l.logger.Debug().
		Str("kind", string(src.Kind())).
		Str("location", src.Location()).
		Int("bytes", len(data)).
		Msg("loaded document")
	return schema.NewDocument(src, data)
}
