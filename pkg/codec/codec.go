// Package codec converts between flat schema form data and JSON Schema object
// definitions.
//
// Encoding is driven by the field type registry: every descriptor is handed to
// the codec registered for its fieldType. Decoding does not consult the
// registry; it walks each property's keywords through a keyword table. New
// field types therefore need a registry entry for encoding and, when they
// introduce keywords that do not map 1:1 onto descriptor attributes, a keyword
// handler for decoding.
package codec

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-schemaform/pkg/fieldtypes"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// DefaultSystemOnlyProperties lists properties owned by the system. They are
// injected on encode and never surface as editable fields on decode.
var DefaultSystemOnlyProperties = []string{schema.LocalIDKey}

// Codec bundles the registry, keyword table and system-only keys used by
// Encode and Decode. A Codec holds no per-call state and is safe to share.
type Codec struct {
	registry   *fieldtypes.Registry
	keywords   KeywordTable
	systemOnly map[string]struct{}
	logger     zerolog.Logger
}

// Option configures a Codec.
type Option func(*options)

type options struct {
	registry   *fieldtypes.Registry
	keywords   map[string]KeywordHandler
	systemOnly []string
	logger     *zerolog.Logger
}

// WithRegistry swaps the field type registry used for encoding.
func WithRegistry(registry *fieldtypes.Registry) Option {
	return func(opts *options) {
		opts.registry = registry
	}
}

// WithSystemOnlyProperties replaces the set of property keys hidden from
// decoded form data and rejected as field titles.
func WithSystemOnlyProperties(keys ...string) Option {
	return func(opts *options) {
		opts.systemOnly = append([]string(nil), keys...)
	}
}

// WithKeywordHandler adds or replaces a decoder keyword handler.
func WithKeywordHandler(keyword string, handler KeywordHandler) Option {
	return func(opts *options) {
		trimmed := strings.TrimSpace(keyword)
		if trimmed == "" || handler == nil {
			return
		}
		if opts.keywords == nil {
			opts.keywords = make(map[string]KeywordHandler)
		}
		opts.keywords[trimmed] = handler
	}
}

// WithLogger attaches a logger for debug events. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(opts *options) {
		opts.logger = &logger
	}
}

// New constructs a Codec. Without options it uses the built-in field types,
// the default keyword table and {_localId} as the system-only set.
func New(opts ...Option) *Codec {
	cfg := options{systemOnly: DefaultSystemOnlyProperties}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	registry := cfg.registry
	if registry == nil {
		registry = fieldtypes.NewRegistry()
	}

	keywords := DefaultKeywordTable()
	for keyword, handler := range cfg.keywords {
		keywords[keyword] = handler
	}

	systemOnly := make(map[string]struct{}, len(cfg.systemOnly))
	for _, key := range cfg.systemOnly {
		systemOnly[key] = struct{}{}
	}

	logger := zerolog.Nop()
	if cfg.logger != nil {
		logger = *cfg.logger
	}

	return &Codec{
		registry:   registry,
		keywords:   keywords,
		systemOnly: systemOnly,
		logger:     logger,
	}
}

// Registry returns the field type registry backing Encode.
func (c *Codec) Registry() *fieldtypes.Registry {
	return c.registry
}

// SystemOnlyProperties returns the system-only keys in lexical order.
func (c *Codec) SystemOnlyProperties() []string {
	out := make([]string, 0, len(c.systemOnly))
	for key := range c.systemOnly {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func (c *Codec) isSystemOnly(key string) bool {
	_, ok := c.systemOnly[key]
	return ok
}
