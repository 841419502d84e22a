package fieldtypes

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Codec converts one field descriptor into its property schema. index and all
// expose the position and the full list for codecs that need cross-field
// context; the built-in codecs only read field.
type Codec interface {
	Encode(field model.FieldDescriptor, index int, all []model.FieldDescriptor) (schema.Property, error)
}

// CodecFunc adapts a plain function to the Codec interface.
type CodecFunc func(field model.FieldDescriptor, index int, all []model.FieldDescriptor) (schema.Property, error)

// Encode calls fn.
func (fn CodecFunc) Encode(field model.FieldDescriptor, index int, all []model.FieldDescriptor) (schema.Property, error) {
	return fn(field, index, all)
}

// FieldValidator is implemented by codecs that check their required
// attributes before encoding.
type FieldValidator interface {
	ValidateField(field model.FieldDescriptor) error
}

// Registry maps field type tags onto codecs. It is safe for concurrent use;
// registration normally happens once at construction.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

// NewRegistry constructs a registry with the built-in codecs registered.
func NewRegistry() *Registry {
	reg := NewEmptyRegistry()
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry with no codecs.
func NewEmptyRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// Register associates tag with codec. Empty tags and nil codecs are ignored;
// registering an existing tag replaces its codec.
func (r *Registry) Register(tag string, codec Codec) {
	if r == nil || codec == nil {
		return
	}
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.codecs == nil {
		r.codecs = make(map[string]Codec)
	}
	r.codecs[trimmed] = codec
}

// Lookup returns the codec for tag or an UnknownFieldTypeError.
func (r *Registry) Lookup(tag string) (Codec, error) {
	if r == nil {
		return nil, UnknownFieldTypeError{Tag: tag}
	}
	r.mu.RLock()
	codec, ok := r.codecs[tag]
	r.mu.RUnlock()
	if !ok {
		return nil, UnknownFieldTypeError{Tag: tag}
	}
	return codec, nil
}

// Has reports whether tag is registered.
func (r *Registry) Has(tag string) bool {
	_, err := r.Lookup(tag)
	return err == nil
}

// Tags lists the registered tags in lexical order.
func (r *Registry) Tags() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	out := make([]string, 0, len(r.codecs))
	for tag := range r.codecs {
		out = append(out, tag)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

func (r *Registry) registerBuiltins() {
	r.Register(model.FieldTypeText, TextCodec{})
	r.Register(model.FieldTypeSelectList, SelectListCodec{})
	r.Register(model.FieldTypeImage, ImageCodec{})
	r.Register(model.FieldTypeReference, ReferenceCodec{})
}
