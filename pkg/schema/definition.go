package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Draft4 is the $schema value every schema document declares.
const Draft4 = "http://json-schema.org/draft-04/schema#"

// Keywords shared between the encoder, the decoder and the rendering engine.
// Key names are part of the json-editor dialect and must not change.
const (
	KeywordSchema        = "$schema"
	KeywordRef           = "$ref"
	KeywordType          = "type"
	KeywordTitle         = "title"
	KeywordPluralTitle   = "plural_title"
	KeywordDescription   = "description"
	KeywordProperties    = "properties"
	KeywordDefinitions   = "definitions"
	KeywordRequired      = "required"
	KeywordItems         = "items"
	KeywordFormat        = "format"
	KeywordEnum          = "enum"
	KeywordPattern       = "pattern"
	KeywordOptions       = "options"
	KeywordMedia         = "media"
	KeywordWatch         = "watch"
	KeywordEnumSource    = "enumSource"
	KeywordPropertyOrder = "propertyOrder"
	KeywordFieldType     = "fieldType"
	KeywordIsSearchable  = "isSearchable"
	KeywordDisplayType   = "displayType"
)

const (
	TypeObject = "object"
	TypeString = "string"
	TypeArray  = "array"
)

// Property is a single entry of a definition's properties map. Values decoded
// from JSON carry plain map[string]any nodes, so Property is an alias rather
// than a distinct type.
type Property = map[string]any

// Definition is a JSON Schema object node. It is kept as an open map so
// vendor keywords and caller overrides survive untouched.
type Definition map[string]any

// Properties returns the properties map, creating it when absent.
func (d Definition) Properties() map[string]any {
	if d == nil {
		return nil
	}
	switch props := d[KeywordProperties].(type) {
	case map[string]any:
		return props
	case Definition:
		return props
	}
	props := make(map[string]any)
	d[KeywordProperties] = props
	return props
}

// Property returns the named property when it is an object node.
func (d Definition) Property(name string) (Property, bool) {
	if d == nil {
		return nil, false
	}
	props, ok := d[KeywordProperties].(map[string]any)
	if !ok {
		return nil, false
	}
	prop, ok := props[name].(map[string]any)
	return prop, ok
}

// Required returns the required list as strings. Lists decoded from JSON arrive
// as []any; non-string entries are skipped.
func (d Definition) Required() []string {
	if d == nil {
		return nil
	}
	switch list := d[KeywordRequired].(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// IsRequired reports whether name appears in the required list.
func (d Definition) IsRequired(name string) bool {
	for _, item := range d.Required() {
		if item == name {
			return true
		}
	}
	return false
}

// Type returns the JSON Schema type keyword when it is a string.
func (d Definition) Type() string {
	value, _ := d[KeywordType].(string)
	return value
}

// NewObjectDefinition returns a blank object definition merged with the
// supplied overrides. Overrides win on key conflicts.
func NewObjectDefinition(overrides map[string]any) Definition {
	def := Definition{
		KeywordType:        TypeObject,
		KeywordTitle:       "",
		KeywordPluralTitle: "",
		KeywordDescription: "",
		KeywordProperties:  map[string]any{},
		KeywordDefinitions: map[string]any{},
	}
	for key, value := range overrides {
		def[key] = value
	}
	return def
}

// AddVersion4Declaration pins $schema to draft 4. It mutates and returns def.
func AddVersion4Declaration(def Definition) Definition {
	if def == nil {
		def = Definition{}
	}
	def[KeywordSchema] = Draft4
	return def
}

// AddRelatedContentFields adds the hidden _localId identity property and marks
// it required. The required entry is appended on every call, so callers apply
// it exactly once per definition.
func AddRelatedContentFields(def Definition) Definition {
	if def == nil {
		def = Definition{}
	}
	def.Properties()[LocalIDKey] = LocalIDProperty()
	def[KeywordRequired] = append(def.Required(), LocalIDKey)
	return def
}

// NewSchemaDocument builds the top-level document: a blank object definition
// with the draft 4 declaration.
func NewSchemaDocument(overrides map[string]any) Definition {
	return AddVersion4Declaration(NewObjectDefinition(overrides))
}

// EncodeJSONPointer encodes a definitions key for use inside a $ref. The form
// renderer resolves refs without unescaping, so keys pass through verbatim.
func EncodeJSONPointer(key string) string {
	return key
}

// AttachOptions controls how a content-type definition is referenced from the
// parent document.
type AttachOptions struct {
	Title       string
	PluralTitle string
	Description string
	// Multiple references the definition as an array of records.
	Multiple bool
	// Order sets propertyOrder on the referencing property.
	Order int
}

// AttachDefinition stores def under doc.definitions[key] and adds a property
// referencing it. It mutates and returns doc.
func AttachDefinition(doc Definition, key string, def Definition, opts AttachOptions) (Definition, error) {
	if strings.TrimSpace(key) == "" {
		return doc, errors.New("schema: definition key is required")
	}
	if def == nil {
		return doc, fmt.Errorf("schema: definition %q is nil", key)
	}
	if doc == nil {
		doc = NewSchemaDocument(nil)
	}

	definitions, ok := doc[KeywordDefinitions].(map[string]any)
	if !ok {
		definitions = make(map[string]any)
		doc[KeywordDefinitions] = definitions
	}

	if opts.Title != "" {
		def[KeywordTitle] = opts.Title
	}
	if opts.PluralTitle != "" {
		def[KeywordPluralTitle] = opts.PluralTitle
	}
	if opts.Description != "" {
		def[KeywordDescription] = opts.Description
	}
	definitions[key] = map[string]any(def)

	ref := map[string]any{KeywordRef: "#/" + KeywordDefinitions + "/" + EncodeJSONPointer(key)}
	var prop Property
	if opts.Multiple {
		prop = Property{
			KeywordType:  TypeArray,
			KeywordItems: ref,
		}
		if opts.PluralTitle != "" {
			prop[KeywordTitle] = opts.PluralTitle
		}
	} else {
		prop = ref
	}
	prop[KeywordPropertyOrder] = opts.Order
	doc.Properties()[key] = prop
	return doc, nil
}
