// Package schemaform converts schema form data (a flat, ordered list of field
// descriptors edited by a schema editor) into JSON Schema draft 4 definitions
// understood by json-editor style form renderers, and back.
//
// The helpers in this package use a default codec with the built-in field
// types. Use pkg/codec directly to register custom field types or keyword
// handlers.
package schemaform

import (
	"github.com/goliatone/go-schemaform/internal/loader"
	"github.com/goliatone/go-schemaform/pkg/codec"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

// FieldDescriptor is one row of schema form data.
type FieldDescriptor = model.FieldDescriptor

// Definition is a JSON Schema object node.
type Definition = schema.Definition

// ValidationError is a non-fatal problem reported for schema form data.
type ValidationError = validation.ValidationError

var defaultCodec = codec.New()

// DefinitionFromSchemaFormData encodes schema form data with the built-in
// field types. It does not check for duplicate titles; call
// ValidateSchemaFormData first.
func DefinitionFromSchemaFormData(fields []FieldDescriptor) (Definition, error) {
	return defaultCodec.Encode(fields)
}

// SchemaFormDataFromDefinition decodes a definition into schema form data
// ordered by propertyOrder.
func SchemaFormDataFromDefinition(def Definition) ([]FieldDescriptor, error) {
	return defaultCodec.Decode(def)
}

// ValidateSchemaFormData reports duplicate field titles.
func ValidateSchemaFormData(fields []FieldDescriptor) []ValidationError {
	return validation.ValidateSchemaFormData(fields)
}

// NewObjectDefinition returns a blank object definition merged with overrides.
func NewObjectDefinition(overrides map[string]any) Definition {
	return schema.NewObjectDefinition(overrides)
}

// AddVersion4Declaration pins $schema to draft 4 on def and returns it.
func AddVersion4Declaration(def Definition) Definition {
	return schema.AddVersion4Declaration(def)
}

// AddRelatedContentFields injects the _localId identity property into def and
// returns it. Apply once per definition.
func AddRelatedContentFields(def Definition) Definition {
	return schema.AddRelatedContentFields(def)
}

// NewLoader constructs a document loader while keeping the concrete type
// internal.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	return loader.New(schema.NewLoaderOptions(options...))
}
