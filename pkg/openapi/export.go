package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

const (
	// Version is the OpenAPI version stamped on exported documents.
	Version = "3.0.3"

	extensionPrefix  = "x-"
	componentsPrefix = "#/components/schemas/"
	definitionPrefix = "#/" + schema.KeywordDefinitions + "/"
)

// ExportOptions configures Export.
type ExportOptions struct {
	Title   string
	Version string
	// RootName names the component built from the document root. Empty skips
	// the root and only exports its definitions.
	RootName string
}

// Export converts a schema document into an OpenAPI document whose
// components.schemas hold the root (when RootName is set) and every entry of
// definitions.
func Export(doc schema.Definition, opts ExportOptions) (*openapi3.T, error) {
	if doc == nil {
		return nil, errors.New("openapi export: document is nil")
	}
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title, _ = doc[schema.KeywordTitle].(string)
	}
	if title == "" {
		title = "schemaform"
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "1.0.0"
	}

	components := openapi3.Schemas{}
	if definitions, ok := doc[schema.KeywordDefinitions].(map[string]any); ok {
		keys := sortedKeys(definitions)
		for _, key := range keys {
			nested, ok := definitions[key].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("openapi export: definition %q must be an object", key)
			}
			converted, err := ComponentSchema(nested)
			if err != nil {
				return nil, fmt.Errorf("openapi export: definition %q: %w", key, err)
			}
			components[key] = openapi3.NewSchemaRef("", converted)
		}
	}
	if name := strings.TrimSpace(opts.RootName); name != "" {
		converted, err := ComponentSchema(doc)
		if err != nil {
			return nil, fmt.Errorf("openapi export: root: %w", err)
		}
		components[name] = openapi3.NewSchemaRef("", converted)
	}
	if len(components) == 0 {
		return nil, errors.New("openapi export: nothing to export")
	}

	return &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: components},
	}, nil
}

// ComponentSchema converts one definition or property node into an OpenAPI
// schema. $schema and nested definitions are dropped; definitions are
// exported as sibling components by Export.
func ComponentSchema(node map[string]any) (*openapi3.Schema, error) {
	out := &openapi3.Schema{Extensions: map[string]any{}}
	for _, key := range sortedKeys(node) {
		value := node[key]
		switch key {
		case schema.KeywordSchema, schema.KeywordDefinitions:
			continue
		case schema.KeywordType:
			typ, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("type must be a string, got %T", value)
			}
			out.Type = &openapi3.Types{typ}
		case schema.KeywordTitle:
			out.Title, _ = value.(string)
		case schema.KeywordDescription:
			out.Description, _ = value.(string)
		case schema.KeywordFormat:
			out.Format, _ = value.(string)
		case schema.KeywordPattern:
			out.Pattern, _ = value.(string)
		case schema.KeywordEnum:
			out.Enum = anyList(value)
		case schema.KeywordRequired:
			out.Required = schema.Definition{schema.KeywordRequired: value}.Required()
		case schema.KeywordProperties:
			props, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("properties must be an object, got %T", value)
			}
			out.Properties = make(openapi3.Schemas, len(props))
			for _, name := range sortedKeys(props) {
				ref, err := schemaRef(props[name])
				if err != nil {
					return nil, fmt.Errorf("property %q: %w", name, err)
				}
				out.Properties[name] = ref
			}
		case schema.KeywordItems:
			ref, err := schemaRef(value)
			if err != nil {
				return nil, fmt.Errorf("items: %w", err)
			}
			out.Items = ref
		default:
			out.Extensions[extensionPrefix+key] = value
		}
	}
	if len(out.Extensions) == 0 {
		out.Extensions = nil
	}
	return out, nil
}

// schemaRef converts a node that may be a $ref. OpenAPI 3.0 ignores siblings
// of $ref, so keywords next to a reference (propertyOrder) are not exported.
func schemaRef(value any) (*openapi3.SchemaRef, error) {
	node, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema must be an object, got %T", value)
	}
	if ref, ok := node[schema.KeywordRef].(string); ok {
		return &openapi3.SchemaRef{Ref: componentsPrefix + strings.TrimPrefix(ref, definitionPrefix)}, nil
	}
	converted, err := ComponentSchema(node)
	if err != nil {
		return nil, err
	}
	return openapi3.NewSchemaRef("", converted), nil
}

// Marshal renders an exported document as indented JSON.
func Marshal(doc *openapi3.T) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("openapi export: document is nil")
	}
	return json.MarshalIndent(doc, "", "  ")
}

// LoadComponents parses an OpenAPI document and converts every component
// schema back into a definition, restoring vendor keywords from extensions.
func LoadComponents(ctx context.Context, raw []byte) (map[string]schema.Definition, error) {
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi import: load document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi import: document has no component schemas")
	}
	out := make(map[string]schema.Definition, len(spec.Components.Schemas))
	for name, ref := range spec.Components.Schemas {
		if ref == nil || ref.Value == nil {
			continue
		}
		def, err := DefinitionFromSchema(ref.Value)
		if err != nil {
			return nil, fmt.Errorf("openapi import: component %q: %w", name, err)
		}
		out[name] = def
	}
	return out, nil
}

// DefinitionFromSchema is the inverse of ComponentSchema.
func DefinitionFromSchema(s *openapi3.Schema) (schema.Definition, error) {
	if s == nil {
		return nil, errors.New("schema is nil")
	}
	out := schema.Definition{}
	if s.Type != nil && len(*s.Type) > 0 {
		out[schema.KeywordType] = (*s.Type)[0]
	}
	if s.Title != "" {
		out[schema.KeywordTitle] = s.Title
	}
	if s.Description != "" {
		out[schema.KeywordDescription] = s.Description
	}
	if s.Format != "" {
		out[schema.KeywordFormat] = s.Format
	}
	if s.Pattern != "" {
		out[schema.KeywordPattern] = s.Pattern
	}
	if len(s.Enum) > 0 {
		out[schema.KeywordEnum] = append([]any(nil), s.Enum...)
	}
	if len(s.Required) > 0 {
		out[schema.KeywordRequired] = append([]string(nil), s.Required...)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, ref := range s.Properties {
			node, err := nodeFromRef(ref)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			props[name] = node
		}
		out[schema.KeywordProperties] = props
	}
	if s.Items != nil {
		node, err := nodeFromRef(s.Items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		out[schema.KeywordItems] = node
	}
	for key, value := range s.Extensions {
		if !strings.HasPrefix(key, extensionPrefix) {
			continue
		}
		decoded, err := extensionValue(value)
		if err != nil {
			return nil, fmt.Errorf("extension %q: %w", key, err)
		}
		out[strings.TrimPrefix(key, extensionPrefix)] = decoded
	}
	return out, nil
}

func nodeFromRef(ref *openapi3.SchemaRef) (map[string]any, error) {
	if ref == nil {
		return nil, errors.New("schema is nil")
	}
	if ref.Ref != "" {
		return map[string]any{
			schema.KeywordRef: definitionPrefix + strings.TrimPrefix(ref.Ref, componentsPrefix),
		}, nil
	}
	def, err := DefinitionFromSchema(ref.Value)
	if err != nil {
		return nil, err
	}
	return map[string]any(def), nil
}

func extensionValue(value any) (any, error) {
	raw, ok := value.(json.RawMessage)
	if !ok {
		return value, nil
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func anyList(value any) []any {
	switch list := value.(type) {
	case []any:
		return append([]any(nil), list...)
	case []string:
		out := make([]any, len(list))
		for idx, item := range list {
			out[idx] = item
		}
		return out
	default:
		return nil
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
