package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// fieldListEnvelope lets a field list be stored as {"fields": [...]} next to
// other authoring metadata.
type fieldListEnvelope struct {
	Fields []model.FieldDescriptor `json:"fields" yaml:"fields"`
}

// ParseFieldList decodes schema form data from a JSON or YAML document. The
// payload is either a bare list or an object with a "fields" list.
func ParseFieldList(doc schema.Document) ([]model.FieldDescriptor, error) {
	raw := doc.Raw()
	if isObject(raw, doc.Format()) {
		var env fieldListEnvelope
		if err := unmarshal(raw, doc.Format(), &env); err != nil {
			return nil, fmt.Errorf("schemaform loader: parse field list %s: %w", doc.Location(), err)
		}
		if env.Fields == nil {
			return nil, fmt.Errorf("schemaform loader: %s has no fields list", doc.Location())
		}
		return env.Fields, nil
	}

	var fields []model.FieldDescriptor
	if err := unmarshal(raw, doc.Format(), &fields); err != nil {
		return nil, fmt.Errorf("schemaform loader: parse field list %s: %w", doc.Location(), err)
	}
	if fields == nil {
		fields = []model.FieldDescriptor{}
	}
	return fields, nil
}

// ParseDefinition decodes a schema document. When key is set the definition
// stored under definitions[key] is returned instead of the root.
func ParseDefinition(doc schema.Document, key string) (schema.Definition, error) {
	var payload map[string]any
	if err := unmarshal(doc.Raw(), doc.Format(), &payload); err != nil {
		return nil, fmt.Errorf("schemaform loader: parse schema %s: %w", doc.Location(), err)
	}
	if payload == nil {
		return nil, fmt.Errorf("schemaform loader: schema %s is not an object", doc.Location())
	}
	root := schema.Definition(payload)
	if key == "" {
		return root, nil
	}

	definitions, ok := root[schema.KeywordDefinitions].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schemaform loader: schema %s has no definitions", doc.Location())
	}
	nested, ok := definitions[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schemaform loader: definition %q not found in %s", key, doc.Location())
	}
	return schema.Definition(nested), nil
}

func unmarshal(raw []byte, format schema.Format, out any) error {
	switch format {
	case schema.FormatJSON:
		return json.Unmarshal(raw, out)
	case schema.FormatYAML:
		return yaml.Unmarshal(raw, out)
	default:
		return errors.New("unsupported format " + string(format))
	}
}

func isObject(raw []byte, format schema.Format) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if format == schema.FormatJSON {
		return trimmed[0] == '{'
	}
	var node yaml.Node
	if err := yaml.Unmarshal(trimmed, &node); err != nil || len(node.Content) == 0 {
		return false
	}
	return node.Content[0].Kind == yaml.MappingNode
}
