package model

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Built-in field type tags.
const (
	FieldTypeText       = "text"
	FieldTypeSelectList = "selectlist"
	FieldTypeImage      = "image"
	FieldTypeReference  = "reference"
)

// Descriptor keys as they appear in schema form data.
const (
	KeyFieldTitle      = "fieldTitle"
	KeyFieldType       = "fieldType"
	KeyIsRequired      = "isRequired"
	KeyIsSearchable    = "isSearchable"
	KeyDisplayType     = "displayType"
	KeyTextOptions     = "textOptions"
	KeyFieldOptions    = "fieldOptions"
	KeyReferenceTarget = "referenceTarget"
	KeyPropertyOrder   = "propertyOrder"
)

// FieldDescriptor is one row of schema form data. Known attributes map onto
// struct fields; any other key lands in Extra and is written back inline.
type FieldDescriptor struct {
	FieldTitle      string         `json:"fieldTitle" mapstructure:"fieldTitle"`
	FieldType       string         `json:"fieldType" mapstructure:"fieldType"`
	IsRequired      bool           `json:"isRequired" mapstructure:"isRequired"`
	IsSearchable    bool           `json:"isSearchable" mapstructure:"isSearchable"`
	DisplayType     string         `json:"displayType,omitempty" mapstructure:"displayType"`
	TextOptions     string         `json:"textOptions,omitempty" mapstructure:"textOptions"`
	FieldOptions    []string       `json:"fieldOptions,omitempty" mapstructure:"fieldOptions"`
	ReferenceTarget string         `json:"referenceTarget,omitempty" mapstructure:"referenceTarget"`
	PropertyOrder   int            `json:"propertyOrder" mapstructure:"propertyOrder"`
	Extra           map[string]any `json:"-" mapstructure:",remain"`
}

// FieldDescriptorFromMap decodes a generic map (JSON, YAML or decoder output)
// into a FieldDescriptor. Unknown keys are preserved in Extra.
func FieldDescriptorFromMap(raw map[string]any) (FieldDescriptor, error) {
	var out FieldDescriptor
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: false,
		TagName:          "mapstructure",
	})
	if err != nil {
		return FieldDescriptor{}, fmt.Errorf("model: field decoder: %w", err)
	}
	if err := decoder.Decode(normaliseKeys(raw)); err != nil {
		return FieldDescriptor{}, fmt.Errorf("model: decode field: %w", err)
	}
	if len(out.Extra) == 0 {
		out.Extra = nil
	}
	return out, nil
}

// Map flattens the descriptor into a generic map, inlining Extra. Struct
// fields win over Extra entries with the same key.
func (f FieldDescriptor) Map() map[string]any {
	out := make(map[string]any, 9+len(f.Extra))
	for key, value := range f.Extra {
		out[key] = value
	}
	out[KeyFieldTitle] = f.FieldTitle
	out[KeyFieldType] = f.FieldType
	out[KeyIsRequired] = f.IsRequired
	out[KeyIsSearchable] = f.IsSearchable
	out[KeyPropertyOrder] = f.PropertyOrder
	if f.DisplayType != "" {
		out[KeyDisplayType] = f.DisplayType
	}
	if f.TextOptions != "" {
		out[KeyTextOptions] = f.TextOptions
	}
	if f.FieldOptions != nil {
		out[KeyFieldOptions] = append([]string(nil), f.FieldOptions...)
	}
	if f.ReferenceTarget != "" {
		out[KeyReferenceTarget] = f.ReferenceTarget
	}
	return out
}

// MarshalJSON writes Extra keys inline next to the known attributes.
func (f FieldDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Map())
}

// UnmarshalJSON accepts a flat object and keeps unknown keys in Extra.
func (f *FieldDescriptor) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := FieldDescriptorFromMap(raw)
	if err != nil {
		return err
	}
	*f = decoded
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML field lists.
func (f *FieldDescriptor) UnmarshalYAML(unmarshal func(any) error) error {
	var raw map[string]any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	decoded, err := FieldDescriptorFromMap(raw)
	if err != nil {
		return err
	}
	*f = decoded
	return nil
}

// Titles returns the field titles in list order.
func Titles(fields []FieldDescriptor) []string {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, field.FieldTitle)
	}
	return out
}

// normaliseKeys converts nested map[any]any nodes (older YAML decoders) into
// map[string]any so Extra values marshal back to JSON.
func normaliseKeys(raw map[string]any) map[string]any {
	if raw == nil {
		return nil
	}
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		out[key] = normaliseValue(value)
	}
	return out
}

func normaliseValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return normaliseKeys(typed)
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = normaliseValue(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = normaliseValue(item)
		}
		return out
	default:
		return value
	}
}
