package codec

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// ErrMalformedDefinition matches MalformedDefinitionError via errors.Is.
var ErrMalformedDefinition = errors.New("malformed definition")

// MalformedDefinitionError reports a definition the decoder cannot map back
// onto form data.
type MalformedDefinitionError struct {
	Property string
	Keyword  string
	Err      error
}

func (e MalformedDefinitionError) Error() string {
	msg := "invalid definition"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	switch {
	case e.Property != "" && e.Keyword != "":
		return fmt.Sprintf("schemaform codec: property %q keyword %q: %s", e.Property, e.Keyword, msg)
	case e.Property != "":
		return fmt.Sprintf("schemaform codec: property %q: %s", e.Property, msg)
	default:
		return "schemaform codec: " + msg
	}
}

func (e MalformedDefinitionError) Is(target error) bool {
	return target == ErrMalformedDefinition
}

func (e MalformedDefinitionError) Unwrap() error {
	return e.Err
}

// Decode converts an object definition back into schema form data ordered by
// propertyOrder. System-only properties are skipped. Properties without a
// propertyOrder sort after the ordered ones, by title.
func (c *Codec) Decode(def schema.Definition) ([]model.FieldDescriptor, error) {
	if def == nil {
		return nil, MalformedDefinitionError{Err: errors.New("definition is nil")}
	}

	var properties map[string]any
	switch raw := def[schema.KeywordProperties].(type) {
	case nil:
		properties = nil
	case map[string]any:
		properties = raw
	case schema.Definition:
		properties = raw
	default:
		return nil, MalformedDefinitionError{Err: fmt.Errorf("properties must be an object, got %T", raw)}
	}

	titles := make([]string, 0, len(properties))
	for title := range properties {
		if c.isSystemOnly(title) {
			continue
		}
		titles = append(titles, title)
	}
	sort.Strings(titles)

	required := make(map[string]struct{})
	for _, title := range def.Required() {
		required[title] = struct{}{}
	}

	type entry struct {
		field    model.FieldDescriptor
		hasOrder bool
	}
	entries := make([]entry, 0, len(titles))
	for _, title := range titles {
		prop, ok := properties[title].(map[string]any)
		if !ok {
			return nil, MalformedDefinitionError{
				Property: title,
				Err:      fmt.Errorf("property must be an object, got %T", properties[title]),
			}
		}
		field, err := c.decodeProperty(title, prop)
		if err != nil {
			return nil, err
		}
		_, field.IsRequired = required[title]
		_, hasOrder := prop[schema.KeywordPropertyOrder]
		entries = append(entries, entry{field: field, hasOrder: hasOrder})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.hasOrder != b.hasOrder {
			return a.hasOrder
		}
		return a.field.PropertyOrder < b.field.PropertyOrder
	})

	fields := make([]model.FieldDescriptor, len(entries))
	for idx, item := range entries {
		fields[idx] = item.field
	}

	c.logger.Debug().Int("fields", len(fields)).Msg("decoded definition")
	return fields, nil
}

func (c *Codec) decodeProperty(title string, prop map[string]any) (model.FieldDescriptor, error) {
	raw := map[string]any{model.KeyFieldTitle: title}

	keys := make([]string, 0, len(prop))
	for key := range prop {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := prop[key]
		handler, ok := c.keywords[key]
		if !ok {
			raw[key] = value
			continue
		}
		if err := handler(value, raw); err != nil {
			return model.FieldDescriptor{}, MalformedDefinitionError{Property: title, Keyword: key, Err: err}
		}
	}
	raw[model.KeyFieldTitle] = title

	field, err := model.FieldDescriptorFromMap(raw)
	if err != nil {
		return model.FieldDescriptor{}, MalformedDefinitionError{Property: title, Err: err}
	}
	return field, nil
}
