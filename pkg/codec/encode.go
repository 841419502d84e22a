package codec

import (
	"errors"
	"strings"

	"github.com/goliatone/go-schemaform/pkg/fieldtypes"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Encode converts schema form data into an object definition suitable for the
// definitions section of a schema document. The result always carries the
// hidden _localId property, listed first in required.
//
// Encode does not run the duplicate-title check; callers compose it with
// validation.ValidateSchemaFormData. Any failure returns a nil definition.
func (c *Codec) Encode(fields []model.FieldDescriptor) (schema.Definition, error) {
	properties := make(map[string]any, len(fields)+1)
	required := make([]string, 0, len(fields))

	for idx, field := range fields {
		prop, err := c.encodeField(field, idx, fields)
		if err != nil {
			c.logger.Debug().Err(err).Int("index", idx).Str("field", field.FieldTitle).Msg("encode aborted")
			return nil, err
		}
		properties[field.FieldTitle] = prop
		if field.IsRequired {
			required = append(required, field.FieldTitle)
		}
	}

	def := schema.Definition{
		schema.KeywordType:       schema.TypeObject,
		schema.KeywordProperties: properties,
	}
	def = schema.AddRelatedContentFields(def)
	def[schema.KeywordRequired] = append(def.Required(), required...)

	c.logger.Debug().Int("fields", len(fields)).Int("required", len(required)).Msg("encoded schema form data")
	return def, nil
}

// EncodeField converts a single descriptor at position index. It is exposed
// for editors that preview one property at a time.
func (c *Codec) EncodeField(field model.FieldDescriptor, index int, all []model.FieldDescriptor) (schema.Property, error) {
	return c.encodeField(field, index, all)
}

func (c *Codec) encodeField(field model.FieldDescriptor, index int, all []model.FieldDescriptor) (schema.Property, error) {
	if strings.TrimSpace(field.FieldTitle) == "" {
		return nil, fieldtypes.MalformedFieldDataError{Index: index, Reason: "fieldTitle is required"}
	}
	if c.isSystemOnly(field.FieldTitle) {
		return nil, fieldtypes.MalformedFieldDataError{
			Title:  field.FieldTitle,
			Index:  index,
			Reason: "fieldTitle is reserved for a system property",
		}
	}

	codec, err := c.registry.Lookup(field.FieldType)
	if err != nil {
		var unknown fieldtypes.UnknownFieldTypeError
		if errors.As(err, &unknown) {
			unknown.Title = field.FieldTitle
			unknown.Index = index
			return nil, unknown
		}
		return nil, err
	}

	if validator, ok := codec.(fieldtypes.FieldValidator); ok {
		if err := validator.ValidateField(field); err != nil {
			return nil, fieldtypes.MalformedFieldDataError{Title: field.FieldTitle, Index: index, Err: err}
		}
	}

	prop, err := codec.Encode(field, index, all)
	if err != nil {
		if errors.Is(err, fieldtypes.ErrMalformedFieldData) || errors.Is(err, fieldtypes.ErrUnknownFieldType) {
			return nil, err
		}
		return nil, fieldtypes.MalformedFieldDataError{Title: field.FieldTitle, Index: index, Err: err}
	}
	if prop == nil {
		return nil, fieldtypes.MalformedFieldDataError{
			Title:  field.FieldTitle,
			Index:  index,
			Reason: "codec for " + field.FieldType + " returned no property",
		}
	}

	prop[schema.KeywordIsSearchable] = field.IsSearchable
	prop[schema.KeywordFieldType] = field.FieldType
	prop[schema.KeywordPropertyOrder] = index
	return prop, nil
}
