package fieldtypes

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Image uploads are always stored inline with a fixed encoding policy.
const (
	ImageBinaryEncoding = "base64"
	ImageMediaType      = "image/jpeg"
)

// Reference enumerations read from the watched collection and key each option
// by the target record's identity.
const (
	ReferenceEnumSource     = "target"
	ReferenceTitleSuffix    = " {{i}}"
	ReferenceValueTemplate  = "{{item." + schema.LocalIDKey + "}}"
	referenceWatchTargetKey = "target"
)

// TextCodec encodes free text fields. textOptions becomes the format hint
// (for example "multiline").
type TextCodec struct{}

func (TextCodec) ValidateField(field model.FieldDescriptor) error {
	return validation.ValidateStruct(&field,
		validation.Field(&field.TextOptions, validation.Required),
	)
}

func (TextCodec) Encode(field model.FieldDescriptor, _ int, _ []model.FieldDescriptor) (schema.Property, error) {
	return schema.Property{
		schema.KeywordType:   schema.TypeString,
		schema.KeywordFormat: field.TextOptions,
	}, nil
}

// SelectListCodec encodes a fixed list of options. Option order is kept.
type SelectListCodec struct{}

func (SelectListCodec) ValidateField(field model.FieldDescriptor) error {
	return validation.ValidateStruct(&field,
		validation.Field(&field.FieldOptions, validation.Required, validation.Each(validation.Required)),
	)
}

func (SelectListCodec) Encode(field model.FieldDescriptor, _ int, _ []model.FieldDescriptor) (schema.Property, error) {
	prop := schema.Property{
		schema.KeywordType: schema.TypeString,
		schema.KeywordEnum: append([]string(nil), field.FieldOptions...),
	}
	if field.DisplayType != "" {
		prop[schema.KeywordDisplayType] = field.DisplayType
	}
	return prop, nil
}

// ImageCodec encodes an image upload field. It takes no per-field options.
type ImageCodec struct{}

func (ImageCodec) Encode(_ model.FieldDescriptor, _ int, _ []model.FieldDescriptor) (schema.Property, error) {
	return schema.Property{
		schema.KeywordType: schema.TypeString,
		schema.KeywordMedia: map[string]any{
			"binaryEncoding": ImageBinaryEncoding,
			"type":           ImageMediaType,
		},
	}, nil
}

// ReferenceCodec encodes a link to a record of another content type. The
// option list is filled at render time from the watched collection.
// Self references and title collisions are not resolved.
type ReferenceCodec struct{}

func (ReferenceCodec) ValidateField(field model.FieldDescriptor) error {
	return validation.ValidateStruct(&field,
		validation.Field(&field.ReferenceTarget, validation.Required),
	)
}

func (ReferenceCodec) Encode(field model.FieldDescriptor, _ int, _ []model.FieldDescriptor) (schema.Property, error) {
	target := field.ReferenceTarget
	return schema.Property{
		schema.KeywordType: schema.TypeString,
		schema.KeywordWatch: map[string]any{
			referenceWatchTargetKey: target,
		},
		schema.KeywordEnumSource: []any{
			map[string]any{
				"source": ReferenceEnumSource,
				"title":  target + ReferenceTitleSuffix,
				"value":  ReferenceValueTemplate,
			},
		},
	}, nil
}
