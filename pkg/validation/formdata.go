package validation

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-schemaform/pkg/codec"
	"github.com/goliatone/go-schemaform/pkg/fieldtypes"
	"github.com/goliatone/go-schemaform/pkg/model"
)

// ValidationError is a non-fatal problem with schema form data. Message is
// meant to be shown to the user verbatim.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidateSchemaFormData reports every field title used more than once, one
// error per title, in order of first appearance. An empty result means the
// data is valid. The input is not modified.
func ValidateSchemaFormData(fields []model.FieldDescriptor) []ValidationError {
	counts := make(map[string]int, len(fields))
	first := make(map[string]int, len(fields))
	order := make([]string, 0, len(fields))
	for idx, field := range fields {
		if _, seen := counts[field.FieldTitle]; !seen {
			order = append(order, field.FieldTitle)
			first[field.FieldTitle] = idx
		}
		counts[field.FieldTitle]++
	}

	errs := make([]ValidationError, 0)
	for _, title := range order {
		if counts[title] > 1 {
			errs = append(errs, ValidationError{
				Field:   title,
				Index:   first[title],
				Message: fmt.Sprintf("Invalid schema: The field title %q is used more than once.", title),
			})
		}
	}
	return errs
}

// CheckFields runs ValidateSchemaFormData and then dry-runs every field
// through the codec, reporting unknown field types and missing attributes as
// validation errors instead of failing on the first one.
func CheckFields(c *codec.Codec, fields []model.FieldDescriptor) []ValidationError {
	if c == nil {
		c = codec.New()
	}
	errs := ValidateSchemaFormData(fields)
	for idx, field := range fields {
		if _, err := c.EncodeField(field, idx, fields); err != nil {
			errs = append(errs, fieldError(field, idx, err))
		}
	}
	return errs
}

func fieldError(field model.FieldDescriptor, idx int, err error) ValidationError {
	out := ValidationError{Field: field.FieldTitle, Index: idx}

	var unknown fieldtypes.UnknownFieldTypeError
	var malformed fieldtypes.MalformedFieldDataError
	switch {
	case errors.As(err, &unknown):
		out.Message = fmt.Sprintf("Invalid schema: The field %q has an unknown type %q.", field.FieldTitle, unknown.Tag)
	case errors.As(err, &malformed):
		reason := malformed.Reason
		if reason == "" && malformed.Err != nil {
			reason = malformed.Err.Error()
		}
		if field.FieldTitle == "" {
			out.Message = fmt.Sprintf("Invalid schema: Field %d is incomplete: %s.", idx+1, trimPeriod(reason))
		} else {
			out.Message = fmt.Sprintf("Invalid schema: The field %q is incomplete: %s.", field.FieldTitle, trimPeriod(reason))
		}
	default:
		out.Message = err.Error()
	}
	return out
}

func trimPeriod(value string) string {
	for len(value) > 0 && value[len(value)-1] == '.' {
		value = value[:len(value)-1]
	}
	return value
}
