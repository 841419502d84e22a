package codec

import (
	"fmt"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// KeywordHandler folds one property keyword into the descriptor being built.
// field is the flat descriptor map; handlers write the attributes they own.
type KeywordHandler func(value any, field map[string]any) error

// KeywordTable maps property keywords onto decoder handlers. Keywords absent
// from the table are copied onto the descriptor verbatim.
type KeywordTable map[string]KeywordHandler

// DefaultKeywordTable returns a fresh copy of the decoder keyword table.
func DefaultKeywordTable() KeywordTable {
	return KeywordTable{
		schema.KeywordEnum:       decodeEnum,
		schema.KeywordFormat:     decodeFormat,
		schema.KeywordWatch:      decodeWatch,
		schema.KeywordType:       Ignore,
		schema.KeywordMedia:      Ignore,
		schema.KeywordEnumSource: Ignore,
	}
}

// Ignore drops a keyword. type is derivable from fieldType; media and
// enumSource are fixed by their codecs.
func Ignore(any, map[string]any) error {
	return nil
}

// CopyAs returns a handler storing the value under another descriptor key.
func CopyAs(key string) KeywordHandler {
	return func(value any, field map[string]any) error {
		field[key] = value
		return nil
	}
}

func decodeEnum(value any, field map[string]any) error {
	options, err := stringList(value)
	if err != nil {
		return fmt.Errorf("enum: %w", err)
	}
	field[model.KeyFieldOptions] = options
	return nil
}

func decodeFormat(value any, field map[string]any) error {
	format, ok := value.(string)
	if !ok {
		return fmt.Errorf("format must be a string, got %T", value)
	}
	field[model.KeyTextOptions] = format
	return nil
}

func decodeWatch(value any, field map[string]any) error {
	watch, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("watch must be an object, got %T", value)
	}
	raw, ok := watch["target"]
	if !ok {
		return nil
	}
	target, ok := raw.(string)
	if !ok {
		return fmt.Errorf("watch.target must be a string, got %T", raw)
	}
	field[model.KeyReferenceTarget] = target
	return nil
}

func stringList(value any) ([]string, error) {
	switch list := value.(type) {
	case []string:
		return append([]string(nil), list...), nil
	case []any:
		out := make([]string, 0, len(list))
		for idx, item := range list {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d must be a string, got %T", idx, item)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("must be an array, got %T", value)
	}
}
