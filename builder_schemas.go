package schemaform

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed builder-schemas/*.json
var embeddedBuilderSchemas embed.FS

// BuilderSchemasFS exposes the JSON Schemas that describe the schema editor
// form itself. related.json defines one entry per field type; each entry pins
// fieldType to its tag so edited rows carry the tag the encoder needs.
//
// Adding a field type means registering a codec and adding a matching entry
// here.
func BuilderSchemasFS() fs.FS {
	sub, err := fs.Sub(embeddedBuilderSchemas, "builder-schemas")
	if err != nil {
		return embeddedBuilderSchemas
	}
	return sub
}

// BuilderSchema returns the named builder schema decoded into a Definition.
func BuilderSchema(name string) (Definition, error) {
	raw, err := fs.ReadFile(BuilderSchemasFS(), name)
	if err != nil {
		return nil, fmt.Errorf("schemaform: builder schema %q: %w", name, err)
	}
	var out Definition
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("schemaform: parse builder schema %q: %w", name, err)
	}
	return out, nil
}
