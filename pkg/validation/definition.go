package validation

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-schemaform/internal/loader"
	"github.com/goliatone/go-schemaform/pkg/codec"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// SchemaIssue is a problem found in a stored definition, located by JSON
// pointer when possible.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// SchemaValidationResult captures the outcome of ValidateDefinition.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

// DefinitionOptions configures ValidateDefinition.
type DefinitionOptions struct {
	Codec *codec.Codec
	// Key selects definitions[Key] instead of the document root.
	Key string
}

// ValidateDefinition checks that a stored definition can be loaded back into
// schema form data: it parses, declares the object type, carries the identity
// property, and decodes without error.
func ValidateDefinition(ctx context.Context, src schema.Source, raw []byte, opts DefinitionOptions) SchemaValidationResult {
	result := SchemaValidationResult{Valid: true}
	if err := ctx.Err(); err != nil {
		return failed(SchemaIssue{Message: err.Error()})
	}
	if src == nil {
		src = schema.SourceFromFS("schema.json")
	}

	doc, err := schema.NewDocument(src, raw)
	if err != nil {
		return failed(issueFromError(err))
	}
	def, err := loader.ParseDefinition(doc, opts.Key)
	if err != nil {
		return failed(issueFromError(err))
	}

	base := "#"
	if opts.Key != "" {
		base = "#/" + schema.KeywordDefinitions + "/" + schema.EncodeJSONPointer(opts.Key)
	}
	if def.Type() != schema.TypeObject {
		result.Valid = false
		result.Issues = append(result.Issues, SchemaIssue{Path: base + "/type", Message: `type must be "object"`})
	}
	if _, ok := def.Property(schema.LocalIDKey); !ok {
		result.Valid = false
		result.Issues = append(result.Issues, SchemaIssue{
			Path:    base + "/properties/" + schema.LocalIDKey,
			Field:   schema.LocalIDKey,
			Message: "identity property is missing",
		})
	} else if !def.IsRequired(schema.LocalIDKey) {
		result.Valid = false
		result.Issues = append(result.Issues, SchemaIssue{
			Path:    base + "/required",
			Field:   schema.LocalIDKey,
			Message: "identity property must be required",
		})
	}

	c := opts.Codec
	if c == nil {
		c = codec.New()
	}
	if _, err := c.Decode(def); err != nil {
		result.Valid = false
		issue := issueFromError(err)
		if issue.Path != "" {
			issue.Path = base + strings.TrimPrefix(issue.Path, "#")
		}
		result.Issues = append(result.Issues, issue)
	}
	return result
}

func failed(issue SchemaIssue) SchemaValidationResult {
	return SchemaValidationResult{Valid: false, Issues: []SchemaIssue{issue}}
}

func issueFromError(err error) SchemaIssue {
	if err == nil {
		return SchemaIssue{Message: "unknown error"}
	}
	var malformed codec.MalformedDefinitionError
	if errors.As(err, &malformed) {
		path := ""
		if malformed.Property != "" {
			path = "#/properties/" + escapePointer(malformed.Property)
			if malformed.Keyword != "" {
				path += "/" + escapePointer(malformed.Keyword)
			}
		}
		msg := "invalid definition"
		if malformed.Err != nil {
			msg = malformed.Err.Error()
		}
		return SchemaIssue{Path: path, Field: malformed.Property, Message: msg}
	}

	msg := strings.TrimSpace(err.Error())
	msg = strings.TrimPrefix(msg, "schemaform loader: ")
	msg = strings.TrimPrefix(msg, "schema: ")
	return SchemaIssue{Message: msg}
}

// escapePointer applies RFC 6901 escaping for issue paths.
func escapePointer(segment string) string {
	segment = strings.ReplaceAll(segment, "~", "~0")
	return strings.ReplaceAll(segment, "/", "~1")
}
