package validation

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

const validDefinition = `{
  "type": "object",
  "properties": {
    "_localId": {"type": "string", "pattern": "^x$", "options": {"hidden": true}},
    "Name": {"type": "string", "format": "text", "fieldType": "text", "isSearchable": true, "propertyOrder": 0}
  },
  "required": ["_localId", "Name"]
}`

func TestValidateDefinition_Valid(t *testing.T) {
	result := ValidateDefinition(context.Background(), schema.SourceFromFS("post.json"), []byte(validDefinition), DefinitionOptions{})
	if !result.Valid {
		t.Fatalf("expected definition to be valid: %#v", result.Issues)
	}
}

func TestValidateDefinition_YAMLNestedKey(t *testing.T) {
	raw := []byte(`
$schema: http://json-schema.org/draft-04/schema#
type: object
definitions:
  post:
    type: object
    properties:
      _localId:
        type: string
      Body:
        type: string
        format: multiline
        fieldType: text
        propertyOrder: 0
    required: [_localId]
`)
	result := ValidateDefinition(context.Background(), schema.SourceFromFS("site.yaml"), raw, DefinitionOptions{Key: "post"})
	if !result.Valid {
		t.Fatalf("expected nested definition to be valid: %#v", result.Issues)
	}
}

func TestValidateDefinition_MissingIdentity(t *testing.T) {
	raw := []byte(`{"type": "object", "properties": {"Name": {"type": "string"}}}`)
	result := ValidateDefinition(context.Background(), schema.SourceFromFS("post.json"), raw, DefinitionOptions{})
	if result.Valid {
		t.Fatalf("expected missing identity to be invalid")
	}
	if len(result.Issues) != 1 || result.Issues[0].Path != "#/properties/_localId" {
		t.Fatalf("unexpected issues %#v", result.Issues)
	}
}

func TestValidateDefinition_IdentityNotRequired(t *testing.T) {
	raw := []byte(`{"type": "object", "properties": {"_localId": {"type": "string"}}, "required": []}`)
	result := ValidateDefinition(context.Background(), schema.SourceFromFS("post.json"), raw, DefinitionOptions{Key: ""})
	if result.Valid || result.Issues[0].Path != "#/required" {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestValidateDefinition_DecodeIssuePath(t *testing.T) {
	raw := []byte(`{
  "type": "object",
  "definitions": {
    "post": {
      "type": "object",
      "properties": {
        "_localId": {"type": "string"},
        "Tags": {"type": "string", "enum": ["a", 2]}
      },
      "required": ["_localId"]
    }
  }
}`)
	result := ValidateDefinition(context.Background(), schema.SourceFromFS("site.json"), raw, DefinitionOptions{Key: "post"})
	if result.Valid {
		t.Fatalf("expected decode failure")
	}
	issue := result.Issues[0]
	if issue.Path != "#/definitions/post/properties/Tags/enum" || issue.Field != "Tags" {
		t.Fatalf("unexpected issue %#v", issue)
	}
}

func TestValidateDefinition_WrongType(t *testing.T) {
	raw := []byte(`{"type": "array", "properties": {"_localId": {}}, "required": ["_localId"]}`)
	result := ValidateDefinition(context.Background(), schema.SourceFromFS("post.json"), raw, DefinitionOptions{})
	if result.Valid || result.Issues[0].Path != "#/type" {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestValidateDefinition_ParseError(t *testing.T) {
	result := ValidateDefinition(context.Background(), schema.SourceFromFS("post.json"), []byte(`{"type":`), DefinitionOptions{})
	if result.Valid || len(result.Issues) != 1 {
		t.Fatalf("expected a single parse issue, got %#v", result)
	}
	if strings.HasPrefix(result.Issues[0].Message, "schemaform loader: ") {
		t.Fatalf("expected loader prefix to be trimmed, got %q", result.Issues[0].Message)
	}
}

func TestValidateDefinition_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := ValidateDefinition(ctx, nil, []byte(validDefinition), DefinitionOptions{})
	if result.Valid {
		t.Fatalf("expected cancelled context to fail")
	}
}
