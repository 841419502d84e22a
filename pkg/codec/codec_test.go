package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-schemaform/pkg/fieldtypes"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

func colorCodec() fieldtypes.Codec {
	return fieldtypes.CodecFunc(func(field model.FieldDescriptor, _ int, _ []model.FieldDescriptor) (schema.Property, error) {
		prop := schema.Property{"type": "string", "format": "color"}
		if palette, ok := field.Extra["palette"].(string); ok {
			prop["x-palette"] = palette
		}
		return prop, nil
	})
}

func TestCodec_CustomFieldTypeRoundTrip(t *testing.T) {
	reg := fieldtypes.NewRegistry()
	reg.Register("color", colorCodec())
	c := New(
		WithRegistry(reg),
		WithKeywordHandler("x-palette", CopyAs("palette")),
		WithKeywordHandler("", CopyAs("ignored")),
		WithKeywordHandler("x-nil", nil),
	)

	fields := []model.FieldDescriptor{{
		FieldTitle: "Accent",
		FieldType:  "color",
		Extra:      map[string]any{"palette": "warm"},
	}}
	def, err := c.Encode(fields)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	prop, _ := def.Property("Accent")
	if prop["x-palette"] != "warm" {
		t.Fatalf("expected custom keyword, got %v", prop)
	}

	got, err := c.Decode(def)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []model.FieldDescriptor{{
		FieldTitle:  "Accent",
		FieldType:   "color",
		TextOptions: "color",
		Extra:       map[string]any{"palette": "warm"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}
}

func TestCodec_KeywordHandlerError(t *testing.T) {
	c := New(WithKeywordHandler("x-strict", func(any, map[string]any) error {
		return errors.New("not allowed")
	}))
	def := schema.Definition{"properties": map[string]any{"Name": map[string]any{"x-strict": true}}}

	_, err := c.Decode(def)
	var malformed MalformedDefinitionError
	if !errors.As(err, &malformed) || malformed.Keyword != "x-strict" {
		t.Fatalf("expected keyword error, got %v", err)
	}
	if got := err.Error(); got != `schemaform codec: property "Name" keyword "x-strict": not allowed` {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestCodec_SystemOnlyProperties(t *testing.T) {
	c := New(WithSystemOnlyProperties("internal", schema.LocalIDKey))
	if diff := cmp.Diff([]string{schema.LocalIDKey, "internal"}, c.SystemOnlyProperties()); diff != "" {
		t.Fatalf("system-only mismatch (-want +got):\n%s", diff)
	}

	_, err := c.Encode([]model.FieldDescriptor{{FieldTitle: "internal", FieldType: "image"}})
	if !errors.Is(err, fieldtypes.ErrMalformedFieldData) {
		t.Fatalf("expected reserved title to be rejected, got %v", err)
	}
}

func TestCodec_DefaultTableIsFresh(t *testing.T) {
	table := DefaultKeywordTable()
	delete(table, schema.KeywordEnum)
	if _, ok := DefaultKeywordTable()[schema.KeywordEnum]; !ok {
		t.Fatalf("expected enum handler in a fresh table")
	}
}

func TestCodec_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	c := New(WithLogger(logger))

	if _, err := c.Encode([]model.FieldDescriptor{{FieldTitle: "Photo", FieldType: "image"}}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(buf.String(), "encoded schema form data") {
		t.Fatalf("expected debug event, got %q", buf.String())
	}
}

func TestCodec_Registry(t *testing.T) {
	reg := fieldtypes.NewEmptyRegistry()
	if New(WithRegistry(reg)).Registry() != reg {
		t.Fatalf("expected registry to be kept")
	}
	if !New().Registry().Has(model.FieldTypeText) {
		t.Fatalf("expected default registry with builtins")
	}
}
