package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// LoadDocument reads a fixture and wraps it in a schema.Document using a file
// source. Testing helpers fail the test on error to keep call sites short.
func LoadDocument(t *testing.T, path string) schema.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T so
// fixtures can be wired in setup functions.
func LoadDocumentFromPath(path string) (schema.Document, error) {
	if path == "" {
		return schema.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(path), data)
	if err != nil {
		return schema.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustLoadFields loads a JSON array of field descriptors.
func MustLoadFields(t *testing.T, path string) []model.FieldDescriptor {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load fields: %v", err)
	}
	var out []model.FieldDescriptor
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal fields: %v", err)
	}
	return out
}

// MustLoadDefinition loads a JSON object definition.
func MustLoadDefinition(t *testing.T, path string) schema.Definition {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load definition: %v", err)
	}
	var out schema.Definition
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal definition: %v", err)
	}
	return out
}

// Normalize round-trips value through JSON so Go-typed payloads ([]string,
// int, schema.Definition) compare equal to goldens read from disk.
func Normalize(t *testing.T, value any) any {
	t.Helper()

	payload, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	var out any
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	return out
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	payload = append(payload, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden writes the golden when requested, then diffs got against the
// file contents after normalising both through JSON.
func CompareGolden(t *testing.T, path string, got any) string {
	t.Helper()

	WriteGolden(t, path, got)

	var want any
	if err := json.Unmarshal(MustReadGolden(t, path), &want); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	return cmp.Diff(want, Normalize(t, got))
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
