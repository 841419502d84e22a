package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

func TestLoader_File(t *testing.T) {
	l := New(schema.NewLoaderOptions())
	doc, err := l.Load(context.Background(), schema.SourceFromFile("testdata/fields.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format() != schema.FormatYAML {
		t.Fatalf("expected yaml format, got %s", doc.Format())
	}

	fields, err := ParseFieldList(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []model.FieldDescriptor{
		{FieldTitle: "Title", FieldType: "text", TextOptions: "text", IsRequired: true, IsSearchable: true},
		{FieldTitle: "Category", FieldType: "selectlist", FieldOptions: []string{"news", "sports"}, PropertyOrder: 1},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_FileMissing(t *testing.T) {
	l := New(schema.NewLoaderOptions())
	if _, err := l.Load(context.Background(), schema.SourceFromFile("testdata/missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{
		"schemas/post.json": {Data: []byte(`{"type": "object", "properties": {}}`)},
	}
	l := New(schema.NewLoaderOptions(schema.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), schema.SourceFromFS("schemas/post.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def, err := ParseDefinition(doc, "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if def.Type() != schema.TypeObject {
		t.Fatalf("unexpected definition %v", def)
	}
}

func TestLoader_FSNotConfigured(t *testing.T) {
	l := New(schema.NewLoaderOptions())
	if _, err := l.Load(context.Background(), schema.SourceFromFS("post.json")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoader_Stdin(t *testing.T) {
	l := New(schema.NewLoaderOptions(), WithStdin(strings.NewReader(`{"fields": [{"fieldTitle": "Photo", "fieldType": "image"}]}`)))

	doc, err := l.Load(context.Background(), schema.SourceFromStdin())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	fields, err := ParseFieldList(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"Photo"}, model.Titles(fields)); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_StdinEmpty(t *testing.T) {
	l := New(schema.NewLoaderOptions(), WithStdin(strings.NewReader("")))
	if _, err := l.Load(context.Background(), schema.SourceFromStdin()); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestLoader_HTTP(t *testing.T) {
	var accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		if r.URL.Path != "/post.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`[{"fieldTitle": "Name", "fieldType": "text", "textOptions": "plain"}]`))
	}))
	defer srv.Close()

	l := New(schema.NewLoaderOptions(schema.WithHTTPClient(srv.Client())))
	doc, err := l.Load(context.Background(), schema.SourceFromURL(srv.URL+"/post.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.Contains(accept, "application/json") {
		t.Fatalf("expected json accept header, got %q", accept)
	}
	fields, err := ParseFieldList(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(fields) != 1 || fields[0].TextOptions != "plain" {
		t.Fatalf("unexpected fields %+v", fields)
	}

	if _, err := l.Load(context.Background(), schema.SourceFromURL(srv.URL+"/missing.json")); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestLoader_HTTPDisabled(t *testing.T) {
	l := New(schema.NewLoaderOptions())
	_, err := l.Load(context.Background(), schema.SourceFromURL("https://example.com/post.json"))
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected disabled error, got %v", err)
	}
}

func TestLoader_NilSource(t *testing.T) {
	if _, err := New(schema.NewLoaderOptions()).Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(schema.NewLoaderOptions()).Load(ctx, schema.SourceFromFile("testdata/fields.yaml")); err == nil {
		t.Fatalf("expected context error")
	}
}
