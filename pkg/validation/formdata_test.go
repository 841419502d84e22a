package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/model"
)

func TestValidateSchemaFormData_Valid(t *testing.T) {
	fields := []model.FieldDescriptor{
		{FieldTitle: "Title", FieldType: "text"},
		{FieldTitle: "title", FieldType: "text"},
	}
	errs := ValidateSchemaFormData(fields)
	if errs == nil || len(errs) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", errs)
	}
	if got := ValidateSchemaFormData(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty result for nil input, got %#v", got)
	}
}

func TestValidateSchemaFormData_Duplicates(t *testing.T) {
	fields := []model.FieldDescriptor{
		{FieldTitle: "Body"},
		{FieldTitle: "Name"},
		{FieldTitle: "Body"},
		{FieldTitle: "Name"},
		{FieldTitle: "Body"},
		{FieldTitle: "Cover"},
	}
	got := ValidateSchemaFormData(fields)
	want := []ValidationError{
		{Field: "Body", Index: 0, Message: `Invalid schema: The field title "Body" is used more than once.`},
		{Field: "Name", Index: 1, Message: `Invalid schema: The field title "Name" is used more than once.`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got[0].Error() != got[0].Message {
		t.Fatalf("expected Error to return the message")
	}
}

func TestValidateSchemaFormData_DoesNotModifyInput(t *testing.T) {
	fields := []model.FieldDescriptor{{FieldTitle: "A"}, {FieldTitle: "A"}}
	before := append([]model.FieldDescriptor(nil), fields...)
	ValidateSchemaFormData(fields)
	if diff := cmp.Diff(before, fields); diff != "" {
		t.Fatalf("input modified (-before +after):\n%s", diff)
	}
}

func TestCheckFields(t *testing.T) {
	fields := []model.FieldDescriptor{
		{FieldTitle: "Body", FieldType: "text", TextOptions: "multiline"},
		{FieldTitle: "Body", FieldType: "image"},
		{FieldTitle: "Clip", FieldType: "video"},
		{FieldTitle: "Author", FieldType: "reference"},
		{FieldTitle: "", FieldType: "image"},
	}
	got := CheckFields(nil, fields)
	want := []ValidationError{
		{Field: "Body", Index: 0, Message: `Invalid schema: The field title "Body" is used more than once.`},
		{Field: "Clip", Index: 2, Message: `Invalid schema: The field "Clip" has an unknown type "video".`},
		{Field: "Author", Index: 3, Message: `Invalid schema: The field "Author" is incomplete: referenceTarget: cannot be blank.`},
		{Field: "", Index: 4, Message: `Invalid schema: Field 5 is incomplete: fieldTitle is required.`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}
