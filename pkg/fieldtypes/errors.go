package fieldtypes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownFieldType matches UnknownFieldTypeError via errors.Is.
	ErrUnknownFieldType = errors.New("unknown field type")
	// ErrMalformedFieldData matches MalformedFieldDataError via errors.Is.
	ErrMalformedFieldData = errors.New("malformed field data")
)

// UnknownFieldTypeError reports a tag with no registered codec. It aborts the
// whole encode call.
type UnknownFieldTypeError struct {
	Tag   string
	Title string
	Index int
}

func (e UnknownFieldTypeError) Error() string {
	if e.Title == "" {
		return fmt.Sprintf("fieldtypes: unknown field type %q", e.Tag)
	}
	return fmt.Sprintf("fieldtypes: unknown field type %q for field %q (index %d)", e.Tag, e.Title, e.Index)
}

func (e UnknownFieldTypeError) Is(target error) bool {
	return target == ErrUnknownFieldType
}

// MalformedFieldDataError reports a descriptor missing an attribute its codec
// needs, or carrying one with the wrong shape.
type MalformedFieldDataError struct {
	Title  string
	Index  int
	Reason string
	Err    error
}

func (e MalformedFieldDataError) Error() string {
	reason := strings.TrimSpace(e.Reason)
	if reason == "" && e.Err != nil {
		reason = e.Err.Error()
	}
	if reason == "" {
		reason = "invalid field data"
	}
	if e.Title == "" {
		return fmt.Sprintf("fieldtypes: malformed field at index %d: %s", e.Index, reason)
	}
	return fmt.Sprintf("fieldtypes: malformed field %q (index %d): %s", e.Title, e.Index, reason)
}

func (e MalformedFieldDataError) Is(target error) bool {
	return target == ErrMalformedFieldData
}

func (e MalformedFieldDataError) Unwrap() error {
	return e.Err
}
