// Package model defines FieldDescriptor, the flat row type of schema form
// data. A list of descriptors is what a schema editor produces and what the
// codec turns into a JSON Schema definition. Descriptors tolerate keys they do
// not know: anything beyond the documented attributes is kept in Extra and
// written back inline so editors can stash their own state on a row.
package model
