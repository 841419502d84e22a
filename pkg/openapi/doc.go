// Package openapi publishes schema definitions as OpenAPI 3 component
// schemas so the resource API that stores records can describe them. Vendor
// keywords of the form renderer dialect travel as x- extensions and are
// restored when reading the components back.
package openapi
