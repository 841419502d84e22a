package schema

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source identifies where a field list or schema document came from so the
// loader can read files, fs.FS entries, stdin or URLs behind one contract.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindURL   SourceKind = "url"
	SourceKindStdin SourceKind = "stdin"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("schema: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("schema: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

type stdinSource struct{}

func (stdinSource) Location() string { return "-" }
func (stdinSource) Kind() SourceKind { return SourceKindStdin }

// SourceFromStdin returns a Source reading from standard input.
func SourceFromStdin() Source {
	return stdinSource{}
}

// ParseSource maps a command-line argument onto a Source: "-" is stdin,
// http(s) prefixes are URLs and anything else is a file path. Empty input
// returns nil.
func ParseSource(raw string) Source {
	path := strings.TrimSpace(raw)
	switch {
	case path == "":
		return nil
	case path == "-":
		return SourceFromStdin()
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		if _, err := url.ParseRequestURI(path); err != nil {
			return nil
		}
		return urlSource{raw: path}
	default:
		return SourceFromFile(path)
	}
}
