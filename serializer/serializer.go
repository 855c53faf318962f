// Package serializer provides the format-specific capabilities used to decode
// fixtures, derive JSON Schema documents from Go types and encode values back
// to text. Fixture readers and schema generators receive a Serializer at
// construction time, so choosing between JSON, YAML and TOML is a matter of
// passing a different value.
package serializer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
)

// Serializer is implemented once per supported textual format.
//
// Implementations are stateless and safe for concurrent use.
type Serializer interface {
	// Name returns the short format name, e.g. "json".
	Name() string
	// Extensions lists the file extensions (with leading dot) used by the format.
	Extensions() []string
	// Decode parses data into v, which must be a non-nil pointer. Unknown
	// fields are rejected.
	Decode(data []byte, v any) error
	// Schema derives a JSON Schema document from the type of v. Property
	// names follow the struct tag the format uses for field names.
	Schema(v any) (*jsonschema.Schema, error)
	// Encode renders v in the format, indented when pretty is true.
	Encode(v any, pretty bool) ([]byte, error)
}

var errEmptyDocument = errors.New("empty document")

// UnsupportedFormatError is returned by ForFormat and ForFile when no
// serializer handles the requested format.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q (supported: json, yaml, toml)", e.Format)
}

// All returns one instance of every built-in serializer.
func All() []Serializer {
	return []Serializer{JSON{}, YAML{}, TOML{}}
}

// ForFormat returns the serializer registered under name. Matching is case
// insensitive and accepts a leading dot, so "YAML", "yml" and ".yaml" all
// resolve to YAML.
func ForFormat(name string) (Serializer, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	for _, s := range All() {
		if key == s.Name() {
			return s, nil
		}
		for _, ext := range s.Extensions() {
			if "."+key == ext {
				return s, nil
			}
		}
	}
	return nil, &UnsupportedFormatError{Format: name}
}

// ForFile picks a serializer from the extension of path.
func ForFile(path string) (Serializer, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, &UnsupportedFormatError{Format: path}
	}
	return ForFormat(ext)
}
