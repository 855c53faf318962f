package serializer

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/invopop/jsonschema"
)

// TOML reads and writes TOML documents using the `toml` struct tag.
type TOML struct{}

func (TOML) Name() string { return "toml" }

func (TOML) Extensions() []string { return []string{".toml"} }

func (TOML) Decode(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errEmptyDocument
	}
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(v)
	if err != nil {
		return err
	}

	// Undecoded is only meaningful for typed targets; maps and interfaces
	// swallow every key.
	if reflect.Indirect(reflect.ValueOf(v)).Kind() != reflect.Struct {
		return nil
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown fields: %s", strings.Join(keys, ", "))
	}
	return nil
}

func (TOML) Schema(v any) (*jsonschema.Schema, error) {
	return deriveSchema(v, "toml")
}

func (TOML) Encode(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if !pretty {
		enc.Indent = ""
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
