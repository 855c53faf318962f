package serializer

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// YAML reads and writes YAML documents using the `yaml` struct tag.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (YAML) Extensions() []string { return []string{".yaml", ".yml"} }

func (YAML) Decode(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyDocument
		}
		return err
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return err
		}
		return fmt.Errorf("unexpected document after the first one")
	}
	return nil
}

func (YAML) Schema(v any) (*jsonschema.Schema, error) {
	return deriveSchema(v, "yaml")
}

func (YAML) Encode(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if pretty {
		enc.SetIndent(2)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
