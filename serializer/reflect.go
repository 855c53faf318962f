package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// deriveSchema reflects the type of v into a schema whose property names are
// read from the given struct tag. The root must be a named struct; nested
// structs are emitted under $defs and referenced.
func deriveSchema(v any, tag string) (s *jsonschema.Schema, err error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, fmt.Errorf("cannot derive a schema from a nil value")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t.Name() == "" {
		return nil, fmt.Errorf("cannot derive a schema from %s: root must be a named struct", t)
	}

	// the reflector panics on kinds it cannot describe (chan, func, complex)
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = fmt.Errorf("cannot derive a schema from %s: %v", t, r)
		}
	}()

	r := &jsonschema.Reflector{
		Anonymous:                 true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
		FieldNameTag:              tag,
	}
	s = r.ReflectFromType(t)
	if err := defineRecursiveRoot(s, t.Name()); err != nil {
		return nil, fmt.Errorf("cannot derive a schema from %s: %w", t, err)
	}
	return s, nil
}

// defineRecursiveRoot adds the inlined root back under $defs when a nested
// type refers to it, so every $ref in the document resolves.
func defineRecursiveRoot(s *jsonschema.Schema, name string) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if !bytes.Contains(raw, []byte(`"$ref":"#/$defs/`+name+`"`)) {
		return nil
	}

	def := *s
	def.Version = ""
	def.ID = ""
	def.Definitions = nil
	if s.Definitions == nil {
		s.Definitions = jsonschema.Definitions{}
	}
	s.Definitions[name] = &def
	return nil
}
