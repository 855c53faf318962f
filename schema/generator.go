// Package schema derives JSON Schema documents from Go types and saves them
// next to the fixtures they describe, so editors can offer autocompletion
// while fixtures are written.
//
// Schemas are written to {module}/testdata/schemas/{TypeName}.json. The
// module directory must exist; the schemas directory is created when
// missing. Saving is best effort: a schema that cannot be written is logged
// and the call still succeeds, because schemas are an authoring aid and
// tests never depend on them.
package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/sirupsen/logrus"
	"github.com/vybdev/testobjects/logging"
	"github.com/vybdev/testobjects/serializer"
)

// SchemasDir is where schemas are written, relative to the module directory.
const SchemasDir = "testdata/schemas"

// Generator derives and persists schemas. It is safe for concurrent use;
// concurrent writes to the same schema path are last-write-wins.
type Generator struct {
	serializer serializer.Serializer
	baseDir    string
	schemasDir string
	pretty     bool
	log        logrus.FieldLogger
}

// Option configures a Generator.
type Option func(*Generator)

// WithBaseDir resolves module names under dir instead of the working
// directory. Module names cannot escape dir.
func WithBaseDir(dir string) Option {
	return func(g *Generator) {
		g.baseDir = dir
	}
}

// WithSchemasDir overrides SchemasDir.
func WithSchemasDir(rel string) Option {
	return func(g *Generator) {
		g.schemasDir = rel
	}
}

// WithPrettyPrint toggles indentation of the written schema. Default true.
func WithPrettyPrint(pretty bool) Option {
	return func(g *Generator) {
		g.pretty = pretty
	}
}

// WithLogger replaces the default logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// New returns a Generator deriving schemas with s. Property names in the
// schema follow the field names s uses when decoding fixtures.
func New(s serializer.Serializer, opts ...Option) *Generator {
	g := &Generator{
		serializer: s,
		schemasDir: SchemasDir,
		pretty:     true,
		log:        logging.Component("schema"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate derives the schema of v's type and saves it under the root
// module.
func (g *Generator) Generate(v any) error {
	return g.GenerateAndSave(v, "")
}

// GenerateAndSave derives the schema of v's type and saves it under the
// named module directory. An empty module means the root module.
//
// A missing module yields a *ModuleNotFoundError and a type that cannot be
// described yields a *DerivationError; in both cases nothing is written.
// Failing to write the schema file is only logged.
func (g *Generator) GenerateAndSave(v any, module string) error {
	moduleDir, err := g.moduleDir(module)
	if err != nil {
		return err
	}

	text, err := g.Render(v)
	if err != nil {
		return err
	}

	name := typeName(v)
	targetDir := filepath.Join(moduleDir, g.schemasDir)
	destination := schemaFile(targetDir, name)

	if err := g.save(targetDir, destination, text); err != nil {
		g.log.WithError(err).Errorf("Failed to save JSON schema file at: %s", destination)
		return nil
	}
	g.logHint(name, destination)
	return nil
}

// Render derives the schema of v's type and encodes it as JSON without
// touching the filesystem. The output is stable: rendering an unchanged
// type twice yields identical bytes.
func (g *Generator) Render(v any) ([]byte, error) {
	name := typeName(v)
	if name == "" {
		name = fmt.Sprintf("%T", v)
	}
	doc, err := g.serializer.Schema(v)
	if err != nil {
		return nil, &DerivationError{Type: name, Err: err}
	}
	text, err := serializer.JSON{}.Encode(doc, g.pretty)
	if err != nil {
		return nil, &DerivationError{Type: name, Err: fmt.Errorf("failed to encode schema: %w", err)}
	}
	return text, nil
}

// Target returns the path the schema of the named type is written to
// within module. The module must exist.
func (g *Generator) Target(typeName, module string) (string, error) {
	moduleDir, err := g.moduleDir(module)
	if err != nil {
		return "", err
	}
	if typeName == "" {
		return "", fmt.Errorf("type name must not be empty")
	}
	return schemaFile(filepath.Join(moduleDir, g.schemasDir), typeName), nil
}

// Hint returns the editor setup instructions for the schema of the named
// type stored at schemaPath, covering the file extensions of the
// Generator's serializer.
func (g *Generator) Hint(typeName, schemaPath string) EditorHint {
	return NewEditorHint(typeName, schemaPath, g.serializer.Extensions())
}

func (g *Generator) moduleDir(module string) (string, error) {
	dir := moduleLabel(module)
	if g.baseDir != "" {
		joined, err := securejoin.SecureJoin(g.baseDir, module)
		if err != nil {
			return "", &ModuleNotFoundError{Module: module, Err: err}
		}
		dir = joined
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", &ModuleNotFoundError{Module: module, Err: err}
	}
	if !info.IsDir() {
		return "", &ModuleNotFoundError{Module: module, Err: fmt.Errorf("%s is not a directory", dir)}
	}
	return dir, nil
}

// save creates targetDir (one level only) and overwrites destination.
func (g *Generator) save(targetDir, destination string, text []byte) error {
	if err := os.Mkdir(targetDir, 0o755); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("failed to create folder %s: %w", targetDir, err)
		}
	} else {
		g.log.Infof("Created folder %s", targetDir)
	}
	return os.WriteFile(destination, text, 0o644)
}

func (g *Generator) logHint(name, destination string) {
	text, err := g.Hint(name, destination).Render()
	if err != nil {
		g.log.Debugf("cannot render editor hint for %s: %v", name, err)
		return
	}
	for _, line := range strings.Split(text, "\n") {
		g.log.Info(line)
	}
}

func schemaFile(dir, typeName string) string {
	return filepath.Join(dir, typeName+".json")
}

// typeName returns the simple name of v's type, dereferencing pointers.
func typeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
