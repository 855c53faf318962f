package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/vybdev/testobjects/serializer"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up at the module root.
const FileName = ".testobjects.yaml"

// Config captures project-level settings stored in .testobjects.yaml.
//
// Example YAML:
//
//	format: yaml
//	resources: testdata
//	schemas: testdata/schemas
//	pretty-print: true
//	logging:
//	  level: debug
//
// Unknown keys are rejected so typos surface early. Missing keys fall back
// to Default().
type Config struct {
	// Format names the fixture format: json, yaml or toml. It decides which
	// file patterns `hint` reports and the default output of `convert`.
	Format string `yaml:"format"`
	// Resources is the fixture root, relative to the module root.
	Resources string `yaml:"resources"`
	// Schemas is where schemas are written, relative to the module root.
	Schemas     string `yaml:"schemas"`
	PrettyPrint *bool  `yaml:"pretty-print"`
	Logging     `yaml:"logging"`
}

// Logging captures logging-specific settings.
type Logging struct {
	Level string `yaml:"level"`
}

const (
	defaultFormat    = "json"
	defaultResources = "testdata"
	defaultSchemas   = "testdata/schemas"
	defaultLevel     = "info"
)

// Default returns a Config populated with hard-coded defaults. It is used
// whenever .testobjects.yaml is missing.
func Default() *Config {
	pretty := true
	return &Config{
		Format:      defaultFormat,
		Resources:   defaultResources,
		Schemas:     defaultSchemas,
		PrettyPrint: &pretty,
		Logging: Logging{
			Level: defaultLevel,
		},
	}
}

// Serializer returns the serializer named by Format.
func (c *Config) Serializer() (serializer.Serializer, error) {
	return serializer.ForFormat(c.Format)
}

// Pretty reports whether generated documents are indented: schemas built
// from this configuration and the output of `testobjects convert`.
func (c *Config) Pretty() bool {
	return c.PrettyPrint == nil || *c.PrettyPrint
}

// Load reads .testobjects.yaml located under moduleRoot. When the file does
// not exist the function returns Default() with a nil error so the caller
// can proceed transparently. Any other I/O or unmarshalling error is
// propagated.
func Load(moduleRoot string) (*Config, error) {
	if moduleRoot == "" {
		return nil, fmt.Errorf("moduleRoot must not be empty")
	}
	return LoadFS(os.DirFS(moduleRoot))
}

// LoadFS performs the same operation as Load but works directly on an
// fs.FS. This facilitates unit-testing with fstest.MapFS.
func LoadFS(fsys fs.FS) (*Config, error) {
	data, err := fs.ReadFile(fsys, FileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// No config file – fall back to defaults.
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", FileName, err)
	}

	// Explicitly emptied values fall back to the defaults as well.
	def := Default()
	if cfg.Format == "" {
		cfg.Format = def.Format
	}
	if cfg.Resources == "" {
		cfg.Resources = def.Resources
	}
	if cfg.Schemas == "" {
		cfg.Schemas = def.Schemas
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}

	if _, err := cfg.Serializer(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

// Marshal renders cfg as YAML, as written by `testobjects init`.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
