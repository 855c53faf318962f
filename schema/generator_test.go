package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/vybdev/testobjects/internal/example"
	"github.com/vybdev/testobjects/serializer"
)

// newTestGenerator returns a generator rooted at a fresh temp dir that
// already has a testdata directory, plus the hook capturing its logs.
func newTestGenerator(t *testing.T, s serializer.Serializer, opts ...Option) (*Generator, string, *test.Hook) {
	t.Helper()
	base := tempDir(t)
	if err := os.Mkdir(filepath.Join(base, "testdata"), 0o755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	all := append([]Option{WithBaseDir(base), WithLogger(logger)}, opts...)
	return New(s, all...), base, hook
}

// tempDir returns t.TempDir() with symlinks resolved, matching the paths
// produced by securejoin.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	return dir
}

func readSchema(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read schema: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	return doc
}

func logged(hook *test.Hook, level logrus.Level, substr string) bool {
	for _, e := range hook.AllEntries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestGenerate_WritesSchema(t *testing.T) {
	g, base, hook := newTestGenerator(t, serializer.JSON{})

	if err := g.Generate(example.Product{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(base, "testdata", "schemas", "Product.json")
	doc := readSchema(t, path)
	if doc["type"] != "object" {
		t.Errorf("expected object schema, got %v", doc["type"])
	}
	props, _ := doc["properties"].(map[string]any)
	var names []string
	for name := range props {
		names = append(names, name)
	}
	for _, want := range []string{"id", "name", "price", "cost"} {
		if _, ok := props[want]; !ok {
			t.Errorf("expected property %q, got %v", want, names)
		}
	}

	if !logged(hook, logrus.InfoLevel, "Created folder") {
		t.Errorf("expected the schemas folder creation to be logged")
	}
	if !logged(hook, logrus.InfoLevel, "Product*.json, product*.json") {
		t.Errorf("expected the editor hint to be logged")
	}
}

func TestGenerate_NestedTypes(t *testing.T) {
	g, base, _ := newTestGenerator(t, serializer.JSON{})

	if err := g.Generate(&example.User{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := readSchema(t, filepath.Join(base, "testdata", "schemas", "User.json"))
	defs, _ := doc["$defs"].(map[string]any)
	for _, want := range []string{"Order", "Product", "Status"} {
		if _, ok := defs[want]; !ok {
			t.Errorf("expected definition %q in $defs", want)
		}
	}

	status, _ := defs["Status"].(map[string]any)
	if diff := cmp.Diff([]any{"ACTIVE", "INACTIVE", "BLOCKED"}, status["enum"]); diff != "" {
		t.Errorf("status enum mismatch (-want +got):\n%s", diff)
	}

	props, _ := doc["properties"].(map[string]any)
	orders, _ := props["orders"].(map[string]any)
	if orders["type"] != "array" {
		t.Errorf("expected orders to be an array, got %v", orders["type"])
	}
	items, _ := orders["items"].(map[string]any)
	if items["$ref"] != "#/$defs/Order" {
		t.Errorf("expected orders items to reference Order, got %v", items)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	g, base, hook := newTestGenerator(t, serializer.JSON{})
	path := filepath.Join(base, "testdata", "schemas", "Order.json")

	if err := g.Generate(example.Order{}); err != nil {
		t.Fatalf("first run: unexpected error: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read schema: %v", err)
	}

	hook.Reset()
	if err := g.Generate(example.Order{}); err != nil {
		t.Fatalf("second run: unexpected error: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read schema: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("schema changed between runs:\n%s\n---\n%s", first, second)
	}
	if logged(hook, logrus.InfoLevel, "Created folder") {
		t.Errorf("an existing schemas folder must not be created again")
	}
}

func TestGenerate_OverwritesPreviousContent(t *testing.T) {
	g, base, _ := newTestGenerator(t, serializer.JSON{})
	dir := filepath.Join(base, "testdata", "schemas")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	stale := strings.Repeat("stale content ", 500)
	if err := os.WriteFile(filepath.Join(dir, "Product.json"), []byte(stale), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := g.Generate(example.Product{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := os.ReadFile(filepath.Join(dir, "Product.json"))
	want, _ := g.Render(example.Product{})
	if !bytes.Equal(want, got) {
		t.Errorf("expected the file to hold exactly the rendered schema, got:\n%s", got)
	}
}

func TestGenerateAndSave_Module(t *testing.T) {
	g, base, _ := newTestGenerator(t, serializer.JSON{})
	if err := os.MkdirAll(filepath.Join(base, "shop", "testdata"), 0o755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := g.GenerateAndSave(example.Order{}, "shop"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "shop", "testdata", "schemas", "Order.json")); err != nil {
		t.Errorf("expected schema inside the module: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "testdata", "schemas")); !os.IsNotExist(err) {
		t.Errorf("root module must not be touched, stat err: %v", err)
	}
}

func TestGenerateAndSave_ModuleNotFound(t *testing.T) {
	g, base, _ := newTestGenerator(t, serializer.JSON{})
	if err := os.WriteFile(filepath.Join(base, "notes.txt"), []byte("not a module"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	for _, module := range []string{"missing", "notes.txt"} {
		t.Run(module, func(t *testing.T) {
			err := g.GenerateAndSave(example.Order{}, module)

			var notFound *ModuleNotFoundError
			if !errors.As(err, &notFound) {
				t.Fatalf("expected ModuleNotFoundError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), module) {
				t.Errorf("error should name the module, got %q", err.Error())
			}
		})
	}

	if _, err := os.Stat(filepath.Join(base, "missing")); !os.IsNotExist(err) {
		t.Errorf("module directory must never be created, stat err: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "testdata", "schemas")); !os.IsNotExist(err) {
		t.Errorf("nothing may be written for a missing module, stat err: %v", err)
	}
}

func TestGenerateAndSave_ModuleNotFoundBeforeDerivation(t *testing.T) {
	g, _, _ := newTestGenerator(t, serializer.JSON{})

	err := g.GenerateAndSave(42, "missing")
	var notFound *ModuleNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected the module check to run first, got %T: %v", err, err)
	}
}

type withFunc struct {
	Callback func() `json:"callback"`
}

func TestGenerate_DerivationFailure(t *testing.T) {
	g, base, _ := newTestGenerator(t, serializer.JSON{})

	for _, v := range []any{nil, 42, withFunc{}} {
		err := g.Generate(v)
		var derivation *DerivationError
		if !errors.As(err, &derivation) {
			t.Fatalf("%T: expected DerivationError, got %T: %v", v, err, err)
		}
		if derivation.Err == nil {
			t.Errorf("%T: expected the cause to be preserved", v)
		}
	}

	if _, err := os.Stat(filepath.Join(base, "testdata", "schemas")); !os.IsNotExist(err) {
		t.Errorf("nothing may be written when derivation fails, stat err: %v", err)
	}
}

func TestGenerate_WriteFailureIsLogged(t *testing.T) {
	g, base, hook := newTestGenerator(t, serializer.JSON{})
	// A directory squatting on the destination makes the write fail.
	blocker := filepath.Join(base, "testdata", "schemas", "Product.json")
	if err := os.MkdirAll(blocker, 0o755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := g.Generate(example.Product{}); err != nil {
		t.Fatalf("write failures must not be returned, got %v", err)
	}
	if !logged(hook, logrus.ErrorLevel, "Failed to save JSON schema file at: "+blocker) {
		t.Errorf("expected the write failure to be logged")
	}
	if logged(hook, logrus.InfoLevel, "How to set up") {
		t.Errorf("the editor hint must only be logged after a successful write")
	}
}

func TestGenerate_SchemasParentMissing(t *testing.T) {
	base := tempDir(t)
	logger, hook := test.NewNullLogger()
	g := New(serializer.JSON{}, WithBaseDir(base), WithLogger(logger))

	if err := g.Generate(example.Product{}); err != nil {
		t.Fatalf("write failures must not be returned, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "testdata")); !os.IsNotExist(err) {
		t.Errorf("only the last directory level may be created, stat err: %v", err)
	}
	if !logged(hook, logrus.ErrorLevel, "Failed to save JSON schema file") {
		t.Errorf("expected the failure to be logged")
	}
}

func TestGenerate_CompactOutput(t *testing.T) {
	g, base, _ := newTestGenerator(t, serializer.JSON{}, WithPrettyPrint(false))

	if err := g.Generate(example.Product{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(base, "testdata", "schemas", "Product.json"))
	if err != nil {
		t.Fatalf("failed to read schema: %v", err)
	}
	if n := bytes.Count(data, []byte("\n")); n != 1 {
		t.Errorf("expected a single line of JSON, got %d lines", n)
	}
}

type profile struct {
	DisplayName string `json:"display_name" yaml:"displayName"`
}

type UserProfile profile

func TestGenerate_YAMLSerializer(t *testing.T) {
	g, base, hook := newTestGenerator(t, serializer.YAML{})

	if err := g.Generate(UserProfile{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the schema stays JSON, with YAML field names
	doc := readSchema(t, filepath.Join(base, "testdata", "schemas", "UserProfile.json"))
	props, _ := doc["properties"].(map[string]any)
	if _, ok := props["displayName"]; !ok {
		t.Errorf("expected yaml field name displayName, got %v", props)
	}
	if !logged(hook, logrus.InfoLevel, "UserProfile*.yaml, user-profile*.yaml, UserProfile*.yml, user-profile*.yml") {
		t.Errorf("expected yaml file patterns in the editor hint")
	}
}

func TestGenerate_CustomSchemasDir(t *testing.T) {
	g, base, _ := newTestGenerator(t, serializer.JSON{}, WithSchemasDir("schemas"))

	if err := g.Generate(example.Product{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "schemas", "Product.json")); err != nil {
		t.Errorf("expected schema in the custom directory: %v", err)
	}
}

func TestTarget(t *testing.T) {
	g, base, _ := newTestGenerator(t, serializer.JSON{})

	got, err := g.Target("Order", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(base, "testdata", "schemas", "Order.json"); got != want {
		t.Errorf("Target() = %s, want %s", got, want)
	}

	// module names are confined to the base dir
	got, err = g.Target("Order", "../..")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, base) {
		t.Errorf("expected %s to stay under %s", got, base)
	}

	if _, err := g.Target("Order", "missing"); err == nil {
		t.Error("expected an error for a missing module")
	}
	if _, err := g.Target("", ""); err == nil {
		t.Error("expected an error for an empty type name")
	}
}

func TestHint_UsesSerializerExtensions(t *testing.T) {
	g, _, _ := newTestGenerator(t, serializer.TOML{})

	got := g.Hint("UserProfile", "schemas/UserProfile.json").Patterns
	if diff := cmp.Diff([]string{"UserProfile*.toml", "user-profile*.toml"}, got); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_DefaultsToWorkingDirectory(t *testing.T) {
	dir := tempDir(t)
	if err := os.Mkdir(filepath.Join(dir, "testdata"), 0o755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "orders"), 0o755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	logger, _ := test.NewNullLogger()
	g := New(serializer.JSON{}, WithLogger(logger))

	if err := g.Generate(example.Product{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "testdata", "schemas", "Product.json")); err != nil {
		t.Errorf("expected schema under the working directory: %v", err)
	}

	// named modules are resolved relative to the working directory too
	err = g.GenerateAndSave(example.Product{}, "orders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "orders", "testdata", "schemas", "Product.json")); err == nil {
		t.Errorf("expected no schema without orders/testdata")
	}

	var notFound *ModuleNotFoundError
	if err := g.GenerateAndSave(example.Product{}, "missing"); !errors.As(err, &notFound) {
		t.Errorf("expected ModuleNotFoundError, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "missing")); err == nil {
		t.Errorf("module directory must not be created")
	}
}
