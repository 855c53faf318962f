// Package fixture loads test objects written as JSON, YAML or TOML files
// into typed Go values.
//
// Fixtures are resolved against a resource root, by default the package's
// testdata directory, so a test can do:
//
//	r := fixture.New(serializer.JSON{})
//	order, err := fixture.Read[example.Order](r, "objects/order-001.json")
//
// Every failure is returned to the caller: a missing or malformed fixture is
// a bug in the test and must fail it.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/vybdev/testobjects/logging"
	"github.com/vybdev/testobjects/serializer"
)

// DefaultDir is the resource root used when no root is configured.
const DefaultDir = "testdata"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader turns fixture files into values. It holds no mutable state and is
// safe for concurrent use.
type Reader struct {
	serializer serializer.Serializer
	root       fs.FS
	log        logrus.FieldLogger
}

// Option configures a Reader.
type Option func(*Reader)

// WithRoot sets the resource root fixtures are resolved against.
func WithRoot(fsys fs.FS) Option {
	return func(r *Reader) {
		r.root = fsys
	}
}

// WithDir sets the resource root to a directory on disk.
func WithDir(dir string) Option {
	return WithRoot(os.DirFS(dir))
}

// WithLogger replaces the default logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Reader) {
		r.log = l
	}
}

// New returns a Reader decoding fixtures with s.
func New(s serializer.Serializer, opts ...Option) *Reader {
	r := &Reader{
		serializer: s,
		root:       os.DirFS(DefaultDir),
		log:        logging.Component("fixture"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read loads the fixture called name into a new T.
func Read[T any](r *Reader, name string) (T, error) {
	var v T
	if err := r.ReadInto(name, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// TB is the subset of testing.TB used by MustRead.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// MustRead is like Read but stops the test on failure.
func MustRead[T any](t TB, r *Reader, name string) T {
	t.Helper()
	v, err := Read[T](r, name)
	if err != nil {
		t.Fatalf("%v", err)
	}
	return v
}

// ReadInto loads the fixture called name into v, which must be a non-nil
// pointer. When the decoded value has a `Validate() error` method it is run
// and a failure is reported as a DecodeError.
func (r *Reader) ReadInto(name string, v any) error {
	r.log.Infof("Reading test object from file %s", name)

	data, err := r.load(name)
	if err != nil {
		return err
	}

	decodeErr := func(err error) error {
		return &DecodeError{
			Name:   name,
			Format: r.serializer.Name(),
			Type:   typeName(v),
			Err:    err,
		}
	}

	if !utf8.Valid(data) {
		return decodeErr(fmt.Errorf("content is not valid UTF-8"))
	}
	if err := r.serializer.Decode(data, v); err != nil {
		return decodeErr(err)
	}
	if validator, ok := v.(interface{ Validate() error }); ok {
		if err := validator.Validate(); err != nil {
			return decodeErr(err)
		}
	}
	return nil
}

// load reads the whole fixture and strips a UTF-8 byte order mark.
func (r *Reader) load(name string) ([]byte, error) {
	rel := strings.TrimPrefix(name, "/")
	if !fs.ValidPath(rel) || rel == "." {
		return nil, &NotFoundError{Name: name, Err: fmt.Errorf("%q is not a valid path under the resource root", name)}
	}

	data, err := fs.ReadFile(r.root, rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Name: name, Err: err}
		}
		return nil, &ReadError{Name: name, Err: err}
	}
	return bytes.TrimPrefix(data, utf8BOM), nil
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}
