package fixture

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrInvalidArgument is matched (via errors.Is) by failures caused by the
// caller's input: a fixture that does not exist or that cannot be decoded
// into the requested type.
var ErrInvalidArgument = errors.New("invalid argument")

// NotFoundError reports a fixture name that does not resolve to a file under
// the resource root.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("test object file %s not found: %v", e.Name, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

func (e *NotFoundError) Is(target error) bool {
	return target == ErrInvalidArgument || target == fs.ErrNotExist
}

// ReadError reports an I/O failure other than a missing file.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to load test object from file %q: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// DecodeError reports a fixture whose content is not valid for the
// serializer's format or does not match the target type.
type DecodeError struct {
	Name   string
	Format string
	Type   string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse %s test object %s into %s: %v", e.Format, e.Name, e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool {
	return target == ErrInvalidArgument
}
