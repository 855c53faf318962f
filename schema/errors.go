package schema

import "fmt"

// ModuleNotFoundError is returned when the module directory a schema should
// be written to does not exist. Module directories are never created.
type ModuleNotFoundError struct {
	Module string
	Err    error
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("no such module %s: %v", moduleLabel(e.Module), e.Err)
}

func (e *ModuleNotFoundError) Unwrap() error { return e.Err }

// DerivationError is returned when no schema can be derived from a type.
type DerivationError struct {
	Type string
	Err  error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("cannot generate JSON schema for %s: %v", e.Type, e.Err)
}

func (e *DerivationError) Unwrap() error { return e.Err }

func moduleLabel(module string) string {
	if module == "" {
		return "."
	}
	return module
}
