package envir

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/envir/pkg/resolve"
	"github.com/dmitrymomot/envir/pkg/schema"
)

var (
	// ErrSchema is matched by SchemaError: malformed envir tags or converter references.
	ErrSchema = schema.ErrSchema

	// ErrMissing is matched by MissingError.
	ErrMissing = resolve.ErrMissing

	// ErrParse is matched by ParseError.
	ErrParse = resolve.ErrParse

	// ErrInvalidEncoding is matched by EncodingError.
	ErrInvalidEncoding = resolve.ErrInvalidEncoding

	// ErrConverter is matched by ConverterError.
	ErrConverter = errors.New("custom converter failed")

	// ErrNilPointer is returned when a nil pointer is passed to Unmarshal or Marshal.
	ErrNilPointer = errors.New("nil pointer provided to envir")

	// ErrInvalidTarget is returned when the value is not a struct or a pointer to one.
	ErrInvalidTarget = errors.New("envir target must be a struct or a pointer to struct")

	// ErrFormat is returned when a field value cannot be rendered as text during export.
	ErrFormat = errors.New("failed to format field value")
)

type (
	// SchemaError describes a malformed structure definition.
	SchemaError = schema.Error

	// MissingError names a required key absent from the store.
	MissingError = resolve.MissingError

	// ParseError carries the key, destination type and raw value that failed to parse.
	ParseError = resolve.ParseError

	// EncodingError names a store entry that is not valid UTF-8.
	EncodingError = resolve.EncodingError
)

// ConverterError wraps an error returned by a load_with or export_with converter.
// The converter's own error stays reachable through errors.As and errors.Is.
type ConverterError struct {
	Name  string // converter name from the envir tag
	Field string // Type.Field the converter was attached to
	Err   error
}

func (e *ConverterError) Error() string {
	return fmt.Sprintf("envir converter %q for %s: %v", e.Name, e.Field, e.Err)
}

func (e *ConverterError) Unwrap() error { return e.Err }

func (e *ConverterError) Is(target error) bool { return target == ErrConverter }
