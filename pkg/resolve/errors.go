package resolve

import (
	"errors"
	"fmt"
)

var (
	// ErrMissing is matched by MissingError.
	ErrMissing = errors.New("missing environment variable")

	// ErrParse is matched by ParseError.
	ErrParse = errors.New("failed to parse environment variable")

	// ErrInvalidEncoding is matched by EncodingError.
	ErrInvalidEncoding = errors.New("environment variable is not valid unicode")
)

// MissingError reports a required variable that is absent and has no usable default.
type MissingError struct {
	Key string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing '%s' environment variable", e.Key)
}

func (e *MissingError) Is(target error) bool { return target == ErrMissing }

// ParseError reports a raw value that cannot be converted to the destination type.
// For list-typed destinations Type names the element type and Raw holds the
// offending segment.
type ParseError struct {
	Key  string
	Type string
	Raw  string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse '%s' variable to '%s' (value %q): %v", e.Key, e.Type, e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// EncodingError reports a store entry that is not valid UTF-8 text.
type EncodingError struct {
	Key   string
	Value string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("environment variable '%s' was not valid unicode: %q", e.Key, e.Value)
}

func (e *EncodingError) Is(target error) bool { return target == ErrInvalidEncoding }
