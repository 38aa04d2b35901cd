package schema

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrSchema is matched by Error.
var ErrSchema = errors.New("invalid envir schema")

// Error reports malformed envir annotations on a structure type.
type Error struct {
	Type  reflect.Type
	Field string // empty for container-level problems
	Msg   string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("envir: %s: %s", e.Type, e.Msg)
	}
	return fmt.Sprintf("envir: %s.%s: %s", e.Type, e.Field, e.Msg)
}

func (e *Error) Is(target error) bool { return target == ErrSchema }
