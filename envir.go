package envir

import (
	"context"
	"os"
	"reflect"
	"unicode/utf8"

	"github.com/dmitrymomot/envir/pkg/resolve"
	"github.com/dmitrymomot/envir/pkg/schema"
	"github.com/dmitrymomot/envir/pkg/store"
)

// Dump returns every process environment variable that holds valid UTF-8 text.
func Dump() map[string]string {
	m, _ := store.NewEnv().Snapshot(context.Background())
	for k, v := range m {
		if !utf8.ValidString(v) {
			delete(m, k)
		}
	}
	return m
}

// Get reads key from the process environment and parses it as T.
// Slices are split on commas.
func Get[T any](key string) (T, error) {
	return resolve.Get[T](os.LookupEnv, key)
}

// TryGet is Get that reports an unset variable with a false result instead of
// an error.
func TryGet[T any](key string) (T, bool, error) {
	return resolve.TryGet[T](os.LookupEnv, key)
}

// Set formats value and stores it under key in the process environment.
// Slices are joined with commas.
func Set[T any](key string, value T) error {
	raw, err := resolve.Format(reflect.ValueOf(&value).Elem(), ",")
	if err != nil {
		return err
	}
	return os.Setenv(key, raw)
}

// Keys lists the variables T reads or writes through standard resolution,
// in declaration order. Keys handled by custom converters are not included.
func Keys[T any]() ([]string, error) {
	s, err := schema.For[T]()
	if err != nil {
		return nil, err
	}
	return s.Keys(), nil
}
