package resolve

import (
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Lookup reads a single variable outside of the store being resolved.
// It is used for ${NAME} extrapolation in defaults.
type Lookup func(key string) (string, bool)

// Source tells where a resolved value came from.
type Source int

const (
	// SourceNone means neither the store nor a default produced a value.
	SourceNone Source = iota
	SourceStore
	SourceDefault
)

func (s Source) String() string {
	switch s {
	case SourceStore:
		return "store"
	case SourceDefault:
		return "default"
	default:
		return "none"
	}
}

// Var describes one variable to resolve.
type Var struct {
	Key       string
	Default   *string // nil when the variable has no default
	Separator string  // used when List is set
	List      bool
	Type      reflect.Type
}

// Resolve looks v.Key up in store, falls back to the extrapolated default and
// parses the raw string into v.Type. A SourceNone result carries no value and
// no error.
func Resolve(store map[string]string, v Var, lookup Lookup) (reflect.Value, Source, error) {
	raw, ok := store[v.Key]
	src := SourceStore

	if ok {
		if !utf8.ValidString(raw) {
			return reflect.Value{}, SourceNone, &EncodingError{Key: v.Key, Value: raw}
		}
	} else {
		if v.Default == nil {
			return reflect.Value{}, SourceNone, nil
		}
		def, err := Extrapolate(*v.Default, lookup)
		if err != nil {
			return reflect.Value{}, SourceNone, err
		}
		raw, src = def, SourceDefault
	}

	if v.List {
		list, err := ParseList(v.Type, v.Key, raw, v.Separator)
		if err != nil {
			return reflect.Value{}, SourceNone, err
		}
		return list, src, nil
	}

	val, err := ParseScalar(v.Type, raw)
	if err != nil {
		return reflect.Value{}, SourceNone, &ParseError{Key: v.Key, Type: v.Type.String(), Raw: raw, Err: err}
	}

	return val, src, nil
}

var placeholder = regexp.MustCompile(`\$\{ *(.*?) *\}`)

// Extrapolate replaces every ${NAME} placeholder in s with the value lookup
// returns for NAME. Substitution is a single pass: placeholders produced by a
// substituted value are left as is.
func Extrapolate(s string, lookup Lookup) (string, error) {
	matches := placeholder.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))

	last := 0
	for _, m := range matches {
		name := s[m[2]:m[3]]

		val, ok := lookup(name)
		if !ok {
			return "", &MissingError{Key: name}
		}
		if !utf8.ValidString(val) {
			return "", &EncodingError{Key: name, Value: val}
		}

		b.WriteString(s[last:m[0]])
		b.WriteString(val)
		last = m[1]
	}
	b.WriteString(s[last:])

	return b.String(), nil
}

// TryGet reads key through lookup and parses it as T.
// The boolean result is false when the variable is not set.
func TryGet[T any](lookup Lookup, key string) (T, bool, error) {
	var zero T

	raw, ok := lookup(key)
	if !ok {
		return zero, false, nil
	}

	t := reflect.TypeFor[T]()
	val, _, err := Resolve(map[string]string{key: raw}, Var{
		Key:       key,
		Separator: ",",
		List:      IsList(t),
		Type:      t,
	}, lookup)
	if err != nil {
		return zero, false, err
	}

	return val.Interface().(T), true, nil
}

// Get is TryGet with a missing variable reported as MissingError.
func Get[T any](lookup Lookup, key string) (T, error) {
	v, ok, err := TryGet[T](lookup, key)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, &MissingError{Key: key}
	}
	return v, nil
}
