package resolve

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	durationType        = reflect.TypeOf(time.Duration(0))
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	stringerType        = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// IsList reports whether t is a list-shaped destination.
// Byte slices are treated as scalars.
func IsList(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && !isBytes(t)
}

// CanParse reports whether a raw string can be parsed into a value of type t.
func CanParse(t reflect.Type) bool {
	if IsList(t) {
		return canParseScalar(t.Elem())
	}
	return canParseScalar(t)
}

// CanFormat reports whether a value of type t can be rendered as a string.
func CanFormat(t reflect.Type) bool {
	if IsList(t) {
		return canFormatScalar(t.Elem())
	}
	return canFormatScalar(t)
}

func canParseScalar(t reflect.Type) bool {
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return true
	}
	if t == durationType || isBytes(t) {
		return true
	}
	return isBasic(t.Kind())
}

func canFormatScalar(t reflect.Type) bool {
	if reflect.PointerTo(t).Implements(textMarshalerType) || reflect.PointerTo(t).Implements(stringerType) {
		return true
	}
	if t == durationType || isBytes(t) {
		return true
	}
	return isBasic(t.Kind())
}

func isBytes(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

func isBasic(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// ParseScalar parses raw into a new value of type t.
func ParseScalar(t reflect.Type, raw string) (reflect.Value, error) {
	v := reflect.New(t).Elem()

	if u, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
		if err := u.UnmarshalText([]byte(raw)); err != nil {
			return reflect.Value{}, err
		}
		return v, nil
	}

	if t == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetInt(int64(d))
		return v, nil
	}

	if isBytes(t) {
		v.SetBytes([]byte(raw))
		return v, nil
	}

	switch t.Kind() {
	case reflect.String:
		v.SetString(raw)

	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetFloat(n)

	default:
		return reflect.Value{}, fmt.Errorf("unsupported type %s", t)
	}

	return v, nil
}

// ParseList splits raw by sep and parses every segment as the element type of t.
// An empty raw string yields an empty list.
func ParseList(t reflect.Type, key, raw, sep string) (reflect.Value, error) {
	if raw == "" {
		return reflect.MakeSlice(t, 0, 0), nil
	}

	segments := strings.Split(raw, sep)
	list := reflect.MakeSlice(t, len(segments), len(segments))
	for i, seg := range segments {
		ev, err := ParseScalar(t.Elem(), seg)
		if err != nil {
			return reflect.Value{}, &ParseError{Key: key, Type: t.Elem().String(), Raw: seg, Err: err}
		}
		list.Index(i).Set(ev)
	}

	return list, nil
}

// Format renders v as a string. Lists are joined with sep.
func Format(v reflect.Value, sep string) (string, error) {
	if IsList(v.Type()) {
		parts := make([]string, v.Len())
		for i := range v.Len() {
			s, err := FormatScalar(v.Index(i))
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, sep), nil
	}
	return FormatScalar(v)
}

// FormatScalar renders a single scalar value as a string.
func FormatScalar(v reflect.Value) (string, error) {
	t := v.Type()

	if m, ok := as[encoding.TextMarshaler](v); ok {
		b, err := m.MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	if t == durationType {
		return time.Duration(v.Int()).String(), nil
	}

	if isBytes(t) {
		return string(v.Bytes()), nil
	}

	switch t.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, t.Bits()), nil
	}

	if s, ok := as[fmt.Stringer](v); ok {
		return s.String(), nil
	}

	return "", fmt.Errorf("unsupported type %s", t)
}

// as returns v (or a pointer to a copy of v) as I when either implements it.
func as[I any](v reflect.Value) (I, bool) {
	var zero I
	if v.CanInterface() {
		if i, ok := v.Interface().(I); ok {
			return i, true
		}
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	if i, ok := p.Interface().(I); ok {
		return i, true
	}
	return zero, false
}
