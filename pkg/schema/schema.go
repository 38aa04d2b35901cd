package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"unicode/utf8"

	"github.com/dmitrymomot/envir/pkg/resolve"
)

// DefaultSeparator splits and joins list values unless a field overrides it.
const DefaultSeparator = ","

// DefaultKind selects what a field yields when its key is absent.
type DefaultKind int

const (
	// DefaultRequired makes a missing key an error.
	DefaultRequired DefaultKind = iota
	// DefaultZero yields the zero value of the field type.
	DefaultZero
	// DefaultExplicit parses Field.DefaultValue after extrapolation.
	DefaultExplicit
)

func (k DefaultKind) String() string {
	switch k {
	case DefaultZero:
		return "zero"
	case DefaultExplicit:
		return "explicit"
	default:
		return "required"
	}
}

// Category is the shape of a field's value, independent of its optional wrapper.
type Category int

const (
	CategoryScalar Category = iota
	CategoryList
	CategoryStruct
)

func (c Category) String() string {
	switch c {
	case CategoryList:
		return "list"
	case CategoryStruct:
		return "struct"
	default:
		return "scalar"
	}
}

// Container holds configuration shared by every field of one structure type.
type Container struct {
	Prefix *string
}

// Field holds the configuration of one structure member.
type Field struct {
	Name     string       // Go identifier
	Index    int          // position in the struct, for reflect.Value.Field
	Type     reflect.Type // declared type
	Elem     reflect.Type // Type without the optional pointer wrapper
	Category Category
	Optional bool

	Default      DefaultKind
	DefaultValue string

	NameOverride *string
	NoPrefix     bool
	Nested       bool
	Struct       *Struct // model of the nested type when Nested is set

	LoadWith     string
	ExportWith   string
	SkipExportIf string

	Skip       bool
	SkipLoad   bool
	SkipExport bool

	Separator string

	// Key is the resolved backing-store key.
	Key string
}

// DefaultSpec returns the explicit default, or nil when the field has none.
func (f *Field) DefaultSpec() *string {
	if f.Default != DefaultExplicit {
		return nil
	}
	v := f.DefaultValue
	return &v
}

// Loads reports whether import resolves this field through its own key.
func (f *Field) Loads() bool {
	return !f.Skip && !f.SkipLoad && f.LoadWith == "" && !f.Nested
}

// Exports reports whether export writes this field under its own key.
func (f *Field) Exports() bool {
	return !f.Skip && !f.SkipExport && f.ExportWith == "" && !f.Nested
}

// Struct is the schema model of one structure type. It is immutable.
type Struct struct {
	Type      reflect.Type
	Container Container
	Fields    []*Field
}

type entry struct {
	s   *Struct
	err error
}

var cache sync.Map // reflect.Type -> entry

// Of returns the schema model of t, building and caching it on first use.
// Pointer types are dereferenced.
func Of(t reflect.Type) (*Struct, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return nil, &Error{Type: t, Msg: "nil type"}
	}

	if e, ok := cache.Load(t); ok {
		return e.(entry).s, e.(entry).err
	}

	s, err := (&builder{visiting: map[reflect.Type]bool{}}).build(t)
	e, _ := cache.LoadOrStore(t, entry{s: s, err: err})
	return e.(entry).s, e.(entry).err
}

// For is Of for a type parameter.
func For[T any]() (*Struct, error) {
	return Of(reflect.TypeFor[T]())
}

type builder struct {
	visiting map[reflect.Type]bool
}

func (b *builder) build(t reflect.Type) (*Struct, error) {
	if t.Kind() != reflect.Struct {
		return nil, &Error{Type: t, Msg: fmt.Sprintf("only struct types are supported, got %s", t.Kind())}
	}
	if b.visiting[t] {
		return nil, &Error{Type: t, Msg: "recursive nested structure"}
	}
	b.visiting[t] = true
	defer delete(b.visiting, t)

	s := &Struct{Type: t}
	seenContainer := false

	for i := range t.NumField() {
		sf := t.Field(i)
		tag, tagged := sf.Tag.Lookup(TagName)

		if sf.Name == "_" {
			if !tagged {
				continue
			}
			if seenContainer {
				return nil, &Error{Type: t, Msg: "duplicate container attributes"}
			}
			seenContainer = true
			c, err := parseContainer(tag)
			if err != nil {
				return nil, &Error{Type: t, Msg: err.Error()}
			}
			s.Container = c
			continue
		}

		if !sf.IsExported() {
			if tagged {
				return nil, &Error{Type: t, Field: sf.Name, Msg: "envir attributes on an unexported field"}
			}
			continue
		}

		f, err := b.field(sf, tag)
		if err != nil {
			if se := (*Error)(nil); errors.As(err, &se) {
				return nil, err
			}
			return nil, &Error{Type: t, Field: sf.Name, Msg: err.Error()}
		}
		s.Fields = append(s.Fields, f)
	}

	for _, f := range s.Fields {
		if !f.Nested {
			f.Key = Key(s.Container, f)
		}
	}

	return s, nil
}

func parseContainer(tag string) (Container, error) {
	var c Container

	items, err := parseTag(tag)
	if err != nil {
		return c, err
	}

	for _, it := range items {
		switch it.key {
		case "prefix":
			if !it.hasValue {
				return c, fmt.Errorf("expected envir prefix attribute to be a string: `prefix=...`")
			}
			p := it.value
			c.Prefix = &p
		case "internal":
			if it.hasValue {
				return c, fmt.Errorf("expected envir internal attribute to be a flag")
			}
		default:
			return c, fmt.Errorf("unknown envir container attribute %q", it.key)
		}
	}

	return c, nil
}

func (b *builder) field(sf reflect.StructField, tag string) (*Field, error) {
	f := &Field{
		Name:      sf.Name,
		Index:     sf.Index[0],
		Type:      sf.Type,
		Elem:      sf.Type,
		Separator: DefaultSeparator,
	}

	items, err := parseTag(tag)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		switch it.key {
		case "default":
			if it.hasValue {
				f.Default, f.DefaultValue = DefaultExplicit, it.value
			} else {
				f.Default = DefaultZero
			}
		case "name":
			if err := needValue(it); err != nil {
				return nil, err
			}
			name := it.value
			f.NameOverride = &name
		case "separator":
			if err := needValue(it); err != nil {
				return nil, err
			}
			if utf8.RuneCountInString(it.value) != 1 {
				return nil, fmt.Errorf("separator must be a single character, got %q", it.value)
			}
			f.Separator = it.value
		case "load_with":
			if err := needValue(it); err != nil {
				return nil, err
			}
			f.LoadWith = it.value
		case "export_with":
			if err := needValue(it); err != nil {
				return nil, err
			}
			f.ExportWith = it.value
		case "skip_export_if":
			if err := needValue(it); err != nil {
				return nil, err
			}
			f.SkipExportIf = it.value
		case "noprefix":
			f.NoPrefix, err = flag(it)
		case "nested":
			f.Nested, err = flag(it)
		case "skip":
			f.Skip, err = flag(it)
		case "skip_load":
			f.SkipLoad, err = flag(it)
		case "skip_export":
			f.SkipExport, err = flag(it)
		default:
			return nil, fmt.Errorf("unknown envir field attribute %q", it.key)
		}
		if err != nil {
			return nil, err
		}
	}

	if sf.Anonymous && !f.Nested {
		return nil, fmt.Errorf("embedded field must be marked nested")
	}

	if f.Type.Kind() == reflect.Pointer {
		f.Optional = true
		f.Elem = f.Type.Elem()
		if f.Elem.Kind() == reflect.Pointer {
			return nil, fmt.Errorf("pointer to pointer is not supported")
		}
	}

	switch {
	case f.Nested:
		if f.Elem.Kind() != reflect.Struct {
			return nil, fmt.Errorf("nested field must be a struct or a pointer to struct, got %s", f.Type)
		}
		f.Category = CategoryStruct
		nested, err := b.nested(f.Elem)
		if err != nil {
			return nil, err
		}
		f.Struct = nested
	case resolve.IsList(f.Elem):
		f.Category = CategoryList
	default:
		f.Category = CategoryScalar
	}

	if f.Loads() && !resolve.CanParse(f.Elem) {
		return nil, fmt.Errorf("type %s cannot be parsed from a string, use load_with or skip_load", f.Type)
	}
	if f.Exports() && !resolve.CanFormat(f.Elem) {
		return nil, fmt.Errorf("type %s cannot be formatted as a string, use export_with or skip_export", f.Type)
	}

	return f, nil
}

// nested builds the model of a nested type, sharing the cycle guard but
// reusing cached models.
func (b *builder) nested(t reflect.Type) (*Struct, error) {
	if b.visiting[t] {
		return nil, &Error{Type: t, Msg: "recursive nested structure"}
	}
	if e, ok := cache.Load(t); ok {
		return e.(entry).s, e.(entry).err
	}
	s, err := b.build(t)
	if err != nil {
		return nil, err
	}
	e, _ := cache.LoadOrStore(t, entry{s: s})
	return e.(entry).s, e.(entry).err
}

func needValue(it tagItem) error {
	if !it.hasValue {
		return fmt.Errorf("expected envir %s attribute to be a string: `%s=...`", it.key, it.key)
	}
	return nil
}

func flag(it tagItem) (bool, error) {
	if it.hasValue {
		return false, fmt.Errorf("expected envir %s attribute to be a flag", it.key)
	}
	return true, nil
}
