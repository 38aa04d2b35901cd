package envir

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/dmitrymomot/envir/pkg/resolve"
	"github.com/dmitrymomot/envir/pkg/schema"
	"github.com/dmitrymomot/envir/pkg/store"
)

// Decoder imports structures from a store snapshot.
type Decoder struct {
	store map[string]string
	opts  *options
}

// NewDecoder returns a Decoder reading from store. The map is not modified.
func NewDecoder(store map[string]string, opts ...Option) *Decoder {
	if store == nil {
		store = map[string]string{}
	}
	return &Decoder{store: store, opts: newOptions(opts)}
}

// Unmarshal imports store into the structure v points to. On error v is left
// unchanged.
func Unmarshal(store map[string]string, v any, opts ...Option) error {
	return NewDecoder(store, opts...).Decode(v)
}

// From imports store into a new value of type T.
func From[T any](store map[string]string, opts ...Option) (T, error) {
	var v T
	if err := Unmarshal(store, &v, opts...); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// FromEnv imports the current process environment into a new value of type T.
func FromEnv[T any](opts ...Option) (T, error) {
	m, err := store.NewEnv().Snapshot(context.Background())
	if err != nil {
		var zero T
		return zero, err
	}
	return From[T](m, opts...)
}

// Decode fills every envir-managed field of the structure v points to.
// The first failing field aborts the import and leaves v unchanged.
func (d *Decoder) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return ErrInvalidTarget
	}
	if rv.IsNil() {
		return ErrNilPointer
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return ErrInvalidTarget
	}

	s, err := schema.Of(rv.Type())
	if err != nil {
		return err
	}
	if err := d.opts.registry.check(s, directionLoad); err != nil {
		return err
	}

	tmp := reflect.New(rv.Type()).Elem()
	tmp.Set(rv)
	if err := d.decode(s, tmp); err != nil {
		return err
	}
	rv.Set(tmp)
	return nil
}

func (d *Decoder) decode(s *schema.Struct, v reflect.Value) error {
	for _, f := range s.Fields {
		fv := v.Field(f.Index)

		switch {
		case f.Skip || f.SkipLoad:
			fv.SetZero()

		case f.LoadWith != "":
			l := d.opts.registry.loader(f.LoadWith)
			if l == nil || l.loadType() != f.Type {
				return converterSchemaError(s, f, "load_with", f.LoadWith, "was replaced during import")
			}
			val, err := l.load(d.store)
			if err != nil {
				return &ConverterError{Name: f.LoadWith, Field: fieldName(s, f), Err: err}
			}
			fv.Set(val)
			d.trace(s, f, "converter")

		case f.Nested && f.Optional:
			p := reflect.New(f.Elem)
			if err := d.decode(f.Struct, p.Elem()); err != nil {
				return err
			}
			fv.Set(p)

		case f.Nested:
			if err := d.decode(f.Struct, fv); err != nil {
				return err
			}

		case f.Optional:
			val, src, err := resolve.Resolve(d.store, d.variable(f, nil), d.opts.lookup)
			if err != nil {
				return err
			}
			if src == resolve.SourceNone {
				fv.SetZero()
			} else {
				p := reflect.New(f.Elem)
				p.Elem().Set(val)
				fv.Set(p)
			}
			d.trace(s, f, src.String())

		default:
			val, src, err := resolve.Resolve(d.store, d.variable(f, f.DefaultSpec()), d.opts.lookup)
			if err != nil {
				return err
			}
			if src == resolve.SourceNone {
				if f.Default != schema.DefaultZero {
					return &MissingError{Key: f.Key}
				}
				fv.SetZero()
			} else {
				fv.Set(val)
			}
			d.trace(s, f, src.String())
		}
	}

	return nil
}

func (d *Decoder) variable(f *schema.Field, def *string) resolve.Var {
	return resolve.Var{
		Key:       f.Key,
		Default:   def,
		Separator: f.Separator,
		List:      f.Category == schema.CategoryList,
		Type:      f.Elem,
	}
}

func (d *Decoder) trace(s *schema.Struct, f *schema.Field, source string) {
	d.opts.logger.Debug("envir field loaded",
		slog.String("field", fieldName(s, f)),
		slog.String("key", f.Key),
		slog.String("source", source),
	)
}

func fieldName(s *schema.Struct, f *schema.Field) string {
	return s.Type.String() + "." + f.Name
}
