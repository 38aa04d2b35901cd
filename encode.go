package envir

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"reflect"

	"github.com/dmitrymomot/envir/pkg/resolve"
	"github.com/dmitrymomot/envir/pkg/schema"
	"github.com/dmitrymomot/envir/pkg/store"
)

// Encoder exports structures into store entries.
type Encoder struct {
	opts *options
}

// NewEncoder returns an Encoder configured with opts.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{opts: newOptions(opts)}
}

// Marshal renders v, a struct or a pointer to one, as store entries.
func Marshal(v any, opts ...Option) (map[string]string, error) {
	return NewEncoder(opts...).Encode(v)
}

// Export writes v into the process environment. The entries are computed in
// full before the first variable is set, so a failing field leaves the
// environment untouched.
func Export(v any, opts ...Option) error {
	return ExportTo(context.Background(), store.NewEnv(), v, opts...)
}

// ExportTo renders v and applies the entries to sink.
func ExportTo(ctx context.Context, sink store.Sink, v any, opts ...Option) error {
	m, err := Marshal(v, opts...)
	if err != nil {
		return err
	}
	return sink.Apply(ctx, m)
}

// Encode renders v as store entries. Fields are visited in declaration order
// and a later entry with the same key replaces an earlier one.
func (e *Encoder) Encode(v any) (map[string]string, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, ErrNilPointer
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, ErrInvalidTarget
	}

	s, err := schema.Of(rv.Type())
	if err != nil {
		return nil, err
	}
	if err := e.opts.registry.check(s, directionExport); err != nil {
		return nil, err
	}

	out := make(map[string]string)
	if err := e.encode(s, rv, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Encoder) encode(s *schema.Struct, v reflect.Value, out map[string]string) error {
	for _, f := range s.Fields {
		if f.Skip || f.SkipExport {
			continue
		}

		fv := v.Field(f.Index)

		if f.SkipExportIf != "" {
			p := e.opts.registry.condition(f.SkipExportIf)
			if p == nil || p.conditionType() != f.Type {
				return converterSchemaError(s, f, "skip_export_if", f.SkipExportIf, "was replaced during export")
			}
			if p.test(fv) {
				e.trace(s, f, "skipped")
				continue
			}
		}

		if f.ExportWith != "" {
			x := e.opts.registry.exporter(f.ExportWith)
			if x == nil || x.exportType() != f.Type {
				return converterSchemaError(s, f, "export_with", f.ExportWith, "was replaced during export")
			}
			m, err := x.export(fv)
			if err != nil {
				return &ConverterError{Name: f.ExportWith, Field: fieldName(s, f), Err: err}
			}
			maps.Copy(out, m)
			e.trace(s, f, "converter")
			continue
		}

		if f.Optional {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}

		if f.Nested {
			if err := e.encode(f.Struct, fv, out); err != nil {
				return err
			}
			continue
		}

		raw, err := resolve.Format(fv, f.Separator)
		if err != nil {
			return errors.Join(ErrFormat, fmt.Errorf("%s: %w", f.Key, err))
		}
		out[f.Key] = raw
		e.trace(s, f, "value")
	}

	return nil
}

func (e *Encoder) trace(s *schema.Struct, f *schema.Field, source string) {
	e.opts.logger.Debug("envir field exported",
		slog.String("field", fieldName(s, f)),
		slog.String("key", f.Key),
		slog.String("source", source),
	)
}
