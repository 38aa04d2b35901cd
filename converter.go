package envir

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/envir/pkg/schema"
)

// LoadFunc builds a field value from the whole store. It is referenced from a
// field with `envir:"load_with=NAME"` and replaces standard resolution.
type LoadFunc[T any] func(store map[string]string) (T, error)

// ExportFunc renders a field value as any number of store entries. It is
// referenced from a field with `envir:"export_with=NAME"`.
type ExportFunc[T any] func(value T) (map[string]string, error)

// Condition reports whether a field value must be left out of the export.
// It is referenced from a field with `envir:"skip_export_if=NAME"`.
type Condition[T any] func(value T) bool

// Loader is implemented by LoadFunc.
type Loader interface {
	loadType() reflect.Type
	load(store map[string]string) (reflect.Value, error)
}

// Exporter is implemented by ExportFunc.
type Exporter interface {
	exportType() reflect.Type
	export(v reflect.Value) (map[string]string, error)
}

// Predicate is implemented by Condition.
type Predicate interface {
	conditionType() reflect.Type
	test(v reflect.Value) bool
}

func (f LoadFunc[T]) loadType() reflect.Type { return reflect.TypeFor[T]() }

func (f LoadFunc[T]) load(store map[string]string) (reflect.Value, error) {
	v, err := f(store)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(&v).Elem(), nil
}

func (f ExportFunc[T]) exportType() reflect.Type { return reflect.TypeFor[T]() }

func (f ExportFunc[T]) export(v reflect.Value) (map[string]string, error) {
	return f(v.Interface().(T))
}

func (f Condition[T]) conditionType() reflect.Type { return reflect.TypeFor[T]() }

func (f Condition[T]) test(v reflect.Value) bool {
	return f(v.Interface().(T))
}

// Registry maps converter names used in envir tags to their implementations.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	loaders    map[string]Loader
	exporters  map[string]Exporter
	conditions map[string]Predicate

	// gen is bumped by every registration. verified remembers, per structure
	// type and direction, the generation its converter references resolved
	// against.
	gen      atomic.Uint64
	verified sync.Map // checkKey -> uint64
}

type direction int

const (
	directionLoad direction = iota
	directionExport
)

type checkKey struct {
	t reflect.Type
	d direction
}

// NewRegistry returns an empty converter registry.
func NewRegistry() *Registry {
	return &Registry{
		loaders:    make(map[string]Loader),
		exporters:  make(map[string]Exporter),
		conditions: make(map[string]Predicate),
	}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry used when no WithRegistry option is given.
func DefaultRegistry() *Registry { return defaultRegistry }

// RegisterLoader registers l under name in the default registry.
func RegisterLoader(name string, l Loader) { defaultRegistry.RegisterLoader(name, l) }

// RegisterExporter registers e under name in the default registry.
func RegisterExporter(name string, e Exporter) { defaultRegistry.RegisterExporter(name, e) }

// RegisterCondition registers p under name in the default registry.
func RegisterCondition(name string, p Predicate) { defaultRegistry.RegisterCondition(name, p) }

// RegisterLoader registers l under name, replacing any previous loader with that name.
func (r *Registry) RegisterLoader(name string, l Loader) {
	r.mu.Lock()
	r.loaders[name] = l
	r.gen.Add(1)
	r.mu.Unlock()
}

// RegisterExporter registers e under name, replacing any previous exporter with that name.
func (r *Registry) RegisterExporter(name string, e Exporter) {
	r.mu.Lock()
	r.exporters[name] = e
	r.gen.Add(1)
	r.mu.Unlock()
}

// RegisterCondition registers p under name, replacing any previous condition with that name.
func (r *Registry) RegisterCondition(name string, p Predicate) {
	r.mu.Lock()
	r.conditions[name] = p
	r.gen.Add(1)
	r.mu.Unlock()
}

func (r *Registry) loader(name string) Loader {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaders[name]
}

func (r *Registry) exporter(name string) Exporter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exporters[name]
}

func (r *Registry) condition(name string) Predicate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conditions[name]
}

// check verifies that every converter referenced by s for direction d is
// registered and accepts the field type. Successful checks are remembered
// until the next registration.
func (r *Registry) check(s *schema.Struct, d direction) error {
	gen := r.gen.Load()
	key := checkKey{t: s.Type, d: d}
	if v, ok := r.verified.Load(key); ok && v.(uint64) == gen {
		return nil
	}

	for _, f := range s.Fields {
		if f.Skip {
			continue
		}

		switch d {
		case directionLoad:
			if f.SkipLoad {
				continue
			}
			if f.LoadWith != "" {
				l := r.loader(f.LoadWith)
				if l == nil {
					return converterSchemaError(s, f, "load_with", f.LoadWith, "is not registered")
				}
				if l.loadType() != f.Type {
					return converterSchemaError(s, f, "load_with", f.LoadWith,
						fmt.Sprintf("returns %s, field is %s", l.loadType(), f.Type))
				}
				continue
			}

		case directionExport:
			if f.SkipExport {
				continue
			}
			if f.SkipExportIf != "" {
				p := r.condition(f.SkipExportIf)
				if p == nil {
					return converterSchemaError(s, f, "skip_export_if", f.SkipExportIf, "is not registered")
				}
				if p.conditionType() != f.Type {
					return converterSchemaError(s, f, "skip_export_if", f.SkipExportIf,
						fmt.Sprintf("accepts %s, field is %s", p.conditionType(), f.Type))
				}
			}
			if f.ExportWith != "" {
				e := r.exporter(f.ExportWith)
				if e == nil {
					return converterSchemaError(s, f, "export_with", f.ExportWith, "is not registered")
				}
				if e.exportType() != f.Type {
					return converterSchemaError(s, f, "export_with", f.ExportWith,
						fmt.Sprintf("accepts %s, field is %s", e.exportType(), f.Type))
				}
				continue
			}
		}

		if f.Nested {
			if err := r.check(f.Struct, d); err != nil {
				return err
			}
		}
	}

	r.verified.Store(key, gen)
	return nil
}

func converterSchemaError(s *schema.Struct, f *schema.Field, attr, name, msg string) error {
	return &SchemaError{
		Type:  s.Type,
		Field: f.Name,
		Msg:   fmt.Sprintf("%s converter %q %s", attr, name, msg),
	}
}
