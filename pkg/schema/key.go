package schema

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Key computes the backing-store key of a field: the explicit name or the
// upper-cased identifier, preceded by the container prefix unless the field
// opts out with noprefix.
func Key(c Container, f *Field) string {
	var fragment string
	if f.NameOverride != nil {
		fragment = *f.NameOverride
	} else {
		// A Caser keeps state between calls, so each call gets its own.
		fragment = cases.Upper(language.Und).String(f.Name)
	}

	if f.NoPrefix || c.Prefix == nil {
		return fragment
	}
	return *c.Prefix + fragment
}

// Keys lists every key the structure reads or writes through standard
// resolution, in declaration order, including keys of nested structures.
// Keys owned by custom converters are not known and are not listed.
func (s *Struct) Keys() []string {
	seen := make(map[string]struct{})
	var keys []string

	var walk func(*Struct)
	walk = func(s *Struct) {
		for _, f := range s.Fields {
			if f.Skip {
				continue
			}
			if f.Nested {
				walk(f.Struct)
				continue
			}
			if !f.Loads() && !f.Exports() {
				continue
			}
			if _, ok := seen[f.Key]; ok {
				continue
			}
			seen[f.Key] = struct{}{}
			keys = append(keys, f.Key)
		}
	}
	walk(s)

	return keys
}
