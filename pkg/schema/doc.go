// Package schema builds the declarative model that drives envir marshalling.
//
// A model is derived once per structure type by reflecting over its fields
// and their `envir` struct tags, and is cached for the lifetime of the
// process. Container-level attributes live on a blank field:
//
//	type Config struct {
//		_        struct{}      `envir:"prefix=APP_"`
//		Host     string        `envir:"default=localhost"`
//		Port     uint16        `envir:"default=8080"`
//		Token    string        `envir:"name=API_TOKEN,noprefix"`
//		Tags     []string      `envir:"default='a,b',separator=','"`
//		Timeout  time.Duration `envir:"default"`
//		Database DB            `envir:"nested"`
//	}
//
// Field attributes are default (flag or value), name, noprefix, nested,
// separator, load_with, export_with, skip_export_if, skip, skip_load and
// skip_export. Unknown attributes and attributes of the wrong shape are
// reported as *Error when the model is first built.
//
// Key derives the backing-store key of a field; it is a pure function of the
// field identifier, its explicit name, its noprefix flag and the container
// prefix. Nested structures apply their own prefix, never the outer one.
package schema
