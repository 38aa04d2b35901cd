// Package envir converts between flat string maps, such as the process
// environment, and typed Go structures described with `envir` struct tags.
//
// A structure declares its keys through field tags and an optional container
// tag on a blank field:
//
//	type Config struct {
//		_ struct{} `envir:"prefix=APP_"`
//
//		Host    string        `envir:"default=localhost"`       // APP_HOST
//		Port    uint16        `envir:"default=8080"`            // APP_PORT
//		Token   string                                          // APP_TOKEN, required
//		Debug   bool          `envir:"default"`                 // zero value when unset
//		Peers   []string      `envir:"separator=;"`             // APP_PEERS=a;b;c
//		Home    string        `envir:"name=DATA,default='${HOME}/data'"`
//		Timeout *time.Duration                                  // nil when unset
//		DB      Database      `envir:"nested"`                  // keys use Database's own prefix
//	}
//
// # Field tags
//
//   - default, default=VALUE: zero value or parsed VALUE when the key is absent.
//     ${NAME} placeholders in VALUE are replaced by variables from the process
//     environment (see WithLookup).
//   - name=NAME: key fragment used instead of the upper-cased field name.
//   - noprefix: ignore the container prefix.
//   - separator=C: single character used to split and join slice values.
//   - nested: the field is a structure (or pointer to one) resolved with its
//     own schema against the same store.
//   - load_with=NAME, export_with=NAME, skip_export_if=NAME: converters
//     registered in a Registry with LoadFunc, ExportFunc and Condition.
//   - skip, skip_load, skip_export: leave the field out of both or one direction.
//
// # Import and export
//
//	cfg, err := envir.From[Config](map[string]string{"APP_TOKEN": "secret"})
//	cfg, err := envir.FromEnv[Config]()
//
//	m, err := envir.Marshal(cfg)   // map[string]string
//	err = envir.Export(cfg)        // process environment
//	err = envir.ExportTo(ctx, sink, cfg)
//
// Pointer fields never fail on a missing key. A pointer field marked nested is
// always allocated and imported like a value field; it is left out of the
// export only when nil. A failed Unmarshal leaves the target unchanged.
//
// # Errors
//
// Every error matches one of the sentinels with errors.Is: ErrSchema,
// ErrMissing, ErrParse, ErrInvalidEncoding, ErrConverter, ErrFormat,
// ErrNilPointer, ErrInvalidTarget. The typed errors SchemaError, MissingError,
// ParseError, EncodingError and ConverterError carry the offending key, type
// and raw value. The first failing field aborts the whole call.
//
// Schemas are built once per type and cached, so Unmarshal and Marshal are
// safe for concurrent use.
package envir
