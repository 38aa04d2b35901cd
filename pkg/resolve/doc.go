// Package resolve turns raw environment strings into typed values.
//
// Resolve looks a key up in a flat string map, falls back to an optional
// default (after ${NAME} extrapolation) and parses the result either as a
// scalar or, for list-shaped destinations, as a separator-delimited list.
// Absence is reported through Source rather than as an error; escalating a
// missing required value is the caller's decision.
//
// Supported scalar types are strings, booleans, every integer and float kind
// (including named types built on them), time.Duration, []byte and any type
// whose pointer implements encoding.TextUnmarshaler. Format is the inverse and
// additionally accepts encoding.TextMarshaler and fmt.Stringer.
package resolve
