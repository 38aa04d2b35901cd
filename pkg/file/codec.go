package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a file store.
type Format string

const (
	FormatDotenv Format = "dotenv"
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
)

// UnmarshalText accepts the format names and their common file extensions.
func (f *Format) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimPrefix(string(text), ".")) {
	case "dotenv", "env":
		*f = FormatDotenv
	case "yaml", "yml":
		*f = FormatYAML
	case "json":
		*f = FormatJSON
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(text))
	}
	return nil
}

// FormatFromPath picks a format from the file extension. Files without a
// known extension, including ".env" and ".env.local", are dotenv.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatDotenv
	}
}

// Decode parses data as a flat mapping of string keys to string values.
// YAML and JSON documents must be a single mapping of scalars.
func Decode(f Format, data []byte) (map[string]string, error) {
	m := make(map[string]string)
	if len(strings.TrimSpace(string(data))) == 0 {
		return m, nil
	}

	var err error
	switch f {
	case FormatDotenv:
		m, err = godotenv.UnmarshalBytes(data)
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	case FormatJSON:
		err = json.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
	if err != nil {
		return nil, errors.Join(ErrFailedToDecode, err)
	}
	if m == nil {
		m = make(map[string]string)
	}
	return m, nil
}

// Encode renders entries in format f. Keys are written in sorted order.
func Encode(f Format, entries map[string]string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch f {
	case FormatDotenv:
		data = encodeDotenv(entries)
	case FormatYAML:
		data, err = yaml.Marshal(entries)
	case FormatJSON:
		data, err = json.MarshalIndent(entries, "", "  ")
		data = append(data, '\n')
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
	if err != nil {
		return nil, errors.Join(ErrFailedToEncode, err)
	}
	return data, nil
}

// dotenvEscaper escapes the characters godotenv interprets inside double
// quotes. godotenv.Marshal is not used because it rewrites integer-looking
// values such as "007" to "7".
var dotenvEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	"\r", `\r`,
	`"`, `\"`,
	`!`, `\!`,
	`$`, `\$`,
	"`", "\\`",
)

func encodeDotenv(entries map[string]string) []byte {
	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(entries)) {
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(dotenvEscaper.Replace(entries[k]))
		b.WriteString("\"\n")
	}
	return []byte(b.String())
}
