package schema

import (
	"errors"
	"strings"
)

// TagName is the struct tag key read by this package.
const TagName = "envir"

type tagItem struct {
	key      string
	value    string
	hasValue bool
}

// parseTag splits an envir tag into items. Items are separated by commas and
// take the form key or key=value. A value may be wrapped in single quotes to
// carry commas or surrounding spaces; inside quotes \' and \\ are escapes.
func parseTag(tag string) ([]tagItem, error) {
	var items []tagItem

	for i := 0; i <= len(tag); i++ {
		start := i
		for i < len(tag) && tag[i] != ',' && tag[i] != '=' {
			i++
		}
		item := tagItem{key: strings.TrimSpace(tag[start:i])}

		if i < len(tag) && tag[i] == '=' {
			item.hasValue = true
			i++
			for i < len(tag) && tag[i] == ' ' {
				i++
			}

			if i < len(tag) && tag[i] == '\'' {
				end, value, err := readQuoted(tag, i+1)
				if err != nil {
					return nil, err
				}
				item.value = value
				i = end + 1
				for i < len(tag) && tag[i] == ' ' {
					i++
				}
				if i < len(tag) && tag[i] != ',' {
					return nil, errors.New("unexpected text after quoted value")
				}
			} else {
				start = i
				for i < len(tag) && tag[i] != ',' {
					i++
				}
				item.value = strings.TrimSpace(tag[start:i])
			}
		}

		if item.key == "" {
			if item.hasValue {
				return nil, errors.New("missing attribute name before '='")
			}
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

// readQuoted reads a single-quoted value starting at start and returns the
// index of the closing quote.
func readQuoted(tag string, start int) (int, string, error) {
	var b strings.Builder
	for i := start; i < len(tag); i++ {
		switch c := tag[i]; c {
		case '\\':
			if i+1 < len(tag) && (tag[i+1] == '\'' || tag[i+1] == '\\') {
				b.WriteByte(tag[i+1])
				i++
				continue
			}
			b.WriteByte(c)
		case '\'':
			return i, b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
	return 0, "", errors.New("unterminated quoted value")
}
