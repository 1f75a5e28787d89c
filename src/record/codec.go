package record

import (
	"fmt"
	"strings"
)

// Delimiter separates fields inside one log entry. Encode strips it from
// every field before joining, so it never occurs in stored free text.
const Delimiter = `\\!`

// listSeparator joins list-valued sub-fields inside one field slot.
const listSeparator = ";"

// StripDelimiter removes every occurrence of Delimiter from s. Removal can
// splice adjacent characters into a fresh occurrence, so it repeats until
// none remain.
func StripDelimiter(s string) string {
	for strings.Contains(s, Delimiter) {
		s = strings.ReplaceAll(s, Delimiter, "")
	}
	return s
}

// Encode joins fields into one log line, stripping the delimiter from each
// field first.
func Encode(fields ...string) string {
	clean := make([]string, len(fields))
	for i, f := range fields {
		clean[i] = StripDelimiter(f)
	}
	return strings.Join(clean, Delimiter)
}

// Decode splits a log line into exactly arity fields.
func Decode(line string, arity int) ([]string, error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != arity {
		return nil, fmt.Errorf("%w: %d fields, want %d", ErrMalformed, len(fields), arity)
	}
	return fields, nil
}

// EncodeList flattens items into a single field slot. An empty list encodes
// as the empty string.
func EncodeList(items []string) string {
	return strings.Join(items, listSeparator)
}

// DecodeList splits a list field slot, dropping empty items.
func DecodeList(field string) []string {
	var items []string
	for _, item := range strings.Split(field, listSeparator) {
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
