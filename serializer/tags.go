package serializer

import (
	"fmt"
	"strings"
)

// Struct tag grammar, key "prowl". Comma-separated entries, each either
// a flag or key=value; values may be single- or double-quoted to carry
// spaces or commas. Entries are order-preserving so repeatable keys
// (formerly=) keep declaration order.
//
//	Field int  `prowl:"-"`                          // ignore
//	Field int  `prowl:"omitzero"`                   // ignore-if-null
//	Field int  `prowl:"name=Count"`                 // rename
//	Field int  `prowl:"formerly=NumItems,formerly=ItemCount"`
//
// The grammar is closed: unknown keys are an error so typos fail fast
// instead of silently serializing under the wrong name.

// tagEntry is one parsed key=value pair (value empty for flags).
type tagEntry struct {
	key   string
	value string
}

// parseFieldTag splits a prowl struct tag into ordered entries.
func parseFieldTag(tag string) ([]tagEntry, error) {
	var entries []tagEntry
	for _, part := range splitTag(tag) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx := strings.Index(part, "="); idx >= 0 {
			key := strings.TrimSpace(part[:idx])
			value := unquoteValue(strings.TrimSpace(part[idx+1:]))
			if key == "" {
				return nil, fmt.Errorf("invalid prowl tag: empty key in %q", part)
			}
			entries = append(entries, tagEntry{key: key, value: value})
			continue
		}
		entries = append(entries, tagEntry{key: part})
	}
	return entries, nil
}

// splitTag splits on commas outside quotes.
func splitTag(tag string) []string {
	var parts []string
	var current strings.Builder
	inSingle := false
	inDouble := false
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			current.WriteByte(c)
		case c == '"' && !inSingle:
			inDouble = !inDouble
			current.WriteByte(c)
		case c == ',' && !inSingle && !inDouble:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	parts = append(parts, current.String())
	return parts
}

// unquoteValue removes surrounding single or double quotes.
func unquoteValue(value string) string {
	if len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'' {
		return value[1 : len(value)-1]
	}
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}
