// Package rowcsv parses the flat, line-oriented rows of CodeQL table
// exports. It deliberately is not a general CSV reader: field text is kept
// raw, including the literal double quotes the exports wrap names in, so
// that lookups can strip quotes for comparison while returning records with
// their original text intact. encoding/csv would unquote fields and lose
// that distinction.
package rowcsv

import "strings"

// Parse splits one raw table line into named fields, pairing values with
// keys in order. The second return is false when the row is malformed
// (field count does not match the key list); callers skip such rows and
// continue scanning.
func Parse(raw string, keys []string) (map[string]string, bool) {
	line := strings.TrimRight(raw, "\r\n")
	fields := splitFields(line)
	if len(fields) != len(keys) {
		return nil, false
	}
	out := make(map[string]string, len(keys))
	for i, key := range keys {
		out[key] = fields[i]
	}
	return out, true
}

// splitFields splits on commas that sit outside double-quoted sections.
// Quote characters are preserved in the field text.
func splitFields(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			field.WriteByte(c)
		case c == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	fields = append(fields, field.String())
	return fields
}
