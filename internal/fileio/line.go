package fileio

import "strings"

const quote = '"'

// ParseLine splits one line into fields. Quotes toggle quoted mode, a
// doubled quote inside quotes is a literal quote, and the separator only
// ends a field outside quotes. The field in progress is always emitted, so
// an empty line yields one empty field. Unterminated quotes are not an error.
func ParseLine(line string, sep rune) []string {
	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
	)
	rs := []rune(line)
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		switch {
		case c == quote:
			if inQuotes && i+1 < len(rs) && rs[i+1] == quote {
				field.WriteRune(quote)
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == sep && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(c)
		}
	}
	return append(fields, field.String())
}

// FormatLine is the inverse of ParseLine for fields without embedded
// newlines. No trailing separator is written.
func FormatLine(fields []string, sep rune) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteRune(sep)
		}
		if needsQuoting(f, sep) {
			b.WriteRune(quote)
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteRune(quote)
			continue
		}
		b.WriteString(f)
	}
	return b.String()
}

func needsQuoting(field string, sep rune) bool {
	return strings.ContainsRune(field, sep) || strings.ContainsAny(field, "\"\r\n")
}
