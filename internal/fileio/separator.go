package fileio

import "strings"

// maxSampleLines bounds how many non-empty lines DetectSeparator looks at.
const maxSampleLines = 10

// DetectSeparator picks comma, semicolon or tab from the first lines of
// decoded text. Tab must beat both rivals, semicolon must beat comma;
// comma wins every tie, including the all-zero case.
func DetectSeparator(content string) rune {
	lines := strings.FieldsFunc(content, func(r rune) bool { return r == '\n' || r == '\r' })
	if len(lines) > maxSampleLines {
		lines = lines[:maxSampleLines]
	}

	var comma, semicolon, tab int
	for _, line := range lines {
		comma += strings.Count(line, ",")
		semicolon += strings.Count(line, ";")
		tab += strings.Count(line, "\t")
	}

	switch {
	case tab > comma && tab > semicolon:
		return '\t'
	case semicolon > comma:
		return ';'
	default:
		return ','
	}
}

// SeparatorName is the status line label for a separator.
func SeparatorName(sep rune) string {
	if sep == '\t' {
		return "Tab"
	}
	return string(sep)
}
