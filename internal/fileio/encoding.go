package fileio

import (
	"bytes"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
)

// Encoding is the byte-level representation of a delimited text file.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF8BOM
	ANSI
	UTF16LE
	UTF16BE
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "UTF8"
	case UTF8BOM:
		return "UTF8_BOM"
	case ANSI:
		return "ANSI"
	case UTF16LE:
		return "UTF16_LE"
	case UTF16BE:
		return "UTF16_BE"
	default:
		return "unknown"
	}
}

// DisplayName is the short name shown in the status line; BOM and byte
// order variants collapse into their family.
func (e Encoding) DisplayName() string {
	switch e {
	case ANSI:
		return "ANSI"
	case UTF16LE, UTF16BE:
		return "UTF-16"
	default:
		return "UTF-8"
	}
}

// ParseEncoding accepts both the String form and common aliases.
func ParseEncoding(s string) (Encoding, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "utf8", "utf-8":
		return UTF8, true
	case "utf8_bom", "utf-8-bom", "utf8bom":
		return UTF8BOM, true
	case "ansi":
		return ANSI, true
	case "utf16_le", "utf-16le", "utf16le", "utf-16", "utf16":
		return UTF16LE, true
	case "utf16_be", "utf-16be", "utf16be":
		return UTF16BE, true
	}
	return UTF8, false
}

// DetectEncoding classifies a file by its byte order mark. Anything without
// a known BOM, including a short or empty prefix, is UTF8.
func DetectEncoding(prefix []byte) Encoding {
	switch {
	case bytes.HasPrefix(prefix, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(prefix, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(prefix, bomUTF16BE):
		return UTF16BE
	}
	return UTF8
}

// DetectEncodingFile reads the first four bytes of path. A missing or
// unreadable file yields UTF8.
func DetectEncodingFile(path string) Encoding {
	f, err := os.Open(path)
	if err != nil {
		return UTF8
	}
	defer f.Close()

	bom := make([]byte, 4)
	n, _ := io.ReadFull(f, bom)
	return DetectEncoding(bom[:n])
}

// minSniffConfidence is the lowest chardet confidence accepted as evidence of
// a legacy code page.
const minSniffConfidence = 30

// sniffCharset looks at BOM-less bytes that are not valid UTF-8 and asks
// chardet for the most likely legacy charset. ok is false when the sample
// is valid UTF-8 or chardet has nothing useful to say.
func sniffCharset(sample []byte) (charset string, ok bool) {
	if len(sample) == 0 || utf8.Valid(trimPartialRune(sample)) {
		return "", false
	}
	det, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || det == nil || det.Confidence < minSniffConfidence {
		return "", false
	}
	cs := strings.ToLower(det.Charset)
	if cs == "utf-8" || strings.HasPrefix(cs, "utf-16") || strings.HasPrefix(cs, "utf-32") {
		return "", false
	}
	return cs, true
}

// trimPartialRune drops a rune cut in half at the end of a fixed-size sample.
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}
			break
		}
	}
	return b
}
