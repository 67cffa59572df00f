package fileio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"csvedit/internal/sheet/model"
)

// sniffBytes is how much of a BOM-less file is handed to chardet.
const sniffBytes = 2048

// DefaultCodePage is used for ANSI files when no code page is configured.
const DefaultCodePage = "windows-1252"

// IOError reports a file that could not be opened, read, decoded or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// Document is the result of reading a delimited file.
type Document struct {
	Table     model.Table
	Separator rune
	Encoding  Encoding
	Charset   string // decoding charset, or chardet's guess for a sniffed ANSI file
}

// Options tune a Codec.
type Options struct {
	CodePage       string // IANA name of the ANSI code page
	SniffANSI      bool   // ask chardet about BOM-less files that are not valid UTF-8
	KeepBlankLines bool   // keep blank lines past the first one instead of dropping them
}

// Codec reads and writes delimited text files in any supported Encoding.
type Codec struct {
	opts     Options
	ansi     encoding.Encoding
	ansiName string
}

// NewCodec resolves the ANSI code page; an unknown name is an error.
func NewCodec(opts Options) (*Codec, error) {
	name := strings.TrimSpace(opts.CodePage)
	if name == "" {
		name = DefaultCodePage
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("code page %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("code page %q: not supported", name)
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = name
	}
	return &Codec{opts: opts, ansi: enc, ansiName: strings.ToLower(canonical)}, nil
}

// DefaultCodec is NewCodec with zero Options; it cannot fail.
func DefaultCodec() *Codec {
	return &Codec{ansi: charmap.Windows1252, ansiName: DefaultCodePage}
}

// CodePage is the canonical name of the ANSI code page in use.
func (c *Codec) CodePage() string { return c.ansiName }

// Read detects the encoding and separator of path and parses every line.
func (c *Codec) Read(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, &IOError{Op: "read", Path: path, Err: err}
	}

	enc := DetectEncoding(data)
	charset := ""
	if enc == UTF8 && c.opts.SniffANSI {
		sample := data
		if len(sample) > sniffBytes {
			sample = sample[:sniffBytes]
		}
		if cs, ok := sniffCharset(sample); ok {
			enc, charset = ANSI, cs
		}
	}

	doc, err := c.parse(path, data, enc, 0)
	if err != nil {
		return Document{}, err
	}
	if charset != "" {
		doc.Charset = charset
	}
	return doc, nil
}

// ReadAs parses path with a caller-chosen encoding and separator. A zero
// separator is detected from the content.
func (c *Codec) ReadAs(path string, enc Encoding, sep rune) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, &IOError{Op: "read", Path: path, Err: err}
	}
	return c.parse(path, data, enc, sep)
}

func (c *Codec) parse(path string, data []byte, enc Encoding, sep rune) (Document, error) {
	text, err := c.decode(data, enc)
	if err != nil {
		return Document{}, &IOError{Op: "decode", Path: path, Err: err}
	}

	lines := splitLines(text)
	if sep == 0 {
		sep = DetectSeparator(strings.Join(lines, "\n"))
	}

	rows := make([][]string, 0, len(lines))
	for i, line := range lines {
		// Blank lines survive only in first position unless configured otherwise.
		if line == "" && i != 0 && !c.opts.KeepBlankLines {
			continue
		}
		rows = append(rows, ParseLine(line, sep))
	}

	return Document{
		Table:     model.Table{Rows: rows},
		Separator: sep,
		Encoding:  enc,
		Charset:   c.charsetName(enc),
	}, nil
}

// Write formats every row with CRLF terminators and writes it to path in
// the requested encoding. The header row, when present, is written first.
// The file is truncated in place; a failure part way leaves a partial file.
func (c *Codec) Write(path string, t model.Table, sep rune, enc Encoding) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}

	werr := c.writeTo(f, t, sep, enc)
	cerr := f.Close()
	if werr != nil {
		return &IOError{Op: "write", Path: path, Err: werr}
	}
	if cerr != nil {
		return &IOError{Op: "close", Path: path, Err: cerr}
	}
	return nil
}

func (c *Codec) writeTo(w io.Writer, t model.Table, sep rune, enc Encoding) error {
	bw := bufio.NewWriter(w)

	var out io.WriteCloser
	switch enc {
	case UTF8BOM:
		if _, err := bw.Write(bomUTF8); err != nil {
			return err
		}
	case UTF16LE:
		out = transform.NewWriter(bw, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder())
	case UTF16BE:
		out = transform.NewWriter(bw, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder())
	case ANSI:
		out = transform.NewWriter(bw, encoding.ReplaceUnsupported(c.ansi.NewEncoder()))
	}

	var dst io.Writer = bw
	if out != nil {
		dst = out
	}

	writeLine := func(fields []string) error {
		_, err := io.WriteString(dst, FormatLine(fields, sep)+"\r\n")
		return err
	}
	if t.Header != nil {
		if err := writeLine(t.Header); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if err := writeLine(row); err != nil {
			return err
		}
	}

	if out != nil {
		if err := out.Close(); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (c *Codec) decode(data []byte, enc Encoding) (string, error) {
	var dec *encoding.Decoder
	switch enc {
	case UTF8, UTF8BOM:
		// UTF8BOM drops a leading BOM if there is one and is UTF-8 otherwise.
		dec = unicode.UTF8BOM.NewDecoder()
	case UTF16LE:
		dec = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case UTF16BE:
		dec = unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	case ANSI:
		dec = c.ansi.NewDecoder()
	default:
		return "", errors.New("unknown encoding")
	}
	b, err := dec.Bytes(data)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *Codec) charsetName(enc Encoding) string {
	switch enc {
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	case ANSI:
		return c.ansiName
	default:
		return "utf-8"
	}
}

// splitLines breaks text on CRLF, LF or CR. A terminator at the very end
// does not start another line, and empty text has no lines.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
