package fileio

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"csvedit/internal/sheet/model"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestReadUTF8(t *testing.T) {
	path := writeFile(t, "plain.csv", []byte("name;qty\r\n\"a;b\";1\r\nc;2\r\n"))

	doc, err := DefaultCodec().Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if doc.Encoding != UTF8 {
		t.Errorf("Encoding = %v, want UTF8", doc.Encoding)
	}
	if doc.Separator != ';' {
		t.Errorf("Separator = %q, want ';'", doc.Separator)
	}
	want := [][]string{{"name", "qty"}, {"a;b", "1"}, {"c", "2"}}
	if !reflect.DeepEqual(doc.Table.Rows, want) {
		t.Errorf("Rows = %q, want %q", doc.Table.Rows, want)
	}
}

func TestReadStripsUTF8BOM(t *testing.T) {
	path := writeFile(t, "bom.csv", append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b\nc,d")...))

	doc, err := DefaultCodec().Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if doc.Encoding != UTF8BOM {
		t.Errorf("Encoding = %v, want UTF8BOM", doc.Encoding)
	}
	if got := doc.Table.Rows[0][0]; got != "a" {
		t.Errorf("first field = %q, want %q", got, "a")
	}
}

func TestReadBlankLines(t *testing.T) {
	content := []byte("\na,b\n\nc,d\n\n")

	doc, err := DefaultCodec().Read(writeFile(t, "blank.csv", content))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := [][]string{{""}, {"a", "b"}, {"c", "d"}}
	if !reflect.DeepEqual(doc.Table.Rows, want) {
		t.Errorf("Rows = %q, want %q", doc.Table.Rows, want)
	}

	keep, err := NewCodec(Options{KeepBlankLines: true})
	if err != nil {
		t.Fatal(err)
	}
	doc, err = keep.Read(writeFile(t, "blank.csv", content))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want = [][]string{{""}, {"a", "b"}, {""}, {"c", "d"}, {""}}
	if !reflect.DeepEqual(doc.Table.Rows, want) {
		t.Errorf("KeepBlankLines Rows = %q, want %q", doc.Table.Rows, want)
	}
}

func TestReadEmptyFile(t *testing.T) {
	doc, err := DefaultCodec().Read(writeFile(t, "empty.csv", nil))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if doc.Table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", doc.Table.Len())
	}
	if doc.Separator != ',' {
		t.Errorf("Separator = %q, want ','", doc.Separator)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := DefaultCodec().Read(filepath.Join(t.TempDir(), "nope.csv"))
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Read() error = %v, want *IOError", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error %v does not unwrap to fs.ErrNotExist", err)
	}
}

func TestWriteBytes(t *testing.T) {
	table := model.Table{Rows: [][]string{{"a", "b,c"}}}
	tests := []struct {
		name string
		enc  Encoding
		want []byte
	}{
		{"utf8", UTF8, []byte("a,\"b,c\"\r\n")},
		{"utf8 bom", UTF8BOM, append([]byte{0xEF, 0xBB, 0xBF}, "a,\"b,c\"\r\n"...)},
		{"utf16 le", UTF16LE, []byte{0xFF, 0xFE, 'a', 0, ',', 0, '"', 0, 'b', 0, ',', 0, 'c', 0, '"', 0, '\r', 0, '\n', 0}},
		{"utf16 be", UTF16BE, []byte{0xFE, 0xFF, 0, 'a', 0, ',', 0, '"', 0, 'b', 0, ',', 0, 'c', 0, '"', 0, '\r', 0, '\n'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.csv")
			if err := DefaultCodec().Write(path, table, ',', tt.enc); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("bytes = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestWriteANSI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ansi.csv")
	table := model.Table{Rows: [][]string{{"café", "x"}}}
	if err := DefaultCodec().Write(path, table, ';', ANSI); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{'c', 'a', 'f', 0xE9, ';', 'x', '\r', '\n'}
	if !bytes.Equal(got, want) {
		t.Errorf("bytes = % x, want % x", got, want)
	}
}

func TestWriteHeaderFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.csv")
	table := model.Table{Header: []string{"id", "name"}, Rows: [][]string{{"1", "x"}}}
	if err := DefaultCodec().Write(path, table, ',', UTF8); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "id,name\r\n1,x\r\n" {
		t.Errorf("content = %q", got)
	}
}

func TestWriteUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "x.csv")
	err := DefaultCodec().Write(path, model.Table{Rows: [][]string{{"a"}}}, ',', UTF8)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Write() error = %v, want *IOError", err)
	}
	if ioErr.Path != path {
		t.Errorf("Path = %q, want %q", ioErr.Path, path)
	}
}

func TestRoundTripAllEncodings(t *testing.T) {
	rows := [][]string{
		{"id", "naziv", "opis"},
		{"1", "Čačak", `say "hi"`},
		{"2", "", "x;y,z"},
	}
	for _, enc := range []Encoding{UTF8, UTF8BOM, UTF16LE, UTF16BE} {
		t.Run(enc.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "rt.csv")
			c := DefaultCodec()
			if err := c.Write(path, model.Table{Rows: rows}, ';', enc); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			doc, err := c.Read(path)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if doc.Encoding != enc {
				t.Errorf("Encoding = %v, want %v", doc.Encoding, enc)
			}
			if doc.Separator != ';' {
				t.Errorf("Separator = %q, want ';'", doc.Separator)
			}
			if !reflect.DeepEqual(doc.Table.Rows, rows) {
				t.Errorf("Rows = %q, want %q", doc.Table.Rows, rows)
			}
		})
	}
}

func TestReadAsANSI(t *testing.T) {
	c, err := NewCodec(Options{CodePage: "windows-1250"})
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "cp1250.csv")
	rows := [][]string{{"Šabac", "Čačak"}}
	if err := c.Write(path, model.Table{Rows: rows}, ',', ANSI); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	doc, err := c.ReadAs(path, ANSI, 0)
	if err != nil {
		t.Fatalf("ReadAs() error = %v", err)
	}
	if !reflect.DeepEqual(doc.Table.Rows, rows) {
		t.Errorf("Rows = %q, want %q", doc.Table.Rows, rows)
	}
	if doc.Charset != c.CodePage() {
		t.Errorf("Charset = %q, want %q", doc.Charset, c.CodePage())
	}
}

func TestReadAsOverridesSeparator(t *testing.T) {
	path := writeFile(t, "x.csv", []byte("a,b|c\n"))
	doc, err := DefaultCodec().ReadAs(path, UTF8, '|')
	if err != nil {
		t.Fatalf("ReadAs() error = %v", err)
	}
	want := [][]string{{"a,b", "c"}}
	if !reflect.DeepEqual(doc.Table.Rows, want) {
		t.Errorf("Rows = %q, want %q", doc.Table.Rows, want)
	}
}

func TestNewCodecUnknownCodePage(t *testing.T) {
	if _, err := NewCodec(Options{CodePage: "no-such-page"}); err == nil {
		t.Fatal("NewCodec() accepted an unknown code page")
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\r\nb\r\n", []string{"a", "b"}},
		{"a\rb\nc", []string{"a", "b", "c"}},
		{"\n", []string{""}},
		{"a\n\nb", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		if got := splitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExportImportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	c := DefaultCodec()
	table := model.Table{Header: []string{"id", "name"}, Rows: [][]string{{"1", "a"}, {"2", "b"}}}
	if err := c.ExportXLSX(path, table); err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}

	doc, err := c.ReadAny(path)
	if err != nil {
		t.Fatalf("ReadAny() error = %v", err)
	}
	want := [][]string{{"id", "name"}, {"1", "a"}, {"2", "b"}}
	if !reflect.DeepEqual(doc.Table.Rows, want) {
		t.Errorf("Rows = %q, want %q", doc.Table.Rows, want)
	}
	if doc.Separator != ',' || doc.Encoding != UTF8 {
		t.Errorf("got %q/%v, want ','/UTF8", doc.Separator, doc.Encoding)
	}
}

func TestReadAnyFallsBackToText(t *testing.T) {
	path := writeFile(t, "data.txt", []byte("a\tb\n"))
	doc, err := DefaultCodec().ReadAny(path)
	if err != nil {
		t.Fatalf("ReadAny() error = %v", err)
	}
	if doc.Separator != '\t' {
		t.Errorf("Separator = %q, want tab", doc.Separator)
	}
}

func TestHeaderLabels(t *testing.T) {
	got := HeaderLabels([]string{"id", ""}, 4)
	want := []string{"id", "", "C", "D"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("HeaderLabels = %q, want %q", got, want)
	}
	if l := ColumnLabel(26); l != "AA" {
		t.Errorf("ColumnLabel(26) = %q, want AA", l)
	}
}
