package command

import (
	"context"
	"fmt"

	"csvedit/internal/fileio"
	"csvedit/internal/sheet/service"
)

// Kind names a user action. The presentation layer maps its menu items,
// shortcuts and grid events onto these.
type Kind int

const (
	New Kind = iota
	Open
	Load
	Save
	SaveAs
	Close
	Import
	Export
	Undo
	Redo
	InsertRowAbove
	InsertRowBelow
	InsertColumnLeft
	InsertColumnRight
	DeleteRow
	DeleteColumn
	BeginEdit
	CommitEdit
	CancelEdit
	RenameHeader
	ResizeColumn
	ResizeRow
	SetEncoding
	SetSeparator
	SetLanguage
)

var kindNames = [...]string{
	New:               "new",
	Open:              "open",
	Load:              "load",
	Save:              "save",
	SaveAs:            "save_as",
	Close:             "close",
	Import:            "import",
	Export:            "export",
	Undo:              "undo",
	Redo:              "redo",
	InsertRowAbove:    "insert_row_above",
	InsertRowBelow:    "insert_row_below",
	InsertColumnLeft:  "insert_column_left",
	InsertColumnRight: "insert_column_right",
	DeleteRow:         "delete_row",
	DeleteColumn:      "delete_column",
	BeginEdit:         "begin_edit",
	CommitEdit:        "commit_edit",
	CancelEdit:        "cancel_edit",
	RenameHeader:      "rename_header",
	ResizeColumn:      "resize_column",
	ResizeRow:         "resize_row",
	SetEncoding:       "set_encoding",
	SetSeparator:      "set_separator",
	SetLanguage:       "set_language",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Kinds lists every command in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Request carries a command and whatever arguments it uses. Fields a
// command does not use are ignored.
type Request struct {
	ID   string // set by the request id middleware when empty
	Kind Kind

	Path      string
	Row, Col  int
	Rows      []int // selection for DeleteRow; Row is used when empty
	Cols      []int // selection for DeleteColumn; Col is used when empty
	Value     string
	HasHeader bool
	Encoding  fileio.Encoding
	Separator rune
	Language  string
}

// Result is what a command leaves behind for the view to render.
type Result struct {
	Status   service.Status
	Document *fileio.Document // detection result of Open
	Changed  bool             // false when Undo or Redo had nothing to do
}

type HandlerFunc func(ctx context.Context, req Request) (Result, error)

// Middleware decorates a HandlerFunc.
type Middleware func(HandlerFunc) HandlerFunc

// Chain wraps h so that mw[0] runs first.
func Chain(h HandlerFunc, mw ...Middleware) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
