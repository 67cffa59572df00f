package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"csvedit/internal/fileio"
	"csvedit/internal/sheet/model"
)

var (
	ErrEmptyFile        = errors.New("file is empty")
	ErrNoPath           = errors.New("document has no file name")
	ErrInvalidSeparator = errors.New("invalid separator")
	ErrInvalidEncoding  = errors.New("invalid encoding")
	ErrNotEditing       = errors.New("no cell is being edited")
	ErrOutOfRange       = errors.New("index out of range")
)

// Size of the grid a new document starts with.
const (
	newRows = 10
	newCols = 5
)

// AppTitle prefixes the window title.
const AppTitle = "CSV++"

// EventKind says what a session notification is about.
type EventKind int

const (
	EventReset    EventKind = iota // the whole grid was replaced: new, load, close
	EventChanged                   // cells, labels or structure changed
	EventSaved                     // the document was written to disk
	EventFormat                    // encoding or separator changed
	EventResized                   // a column or row was resized
	EventEditing                   // an edit session began or ended
)

// Event is delivered to listeners after every state change.
type Event struct {
	Kind   EventKind
	Status Status
}

// Listener observes a session. Listeners run synchronously on the caller's
// goroutine and may call back into the session.
type Listener func(Event)

// LoadOptions are the choices of the open dialog.
type LoadOptions struct {
	Encoding  fileio.Encoding
	Separator rune // zero detects from content
	HasHeader bool
}

// Status is the summary a status bar and title bar are built from.
type Status struct {
	Path      string
	Rows      int
	Columns   int
	Encoding  fileio.Encoding
	Separator rune
	HasHeader bool
	Dirty     bool
	Editing   bool
	CanUndo   bool
	CanRedo   bool
}

// Title renders "CSV++ - name.csv *".
func (s Status) Title() string {
	t := AppTitle
	if s.Path != "" {
		t += " - " + filepath.Base(s.Path)
	}
	if s.Dirty {
		t += " *"
	}
	return t
}

// Session is one open document: the sheet being edited, its file format,
// and the undo/redo history guarding it. A Session is driven by a single
// caller and is not safe for concurrent use.
type Session struct {
	log     zerolog.Logger
	codec   *fileio.Codec
	sheet   *model.Sheet
	history *History

	path      string
	encoding  fileio.Encoding
	separator rune
	hasHeader bool
	dirty     bool

	// replaying is set while a history entry is being restored so that
	// nothing triggered by the restore records a new snapshot.
	replaying bool

	editing          bool
	editRow, editCol int

	listeners []Listener
}

// NewSession returns a session holding a new blank document.
func NewSession(codec *fileio.Codec, depth int, logger zerolog.Logger) *Session {
	if codec == nil {
		codec = fileio.DefaultCodec()
	}
	s := &Session{
		log:     logger,
		codec:   codec,
		sheet:   model.NewSheet(0, 0),
		history: NewHistory(depth),
	}
	s.New()
	return s
}

// Subscribe adds a listener for session events.
func (s *Session) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Session) notify(kind EventKind) {
	ev := Event{Kind: kind, Status: s.Status()}
	for _, l := range s.listeners {
		l(ev)
	}
}

// Status reports the current document state.
func (s *Session) Status() Status {
	return Status{
		Path:      s.path,
		Rows:      s.sheet.RowCount(),
		Columns:   s.sheet.ColumnCount(),
		Encoding:  s.encoding,
		Separator: s.separator,
		HasHeader: s.hasHeader,
		Dirty:     s.dirty,
		Editing:   s.editing,
		CanUndo:   s.history.CanUndo(),
		CanRedo:   s.history.CanRedo(),
	}
}

// Snapshot returns a copy of the grid for rendering.
func (s *Session) Snapshot() model.Snapshot { return model.Capture(s.sheet) }

func (s *Session) Cell(row, col int) string      { return s.sheet.GetCell(row, col) }
func (s *Session) HeaderLabel(col int) string    { return s.sheet.HeaderLabel(col) }
func (s *Session) History() *History             { return s.history }
func (s *Session) EditingCell() (int, int, bool) { return s.editRow, s.editCol, s.editing }

// record pushes the pre-edit state unless a history entry is being replayed.
func (s *Session) record() {
	if s.replaying {
		return
	}
	s.history.Push(model.Capture(s.sheet))
	s.log.Debug().Int("undo", s.history.UndoLen()).Msg("snapshot recorded")
}

func (s *Session) touch(kind EventKind) {
	s.dirty = true
	s.notify(kind)
}

// New replaces the document with a blank 10×5 grid labelled A..E.
func (s *Session) New() {
	labels := fileio.HeaderLabels(nil, newCols)
	s.sheet.Reset(labels, make([][]string, newRows))
	s.path = ""
	s.encoding = fileio.UTF8
	s.separator = ','
	s.hasHeader = false
	s.resetState()
	s.notify(EventReset)
}

func (s *Session) resetState() {
	s.dirty = false
	s.editing = false
	s.history.Clear()
}

// Open detects the format of path without touching the document. The
// result seeds the open dialog, whose choices are then passed to Load.
func (s *Session) Open(path string) (fileio.Document, error) {
	doc, err := s.codec.ReadAny(path)
	if err != nil {
		return fileio.Document{}, err
	}
	s.log.Debug().
		Str("path", path).
		Str("enc", doc.Encoding.String()).
		Str("sep", fileio.SeparatorName(doc.Separator)).
		Int("rows", doc.Table.Len()).
		Msg("detected")
	return doc, nil
}

// Load reads path as delimited text with the given options and replaces
// the document. On failure the current document is left untouched.
func (s *Session) Load(path string, opts LoadOptions) error {
	doc, err := s.codec.ReadAs(path, opts.Encoding, opts.Separator)
	if err != nil {
		return err
	}
	if err := s.apply(doc, opts.HasHeader); err != nil {
		return err
	}
	s.path = path
	s.encoding = doc.Encoding
	s.separator = doc.Separator
	s.notify(EventReset)
	s.log.Info().
		Str("path", path).
		Str("enc", doc.Encoding.String()).
		Str("sep", fileio.SeparatorName(doc.Separator)).
		Int("rows", s.sheet.RowCount()).
		Int("cols", s.sheet.ColumnCount()).
		Msg("loaded")
	return nil
}

// Import loads a workbook (or any file ReadAny understands) as an untitled
// document, so that a later Save asks for a CSV file name instead of
// overwriting the workbook.
func (s *Session) Import(path string, hasHeader bool) error {
	doc, err := s.codec.ReadAny(path)
	if err != nil {
		return err
	}
	if err := s.apply(doc, hasHeader); err != nil {
		return err
	}
	s.path = ""
	s.encoding = doc.Encoding
	s.separator = doc.Separator
	s.notify(EventReset)
	s.log.Info().Str("path", path).Int("rows", s.sheet.RowCount()).Msg("imported")
	return nil
}

func (s *Session) apply(doc fileio.Document, hasHeader bool) error {
	t := doc.Table
	if t.Len() == 0 {
		return ErrEmptyFile
	}
	cols := t.Width()
	if hasHeader {
		t = t.SplitHeader()
	}
	s.sheet.Reset(fileio.HeaderLabels(t.Header, cols), t.Materialize(cols))
	s.hasHeader = hasHeader
	s.resetState()
	return nil
}

// Save writes the document to its current path.
func (s *Session) Save() error {
	if s.path == "" {
		return ErrNoPath
	}
	return s.SaveAs(s.path)
}

// SaveAs writes the document to path in the current encoding and separator
// and makes path the document's file name. The labels are written as the
// first row when the document has a header.
func (s *Session) SaveAs(path string) error {
	if err := s.codec.Write(path, s.sheet.Table(s.hasHeader), s.separator, s.encoding); err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("save failed")
		return err
	}
	s.path = path
	s.dirty = false
	s.notify(EventSaved)
	s.log.Info().Str("path", path).Str("enc", s.encoding.String()).Msg("saved")
	return nil
}

// Export writes the document to an .xlsx workbook. The document keeps its
// file name and dirty state.
func (s *Session) Export(path string) error {
	if err := s.codec.ExportXLSX(path, s.sheet.Table(s.hasHeader)); err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("export failed")
		return err
	}
	s.log.Info().Str("path", path).Msg("exported")
	return nil
}

// Close empties the grid and forgets the file.
func (s *Session) Close() {
	s.sheet.Reset(nil, nil)
	s.path = ""
	s.encoding = fileio.UTF8
	s.separator = ','
	s.hasHeader = false
	s.resetState()
	s.notify(EventReset)
}

// BeginEdit opens an edit session on a cell. The pre-edit state is
// recorded once here; keystrokes inside the session record nothing.
func (s *Session) BeginEdit(row, col int) error {
	if !s.validCell(row, col) {
		return fmt.Errorf("cell %d,%d: %w", row, col, ErrOutOfRange)
	}
	s.editing = false
	s.record()
	s.editing, s.editRow, s.editCol = true, row, col
	s.notify(EventEditing)
	return nil
}

// CommitEdit stores value in the cell being edited and ends the session.
func (s *Session) CommitEdit(value string) error {
	if !s.editing {
		return ErrNotEditing
	}
	s.editing = false
	s.sheet.SetCell(s.editRow, s.editCol, value)
	s.touch(EventChanged)
	return nil
}

// CancelEdit ends the edit session without changing the cell.
func (s *Session) CancelEdit() {
	if !s.editing {
		return
	}
	s.editing = false
	s.notify(EventEditing)
}

// InsertRow adds a blank row before at; at == row count appends.
func (s *Session) InsertRow(at int) error {
	if at < 0 || at > s.sheet.RowCount() {
		return fmt.Errorf("row %d: %w", at, ErrOutOfRange)
	}
	s.record()
	s.sheet.InsertRow(at)
	s.touch(EventChanged)
	return nil
}

// InsertColumn adds a blank column before at, labelled with its
// spreadsheet name; at == column count appends.
func (s *Session) InsertColumn(at int) error {
	if at < 0 || at > s.sheet.ColumnCount() {
		return fmt.Errorf("column %d: %w", at, ErrOutOfRange)
	}
	s.record()
	s.sheet.InsertColumn(at)
	s.sheet.SetHeaderLabel(at, fileio.ColumnLabel(at))
	s.touch(EventChanged)
	return nil
}

// DeleteRows removes every listed row as a single undoable step.
func (s *Session) DeleteRows(rows ...int) error {
	idx, err := descending(rows, s.sheet.RowCount(), "row")
	if err != nil {
		return err
	}
	s.record()
	for _, r := range idx {
		s.sheet.DeleteRow(r)
	}
	s.touch(EventChanged)
	return nil
}

// DeleteColumns removes every listed column as a single undoable step.
func (s *Session) DeleteColumns(cols ...int) error {
	idx, err := descending(cols, s.sheet.ColumnCount(), "column")
	if err != nil {
		return err
	}
	s.record()
	for _, c := range idx {
		s.sheet.DeleteColumn(c)
	}
	s.touch(EventChanged)
	return nil
}

// RenameHeader sets a column label. A renamed label is user data, so the
// document is saved with a header row from now on.
func (s *Session) RenameHeader(col int, label string) error {
	if col < 0 || col >= s.sheet.ColumnCount() {
		return fmt.Errorf("column %d: %w", col, ErrOutOfRange)
	}
	s.record()
	s.sheet.SetHeaderLabel(col, label)
	s.hasHeader = true
	s.touch(EventChanged)
	return nil
}

// ResizeColumn is a view-only change: it never records history and never
// dirties the document.
func (s *Session) ResizeColumn(col int) error {
	if col < 0 || col >= s.sheet.ColumnCount() {
		return fmt.Errorf("column %d: %w", col, ErrOutOfRange)
	}
	s.notify(EventResized)
	return nil
}

// ResizeRow is the row counterpart of ResizeColumn.
func (s *Session) ResizeRow(row int) error {
	if row < 0 || row >= s.sheet.RowCount() {
		return fmt.Errorf("row %d: %w", row, ErrOutOfRange)
	}
	s.notify(EventResized)
	return nil
}

// SetEncoding changes the encoding used by the next save.
func (s *Session) SetEncoding(enc fileio.Encoding) error {
	if enc < fileio.UTF8 || enc > fileio.UTF16BE {
		return ErrInvalidEncoding
	}
	s.encoding = enc
	s.touch(EventFormat)
	return nil
}

// SetSeparator changes the separator used by the next save. The quote
// character and line breaks cannot be separators.
func (s *Session) SetSeparator(sep rune) error {
	switch sep {
	case 0, '"', '\r', '\n':
		return fmt.Errorf("%q: %w", sep, ErrInvalidSeparator)
	}
	s.separator = sep
	s.touch(EventFormat)
	return nil
}

// Undo restores the state before the last edit. It reports false when
// there is nothing to undo.
func (s *Session) Undo() bool {
	s.CancelEdit()
	snap, ok := s.history.Undo(model.Capture(s.sheet))
	if !ok {
		return false
	}
	s.replay(snap)
	return true
}

// Redo reapplies the last undone edit.
func (s *Session) Redo() bool {
	s.CancelEdit()
	snap, ok := s.history.Redo(model.Capture(s.sheet))
	if !ok {
		return false
	}
	s.replay(snap)
	return true
}

// replay restores snap. Listeners are notified while replaying is still
// set, so whatever they do in response cannot record history.
func (s *Session) replay(snap model.Snapshot) {
	s.replaying = true
	defer func() { s.replaying = false }()
	snap.Restore(s.sheet)
	s.touch(EventChanged)
}

func (s *Session) validCell(row, col int) bool {
	return row >= 0 && row < s.sheet.RowCount() && col >= 0 && col < s.sheet.ColumnCount()
}

// descending validates indexes against n, drops duplicates and sorts them
// from last to first so deleting one does not shift the next.
func descending(idx []int, n int, what string) ([]int, error) {
	if len(idx) == 0 {
		return nil, fmt.Errorf("no %s selected: %w", what, ErrOutOfRange)
	}
	seen := make(map[int]struct{}, len(idx))
	out := make([]int, 0, len(idx))
	for _, i := range idx {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%s %d: %w", what, i, ErrOutOfRange)
		}
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out, nil
}
