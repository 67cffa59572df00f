package model

// Grid is the cell surface a presentation layer edits. Snapshots are taken
// from and restored into a Grid; the core never holds a reference to the
// grid's storage.
type Grid interface {
	RowCount() int
	ColumnCount() int
	GetCell(row, col int) string
	SetCell(row, col int, value string)
	HeaderLabel(col int) string
	SetHeaderLabel(col int, label string)
	InsertRow(at int)
	DeleteRow(at int)
	InsertColumn(at int)
	DeleteColumn(at int)
}

// resetter is implemented by grids that can swap their whole content at
// once; Restore uses it instead of rebuilding row by row.
type resetter interface {
	Reset(header []string, cells [][]string)
}

// Sheet is the in-memory Grid owned by the editing session. It is always
// rectangular: every row has ColumnCount cells and there is one label per
// column. Out of range indices are ignored.
type Sheet struct {
	header []string
	cells  [][]string
}

// NewSheet returns a blank rows×cols sheet with empty labels.
func NewSheet(rows, cols int) *Sheet {
	s := &Sheet{header: make([]string, cols), cells: make([][]string, rows)}
	for i := range s.cells {
		s.cells[i] = make([]string, cols)
	}
	return s
}

// Reset replaces the content with copies of header and cells. The column
// count is len(header); rows are padded or truncated to fit.
func (s *Sheet) Reset(header []string, cells [][]string) {
	cols := len(header)
	s.header = append([]string(nil), header...)
	s.cells = make([][]string, len(cells))
	for i, r := range cells {
		s.cells[i] = fitRow(r, cols)
	}
}

func (s *Sheet) RowCount() int    { return len(s.cells) }
func (s *Sheet) ColumnCount() int { return len(s.header) }

func (s *Sheet) inRange(row, col int) bool {
	return row >= 0 && row < len(s.cells) && col >= 0 && col < len(s.header)
}

func (s *Sheet) GetCell(row, col int) string {
	if !s.inRange(row, col) {
		return ""
	}
	return s.cells[row][col]
}

func (s *Sheet) SetCell(row, col int, value string) {
	if s.inRange(row, col) {
		s.cells[row][col] = value
	}
}

func (s *Sheet) HeaderLabel(col int) string {
	if col < 0 || col >= len(s.header) {
		return ""
	}
	return s.header[col]
}

func (s *Sheet) SetHeaderLabel(col int, label string) {
	if col >= 0 && col < len(s.header) {
		s.header[col] = label
	}
}

// InsertRow adds a blank row before at; at == RowCount appends.
func (s *Sheet) InsertRow(at int) {
	if at < 0 || at > len(s.cells) {
		return
	}
	s.cells = append(s.cells, nil)
	copy(s.cells[at+1:], s.cells[at:])
	s.cells[at] = make([]string, len(s.header))
}

func (s *Sheet) DeleteRow(at int) {
	if at < 0 || at >= len(s.cells) {
		return
	}
	s.cells = append(s.cells[:at], s.cells[at+1:]...)
}

// InsertColumn adds a blank, unlabelled column before at; at == ColumnCount
// appends.
func (s *Sheet) InsertColumn(at int) {
	if at < 0 || at > len(s.header) {
		return
	}
	s.header = insertAt(s.header, at)
	for i := range s.cells {
		s.cells[i] = insertAt(s.cells[i], at)
	}
}

func (s *Sheet) DeleteColumn(at int) {
	if at < 0 || at >= len(s.header) {
		return
	}
	s.header = append(s.header[:at], s.header[at+1:]...)
	for i, r := range s.cells {
		s.cells[i] = append(r[:at], r[at+1:]...)
	}
}

// Header returns a copy of the column labels.
func (s *Sheet) Header() []string { return append([]string(nil), s.header...) }

// Rows returns a copy of the cell values.
func (s *Sheet) Rows() [][]string { return cloneRows(s.cells) }

// Table returns the sheet as a Table, with the labels as header row when
// withHeader is set.
func (s *Sheet) Table(withHeader bool) Table {
	t := Table{Rows: s.Rows()}
	if withHeader {
		t.Header = s.Header()
	}
	return t
}

func insertAt(r []string, at int) []string {
	r = append(r, "")
	copy(r[at+1:], r[at:])
	r[at] = ""
	return r
}
