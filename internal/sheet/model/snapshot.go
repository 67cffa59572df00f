package model

// Snapshot is a full copy of a grid at one instant: dimensions, labels and
// every cell. It never shares storage with the grid it was taken from, and
// its accessors hand out copies, so a pushed snapshot cannot change.
type Snapshot struct {
	header []string
	cells  [][]string
}

// Capture copies the current content of g.
func Capture(g Grid) Snapshot {
	rows, cols := g.RowCount(), g.ColumnCount()
	s := Snapshot{header: make([]string, cols), cells: make([][]string, rows)}
	for c := 0; c < cols; c++ {
		s.header[c] = g.HeaderLabel(c)
	}
	for r := 0; r < rows; r++ {
		row := make([]string, cols)
		for c := 0; c < cols; c++ {
			row[c] = g.GetCell(r, c)
		}
		s.cells[r] = row
	}
	return s
}

// Restore replaces the content of g with the snapshot.
func (s Snapshot) Restore(g Grid) {
	if rs, ok := g.(resetter); ok {
		rs.Reset(s.header, s.cells)
		return
	}

	for g.RowCount() > 0 {
		g.DeleteRow(g.RowCount() - 1)
	}
	for g.ColumnCount() > 0 {
		g.DeleteColumn(g.ColumnCount() - 1)
	}
	for c := range s.header {
		g.InsertColumn(c)
		g.SetHeaderLabel(c, s.header[c])
	}
	for r, row := range s.cells {
		g.InsertRow(r)
		for c, v := range row {
			g.SetCell(r, c, v)
		}
	}
}

func (s Snapshot) RowCount() int    { return len(s.cells) }
func (s Snapshot) ColumnCount() int { return len(s.header) }

func (s Snapshot) Cell(row, col int) string {
	if row < 0 || row >= len(s.cells) || col < 0 || col >= len(s.header) {
		return ""
	}
	return s.cells[row][col]
}

func (s Snapshot) HeaderLabel(col int) string {
	if col < 0 || col >= len(s.header) {
		return ""
	}
	return s.header[col]
}

// Header returns a copy of the labels.
func (s Snapshot) Header() []string { return append([]string(nil), s.header...) }

// Rows returns a copy of the cells.
func (s Snapshot) Rows() [][]string { return cloneRows(s.cells) }

// Equal reports whether two snapshots hold the same labels and cells.
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s.header) != len(o.header) || len(s.cells) != len(o.cells) {
		return false
	}
	for i := range s.header {
		if s.header[i] != o.header[i] {
			return false
		}
	}
	for r := range s.cells {
		for c := range s.cells[r] {
			if s.cells[r][c] != o.cells[r][c] {
				return false
			}
		}
	}
	return true
}
