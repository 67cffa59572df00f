package model

// Table is a parsed delimited file: rows of fields, not necessarily of
// equal length, and an optional header row.
type Table struct {
	Header []string   // column labels; nil when the file has no header row
	Rows   [][]string // data rows as read or as they will be written
}

// Width is the length of the longest row, header included.
func (t Table) Width() int {
	w := len(t.Header)
	for _, r := range t.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// Len is the number of data rows.
func (t Table) Len() int { return len(t.Rows) }

// Materialize returns a rectangular copy of the rows: every row padded with
// empty strings or truncated to cols fields.
func (t Table) Materialize(cols int) [][]string {
	out := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = fitRow(r, cols)
	}
	return out
}

// SplitHeader returns a copy of t whose first row has become the header.
// A table with no rows is returned unchanged.
func (t Table) SplitHeader() Table {
	if len(t.Rows) == 0 {
		return t
	}
	return Table{
		Header: append([]string(nil), t.Rows[0]...),
		Rows:   t.Rows[1:],
	}
}

func fitRow(r []string, cols int) []string {
	row := make([]string, cols)
	copy(row, r)
	return row
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
