package fileio

import (
	excelize "github.com/xuri/excelize/v2"

	"csvedit/internal/sheet/model"
)

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return rows, nil
}

// ExportXLSX writes t to a single-sheet workbook, header row first.
func (c *Codec) ExportXLSX(path string, t model.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	all := t.Rows
	if t.Header != nil {
		all = append([][]string{t.Header}, t.Rows...)
	}
	for i, r := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return &IOError{Op: "write", Path: path, Err: err}
		}
		vals := make([]interface{}, len(r))
		for j, v := range r {
			vals[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return &IOError{Op: "write", Path: path, Err: err}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
