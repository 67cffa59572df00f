package fileio

import (
	"fmt"
	"path/filepath"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	"csvedit/internal/sheet/model"
)

// ReadAny picks a reader by extension: workbooks go through the XLS/XLSX
// readers, everything else is treated as delimited text. Workbooks come
// back as UTF8 with a comma separator, which is how they will be saved.
func (c *Codec) ReadAny(path string) (Document, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path)
	case ".xls":
		rows, err = readXLS(path)
	default:
		return c.Read(path)
	}
	if err != nil {
		return Document{}, err
	}
	return Document{Table: trimTrailingBlank(rows), Separator: ',', Encoding: UTF8, Charset: "utf-8"}, nil
}

// ColumnLabel is the spreadsheet name of a zero-based column: A..Z, AA, AB...
func ColumnLabel(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return fmt.Sprintf("Col%d", col+1)
	}
	return name
}

// HeaderLabels returns cols labels taken from header; columns past the end
// of header get their spreadsheet name.
func HeaderLabels(header []string, cols int) []string {
	out := make([]string, cols)
	for i := range out {
		if i < len(header) {
			out[i] = header[i]
		} else {
			out[i] = ColumnLabel(i)
		}
	}
	return out
}

// trimTrailingBlank drops fully blank rows at the bottom of a sheet; the
// workbook readers report the used range, which often ends in empty rows.
func trimTrailingBlank(rows [][]string) model.Table {
	end := len(rows)
	for end > 0 && blankRow(rows[end-1]) {
		end--
	}
	return model.Table{Rows: rows[:end]}
}

func blankRow(r []string) bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
