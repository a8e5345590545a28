package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/thedatashed/xlsxreader"
	"github.com/xuri/excelize/v2"
)

// SheetInfo summarizes one sheet for layout diagnostics.
type SheetInfo struct {
	Name        string       `json:"name"`
	RowCount    int          `json:"row_count"`
	ColumnCount int          `json:"column_count"`
	DataRange   string       `json:"data_range,omitempty"`
	PrintArea   string       `json:"print_area,omitempty"`
	Columns     []ColumnInfo `json:"columns,omitempty"`
	NamedRanges []NamedRange `json:"named_ranges,omitempty"`
}

// ColumnInfo describes one column of a sheet's data range.
type ColumnInfo struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Sample string `json:"sample,omitempty"`
}

// Inspect reports row and column counts, the detected data range and
// per-column value types, the print area and the named ranges of every sheet
// of a workbook. OOXML sheets are streamed; legacy workbooks go through
// OpenWorkbook.
func Inspect(name string, data []byte) ([]SheetInfo, error) {
	if strings.EqualFold(filepath.Ext(name), ".xls") {
		return inspectWorkbook(name, data)
	}

	wb, err := OpenWorkbook(name, data)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	names := wb.DefinedNames()

	xl, err := xlsxreader.NewReader(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	infos := make([]SheetInfo, 0, len(xl.Sheets))
	for _, sheet := range xl.Sheets {
		rows, err := streamRows(xl, sheet)
		if err != nil {
			return nil, err
		}
		info := describeSheet(sheet, rows)
		info.setNames(names)
		infos = append(infos, info)
	}
	return infos, nil
}

// streamRows collects the rows of sheet. The row channel is always drained
// so the reader goroutine can exit; the first row error is returned.
func streamRows(xl *xlsxreader.XlsxFile, sheet string) ([][]string, error) {
	var rows [][]string
	var firstErr error
	for row := range xl.ReadRows(sheet) {
		if firstErr != nil {
			continue
		}
		if row.Error != nil {
			firstErr = fmt.Errorf("sheet %q: %w", sheet, row.Error)
			continue
		}
		if row.Index < 1 {
			continue
		}
		for len(rows) < row.Index {
			rows = append(rows, nil)
		}
		values := rows[row.Index-1]
		for _, cell := range row.Cells {
			idx := cell.ColumnIndex()
			for len(values) <= idx {
				values = append(values, "")
			}
			values[idx] = cell.Value
		}
		rows[row.Index-1] = values
	}
	return rows, firstErr
}

// setNames attaches the defined names that refer to the sheet. The print
// area is reported on its own.
func (info *SheetInfo) setNames(names []NamedRange) {
	for _, n := range names {
		if n.Sheet != info.Name {
			continue
		}
		if n.IsPrintArea() {
			info.PrintArea = n.Range
			continue
		}
		info.NamedRanges = append(info.NamedRanges, n)
	}
}

func inspectWorkbook(name string, data []byte) ([]SheetInfo, error) {
	wb, err := OpenWorkbook(name, data)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	names := wb.DefinedNames()
	var infos []SheetInfo
	for _, sheet := range wb.SheetList() {
		rows, err := wb.Rows(sheet)
		if err != nil {
			return nil, err
		}
		info := describeSheet(sheet, rows)
		info.setNames(names)
		infos = append(infos, info)
	}
	return infos, nil
}

func describeSheet(name string, rows [][]string) SheetInfo {
	info := SheetInfo{Name: name, RowCount: len(rows)}
	for _, row := range rows {
		if len(row) > info.ColumnCount {
			info.ColumnCount = len(row)
		}
	}

	b, ok := scanBlock(rows)
	if !ok || !b.dense(DefaultTableParams()) {
		return info
	}
	info.DataRange = b.String()

	for c := b.left; c <= b.right; c++ {
		colName, _ := excelize.ColumnNumberToName(c + 1)
		col := ColumnInfo{Name: colName, Type: "empty"}
		// The first row of the range is usually the header.
		for r := b.top + 1; r <= b.bottom; r++ {
			if c >= len(rows[r]) {
				continue
			}
			if v := cleanCell(rows[r][c]); v != "" {
				col.Type = valueType(v)
				col.Sample = v
				break
			}
		}
		info.Columns = append(info.Columns, col)
	}
	return info
}
