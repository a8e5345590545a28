// Package parser provides workbook reading utilities for the tracker layout.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound indicates a layout sheet is missing from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrUnsupportedFormat indicates the workbook could not be opened.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// maxXLSRows bounds the rows read from a legacy sheet.
const maxXLSRows = 100000

// Workbook is a read-only view over the sheets of a workbook.
type Workbook interface {
	// SheetList returns the sheet names in workbook order.
	SheetList() []string
	// Rows returns the formatted (display) cell values of a sheet.
	Rows(sheet string) ([][]string, error)
	// RawRows returns the unformatted cell values of a sheet.
	RawRows(sheet string) ([][]string, error)
	// DefinedNames returns the defined names that refer to cell blocks.
	DefinedNames() []NamedRange
	Close() error
}

// OpenWorkbook opens workbook bytes. The format is chosen from the file
// extension of name: ".xls" is read as a legacy BIFF workbook, anything else
// as OOXML.
func OpenWorkbook(name string, data []byte) (Workbook, error) {
	if strings.EqualFold(filepath.Ext(name), ".xls") {
		wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return &xlsWorkbook{wb: wb}, nil
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return &excelWorkbook{f: f}, nil
}

// NewExcelWorkbook wraps an already opened excelize file.
func NewExcelWorkbook(f *excelize.File) Workbook {
	return &excelWorkbook{f: f}
}

type excelWorkbook struct {
	f *excelize.File
}

func (w *excelWorkbook) SheetList() []string {
	return w.f.GetSheetList()
}

func (w *excelWorkbook) Rows(sheet string) ([][]string, error) {
	if !hasSheet(w, sheet) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	return w.f.GetRows(sheet)
}

func (w *excelWorkbook) RawRows(sheet string) ([][]string, error) {
	if !hasSheet(w, sheet) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	return w.f.GetRows(sheet, excelize.Options{RawCellValue: true})
}

func (w *excelWorkbook) DefinedNames() []NamedRange {
	return definedNames(w.f)
}

func (w *excelWorkbook) Close() error {
	return w.f.Close()
}

type xlsWorkbook struct {
	wb *xls.WorkBook
}

func (w *xlsWorkbook) SheetList() []string {
	names := make([]string, 0, w.wb.NumSheets())
	for i := 0; i < w.wb.NumSheets(); i++ {
		if sheet := w.wb.GetSheet(i); sheet != nil {
			names = append(names, sheet.Name)
		}
	}
	return names
}

func (w *xlsWorkbook) Rows(sheet string) ([][]string, error) {
	var ws *xls.WorkSheet
	for i := 0; i < w.wb.NumSheets(); i++ {
		if s := w.wb.GetSheet(i); s != nil && s.Name == sheet {
			ws = s
			break
		}
	}
	if ws == nil {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	last := int(ws.MaxRow)
	if last >= maxXLSRows {
		last = maxXLSRows - 1
	}
	rows := make([][]string, 0, last+1)
	for r := 0; r <= last; r++ {
		row := ws.Row(r)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		values := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			values[c] = row.Col(c)
		}
		rows = append(rows, values)
	}
	return rows, nil
}

// RawRows returns the same values as Rows: legacy cells carry no separate
// display format.
func (w *xlsWorkbook) RawRows(sheet string) ([][]string, error) {
	return w.Rows(sheet)
}

// DefinedNames returns nil: legacy workbooks are read without their name
// table.
func (w *xlsWorkbook) DefinedNames() []NamedRange {
	return nil
}

func (w *xlsWorkbook) Close() error {
	return nil
}

func hasSheet(w Workbook, sheet string) bool {
	for _, name := range w.SheetList() {
		if name == sheet {
			return true
		}
	}
	return false
}
