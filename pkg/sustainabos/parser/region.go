package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidRegion indicates a region or column reference that cannot be
// resolved against the sheet.
var ErrInvalidRegion = errors.New("invalid region")

// Region is a fixed rectangular block of a sheet.
type Region struct {
	// Sheet is the sheet name.
	Sheet string `yaml:"sheet"`
	// FirstRow is the first row of the block (1-based).
	FirstRow int `yaml:"first_row"`
	// MaxRows caps the number of rows read; 0 reads to the end of the sheet.
	MaxRows int `yaml:"max_rows"`
	// Columns is the column span, e.g. "B:J" or "A".
	Columns string `yaml:"columns"`
}

// Span returns the first and last column numbers (1-based, inclusive).
func (r Region) Span() (first, last int, err error) {
	parts := strings.Split(strings.ReplaceAll(r.Columns, "$", ""), ":")
	if len(parts) > 2 || strings.TrimSpace(parts[0]) == "" {
		return 0, 0, fmt.Errorf("%w: columns %q", ErrInvalidRegion, r.Columns)
	}
	first, err = excelize.ColumnNameToNumber(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidRegion, err)
	}
	last = first
	if len(parts) == 2 {
		last, err = excelize.ColumnNameToNumber(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrInvalidRegion, err)
		}
	}
	if last < first {
		return 0, 0, fmt.Errorf("%w: columns %q are reversed", ErrInvalidRegion, r.Columns)
	}
	return first, last, nil
}

// Validate checks that the region can be resolved.
func (r Region) Validate() error {
	if r.Sheet == "" {
		return fmt.Errorf("%w: sheet name is required", ErrInvalidRegion)
	}
	if r.FirstRow < 1 {
		return fmt.Errorf("%w: first_row must be >= 1, got %d", ErrInvalidRegion, r.FirstRow)
	}
	if r.MaxRows < 0 {
		return fmt.Errorf("%w: max_rows must be >= 0, got %d", ErrInvalidRegion, r.MaxRows)
	}
	_, _, err := r.Span()
	return err
}

// String returns the region in A1 notation, e.g. "Tracker!B8:J425".
func (r Region) String() string {
	first, last, err := r.Span()
	if err != nil {
		return fmt.Sprintf("%s!%s", r.Sheet, r.Columns)
	}
	start, _ := excelize.CoordinatesToCellName(first, r.FirstRow)
	if r.MaxRows == 0 {
		end, _ := excelize.ColumnNumberToName(last)
		return fmt.Sprintf("%s!%s:%s", r.Sheet, start, end)
	}
	end, _ := excelize.CoordinatesToCellName(last, r.FirstRow+r.MaxRows-1)
	return fmt.Sprintf("%s!%s:%s", r.Sheet, start, end)
}

// Grid holds the cells of a region, trimmed and padded to the region width.
type Grid struct {
	// FirstRow is the sheet row number of Display[0] (1-based).
	FirstRow int
	// FirstCol is the sheet column number of the first grid column (1-based).
	FirstCol int
	// Cols is the region width.
	Cols int
	// Display holds formatted cell values.
	Display [][]string
	// Raw holds unformatted cell values.
	Raw [][]string
}

// ColumnIndex returns the grid column index of a sheet column name.
func (g *Grid) ColumnIndex(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(name))
	if err != nil {
		return -1, fmt.Errorf("%w: %v", ErrInvalidRegion, err)
	}
	idx := n - g.FirstCol
	if idx < 0 || idx >= g.Cols {
		return -1, fmt.Errorf("%w: column %s is outside the region", ErrInvalidRegion, name)
	}
	return idx, nil
}

// ReadRegion reads the cells of region from wb.
func ReadRegion(wb Workbook, region Region) (*Grid, error) {
	if err := region.Validate(); err != nil {
		return nil, err
	}
	first, last, _ := region.Span()

	display, err := wb.Rows(region.Sheet)
	if err != nil {
		return nil, err
	}
	raw, err := wb.RawRows(region.Sheet)
	if err != nil {
		return nil, err
	}

	width := last - first + 1
	grid := &Grid{FirstRow: region.FirstRow, FirstCol: first, Cols: width}
	end := len(display)
	if region.MaxRows > 0 && region.FirstRow-1+region.MaxRows < end {
		end = region.FirstRow - 1 + region.MaxRows
	}
	for r := region.FirstRow - 1; r < end; r++ {
		grid.Display = append(grid.Display, sliceRow(display, r, first-1, width))
		grid.Raw = append(grid.Raw, sliceRow(raw, r, first-1, width))
	}
	return grid, nil
}

// sliceRow copies width cells of rows[r] starting at column index start,
// padding missing cells with "".
func sliceRow(rows [][]string, r, start, width int) []string {
	out := make([]string, width)
	if r < 0 || r >= len(rows) {
		return out
	}
	row := rows[r]
	for i := 0; i < width; i++ {
		if start+i < len(row) {
			out[i] = cleanCell(row[start+i])
		}
	}
	return out
}
