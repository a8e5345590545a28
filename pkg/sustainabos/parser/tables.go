package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// TableDetectionParams holds the thresholds a sheet's filled block must meet
// to be reported as a data range.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 3,
	}
}

// block is the bounding box of the non-blank cells of a sheet, with 0-based
// inclusive row and column indexes.
type block struct {
	top, bottom, left, right int
	filled                   int
}

// scanBlock finds the filled block of rows in one pass. It reports false
// when every cell is blank.
func scanBlock(rows [][]string) (block, bool) {
	b := block{top: -1, left: -1}
	for r, row := range rows {
		for c, cell := range row {
			if cleanCell(cell) == "" {
				continue
			}
			b.filled++
			if b.top < 0 {
				b.top = r
			}
			b.bottom = r
			if b.left < 0 || c < b.left {
				b.left = c
			}
			if c > b.right {
				b.right = c
			}
		}
	}
	return b, b.filled > 0
}

func (b block) area() int {
	return (b.bottom - b.top + 1) * (b.right - b.left + 1)
}

// dense reports whether b holds enough filled cells to be a table.
func (b block) dense(params TableDetectionParams) bool {
	if b.filled < params.MinNonemptyCells {
		return false
	}
	return float64(b.filled)/float64(b.area()) >= params.DensityMin
}

// String returns b in A1 notation, e.g. "B7:J425".
func (b block) String() string {
	start, _ := excelize.CoordinatesToCellName(b.left+1, b.top+1)
	end, _ := excelize.CoordinatesToCellName(b.right+1, b.bottom+1)
	return fmt.Sprintf("%s:%s", start, end)
}
