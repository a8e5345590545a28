package parser

import (
	"errors"
	"testing"

	"github.com/sustainabos/sustainabos-go/internal/testwb"
)

func TestRegionSpan(t *testing.T) {
	tests := []struct {
		columns     string
		first, last int
		wantErr     bool
	}{
		{"B:J", 2, 10, false},
		{"A", 1, 1, false},
		{"$I:$K", 9, 11, false},
		{"J:B", 0, 0, true},
		{"", 0, 0, true},
		{"A:B:C", 0, 0, true},
		{"1:2", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.columns, func(t *testing.T) {
			first, last, err := Region{Sheet: "Tracker", FirstRow: 1, Columns: tt.columns}.Span()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRegion) {
					t.Errorf("Expected ErrInvalidRegion, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Span failed: %v", err)
			}
			if first != tt.first || last != tt.last {
				t.Errorf("Span(%q) = %d, %d; want %d, %d", tt.columns, first, last, tt.first, tt.last)
			}
		})
	}
}

func TestRegionString(t *testing.T) {
	tests := []struct {
		region Region
		want   string
	}{
		{Region{Sheet: "Tracker", FirstRow: 8, MaxRows: 418, Columns: "B:J"}, "Tracker!B8:J425"},
		{Region{Sheet: "Summary", FirstRow: 22, Columns: "A"}, "Summary!A22:A"},
	}

	for _, tt := range tests {
		if got := tt.region.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRegionValidate(t *testing.T) {
	tests := []struct {
		name   string
		region Region
	}{
		{"missing sheet", Region{FirstRow: 1, Columns: "A"}},
		{"zero first row", Region{Sheet: "Tracker", Columns: "A"}},
		{"negative max rows", Region{Sheet: "Tracker", FirstRow: 1, MaxRows: -1, Columns: "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.region.Validate(); !errors.Is(err, ErrInvalidRegion) {
				t.Errorf("Expected ErrInvalidRegion, got %v", err)
			}
		})
	}
}

func TestReadRegionPadsShortRows(t *testing.T) {
	wb := openFleet(t, testwb.Fleet())

	grid, err := ReadRegion(wb, Region{Sheet: "Tracker", FirstRow: 7, MaxRows: 2, Columns: "A:L"})
	if err != nil {
		t.Fatalf("ReadRegion failed: %v", err)
	}
	if len(grid.Display) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(grid.Display))
	}
	for i, row := range grid.Display {
		if len(row) != 12 {
			t.Errorf("Row %d: expected 12 cells, got %d", i, len(row))
		}
	}
	if grid.Display[0][0] != "" || grid.Display[0][1] != "N" {
		t.Errorf("Unexpected header row: %v", grid.Display[0])
	}
	if idx, err := grid.ColumnIndex("C"); err != nil || idx != 2 {
		t.Errorf("ColumnIndex(C) = %d, %v; want 2", idx, err)
	}
}

func TestOpenWorkbookInvalid(t *testing.T) {
	if _, err := OpenWorkbook("fleet.xlsx", []byte("not a workbook")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat for xlsx, got %v", err)
	}
	if _, err := OpenWorkbook("fleet.xls", []byte("not a workbook")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat for xls, got %v", err)
	}
}

func TestWorkbookSheetList(t *testing.T) {
	wb := openFleet(t, testwb.Fleet())

	sheets := wb.SheetList()
	if len(sheets) != 2 || sheets[0] != "Tracker" || sheets[1] != "Summary" {
		t.Errorf("Unexpected sheets: %v", sheets)
	}
	if _, err := wb.RawRows("Missing"); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("Expected ErrSheetNotFound, got %v", err)
	}
}
