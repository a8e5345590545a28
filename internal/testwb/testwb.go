// Package testwb builds tracker workbooks for tests.
package testwb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Row is one tracker row, columns B through J.
type Row struct {
	N           any
	Vessel      string
	Spec        string
	Device      string
	Status      string
	InstallDate any
	Fuel        any
	Maintenance any
	CO2         any
}

// Book describes the content of a generated workbook.
type Book struct {
	Tracker []Row
	Vessels []string
	Devices []string
	// Summary cells keyed by cell name, e.g. "A1".
	Summary map[string]any
}

// Fleet returns a small well-formed fleet: two vessels, the first with two
// devices.
func Fleet() Book {
	return Book{
		Tracker: []Row{
			{N: 1, Vessel: "BOS DUBAI", Spec: "AHTS", Device: "LED Lighting", Status: "Done", Fuel: 1200.5, Maintenance: 300, CO2: 4.2},
			{N: 2, Spec: "AHTS", Device: "Hull Coating", Status: "In Process", Fuel: 800, CO2: 2},
			{N: 3, Vessel: "Lewek Hydra", Spec: "PSV", Device: "LED Lighting", Status: "Not Started"},
			{N: 4, Device: "Hull Coating", Status: "Done", Fuel: "1,000", Maintenance: 50, CO2: 3.5},
		},
		Vessels: []string{"BOS DUBAI", "Lewek Hydra"},
		Devices: []string{"LED Lighting", "Hull Coating"},
		Summary: map[string]any{
			"A1": "Device", "B1": "Done", "C1": "In Process",
			"A2": "LED Lighting", "B2": 1, "C2": 0,
			"I1": "Status", "J1": "Count",
			"I2": "Done", "J2": 2,
		},
	}
}

// Build renders b as xlsx bytes using the default tracker layout.
func Build(t testing.TB, b Book) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Tracker"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	if _, err := f.NewSheet("Summary"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}

	headers := []string{"N", "Vessel Name/ ID", "Spec", "Devices", "Installation Status",
		"Date of Installation", "Savings/year (fuel efficiency)", "Savings/year (Maitenance)", "Co2 savings ton/year"}
	for i, h := range headers {
		set(t, f, "Tracker", i+2, 7, h)
	}
	for i, r := range b.Tracker {
		row := 8 + i
		values := []any{r.N, r.Vessel, r.Spec, r.Device, r.Status, r.InstallDate, r.Fuel, r.Maintenance, r.CO2}
		for c, v := range values {
			set(t, f, "Tracker", c+2, row, v)
		}
	}

	// Both lookup lists sit under a header row.
	set(t, f, "Summary", 1, 21, "Vessels")
	set(t, f, "Summary", 1, 22, "Vessel Name")
	for i, v := range b.Devices {
		set(t, f, "Summary", 1, 3+i, v)
	}
	for i, v := range b.Vessels {
		set(t, f, "Summary", 1, 23+i, v)
	}
	for cell, v := range b.Summary {
		if err := f.SetCellValue("Summary", cell, v); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// Save writes b to dir/name and returns the path.
func Save(t testing.TB, dir, name string, b Book) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(t, b), 0o644); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func set(t testing.TB, f *excelize.File, sheet string, col, row int, v any) {
	t.Helper()
	if v == nil {
		return
	}
	if s, ok := v.(string); ok && s == "" {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		t.Fatalf("cell name: %v", err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		t.Fatalf("set %s!%s: %v", sheet, cell, err)
	}
}
