package parser

import (
	"fmt"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
)

// FieldColumns maps each tracker field to its sheet column name.
// An empty column leaves the field blank.
type FieldColumns struct {
	Number             string `yaml:"number"`
	Vessel             string `yaml:"vessel"`
	Spec               string `yaml:"spec"`
	Device             string `yaml:"device"`
	Status             string `yaml:"status"`
	InstallDate        string `yaml:"install_date"`
	FuelSavings        string `yaml:"fuel_savings"`
	MaintenanceSavings string `yaml:"maintenance_savings"`
	CO2Savings         string `yaml:"co2_savings"`
}

func (c FieldColumns) byField() [models.FieldCount]string {
	return [models.FieldCount]string{
		models.FieldNumber:             c.Number,
		models.FieldVessel:             c.Vessel,
		models.FieldSpec:               c.Spec,
		models.FieldDevice:             c.Device,
		models.FieldStatus:             c.Status,
		models.FieldInstallDate:        c.InstallDate,
		models.FieldFuelSavings:        c.FuelSavings,
		models.FieldMaintenanceSavings: c.MaintenanceSavings,
		models.FieldCO2Savings:         c.CO2Savings,
	}
}

// TrackerLayout locates the tracker rows and their columns.
type TrackerLayout struct {
	Region `yaml:",inline"`
	Fields FieldColumns `yaml:"fields"`
}

// SummaryLayout locates a summary block. Region.FirstRow is the header row
// and Region.MaxRows the number of data rows below it.
type SummaryLayout struct {
	Name   string `yaml:"name"`
	Region `yaml:",inline"`
}

// Layout describes where each logical table lives in the workbook.
type Layout struct {
	Tracker   TrackerLayout   `yaml:"tracker"`
	Vessels   Region          `yaml:"vessels"`
	Devices   Region          `yaml:"devices"`
	Summaries []SummaryLayout `yaml:"summaries"`
}

// DefaultLayout returns the layout of the fleet installation tracker
// workbook.
func DefaultLayout() Layout {
	return Layout{
		Tracker: TrackerLayout{
			Region: Region{Sheet: "Tracker", FirstRow: 8, MaxRows: 418, Columns: "B:J"},
			Fields: FieldColumns{
				Number:             "B",
				Vessel:             "C",
				Spec:               "D",
				Device:             "E",
				Status:             "F",
				InstallDate:        "G",
				FuelSavings:        "H",
				MaintenanceSavings: "I",
				CO2Savings:         "J",
			},
		},
		Vessels: Region{Sheet: "Summary", FirstRow: 23, MaxRows: 70, Columns: "A"},
		Devices: Region{Sheet: "Summary", FirstRow: 3, MaxRows: 12, Columns: "A"},
		Summaries: []SummaryLayout{
			{Name: "devices", Region: Region{Sheet: "Summary", FirstRow: 1, MaxRows: 13, Columns: "A:F"}},
			{Name: "savings", Region: Region{Sheet: "Summary", FirstRow: 16, MaxRows: 3, Columns: "B:C"}},
			{Name: "status", Region: Region{Sheet: "Summary", FirstRow: 1, MaxRows: 4, Columns: "I:K"}},
		},
	}
}

// Validate checks every region and that the tracker key columns are set.
func (l Layout) Validate() error {
	if err := l.Tracker.Region.Validate(); err != nil {
		return fmt.Errorf("tracker: %w", err)
	}
	for name, col := range map[string]string{
		"vessel": l.Tracker.Fields.Vessel,
		"device": l.Tracker.Fields.Device,
		"status": l.Tracker.Fields.Status,
	} {
		if col == "" {
			return fmt.Errorf("tracker: %w: %s column is required", ErrInvalidRegion, name)
		}
	}
	if err := l.Vessels.Validate(); err != nil {
		return fmt.Errorf("vessels: %w", err)
	}
	if err := l.Devices.Validate(); err != nil {
		return fmt.Errorf("devices: %w", err)
	}
	seen := make(map[string]bool, len(l.Summaries))
	for _, s := range l.Summaries {
		if s.Name == "" || seen[s.Name] {
			return fmt.Errorf("summary %q: %w: names must be unique and non-empty", s.Name, ErrInvalidRegion)
		}
		seen[s.Name] = true
		if err := s.Region.Validate(); err != nil {
			return fmt.Errorf("summary %q: %w", s.Name, err)
		}
	}
	return nil
}

// ParseTracker reads the tracker rows of wb into a table.
// Fully blank rows are skipped.
func ParseTracker(wb Workbook, layout TrackerLayout) (*models.Table, error) {
	grid, err := ReadRegion(wb, layout.Region)
	if err != nil {
		return nil, err
	}

	var cols [models.FieldCount]int
	for f, name := range layout.Fields.byField() {
		cols[f] = -1
		if name == "" {
			continue
		}
		idx, err := grid.ColumnIndex(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", models.Field(f).Header(), err)
		}
		cols[f] = idx
	}

	records := make([]models.Record, 0, len(grid.Display))
	for i, row := range grid.Display {
		if isBlankRow(row) {
			continue
		}
		raw := grid.Raw[i]
		cells := make([]string, models.FieldCount)
		rawCells := make([]string, models.FieldCount)
		for f, idx := range cols {
			if idx >= 0 {
				cells[f] = row[idx]
				rawCells[f] = raw[idx]
			}
		}
		records = append(records, buildRecord(grid.FirstRow+i, cells, rawCells))
	}
	return models.NewTable(records), nil
}

func buildRecord(rowNum int, cells, raw []string) models.Record {
	rec := models.Record{
		Row:                rowNum,
		Spec:               cells[models.FieldSpec],
		Device:             cells[models.FieldDevice],
		Status:             cells[models.FieldStatus],
		FuelSavings:        parseAmount(raw[models.FieldFuelSavings], cells[models.FieldFuelSavings]),
		MaintenanceSavings: parseAmount(raw[models.FieldMaintenanceSavings], cells[models.FieldMaintenanceSavings]),
		CO2Savings:         parseAmount(raw[models.FieldCO2Savings], cells[models.FieldCO2Savings]),
		Cells:              cells,
	}
	if v := cells[models.FieldVessel]; v != "" {
		rec.Vessel = &v
	}
	if t, ok := parseDate(raw[models.FieldInstallDate], cells[models.FieldInstallDate]); ok {
		rec.InstallDate = &t
	}
	return rec
}

// ReadLookupColumn reads the non-blank values of the first column of region,
// in sheet order.
func ReadLookupColumn(wb Workbook, region Region) ([]string, error) {
	grid, err := ReadRegion(wb, region)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(grid.Display))
	for _, row := range grid.Display {
		if row[0] != "" {
			values = append(values, row[0])
		}
	}
	return values, nil
}

// ReadSummary reads a summary block: the first row supplies the headers and
// up to MaxRows rows below it the data. Blank rows are skipped.
func ReadSummary(wb Workbook, layout SummaryLayout) (models.View, error) {
	region := layout.Region
	if region.MaxRows > 0 {
		region.MaxRows++
	}
	grid, err := ReadRegion(wb, region)
	if err != nil {
		return models.View{}, err
	}

	view := models.View{Columns: make([]string, grid.Cols), Rows: [][]string{}}
	for i := range view.Columns {
		view.Columns[i] = fmt.Sprintf("Column %d", i+1)
	}
	if len(grid.Display) == 0 {
		return view, nil
	}
	for i, h := range grid.Display[0] {
		if h != "" {
			view.Columns[i] = h
		}
	}
	for _, row := range grid.Display[1:] {
		if !isBlankRow(row) {
			view.Rows = append(view.Rows, row)
		}
	}
	return view, nil
}
