package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Workbook is a loaded snapshot of the tracker workbook.
type Workbook struct {
	// Name is the workbook file name (no path).
	Name string `json:"name"`
	// Tracker holds the tracker sheet rows.
	Tracker *Table `json:"-"`
	// Vessels is the vessel lookup list.
	Vessels []string `json:"vessels"`
	// Devices is the device lookup list.
	Devices []string `json:"devices"`
	// Summaries maps summary block name to its table.
	Summaries map[string]View `json:"summaries,omitempty"`
	// LoadedAt is the time the snapshot was built.
	LoadedAt time.Time `json:"loaded_at"`
}

// EmptyWorkbook returns a snapshot with no data.
func EmptyWorkbook() *Workbook {
	return &Workbook{
		Tracker:   NewTable(nil),
		Summaries: map[string]View{},
		LoadedAt:  time.Now(),
	}
}

// HasData reports whether the tracker has at least one row.
func (w *Workbook) HasData() bool {
	return w != nil && w.Tracker.Len() > 0
}

// VesselTotal is the yearly savings of one vessel summed over its devices.
type VesselTotal struct {
	Vessel      string          `json:"vessel"`
	Fuel        decimal.Decimal `json:"fuel"`
	Maintenance decimal.Decimal `json:"maintenance"`
	CO2         decimal.Decimal `json:"co2"`
	Total       decimal.Decimal `json:"total"`
	Devices     int             `json:"devices"`
}
