// Package models defines data structures for the tracker workbook.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column identifies a text column of the tracker sheet that can act as a key.
type Column int

const (
	// ColumnVessel is the vessel name/ID column. Only the first row of a
	// vessel's block carries it.
	ColumnVessel Column = iota
	// ColumnSpec is the vessel specification column.
	ColumnSpec
	// ColumnDevice is the installed device column.
	ColumnDevice
	// ColumnStatus is the installation status column.
	ColumnStatus
)

// String returns the column name used in logs and errors.
func (c Column) String() string {
	switch c {
	case ColumnVessel:
		return "vessel"
	case ColumnSpec:
		return "spec"
	case ColumnDevice:
		return "device"
	case ColumnStatus:
		return "status"
	default:
		return "unknown"
	}
}

// Record represents one row of the tracker sheet.
type Record struct {
	// Row is the sheet row number (1-based).
	Row int `json:"row"`
	// Vessel is the vessel name, nil on continuation rows of a block.
	Vessel *string `json:"vessel,omitempty"`
	// Spec is the vessel specification.
	Spec string `json:"spec,omitempty"`
	// Device is the installed device name.
	Device string `json:"device,omitempty"`
	// Status is the installation status ("Done", "In Process", ...).
	Status string `json:"status,omitempty"`
	// InstallDate is the date of installation when known.
	InstallDate *time.Time `json:"install_date,omitempty"`
	// FuelSavings is the yearly fuel efficiency saving.
	FuelSavings decimal.NullDecimal `json:"fuel_savings"`
	// MaintenanceSavings is the yearly maintenance saving.
	MaintenanceSavings decimal.NullDecimal `json:"maintenance_savings"`
	// CO2Savings is the yearly CO2 saving in tons.
	CO2Savings decimal.NullDecimal `json:"co2_savings"`
	// Cells holds the display text of each tracker field, indexed by Field.
	Cells []string `json:"cells,omitempty"`
}

// Text returns the value of a text column and whether it is non-blank.
func (r Record) Text(col Column) (string, bool) {
	switch col {
	case ColumnVessel:
		if r.Vessel == nil {
			return "", false
		}
		return *r.Vessel, true
	case ColumnSpec:
		return r.Spec, r.Spec != ""
	case ColumnDevice:
		return r.Device, r.Device != ""
	case ColumnStatus:
		return r.Status, r.Status != ""
	}
	return "", false
}

// Cell returns the display text of field f, or "" when blank.
func (r Record) Cell(f Field) string {
	if f < 0 || int(f) >= len(r.Cells) {
		return ""
	}
	return r.Cells[f]
}
