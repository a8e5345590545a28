package tracker

import (
	"strconv"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
)

// AllowedStatuses are the installation statuses shown in device summaries.
var AllowedStatuses = map[string]bool{
	"Done":       true,
	"In Process": true,
}

// deviceFields are the tracker fields projected after the owner column of a
// device summary.
var deviceFields = []models.Field{
	models.FieldDevice,
	models.FieldStatus,
	models.FieldInstallDate,
	models.FieldFuelSavings,
	models.FieldMaintenanceSavings,
	models.FieldCO2Savings,
}

// VesselColumns returns the column headers of a vessel summary.
func VesselColumns() []string {
	cols := make([]string, 0, models.FieldCount)
	cols = append(cols, models.FieldNumber.Header())
	for f := models.FieldVessel; f < models.FieldCount; f++ {
		cols = append(cols, f.Header())
	}
	return cols
}

// DeviceColumns returns the column headers of a device summary.
func DeviceColumns() []string {
	cols := make([]string, 0, len(deviceFields)+1)
	cols = append(cols, "Vessel Name")
	for _, f := range deviceFields {
		cols = append(cols, f.Header())
	}
	return cols
}

// VesselSummary returns the rows of the named vessel's block. The sheet's
// own row number column is replaced by a 1-based position in the block.
// It reports false when the vessel is not in the table.
func VesselSummary(t *models.Table, name string) (models.View, bool) {
	start, end, ok := FindBlock(t, models.ColumnVessel, name)
	if !ok {
		return models.View{}, false
	}

	view := models.View{Columns: VesselColumns(), Rows: make([][]string, 0, end-start)}
	for i := start; i < end; i++ {
		rec := t.At(i)
		row := make([]string, 0, models.FieldCount)
		row = append(row, strconv.Itoa(i-start+1))
		for f := models.FieldVessel; f < models.FieldCount; f++ {
			row = append(row, rec.Cell(f))
		}
		view.Rows = append(view.Rows, row)
	}
	return view, true
}

// DeviceSummary returns every installation of device whose status is Done or
// In Process, each with its owning vessel. Rows without an owner keep a blank
// vessel name. A blank device cell never matches, so an empty device name
// yields no rows. The view has no rows when nothing matches.
func DeviceSummary(t *models.Table, device string) models.View {
	view := models.View{Columns: DeviceColumns(), Rows: [][]string{}}
	for i := 0; i < t.Len(); i++ {
		rec := t.At(i)
		if d, ok := rec.Text(models.ColumnDevice); !ok || d != device || !AllowedStatuses[rec.Status] {
			continue
		}
		owner, _ := FindOwner(t, models.ColumnVessel, i)
		row := make([]string, 0, len(deviceFields)+1)
		row = append(row, owner)
		for _, f := range deviceFields {
			row = append(row, rec.Cell(f))
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}
