package models

// Field identifies a logical column of the tracker sheet.
type Field int

const (
	FieldNumber Field = iota
	FieldVessel
	FieldSpec
	FieldDevice
	FieldStatus
	FieldInstallDate
	FieldFuelSavings
	FieldMaintenanceSavings
	FieldCO2Savings

	// FieldCount is the number of tracker fields.
	FieldCount
)

// FieldHeaders are the display headers of the tracker fields.
var FieldHeaders = [FieldCount]string{
	FieldNumber:             "N",
	FieldVessel:             "Vessel Name/ ID",
	FieldSpec:               "Spec",
	FieldDevice:             "Devices",
	FieldStatus:             "Installation Status",
	FieldInstallDate:        "Date of Installation",
	FieldFuelSavings:        "Savings/year (fuel efficiency)",
	FieldMaintenanceSavings: "Savings/year (Maintenance)",
	FieldCO2Savings:         "Co2 savings ton/year",
}

// Header returns the display header of f.
func (f Field) Header() string {
	if f < 0 || f >= FieldCount {
		return ""
	}
	return FieldHeaders[f]
}
