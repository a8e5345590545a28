package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// printAreaName is the built-in defined name of a sheet's print area.
const printAreaName = "_xlnm.Print_Area"

// NamedRange is a defined name referring to a block of one sheet.
type NamedRange struct {
	Name  string `json:"name"`
	Sheet string `json:"sheet"`
	// Range is the block in A1 notation without "$" marks, e.g. "B7:J425".
	Range string `json:"range"`
	// Scope is the sheet the name is local to, empty for workbook scope.
	Scope string `json:"scope,omitempty"`
}

// IsPrintArea reports whether n is a sheet's print area.
func (n NamedRange) IsPrintArea() bool {
	return strings.EqualFold(n.Name, printAreaName)
}

// definedNames lists the defined names of f that refer to cell blocks.
// A name with several blocks yields one entry per block; formulas and
// constants are skipped.
func definedNames(f *excelize.File) []NamedRange {
	var names []NamedRange
	for _, dn := range f.GetDefinedName() {
		scope := dn.Scope
		if strings.EqualFold(scope, "Workbook") {
			scope = ""
		}
		for _, part := range strings.Split(dn.RefersTo, ",") {
			sheet, rng, ok := parseReference(part)
			if !ok {
				continue
			}
			names = append(names, NamedRange{Name: dn.Name, Sheet: sheet, Range: rng, Scope: scope})
		}
	}
	return names
}

// parseReference splits a reference like 'Summary'!$A$1:$F$14 into its
// sheet and block.
func parseReference(ref string) (sheet, rng string, ok bool) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "=")
	idx := strings.LastIndex(ref, "!")
	if idx <= 0 {
		return "", "", false
	}
	sheet = strings.ReplaceAll(strings.Trim(ref[:idx], "'"), "''", "'")
	rng = strings.ReplaceAll(ref[idx+1:], "$", "")

	parts := strings.Split(rng, ":")
	if len(parts) > 2 {
		return "", "", false
	}
	for _, p := range parts {
		if _, _, err := excelize.CellNameToCoordinates(p); err != nil {
			return "", "", false
		}
	}
	return sheet, rng, true
}
