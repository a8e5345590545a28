// Package tracker answers queries over a parsed tracker table: locating a
// vessel's block of rows, resolving the owner of continuation rows and
// projecting the vessel and device views.
package tracker

import "github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"

// FindBlock returns the first block whose key row has value in col.
// The block is [start, end): end is the next row with a non-blank col, or
// t.Len(). Later blocks with the same key are ignored.
func FindBlock(t *models.Table, col models.Column, value string) (start, end int, ok bool) {
	n := t.Len()
	start = -1
	for i := 0; i < n; i++ {
		if v, set := t.At(i).Text(col); set && v == value {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, 0, false
	}

	end = n
	for i := start + 1; i < n; i++ {
		if _, set := t.At(i).Text(col); set {
			end = i
			break
		}
	}
	return start, end, true
}

// FindOwner returns the first non-blank value of col at or above row i.
// It reports false when i is out of range or no such value exists.
func FindOwner(t *models.Table, col models.Column, i int) (string, bool) {
	if i < 0 || i >= t.Len() {
		return "", false
	}
	if col == models.ColumnVessel {
		return t.Owner(i)
	}
	for ; i >= 0; i-- {
		if v, ok := t.At(i).Text(col); ok {
			return v, true
		}
	}
	return "", false
}
