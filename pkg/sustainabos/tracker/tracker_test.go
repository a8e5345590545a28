package tracker

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
)

// row builds a record whose display cells mirror its typed fields. An empty
// vessel means a continuation row.
func row(vessel, device, status string) models.Record {
	cells := make([]string, models.FieldCount)
	cells[models.FieldVessel] = vessel
	cells[models.FieldDevice] = device
	cells[models.FieldStatus] = status
	rec := models.Record{Device: device, Status: status, Cells: cells}
	if vessel != "" {
		rec.Vessel = &vessel
	}
	return rec
}

func table(records ...models.Record) *models.Table {
	for i := range records {
		records[i].Row = 8 + i
		records[i].Cells[models.FieldNumber] = decimal.NewFromInt(int64(i + 1)).String()
	}
	return models.NewTable(records)
}

// scenario is the three-row table: V1 with devices A and B, V2 with A.
func scenario() *models.Table {
	return table(
		row("V1", "A", "Done"),
		row("", "B", "In Process"),
		row("V2", "A", "Done"),
	)
}

func TestFindBlock(t *testing.T) {
	tbl := table(
		row("V1", "A", "Done"),
		row("", "B", "Done"),
		row("", "C", "Done"),
		row("V2", "A", "Done"),
		row("V3", "A", "Done"),
		row("", "B", "Done"),
	)

	tests := []struct {
		name       string
		start, end int
	}{
		{"V1", 0, 3},
		{"V2", 3, 4},
		{"V3", 4, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := FindBlock(tbl, models.ColumnVessel, tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}

	_, _, ok := FindBlock(tbl, models.ColumnVessel, "Ghost")
	assert.False(t, ok)
}

func TestFindBlockFirstMatchOnly(t *testing.T) {
	tbl := table(
		row("V1", "A", "Done"),
		row("V2", "A", "Done"),
		row("V1", "B", "Done"),
		row("", "C", "Done"),
	)

	start, end, ok := FindBlock(tbl, models.ColumnVessel, "V1")
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 1, end)
}

func TestFindBlockOtherColumn(t *testing.T) {
	tbl := scenario()

	start, end, ok := FindBlock(tbl, models.ColumnDevice, "B")
	require.True(t, ok)
	assert.Equal(t, 1, start)
	assert.Equal(t, 2, end)
}

func TestFindOwner(t *testing.T) {
	tbl := scenario()

	for i, want := range []string{"V1", "V1", "V2"} {
		got, ok := FindOwner(tbl, models.ColumnVessel, i)
		require.True(t, ok, "row %d", i)
		assert.Equal(t, want, got, "row %d", i)
	}

	_, ok := FindOwner(tbl, models.ColumnVessel, -1)
	assert.False(t, ok)
	_, ok = FindOwner(tbl, models.ColumnVessel, tbl.Len())
	assert.False(t, ok)
}

func TestFindOwnerMalformed(t *testing.T) {
	tbl := table(
		row("", "X", "Done"),
		row("", "Y", "Done"),
		row("V1", "X", "Done"),
	)

	_, ok := FindOwner(tbl, models.ColumnVessel, 1)
	assert.False(t, ok)
	owner, ok := FindOwner(tbl, models.ColumnVessel, 2)
	require.True(t, ok)
	assert.Equal(t, "V1", owner)
	assert.Equal(t, 2, tbl.Orphans())
}

func TestFindOwnerIdempotent(t *testing.T) {
	tbl := scenario()
	for i := 0; i < tbl.Len(); i++ {
		first, ok1 := FindOwner(tbl, models.ColumnVessel, i)
		second, ok2 := FindOwner(tbl, models.ColumnVessel, i)
		assert.Equal(t, first, second)
		assert.Equal(t, ok1, ok2)
	}
}

func TestFindOwnerScansNonVesselColumn(t *testing.T) {
	tbl := scenario()

	// Row 2 has its own status; the scan is inclusive.
	status, ok := FindOwner(tbl, models.ColumnStatus, 2)
	require.True(t, ok)
	assert.Equal(t, "Done", status)

	_, ok = FindOwner(tbl, models.ColumnSpec, 2)
	assert.False(t, ok)
}

func TestFindOwnerMatchesBackwardScan(t *testing.T) {
	tbl := table(
		row("", "A", "Done"),
		row("V1", "A", "Done"),
		row("", "B", "Done"),
		row("", "C", "Done"),
		row("V2", "A", "Done"),
		row("", "B", "Done"),
	)

	for i := 0; i < tbl.Len(); i++ {
		wantName, wantOK := "", false
		for j := i; j >= 0; j-- {
			if v, ok := tbl.At(j).Text(models.ColumnVessel); ok {
				wantName, wantOK = v, true
				break
			}
		}
		got, ok := FindOwner(tbl, models.ColumnVessel, i)
		assert.Equal(t, wantOK, ok, "row %d", i)
		assert.Equal(t, wantName, got, "row %d", i)
	}
}
