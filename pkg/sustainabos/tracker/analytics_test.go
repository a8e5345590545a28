package tracker

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
)

func withSavings(rec models.Record, fuel, maintenance, co2 string) models.Record {
	for _, s := range []struct {
		dst *decimal.NullDecimal
		v   string
	}{{&rec.FuelSavings, fuel}, {&rec.MaintenanceSavings, maintenance}, {&rec.CO2Savings, co2}} {
		if s.v != "" {
			*s.dst = decimal.NewNullDecimal(decimal.RequireFromString(s.v))
		}
	}
	return rec
}

func TestTopVessels(t *testing.T) {
	tbl := table(
		withSavings(row("", "A", "Done"), "999", "", ""),
		withSavings(row("BOS DUBAI", "A", "Done"), "100.5", "20", "1.5"),
		withSavings(row("", "B", "In Process"), "50", "", ""),
		withSavings(row("Lewek Hydra", "A", "Done"), "300", "", ""),
		withSavings(row("BOS ABU", "A", "Done"), "", "", ""),
	)

	totals := TopVessels(tbl, nil, 0)
	require.Len(t, totals, 3)

	assert.Equal(t, "Lewek Hydra", totals[0].Vessel)
	assert.Equal(t, "BOS DUBAI", totals[1].Vessel)
	assert.True(t, decimal.RequireFromString("172").Equal(totals[1].Total), "got %s", totals[1].Total)
	assert.True(t, decimal.RequireFromString("150.5").Equal(totals[1].Fuel))
	assert.Equal(t, 2, totals[1].Devices)
	assert.Equal(t, "BOS ABU", totals[2].Vessel)
	assert.True(t, totals[2].Total.IsZero())
}

func TestTopVesselsPatternsAndLimit(t *testing.T) {
	tbl := table(
		withSavings(row("BOS DUBAI", "A", "Done"), "10", "", ""),
		withSavings(row("Lewek Hydra", "A", "Done"), "30", "", ""),
		withSavings(row("BOS ABU", "A", "Done"), "20", "", ""),
	)

	totals := TopVessels(tbl, []string{"BOS"}, 1)
	require.Len(t, totals, 1)
	assert.Equal(t, "BOS ABU", totals[0].Vessel)

	assert.Empty(t, TopVessels(models.NewTable(nil), nil, 5))
}

func TestTopVesselsTieBreakByName(t *testing.T) {
	tbl := table(
		withSavings(row("B", "A", "Done"), "5", "", ""),
		withSavings(row("A", "A", "Done"), "5", "", ""),
	)

	totals := TopVessels(tbl, nil, 10)
	require.Len(t, totals, 2)
	assert.Equal(t, "A", totals[0].Vessel)
	assert.Equal(t, "B", totals[1].Vessel)
}
