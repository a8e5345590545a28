package tracker

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
)

// DefaultTopLimit is the number of vessels TopVessels returns when limit is
// not positive.
const DefaultTopLimit = 10

// TopVessels sums the yearly savings of every vessel and returns the largest
// totals first. When patterns is non-empty only vessels whose name contains
// one of them are counted. Continuation rows count toward their owning
// vessel. Rows without an owner are skipped and blank amounts count as zero.
func TopVessels(t *models.Table, patterns []string, limit int) []models.VesselTotal {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	totals := make(map[string]*models.VesselTotal)
	var order []string
	for i := 0; i < t.Len(); i++ {
		owner, ok := t.Owner(i)
		if !ok || !matchesAny(owner, patterns) {
			continue
		}
		vt, seen := totals[owner]
		if !seen {
			vt = &models.VesselTotal{Vessel: owner}
			totals[owner] = vt
			order = append(order, owner)
		}
		rec := t.At(i)
		vt.Fuel = vt.Fuel.Add(amount(rec.FuelSavings))
		vt.Maintenance = vt.Maintenance.Add(amount(rec.MaintenanceSavings))
		vt.CO2 = vt.CO2.Add(amount(rec.CO2Savings))
		if rec.Device != "" {
			vt.Devices++
		}
	}

	out := make([]models.VesselTotal, 0, len(order))
	for _, name := range order {
		vt := totals[name]
		vt.Total = vt.Fuel.Add(vt.Maintenance).Add(vt.CO2)
		out = append(out, *vt)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Vessel < out[j].Vessel
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func matchesAny(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if p != "" && strings.Contains(name, p) {
			return true
		}
	}
	return false
}

func amount(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
