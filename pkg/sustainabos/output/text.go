package output

import (
	"fmt"
	"strings"

	toon "github.com/mateuszkardas/toon-go"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
)

// ToTOON serializes v to TOON.
func ToTOON(v any) (string, error) {
	return toon.Marshal(v, nil)
}

// Markdown renders a view as a markdown table.
func Markdown(view models.View) string {
	var b strings.Builder
	b.WriteString("|")
	for _, c := range view.Columns {
		b.WriteString(" " + escapeMarkdownCell(c) + " |")
	}
	b.WriteString("\n|")
	for range view.Columns {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for _, row := range view.Rows {
		b.WriteString("|")
		for i := range view.Columns {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			b.WriteString(" " + escapeMarkdownCell(v) + " |")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// TotalsView converts vessel totals to a display view.
func TotalsView(totals []models.VesselTotal) models.View {
	view := models.View{
		Columns: []string{"Vessel", "Devices", "Fuel", "Maintenance", "CO2", "Total"},
		Rows:    make([][]string, 0, len(totals)),
	}
	for _, t := range totals {
		view.Rows = append(view.Rows, []string{
			t.Vessel,
			fmt.Sprint(t.Devices),
			t.Fuel.String(),
			t.Maintenance.String(),
			t.CO2.String(),
			t.Total.String(),
		})
	}
	return view
}

// ListView converts a lookup list to a single-column view.
func ListView(header string, values []string) models.View {
	view := models.View{Columns: []string{header}, Rows: make([][]string, 0, len(values))}
	for _, v := range values {
		view.Rows = append(view.Rows, []string{v})
	}
	return view
}

func escapeMarkdownCell(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "\\", "\\\\")
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", " ")
	return v
}
