package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
)

func sampleView() models.View {
	return models.View{
		Columns: []string{"Vessel Name", "Devices", "Installation Status"},
		Rows: [][]string{
			{"BOS DUBAI", "LED Lighting", "Done"},
			{"", "Hull <Coating> | B", "In Process"},
		},
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleView(), false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `{"columns":["Vessel Name"`))

	pretty, err := ToJSON(sampleView(), true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"columns\"")
}

func TestHTMLTable(t *testing.T) {
	html, err := HTMLTable(sampleView())
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	table := doc.Find("table")
	require.Equal(t, 1, table.Length())
	class, _ := table.Attr("class")
	assert.Equal(t, "table table-bordered table-striped", class)

	var headers []string
	doc.Find("thead th").Each(func(_ int, s *goquery.Selection) {
		headers = append(headers, s.Text())
	})
	assert.Equal(t, []string{"Vessel Name", "Devices", "Installation Status"}, headers)

	rows := doc.Find("tbody tr")
	require.Equal(t, 2, rows.Length())
	assert.Equal(t, "Hull <Coating> | B", rows.Eq(1).Find("td").Eq(1).Text())
	assert.NotContains(t, html, "<Coating>")
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleView())
	lines := strings.Split(strings.TrimSpace(md), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| Vessel Name | Devices | Installation Status |", lines[0])
	assert.Equal(t, "|---|---|---|", lines[1])
	assert.Equal(t, `|  | Hull <Coating> \| B | In Process |`, lines[3])
}

func TestToTOON(t *testing.T) {
	out, err := ToTOON(ListView("Vessel", []string{"BOS DUBAI", "Lewek Hydra"}))
	require.NoError(t, err)
	assert.Contains(t, out, "BOS DUBAI")
	assert.Contains(t, out, "Lewek Hydra")
}

func TestTotalsView(t *testing.T) {
	view := TotalsView([]models.VesselTotal{{
		Vessel:  "BOS DUBAI",
		Devices: 2,
		Fuel:    decimal.RequireFromString("2000.5"),
		Total:   decimal.RequireFromString("2000.5"),
	}})
	require.Equal(t, 1, view.Len())
	assert.Equal(t, []string{"BOS DUBAI", "2", "2000.5", "0", "0", "2000.5"}, view.Rows[0])
}

func TestWriteArrow(t *testing.T) {
	vessel := "BOS DUBAI"
	installed := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	table := models.NewTable([]models.Record{
		{Row: 8, Vessel: &vessel, Device: "LED Lighting", Status: "Done", InstallDate: &installed,
			FuelSavings: decimal.NewNullDecimal(decimal.RequireFromString("1200.5"))},
		{Row: 9, Device: "Hull Coating", Status: "In Process"},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteArrow(&buf, table))

	reader, err := ipc.NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer reader.Release()

	require.True(t, reader.Next())
	rec := reader.Record()
	require.Equal(t, int64(2), rec.NumRows())
	assert.True(t, rec.Schema().Equal(TrackerSchema))

	vessels := rec.Column(1).(*array.String)
	owners := rec.Column(2).(*array.String)
	assert.Equal(t, "BOS DUBAI", vessels.Value(0))
	assert.True(t, vessels.IsNull(1))
	assert.Equal(t, "BOS DUBAI", owners.Value(1))

	dates := rec.Column(6).(*array.Date32)
	assert.Equal(t, arrow.Date32FromTime(installed), dates.Value(0))
	assert.True(t, dates.IsNull(1))

	fuel := rec.Column(7).(*array.Float64)
	assert.Equal(t, 1200.5, fuel.Value(0))
	assert.True(t, fuel.IsNull(1))

	assert.False(t, reader.Next())
}
