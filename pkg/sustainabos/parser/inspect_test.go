package parser

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"

	"github.com/sustainabos/sustainabos-go/internal/testwb"
)

func TestScanBlock(t *testing.T) {
	rows := [][]string{
		{},
		{"", "N", "Vessel"},
		{"", "1", "BOS DUBAI"},
		{"", "2", " "},
	}

	b, ok := scanBlock(rows)
	if !ok {
		t.Fatal("Expected a filled block")
	}
	if b.String() != "B2:C4" {
		t.Errorf("Expected B2:C4, got %s", b.String())
	}
	if b.filled != 5 {
		t.Errorf("Expected 5 filled cells, got %d", b.filled)
	}
	if !b.dense(DefaultTableParams()) {
		t.Error("Expected block to be dense")
	}
}

func TestScanBlockSparse(t *testing.T) {
	if _, ok := scanBlock(nil); ok {
		t.Error("Expected no block for empty rows")
	}
	if _, ok := scanBlock([][]string{{"", "  "}}); ok {
		t.Error("Expected no block for blank rows")
	}

	b, ok := scanBlock([][]string{{"x"}, {"", "  "}})
	if !ok {
		t.Fatal("Expected a filled block")
	}
	if b.dense(DefaultTableParams()) {
		t.Error("Expected a single cell to be too sparse")
	}

	sparse := make([][]string, 100)
	sparse[0] = []string{"a", "b"}
	sparse[99] = make([]string, 50)
	sparse[99][49] = "z"
	b, _ = scanBlock(sparse)
	if b.dense(DefaultTableParams()) {
		t.Errorf("Expected %d cells in %s to be too sparse", b.filled, b.String())
	}
}

func TestInspect(t *testing.T) {
	data := testwb.Build(t, testwb.Fleet())

	infos, err := Inspect("fleet.xlsx", data)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Expected 2 sheets, got %d", len(infos))
	}

	tracker := infos[0]
	if tracker.Name != "Tracker" {
		t.Errorf("Expected first sheet 'Tracker', got %q", tracker.Name)
	}
	if tracker.RowCount != 11 {
		t.Errorf("Expected 11 rows, got %d", tracker.RowCount)
	}
	if tracker.DataRange != "B7:J11" {
		t.Errorf("Expected data range B7:J11, got %q", tracker.DataRange)
	}
	if len(tracker.Columns) != 9 {
		t.Fatalf("Expected 9 columns, got %d", len(tracker.Columns))
	}
	if c := tracker.Columns[0]; c.Name != "B" || c.Type != "integer" {
		t.Errorf("Unexpected first column: %+v", c)
	}
	if c := tracker.Columns[1]; c.Type != "text" || c.Sample != "BOS DUBAI" {
		t.Errorf("Unexpected vessel column: %+v", c)
	}
}

func TestInspectPrintArea(t *testing.T) {
	f, err := excelize.OpenReader(bytes.NewReader(testwb.Build(t, testwb.Fleet())))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()
	if err := f.SetDefinedName(&excelize.DefinedName{Name: printAreaName, RefersTo: "Tracker!$A$1:$J$11", Scope: "Tracker"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetDefinedName(&excelize.DefinedName{Name: "Installations", RefersTo: "Tracker!$B$8:$J$11"}); err != nil {
		t.Fatal(err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	infos, err := Inspect("fleet.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	tracker := infos[0]
	if tracker.PrintArea != "A1:J11" {
		t.Errorf("Expected print area A1:J11, got %q", tracker.PrintArea)
	}
	if len(tracker.NamedRanges) != 1 || tracker.NamedRanges[0].Name != "Installations" {
		t.Errorf("Unexpected named ranges: %+v", tracker.NamedRanges)
	}
	if summary := infos[1]; summary.PrintArea != "" || len(summary.NamedRanges) != 0 {
		t.Errorf("Expected no names on Summary, got %+v", summary)
	}
}

// A truncated sheet must not leave the row reader goroutine behind,
// whether or not the reader reports the damage.
func TestInspectTruncatedSheet(t *testing.T) {
	defer goleak.VerifyNone(t)

	data := truncateSheet(t, testwb.Build(t, testwb.Fleet()), "xl/worksheets/sheet1.xml")
	infos, err := Inspect("fleet.xlsx", data)
	if err == nil && len(infos) != 2 {
		t.Errorf("Expected 2 sheets, got %d", len(infos))
	}
}

// truncateSheet rewrites an xlsx archive with the named part cut in half.
func truncateSheet(t *testing.T, data []byte, part string) []byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		if f.Name == part {
			content = content[:len(content)/2]
		}
		w, err := zw.Create(f.Name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return out.Bytes()
}

func TestInspectInvalid(t *testing.T) {
	if _, err := Inspect("fleet.xlsx", []byte("garbage")); err == nil {
		t.Error("Expected error for invalid workbook")
	}
}
