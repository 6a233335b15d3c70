package console

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"gridcalc/spreadsheet"
)

func TestExportCSVWritesRowMajorGrid(t *testing.T) {
	sheet := spreadsheet.NewSheet(2, 2)
	sheet.Submit("A1=1")
	sheet.Submit("B1=2")
	sheet.Submit("A2=3")
	sheet.Submit("B2=4")

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ExportCSV(sheet, path); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open exported file: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	want := [][]string{{"1", "2"}, {"3", "4"}}
	if len(records) != len(want) {
		t.Fatalf("got %d rows, want %d", len(records), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if records[i][j] != want[i][j] {
				t.Errorf("record[%d][%d] = %q, want %q", i, j, records[i][j], want[i][j])
			}
		}
	}
}
