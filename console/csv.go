package console

import (
	"encoding/csv"
	"os"

	"gridcalc/spreadsheet"
)

// ExportCSV snapshots the whole sheet and writes it to path, one row per
// grid row, ERR cells rendered as the literal "ERR", per spec §4.8.
func ExportCSV(sheet *spreadsheet.Sheet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	rows, cols := sheet.Rows(), sheet.Cols()
	record := make([]string, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			record[col] = sheet.Display(row, col)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}
