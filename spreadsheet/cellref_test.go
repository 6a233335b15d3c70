package spreadsheet

import "testing"

func TestColumnName(t *testing.T) {
	cases := []struct {
		col  int
		want string
	}{
		{0, "A"},
		{25, "Z"},
		{26, "AA"},
		{51, "AZ"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, c := range cases {
		if got := ColumnName(c.col); got != c.want {
			t.Errorf("ColumnName(%d) = %q, want %q", c.col, got, c.want)
		}
	}
}

func TestParseCellText(t *testing.T) {
	row, col, ok := ParseCellText("AA12")
	if !ok || row != 11 || col != 26 {
		t.Fatalf("ParseCellText(AA12) = (%d,%d,%v), want (11,26,true)", row, col, ok)
	}

	if _, _, ok := ParseCellText("12A"); ok {
		t.Error("expected digits-before-letters to be rejected")
	}
	if _, _, ok := ParseCellText("A0"); ok {
		t.Error("expected row 0 (1-based underflow) to be rejected")
	}
	if _, _, ok := ParseCellText(""); ok {
		t.Error("expected empty text to be rejected")
	}
}

func TestGridParseCellBounds(t *testing.T) {
	g := NewGrid(10, 10)
	if _, err := g.ParseCell("A1"); err != nil {
		t.Fatalf("A1 should be in bounds: %v", err)
	}
	if _, err := g.ParseCell("K1"); err == nil {
		t.Error("column K (index 10) should be out of bounds for a 10-wide grid")
	}
	if _, err := g.ParseCell("A11"); err == nil {
		t.Error("row 11 should be out of bounds for a 10-tall grid")
	}
}

func TestGridParseRange(t *testing.T) {
	g := NewGrid(10, 10)

	if _, _, err := g.ParseRange("A1:A5"); err != nil {
		t.Fatalf("A1:A5 should be a valid column range: %v", err)
	}
	if _, _, err := g.ParseRange("A1:E1"); err != nil {
		t.Fatalf("A1:E1 should be a valid row range: %v", err)
	}
	if _, _, err := g.ParseRange("B2:A1"); err == nil {
		t.Error("decreasing range should be rejected")
	}
	if _, _, err := g.ParseRange("A1"); err == nil {
		t.Error("missing colon should be rejected")
	}
}

func TestGridIsRowColRange(t *testing.T) {
	g := NewGrid(10, 10)
	start, end, err := g.ParseRange("A1:E1")
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsRowRange(start, end) || g.IsColRange(start, end) {
		t.Error("A1:E1 should be a row range, not a column range")
	}

	start, end, err = g.ParseRange("A1:A5")
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsColRange(start, end) || g.IsRowRange(start, end) {
		t.Error("A1:A5 should be a column range, not a row range")
	}

	start, end, err = g.ParseRange("A1:B2")
	if err != nil {
		t.Fatal(err)
	}
	if g.IsRowRange(start, end) || g.IsColRange(start, end) {
		t.Error("A1:B2 is rectangular and should be neither")
	}
}
