package spreadsheet

import "testing"

func TestIndexRowColRoundTrip(t *testing.T) {
	g := NewGrid(5, 7)
	for row := 0; row < 5; row++ {
		for col := 0; col < 7; col++ {
			idx := g.Index(row, col)
			r, c := g.RowCol(idx)
			if r != row || c != col {
				t.Fatalf("RowCol(Index(%d,%d)) = (%d,%d)", row, col, r, c)
			}
		}
	}
}

func TestRangeCellsRow(t *testing.T) {
	g := NewGrid(3, 3)
	start := g.Index(1, 0)
	end := g.Index(1, 2)
	cells := g.RangeCells(start, end)
	want := []int{g.Index(1, 0), g.Index(1, 1), g.Index(1, 2)}
	if len(cells) != len(want) {
		t.Fatalf("RangeCells = %v, want %v", cells, want)
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("RangeCells = %v, want %v", cells, want)
		}
	}
}

func TestNewGridZeroInitialized(t *testing.T) {
	g := NewGrid(2, 2)
	for i := 0; i < 4; i++ {
		if g.Value(i) != 0 {
			t.Errorf("cell %d = %d, want 0", i, g.Value(i))
		}
	}
}
