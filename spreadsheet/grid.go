package spreadsheet

// Grid is the row-major flat value store plus its parallel formula store
// (spec §2 layers 1-2). Index arithmetic is row*Cols+col, both zero-based.
type Grid struct {
	Rows, Cols int
	values     []int32
	formulas   []Formula
}

// NewGrid allocates a Rows x Cols grid. Every cell starts as the constant 0.
func NewGrid(rows, cols int) *Grid {
	return &Grid{
		Rows:     rows,
		Cols:     cols,
		values:   make([]int32, rows*cols),
		formulas: make([]Formula, rows*cols),
	}
}

// Index converts a zero-based (row, col) pair to a flat cell index.
func (g *Grid) Index(row, col int) int { return row*g.Cols + col }

// RowCol converts a flat cell index back to a zero-based (row, col) pair.
func (g *Grid) RowCol(idx int) (row, col int) { return idx / g.Cols, idx % g.Cols }

// InBounds reports whether idx names a real cell of this grid.
func (g *Grid) InBounds(idx int) bool { return idx >= 0 && idx < len(g.values) }

// Value returns the current value of a cell.
func (g *Grid) Value(idx int) int32 { return g.values[idx] }

// Formula returns the current formula record of a cell.
func (g *Grid) Formula(idx int) Formula { return g.formulas[idx] }

// Outside tests, setValue and setFormula are only called from the edit path
// (transaction.go and the recalc.go it calls), which runs under the Sheet's
// write lock for the full snapshot/apply/rollback sequence; Grid itself has
// no locking of its own.
func (g *Grid) setValue(idx int, v int32)     { g.values[idx] = v }
func (g *Grid) setFormula(idx int, f Formula) { g.formulas[idx] = f }

// Name renders a cell index as spreadsheet text ("A1").
func (g *Grid) Name(idx int) string {
	row, col := g.RowCol(idx)
	return CellName(row, col)
}

// IsRowRange reports whether start/end lie in the same row.
func (g *Grid) IsRowRange(start, end int) bool {
	sr, _ := g.RowCol(start)
	er, _ := g.RowCol(end)
	return sr == er
}

// IsColRange reports whether start/end lie in the same column.
func (g *Grid) IsColRange(start, end int) bool {
	_, sc := g.RowCol(start)
	_, ec := g.RowCol(end)
	return sc == ec
}

// RangeCells returns the member cells of an inclusive start..end range that
// is known to be a single row or single column (rectangular ranges are
// rejected earlier, at formula-parse time, per the range-edge storage
// shortcut in the design notes).
func (g *Grid) RangeCells(start, end int) []int {
	sr, sc := g.RowCol(start)
	er, ec := g.RowCol(end)
	cells := make([]int, 0, (er-sr+1)*(ec-sc+1))
	for r := sr; r <= er; r++ {
		for c := sc; c <= ec; c++ {
			cells = append(cells, g.Index(r, c))
		}
	}
	return cells
}
