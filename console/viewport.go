package console

// Viewport is a panning window over a sheet's grid, per spec §4.8. It never
// touches the core's value/formula/graph state directly — only the sheet's
// read accessors.
type Viewport struct {
	rows, cols   int // sheet dimensions
	size         int // window height/width, default 10
	originRow    int
	originCol    int
	outputHidden bool
}

// NewViewport returns a square viewport of the default 10x10 size, clamped
// to the given sheet dimensions: its side is the smallest of 10, rows and
// cols, so a 3x5 sheet gets a 3x3 window.
func NewViewport(rows, cols int) *Viewport {
	return &Viewport{rows: rows, cols: cols, size: clampSize(10, rows, cols)}
}

func clampSize(size, rows, cols int) int {
	if size > rows {
		size = rows
	}
	if size > cols {
		size = cols
	}
	return size
}

// Pan moves the viewport by (dr, dc) cells, clamped to [0, rows-size] x
// [0, cols-size].
func (v *Viewport) Pan(dr, dc int) {
	v.originRow = clamp(v.originRow+dr, 0, v.rows-v.size)
	v.originCol = clamp(v.originCol+dc, 0, v.cols-v.size)
}

func clamp(x, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ScrollTo jumps the viewport so (row, col) is its top-left corner, clamped
// the same way as Pan.
func (v *Viewport) ScrollTo(row, col int) {
	v.originRow = clamp(row, 0, v.rows-v.size)
	v.originCol = clamp(col, 0, v.cols-v.size)
}

// Bounds returns the inclusive top-left and exclusive bottom-right corners
// of the current window.
func (v *Viewport) Bounds() (rowStart, colStart, rowEnd, colEnd int) {
	return v.originRow, v.originCol, v.originRow + v.size, v.originCol + v.size
}

// SetOutputHidden toggles whether the prompt loop renders the viewport
// after each command, per the disable_output/enable_output commands.
func (v *Viewport) SetOutputHidden(hidden bool) { v.outputHidden = hidden }

// OutputHidden reports the current disable_output/enable_output state.
func (v *Viewport) OutputHidden() bool { return v.outputHidden }
