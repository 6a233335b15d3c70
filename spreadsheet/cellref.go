package spreadsheet

import (
	"strconv"
	"strings"
)

// ErrNotACell / ErrNotARange are returned by the name parsers below and are
// the building blocks the higher-level dispatchers in parser.go wrap with
// more specific rejection messages.
var (
	ErrNotACell  = newRejectError("not-a-cell")
	ErrNotARange = newRejectError("not-a-range")
)

// ColumnName converts a zero-based column index to spreadsheet letters:
// 0 -> "A", 25 -> "Z", 26 -> "AA", 701 -> "ZZ", 702 -> "AAA".
func ColumnName(col int) string {
	col++ // switch to 1-based for the classic bijective base-26 conversion
	var buf [8]byte
	i := len(buf)
	for col > 0 {
		col--
		i--
		buf[i] = byte('A' + col%26)
		col /= 26
	}
	return string(buf[i:])
}

// CellName renders a zero-based (row, col) pair as "A1"-style text.
func CellName(row, col int) string {
	return ColumnName(col) + strconv.Itoa(row+1)
}

// splitCellText separates the leading column letters from the trailing row
// digits. It returns ok=false if the text is not letters-then-digits with at
// least one of each, or contains any other character.
func splitCellText(text string) (letters, digits string, ok bool) {
	i := 0
	for i < len(text) && isUpperLetter(text[i]) {
		i++
	}
	if i == 0 || i == len(text) {
		return "", "", false
	}
	for j := i; j < len(text); j++ {
		if !isDigit(text[j]) {
			return "", "", false
		}
	}
	return text[:i], text[i:], true
}

func isUpperLetter(b byte) bool { return b >= 'A' && b <= 'Z' }
func isDigit(b byte) bool       { return b >= '0' && b <= '9' }

// columnIndex converts spreadsheet column letters ("A".."ZZZ"...) to a
// zero-based index; it does not bounds-check against any grid width.
func columnIndex(letters string) int {
	col := 0
	for i := 0; i < len(letters); i++ {
		col = col*26 + int(letters[i]-'A'+1)
	}
	return col - 1
}

// ParseCellText parses spreadsheet-style cell text ("A1", "AA12") into a
// zero-based (row, col) pair, without any bounds checking against a grid.
func ParseCellText(text string) (row, col int, ok bool) {
	letters, digits, split := splitCellText(text)
	if !split {
		return 0, 0, false
	}
	rowNum, err := strconv.Atoi(digits)
	if err != nil || rowNum < 1 {
		return 0, 0, false
	}
	return rowNum - 1, columnIndex(letters), true
}

// ParseCell parses cell text and bounds-checks it against the grid,
// returning the flat row-major index.
func (g *Grid) ParseCell(text string) (int, error) {
	row, col, ok := ParseCellText(text)
	if !ok || row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return 0, ErrNotACell
	}
	return g.Index(row, col), nil
}

// ParseRange parses "A1:B3"-style range text into inclusive start/end
// indices. The start row must not be after the end row, and when the rows
// are equal the start column must not be after the end column.
func (g *Grid) ParseRange(text string) (start, end int, err error) {
	parts := strings.SplitN(text, ":", 2)
	if len(parts) != 2 {
		return 0, 0, ErrNotARange
	}
	s, err := g.ParseCell(parts[0])
	if err != nil {
		return 0, 0, ErrNotARange
	}
	e, err := g.ParseCell(parts[1])
	if err != nil {
		return 0, 0, ErrNotARange
	}
	sr, sc := g.RowCol(s)
	er, ec := g.RowCol(e)
	if sr > er || (sr == er && sc > ec) {
		return 0, 0, ErrNotARange
	}
	return s, e, nil
}
