package console

import (
	"fmt"
	"strings"

	"gridcalc/spreadsheet"
)

// RenderASCII draws the current viewport as a fixed-width table, ERR cells
// rendered as the literal "ERR", per spec §4.8/§6.3.
func RenderASCII(sheet *spreadsheet.Sheet, v *Viewport) string {
	rowStart, colStart, rowEnd, colEnd := v.Bounds()

	const cellWidth = 10
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", cellWidth))
	for col := colStart; col < colEnd; col++ {
		fmt.Fprintf(&b, "%-*s", cellWidth, spreadsheet.ColumnName(col))
	}
	b.WriteString("\n")

	for row := rowStart; row < rowEnd; row++ {
		fmt.Fprintf(&b, "%-*d", cellWidth, row+1)
		for col := colStart; col < colEnd; col++ {
			b.WriteString(fmt.Sprintf("%-*s", cellWidth, sheet.Display(row, col)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderHTML draws the current viewport as an HTML table, the same data
// RenderASCII shows the terminal, with ERR cells marked class="err".
func RenderHTML(sheet *spreadsheet.Sheet, v *Viewport) string {
	rowStart, colStart, rowEnd, colEnd := v.Bounds()

	var b strings.Builder
	b.WriteString("<table>\n<tr><th></th>")
	for col := colStart; col < colEnd; col++ {
		fmt.Fprintf(&b, "<th>%s</th>", spreadsheet.ColumnName(col))
	}
	b.WriteString("</tr>\n")

	for row := rowStart; row < rowEnd; row++ {
		fmt.Fprintf(&b, "<tr><th>%d</th>", row+1)
		for col := colStart; col < colEnd; col++ {
			text := sheet.Display(row, col)
			class := ""
			if text == "ERR" {
				class = ` class="err"`
			}
			fmt.Fprintf(&b, "<td%s>%s</td>", class, text)
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
	return b.String()
}
