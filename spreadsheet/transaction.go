package spreadsheet

// submit runs the full snapshot/detach/apply/recalculate/commit-or-rollback
// edit discipline from spec §4.5-§4.6 for one "DST=EXPR" line against grid
// and graph. The caller (Sheet.Submit) holds the write lock for the whole
// call. On any rejection, grid and graph are left byte-identical to their
// state on entry.
// affected is the full recalculation order on success (dst is always
// affected[0]), letting a caller like the websocket hub broadcast exactly
// the cells that were recalculated instead of the whole sheet.
func submit(grid *Grid, graph *Graph, line string, sleep func(int32)) (affected []int, err error) {
	dst, newFormula, err := grid.parseAssignment(line)
	if err != nil {
		return nil, err
	}

	oldFormula := grid.Formula(dst)
	oldValue := grid.Value(dst)

	// detach: remove the edges implied by whatever formula currently
	// occupies dst, so a self-consistent edge set can be rebuilt below.
	graph.RemoveEdges(grid, oldFormula, dst)

	// apply: install the new formula and its edges, and give dst a
	// provisional value so a range/cell formula reading dst mid-recalc
	// (possible only via a cycle, which recalc below will catch) sees
	// something rather than stale data from the old formula.
	grid.setFormula(dst, newFormula)
	graph.AddEdges(grid, newFormula, dst)
	grid.setValue(dst, evalFormula(grid, grid.values, dst, newFormula, nil))

	order, recalcErr := recalc(grid, graph, dst, sleep)
	if recalcErr != nil {
		// rollback: undo the edge and formula swap and restore the prior
		// value, leaving the sheet exactly as it was before this call.
		graph.RemoveEdges(grid, newFormula, dst)
		grid.setFormula(dst, oldFormula)
		grid.setValue(dst, oldValue)
		graph.AddEdges(grid, oldFormula, dst)
		return nil, recalcErr
	}

	return order, nil
}
