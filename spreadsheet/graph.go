package spreadsheet

import "sort"

// Graph is the dependency graph from spec §3: a sparse mapping from source
// cell index to an ordered, deduplicated list of dependent cell indices.
// Edges read "src -> dst" meaning "dst must recompute when src changes".
//
// The map-of-slices shape and the linear-scan add/remove below generalize
// the teacher's Cell.Dependents []CellID with its addDependent/
// removeDependent helpers (spreadsheet/engine.go) from string cell IDs to
// integer indices; a sparse map keeps memory proportional to the number of
// formulas rather than to Rows*Cols, which matters once a sheet approaches
// its ~18M-cell upper bound.
type Graph struct {
	dependents map[int][]int
}

// NewGraph returns an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{dependents: make(map[int][]int)}
}

// Dependents returns the (unexported-backing) dependents of src, or nil.
func (g *Graph) Dependents(src int) []int { return g.dependents[src] }

func (g *Graph) addEdge(src, dst int) {
	if src == dst {
		return // never installed, per the no-self-edge invariant
	}
	for _, existing := range g.dependents[src] {
		if existing == dst {
			return // deduplicated, per the resolved open question
		}
	}
	g.dependents[src] = append(g.dependents[src], dst)
}

func (g *Graph) removeEdge(src, dst int) {
	list := g.dependents[src]
	for i, existing := range list {
		if existing == dst {
			g.dependents[src] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(g.dependents[src]) == 0 {
		delete(g.dependents, src)
	}
}

// edgeSources derives the full set of source cells a formula at dst implies
// an edge from, expanding range formulas into their member cells. Ranges
// that are neither a single row nor a single column are never reached here
// — the parser rejects them before a Formula is ever constructed.
func edgeSources(grid *Grid, f Formula, dst int) []int {
	if isRangeOp(f.Op) {
		return grid.RangeCells(f.P1, int(f.P2))
	}
	return f.directSources()
}

// AddEdges installs every edge a formula implies, deduplicated, skipping
// any that would be a self-edge (the parser is expected to have already
// rejected self-referencing formulas, but this stays defensive since it is
// also invoked during rollback re-installation of a prior formula).
func (g *Graph) AddEdges(grid *Grid, f Formula, dst int) {
	for _, src := range edgeSources(grid, f, dst) {
		g.addEdge(src, dst)
	}
}

// RemoveEdges removes every edge a formula implies. A source whose
// dependents list becomes empty is dropped from the sparse map.
func (g *Graph) RemoveEdges(grid *Grid, f Formula, dst int) {
	for _, src := range edgeSources(grid, f, dst) {
		g.removeEdge(src, dst)
	}
}

// Recalc computes the topological order of cells reachable from edited
// (inclusive) and reports a cycle if one exists among them. This is the
// BFS-reachability-plus-Kahn algorithm from spec §4.6, grounded on
// original_source/src/graph.rs's topo_sort/recalc — reimplemented with a
// real Kahn in-degree count instead of the original's plain
// visited-set DFS, so a cycle is reliably detected rather than merely
// causing traversal to stop early.
func (g *Graph) Recalc(edited int) (order []int, err error) {
	reachable := map[int]bool{edited: true}
	inDegree := map[int]int{}
	queue := []int{edited}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range g.dependents[cur] {
			inDegree[dep]++
			if !reachable[dep] {
				reachable[dep] = true
				queue = append(queue, dep)
			}
		}
	}

	zero := make([]int, 0, len(reachable))
	for node := range reachable {
		if inDegree[node] == 0 {
			zero = append(zero, node)
		}
	}
	// Kahn order is not unique among equal-in-degree nodes; keep the
	// zero-in-degree frontier sorted so recalculation order (and hence any
	// SLEEP ordering) is deterministic across runs for the same edit.
	sort.Ints(zero)

	order = make([]int, 0, len(reachable))
	for len(zero) > 0 {
		cur := zero[0]
		zero = zero[1:]
		order = append(order, cur)
		for _, dep := range g.dependents[cur] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				pos := sort.SearchInts(zero, dep)
				zero = append(zero, 0)
				copy(zero[pos+1:], zero[pos:])
				zero[pos] = dep
			}
		}
	}

	if len(order) != len(reachable) {
		return nil, ErrCycle
	}
	return order, nil
}
