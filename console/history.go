package console

import "gridcalc/spreadsheet"

// edit is one undoable step: the full line that was submitted to restore
// cell back to its prior state.
type edit struct {
	cell string
	line string
}

// History is the undo/redo LIFO from spec §4.8: a thin collaborator that
// replays previously-submitted formula text through the core. It carries no
// semantics of its own beyond "what line would put this cell back".
type History struct {
	last map[string]string // cell name -> last line submitted for it
	undo []edit
	redo []edit
}

// NewHistory returns an empty undo/redo history.
func NewHistory() *History {
	return &History{last: make(map[string]string)}
}

// RecordEdit should be called immediately after a successful Sheet.Submit
// for the given destination cell and the exact line that was submitted. It
// clears the redo stack, per the conventional undo/redo discipline (a fresh
// edit invalidates any previously undone branch).
func (h *History) RecordEdit(cell, line string) {
	prev, had := h.last[cell]
	if !had {
		prev = cell + "=0" // a never-edited cell's implicit prior state
	}
	h.undo = append(h.undo, edit{cell: cell, line: prev})
	h.redo = h.redo[:0]
	h.last[cell] = line
}

// Undo pops the most recent edit and resubmits its pre-edit line, pushing
// the cell's current line onto the redo stack. Returns ok=false if there is
// nothing to undo.
func (h *History) Undo(sheet *spreadsheet.Sheet) (ok bool, err error) {
	if len(h.undo) == 0 {
		return false, nil
	}
	e := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	current := h.last[e.cell]
	if err := sheet.Submit(e.line); err != nil {
		h.undo = append(h.undo, e) // put it back; nothing changed
		return true, err
	}
	h.redo = append(h.redo, edit{cell: e.cell, line: current})
	h.last[e.cell] = e.line
	return true, nil
}

// Redo pops the most recently undone edit and resubmits it, mirroring Undo.
func (h *History) Redo(sheet *spreadsheet.Sheet) (ok bool, err error) {
	if len(h.redo) == 0 {
		return false, nil
	}
	e := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	current := h.last[e.cell]
	if err := sheet.Submit(e.line); err != nil {
		h.redo = append(h.redo, e)
		return true, err
	}
	h.undo = append(h.undo, edit{cell: e.cell, line: current})
	h.last[e.cell] = e.line
	return true, nil
}
