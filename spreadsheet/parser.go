package spreadsheet

import "strings"

// funcSpec describes one of the closed set of range/SLEEP functions
// recognized by function dispatch.
type funcSpec struct {
	name  string
	op    int
	sleep bool // SLEEP takes a single cell-or-literal argument, not a range
}

var funcTable = []funcSpec{
	{name: "MIN", op: OpMin},
	{name: "MAX", op: OpMax},
	{name: "AVG", op: OpAvg},
	{name: "SUM", op: OpSum},
	{name: "STDEV", op: OpStdev},
	{name: "SLEEP", op: OpSleep, sleep: true},
}

// parseAssignment parses a full "DST=EXPR" command line into a destination
// cell index and the Formula it implies, per spec §4.1-§4.4. It does not
// install anything; the caller (transaction.go) owns mutating the grid and
// graph.
func (g *Grid) parseAssignment(line string) (dst int, f Formula, err error) {
	line = strings.TrimSpace(line)
	eq := strings.IndexByte(line, '=')
	if eq <= 0 {
		return 0, Formula{}, ErrNotACommand
	}
	dstText := strings.TrimSpace(line[:eq])
	rhs := strings.TrimSpace(line[eq+1:])
	if rhs == "" {
		return 0, Formula{}, ErrNotACommand
	}

	dst, err = g.ParseCell(dstText)
	if err != nil {
		return 0, Formula{}, ErrNotACommand
	}

	f, err = g.parseExpr(rhs)
	if err != nil {
		return 0, Formula{}, err
	}

	for _, src := range edgeSources(g, f, dst) {
		if src == dst {
			return 0, Formula{}, ErrSelfReference
		}
	}

	return dst, f, nil
}

// parseExpr classifies and parses the right-hand side of an assignment:
// function dispatch (NAME(ARG)), then value dispatch (a single optionally
// negated cell or literal), then arithmetic dispatch (two operands joined by
// one of +-*/). The three shapes are mutually exclusive by construction: a
// function call must consume the entire RHS to match, and arithmetic
// dispatch is only attempted once the first two shapes have failed.
func (g *Grid) parseExpr(rhs string) (Formula, error) {
	if f, ok, err := g.parseFuncCall(rhs); ok {
		return f, err
	}
	if f, ok := g.parseValue(rhs); ok {
		return f, nil
	}
	return g.parseArith(rhs)
}

// parseFuncCall recognizes "NAME(ARG)" exactly spanning the whole input. The
// bool return reports whether the input had function-call shape at all: a
// caller sees ok=false and falls through to the next dispatch stage when it
// doesn't, and sees ok=true with a possibly non-nil error when it does but
// the call is invalid (unknown name, wrong argument shape, rejected range).
func (g *Grid) parseFuncCall(rhs string) (Formula, bool, error) {
	open := strings.IndexByte(rhs, '(')
	if open <= 0 || rhs[len(rhs)-1] != ')' {
		return Formula{}, false, nil
	}
	name := rhs[:open]
	arg := rhs[open+1 : len(rhs)-1]

	var spec *funcSpec
	for i := range funcTable {
		if funcTable[i].name == name {
			spec = &funcTable[i]
			break
		}
	}
	if spec == nil {
		return Formula{}, true, ErrUnknownFunc
	}

	if spec.sleep {
		f, err := g.parseSleepArg(spec.op, arg)
		return f, true, err
	}

	start, end, err := g.ParseRange(arg)
	if err != nil {
		return Formula{}, true, ErrBadOperand
	}
	if !g.IsRowRange(start, end) && !g.IsColRange(start, end) {
		return Formula{}, true, ErrRectangleRange
	}
	return Formula{Op: spec.op, P1: start, P2: int32(end)}, true, nil
}

// parseSleepArg parses SLEEP's single argument, which is either a cell
// reference (SleepFromCell=true, duration read from that cell at recalc
// time, with a source edge installed) or an integer literal
// (SleepFromCell=false, duration fixed at parse time, P1 unused and no edge
// installed), per the "source cell or self" encoding in the design notes.
func (g *Grid) parseSleepArg(op int, arg string) (Formula, error) {
	arg = strings.TrimSpace(arg)
	if cell, err := g.ParseCell(arg); err == nil {
		return Formula{Op: op, P1: cell, SleepFromCell: true}, nil
	}
	n, ok := parseSignedInt(arg)
	if !ok {
		return Formula{}, ErrBadOperand
	}
	return Formula{Op: op, SleepFromCell: false, P2: n}, nil
}

// parseSignedInt parses a bare optionally-signed integer literal with no
// grid context, used by SLEEP's literal-duration argument.
func parseSignedInt(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	negated := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negated = s[0] == '-'
		s = s[1:]
	}
	if s == "" || !isAllDigits(s) {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	if negated {
		n = -n
	}
	return int32(n), true
}

// parseValue recognizes the value-dispatch shape: a bare, optionally negated
// cell reference or integer literal, with no operator. A negated cell
// reference is encoded as OpMulLit with P2=-1, a negated literal folds its
// sign in directly as OpConst — both within the existing closed op_type
// table, per the resolved open question on negation (see DESIGN.md).
func (g *Grid) parseValue(rhs string) (Formula, bool) {
	if strings.IndexAny(rhs, "+-*/") > 0 {
		return Formula{}, false // has an interior operator: arithmetic dispatch's job
	}
	opnd, ok := g.parseOperand(rhs)
	if !ok {
		return Formula{}, false
	}
	if opnd.isLiteral {
		return ConstFormula(opnd.literal), true
	}
	if opnd.negated {
		return Formula{Op: OpMulLit, P1: opnd.cell, P2: -1}, true
	}
	return Formula{Op: OpAddLit, P1: opnd.cell, P2: 0}, true
}

// parseArith recognizes the two-operand arithmetic dispatch shape: a left
// operand, one binary operator, and a right operand, per spec §4.4. The
// operator is the first of +-*/ found at index >= 1, which lets a leading
// sign at index 0 belong to the left operand instead of being mistaken for
// the operator.
func (g *Grid) parseArith(rhs string) (Formula, error) {
	opPos := -1
	var op byte
	for i := 1; i < len(rhs); i++ {
		switch rhs[i] {
		case '+', '-', '*', '/':
			opPos = i
			op = rhs[i]
		}
		if opPos >= 0 {
			break
		}
	}
	if opPos < 0 {
		return Formula{}, ErrAmbiguous
	}

	leftTok := strings.TrimSpace(rhs[:opPos])
	rightTok := strings.TrimSpace(rhs[opPos+1:])

	left, ok := g.parseOperand(leftTok)
	if !ok {
		return Formula{}, ErrBadOperand
	}
	right, ok := g.parseOperand(rightTok)
	if !ok {
		return Formula{}, ErrBadOperand
	}

	return combineArith(op, left, right)
}
