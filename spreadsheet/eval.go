package spreadsheet

import "math"

// evalFormula recomputes a single cell's value from its formula record,
// reading already-recomputed inputs from values. This is shared by the
// recalculator (which calls it once per cell in topological order) and by
// the transaction wrapper (which calls it once, locally, to produce the
// provisional value written during Apply before recalculation runs).
//
// sleep, when non-nil, is invoked for an OpSleep formula with a positive
// duration. The recalculator passes the real callback only for the edited
// cell and nil for every other cell, so re-evaluating an existing SLEEP
// formula during cascading recompute never re-sleeps, per spec §5; the
// transaction wrapper's provisional evaluation also passes nil.
func evalFormula(grid *Grid, values []int32, cell int, f Formula, sleep func(seconds int32)) int32 {
	switch {
	case f.Op == OpConst:
		return int32(f.P1)

	case isCellLitOp(f.Op):
		v := values[f.P1]
		if v == ErrValue {
			return ErrValue
		}
		lit := f.P2
		if f.LiteralLeft {
			return arith(f.Op, lit, v)
		}
		return arith(f.Op, v, lit)

	case isCellCellOp(f.Op):
		v1 := values[f.P1]
		v2 := values[int(f.P2)]
		if v1 == ErrValue || v2 == ErrValue {
			return ErrValue
		}
		return arith(f.Op, v1, v2)

	case isRangeOp(f.Op):
		return evalRange(grid, values, f)

	case f.Op == OpSleep:
		var duration int32
		if f.SleepFromCell {
			duration = values[f.P1]
		} else {
			duration = f.P2
		}
		if duration == ErrValue {
			return ErrValue
		}
		if duration > 0 && sleep != nil {
			sleep(duration)
		}
		return duration

	default:
		return ErrValue
	}
}

// arith applies the four-function arithmetic operators with wrapping
// two's-complement semantics and ERR-on-divide-by-zero. op must be one of
// the eight cell-op-literal/cell-op-cell codes; only (op-OpAddLit)%4 (the
// +/-/x/÷ selector, shared by both families) is consulted.
func arith(op int, a, b int32) int32 {
	switch (op - OpAddLit) % 4 {
	case 0:
		return a + b
	case 1:
		return a - b
	case 2:
		return a * b
	default: // 3: divide
		if b == 0 {
			return ErrValue
		}
		return a / b
	}
}

func evalRange(grid *Grid, values []int32, f Formula) int32 {
	cells := grid.RangeCells(f.P1, int(f.P2))

	var sum int64
	var sumSquares int64
	count := 0
	minVal := int32(math.MaxInt32)
	maxVal := int32(math.MinInt32)

	for _, idx := range cells {
		v := values[idx]
		if v == ErrValue {
			return ErrValue
		}
		sum += int64(v)
		sumSquares += int64(v) * int64(v)
		count++
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	switch f.Op {
	case OpMin:
		return minVal
	case OpMax:
		return maxVal
	case OpSum:
		return int32(sum)
	case OpAvg:
		if count == 0 {
			return 0
		}
		return int32(sum / int64(count))
	case OpStdev:
		return stdev(sum, sumSquares, count)
	default:
		return ErrValue
	}
}

// stdev computes the integer-rounded population standard deviation from
// the identity variance = (sum(x^2) - 2*avg*sum(x) + n*avg^2) / n, using an
// integer average, per the design notes' resolved rounding convention.
// count <= 1 yields 0, matching original_source/src/graph.rs's behavior
// where a single-cell range has no spread.
func stdev(sum, sumSquares int64, count int) int32 {
	if count <= 1 {
		return 0
	}
	n := int64(count)
	avg := sum / n // integer average, truncated toward zero
	variance := (sumSquares - 2*avg*sum + n*avg*avg) / n
	if variance < 0 {
		variance = 0 // guards against rounding the average introducing a
		// spurious negative variance for tightly-clustered values
	}
	return int32(math.Round(math.Sqrt(float64(variance))))
}
