package spreadsheet

import "testing"

func mustSubmit(t *testing.T, s *Sheet, line string) {
	t.Helper()
	if err := s.Submit(line); err != nil {
		t.Fatalf("Submit(%q) failed: %v", line, err)
	}
}

func mustValue(t *testing.T, s *Sheet, name string) int32 {
	t.Helper()
	v, err := s.Value(name)
	if err != nil {
		t.Fatalf("Value(%q) failed: %v", name, err)
	}
	return v
}

func TestSimpleEvaluation(t *testing.T) {
	s := NewSheet(10, 10)
	mustSubmit(t, s, "A1=10")
	if v := mustValue(t, s, "A1"); v != 10 {
		t.Errorf("A1 = %d, want 10", v)
	}
}

func TestDependencyPropagation(t *testing.T) {
	s := NewSheet(10, 10)
	mustSubmit(t, s, "A1=10")
	mustSubmit(t, s, "B1=A1*2")

	if v := mustValue(t, s, "B1"); v != 20 {
		t.Errorf("B1 = %d, want 20", v)
	}

	mustSubmit(t, s, "A1=5")
	if v := mustValue(t, s, "B1"); v != 10 {
		t.Errorf("B1 after A1 update = %d, want 10", v)
	}
}

func TestChainedDependencies(t *testing.T) {
	s := NewSheet(10, 10)
	mustSubmit(t, s, "A1=1")
	mustSubmit(t, s, "B1=A1+1")
	mustSubmit(t, s, "C1=B1*2")

	if v := mustValue(t, s, "C1"); v != 4 {
		t.Errorf("C1 = %d, want 4", v)
	}

	mustSubmit(t, s, "A1=2")
	if v := mustValue(t, s, "C1"); v != 6 {
		t.Errorf("C1 after update = %d, want 6", v)
	}
}

func TestDivisionByZeroPropagatesErr(t *testing.T) {
	s := NewSheet(10, 10)
	mustSubmit(t, s, "A1=0")
	mustSubmit(t, s, "B1=10/A1")
	mustSubmit(t, s, "C1=B1+1")

	if v := mustValue(t, s, "B1"); v != ErrValue {
		t.Errorf("B1 = %d, want ErrValue", v)
	}
	if v := mustValue(t, s, "C1"); v != ErrValue {
		t.Errorf("C1 = %d, want ErrValue propagated through B1", v)
	}
}

func TestErrClearsWhenCauseIsFixed(t *testing.T) {
	s := NewSheet(10, 10)
	mustSubmit(t, s, "A1=0")
	mustSubmit(t, s, "B1=10/A1")
	if v := mustValue(t, s, "B1"); v != ErrValue {
		t.Fatalf("B1 = %d, want ErrValue", v)
	}

	mustSubmit(t, s, "A1=2")
	if v := mustValue(t, s, "B1"); v != 5 {
		t.Errorf("B1 after fixing A1 = %d, want 5", v)
	}
}

func TestCycleRejectedAndStateUnchanged(t *testing.T) {
	s := NewSheet(10, 10)
	mustSubmit(t, s, "A1=1")
	mustSubmit(t, s, "B1=A1+1")

	before := s.Snapshot()
	err := s.Submit("A1=B1+1")
	if err != ErrCycle {
		t.Fatalf("Submit(A1=B1+1) = %v, want ErrCycle", err)
	}

	after := s.Snapshot()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("cell %d changed from %d to %d despite rejected cycle", i, before[i], after[i])
		}
	}
}

func TestReassignDetachesOldEdges(t *testing.T) {
	s := NewSheet(10, 10)
	mustSubmit(t, s, "A1=1")
	mustSubmit(t, s, "B1=2")
	mustSubmit(t, s, "C1=A1+1")
	mustSubmit(t, s, "C1=B1+1")

	// A1 no longer feeds C1; changing it must not affect C1.
	mustSubmit(t, s, "A1=100")
	if v := mustValue(t, s, "C1"); v != 3 {
		t.Errorf("C1 = %d, want 3 (unaffected by stale A1 edge)", v)
	}

	mustSubmit(t, s, "B1=10")
	if v := mustValue(t, s, "C1"); v != 11 {
		t.Errorf("C1 = %d, want 11 after B1 update", v)
	}
}

func TestRangeAggregateFunctions(t *testing.T) {
	s := NewSheet(10, 10)
	mustSubmit(t, s, "A1=1")
	mustSubmit(t, s, "A2=2")
	mustSubmit(t, s, "A3=3")
	mustSubmit(t, s, "A4=4")
	mustSubmit(t, s, "A5=5")

	mustSubmit(t, s, "B1=SUM(A1:A5)")
	mustSubmit(t, s, "B2=AVG(A1:A5)")
	mustSubmit(t, s, "B3=MIN(A1:A5)")
	mustSubmit(t, s, "B4=MAX(A1:A5)")

	if v := mustValue(t, s, "B1"); v != 15 {
		t.Errorf("SUM = %d, want 15", v)
	}
	if v := mustValue(t, s, "B2"); v != 3 {
		t.Errorf("AVG = %d, want 3", v)
	}
	if v := mustValue(t, s, "B3"); v != 1 {
		t.Errorf("MIN = %d, want 1", v)
	}
	if v := mustValue(t, s, "B4"); v != 5 {
		t.Errorf("MAX = %d, want 5", v)
	}
}

func TestRectangularRangeRejected(t *testing.T) {
	s := NewSheet(10, 10)
	if err := s.Submit("C1=SUM(A1:B2)"); err != ErrRectangleRange {
		t.Fatalf("Submit(SUM(A1:B2)) = %v, want ErrRectangleRange", err)
	}
}

func TestOnCommitFiresAfterSuccessfulSubmit(t *testing.T) {
	s := NewSheet(10, 10)
	var fired int
	var lastAffected []int
	s.OnCommit(func(affected []int) {
		fired++
		lastAffected = affected
	})

	mustSubmit(t, s, "A1=1")
	if fired != 1 {
		t.Errorf("onCommit fired %d times, want 1", fired)
	}
	if len(lastAffected) != 1 || lastAffected[0] != 0 {
		t.Errorf("onCommit affected = %v, want [0] (A1 alone)", lastAffected)
	}

	if err := s.Submit("not a command"); err == nil {
		t.Fatal("expected rejection")
	}
	if fired != 1 {
		t.Errorf("onCommit fired %d times after a rejection, want still 1", fired)
	}

	mustSubmit(t, s, "B1=A1+1")
	if len(lastAffected) != 1 || lastAffected[0] != 1 {
		t.Errorf("onCommit affected = %v, want [1] (B1 alone)", lastAffected)
	}

	mustSubmit(t, s, "A1=5")
	if len(lastAffected) != 2 {
		t.Errorf("onCommit affected = %v, want 2 cells (A1 then B1)", lastAffected)
	}
}
