package services

import (
	"testing"
)

func TestBuildSeatPlanLayout(t *testing.T) {
	cells := BuildSeatPlan(40, nil)

	seatCount := 0
	for _, c := range cells {
		if !c.Aisle {
			seatCount++
		}
	}
	if seatCount != 40 {
		t.Fatalf("seat count = %d, want 40", seatCount)
	}

	// Aisle gap sits exactly before every seat i with (i-1)%4 == 2.
	wantAisles := 0
	for i := 1; i <= 40; i++ {
		if (i-1)%4 == 2 {
			wantAisles++
		}
	}
	gotAisles := len(cells) - seatCount
	if gotAisles != wantAisles {
		t.Fatalf("aisle count = %d, want %d", gotAisles, wantAisles)
	}

	// First five cells: seat 1, seat 2, aisle, seat 3, seat 4.
	if cells[0].Number != 1 || cells[1].Number != 2 || !cells[2].Aisle || cells[3].Number != 3 || cells[4].Number != 4 {
		t.Fatalf("row layout wrong: %+v", cells[:5])
	}
}

func TestBuildSeatPlanEmptyCapacity(t *testing.T) {
	if got := BuildSeatPlan(0, nil); len(got) != 0 {
		t.Fatalf("capacity 0 should render empty grid, got %d cells", len(got))
	}
	if got := BuildSeatPlan(-3, nil); len(got) != 0 {
		t.Fatalf("negative capacity should render empty grid, got %d cells", len(got))
	}
}

func TestSeatSelectionOccupiedNeverToggles(t *testing.T) {
	sel := NewSeatSelection(40, []int{3})
	if sel.Toggle(3) {
		t.Fatal("occupied seat must not toggle")
	}
	if sel.Count() != 0 {
		t.Fatalf("selection changed by occupied toggle: %v", sel.Seats())
	}
	if !sel.Toggle(4) {
		t.Fatal("free seat should toggle")
	}
}

func TestSeatSelectionToggleIsIdempotentPair(t *testing.T) {
	sel := NewSeatSelection(10, nil)
	sel.Toggle(5)
	sel.Toggle(5)
	if sel.Count() != 0 {
		t.Fatalf("double toggle must restore prior state, got %v", sel.Seats())
	}

	sel.Toggle(2)
	sel.Toggle(7)
	sel.Toggle(2)
	if got := sel.Seats(); len(got) != 1 || got[0] != 7 {
		t.Fatalf("set semantics broken: %v", got)
	}
}

func TestSeatSelectionOutOfRange(t *testing.T) {
	sel := NewSeatSelection(4, nil)
	if sel.Toggle(0) || sel.Toggle(5) {
		t.Fatal("out-of-range seats must not toggle")
	}
}

func TestWizardTotalPriceRecomputed(t *testing.T) {
	w := NewSeatWizard(40, nil, 5000)
	w.Outbound.Toggle(3)
	w.Outbound.Toggle(4)
	if w.TotalPrice() != 10000 {
		t.Fatalf("one-way total = %d, want 10000", w.TotalPrice())
	}
	w.Outbound.Toggle(4)
	if w.TotalPrice() != 5000 {
		t.Fatalf("total after deselect = %d, want 5000", w.TotalPrice())
	}
}

func TestWizardRoundTripFlow(t *testing.T) {
	w := NewSeatWizard(40, nil, 4000).WithReturn(40, nil, 4500)

	// Cannot advance with empty outbound.
	if err := w.Advance(); err == nil {
		t.Fatal("advance with empty outbound must fail")
	}

	w.Outbound.Toggle(1)
	if err := w.Advance(); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if w.Phase() != PhaseReturn {
		t.Fatalf("phase = %s, want return", w.Phase())
	}

	// Finalize refuses while the return leg is empty.
	if err := w.Finalize(); err == nil {
		t.Fatal("finalize with empty return must fail")
	}

	w.Active().Toggle(2)
	if err := w.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if w.TotalPrice() != 8500 {
		t.Fatalf("round-trip total = %d, want 8500", w.TotalPrice())
	}

	// Back keeps the outbound selection.
	w.Back()
	if got := w.Outbound.Seats(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("outbound selection lost on back: %v", got)
	}
}

func TestWizardOneWayAdvanceIsFinal(t *testing.T) {
	w := NewSeatWizard(12, nil, 2000)
	w.Outbound.Toggle(6)
	if err := w.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if w.Phase() != PhaseOutbound {
		t.Fatalf("one-way wizard must stay in outbound phase, got %s", w.Phase())
	}
	if err := w.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
}

func TestSelectAllConflicts(t *testing.T) {
	sel := NewSeatSelection(10, []int{3})
	if err := selectAll(sel, []int{3, 4}); err == nil {
		t.Fatal("selecting an occupied seat must conflict")
	}

	sel = NewSeatSelection(10, nil)
	if err := selectAll(sel, []int{11}); err == nil {
		t.Fatal("selecting out-of-range seat must fail")
	}

	sel = NewSeatSelection(10, nil)
	if err := selectAll(sel, nil); err == nil {
		t.Fatal("empty selection must fail")
	}

	// Duplicates collapse instead of deselecting (set, not toggle list).
	sel = NewSeatSelection(10, nil)
	if err := selectAll(sel, []int{4, 4}); err != nil {
		t.Fatalf("duplicate seats should be tolerated: %v", err)
	}
	if got := sel.Seats(); len(got) != 1 || got[0] != 4 {
		t.Fatalf("duplicate handling wrong: %v", got)
	}
}
