package services

import (
	"fmt"
	"sort"

	"nawabus/internal/domain"
)

// SeatCell is one position of the rendered seat grid. Aisle cells carry
// no seat number and are never selectable.
type SeatCell struct {
	Number   int  `json:"number,omitempty"`
	Occupied bool `json:"occupied"`
	Aisle    bool `json:"aisle,omitempty"`
}

// BuildSeatPlan lays out capacity seats 4 per row with an aisle gap after
// every 2nd position (seat, seat, aisle, seat, seat). Capacity zero or
// negative yields an empty grid.
func BuildSeatPlan(capacity int, occupied []int) []SeatCell {
	if capacity <= 0 {
		return []SeatCell{}
	}
	taken := make(map[int]bool, len(occupied))
	for _, n := range occupied {
		taken[n] = true
	}

	cells := make([]SeatCell, 0, capacity+capacity/4+1)
	for i := 1; i <= capacity; i++ {
		if (i-1)%4 == 2 {
			cells = append(cells, SeatCell{Aisle: true})
		}
		cells = append(cells, SeatCell{Number: i, Occupied: taken[i]})
	}
	return cells
}

// SeatSelection is the pure toggle state over (capacity, occupied set,
// selection set). Toggling an occupied or out-of-range seat is a no-op;
// toggling twice restores the prior state.
type SeatSelection struct {
	capacity int
	occupied map[int]bool
	selected map[int]bool
}

func NewSeatSelection(capacity int, occupied []int) *SeatSelection {
	taken := make(map[int]bool, len(occupied))
	for _, n := range occupied {
		taken[n] = true
	}
	return &SeatSelection{
		capacity: capacity,
		occupied: taken,
		selected: map[int]bool{},
	}
}

// Toggle flips membership of the seat in the selection set and reports
// whether anything changed.
func (s *SeatSelection) Toggle(seat int) bool {
	if seat < 1 || seat > s.capacity || s.occupied[seat] {
		return false
	}
	if s.selected[seat] {
		delete(s.selected, seat)
	} else {
		s.selected[seat] = true
	}
	return true
}

// Seats returns the current selection in ascending order.
func (s *SeatSelection) Seats() []int {
	out := make([]int, 0, len(s.selected))
	for n := range s.selected {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

func (s *SeatSelection) Count() int { return len(s.selected) }

// Wizard phases for the two-step round-trip selection.
const (
	PhaseOutbound = "outbound"
	PhaseReturn   = "return"
)

// SeatWizard drives the one- or two-phase seat selection. The return
// phase only exists when a return trip was supplied; going back never
// drops the outbound selection.
type SeatWizard struct {
	Outbound *SeatSelection
	Return   *SeatSelection

	outboundPrice int64
	returnPrice   int64
	phase         string
}

func NewSeatWizard(outboundCapacity int, outboundOccupied []int, outboundPriceKz int64) *SeatWizard {
	return &SeatWizard{
		Outbound:      NewSeatSelection(outboundCapacity, outboundOccupied),
		outboundPrice: outboundPriceKz,
		phase:         PhaseOutbound,
	}
}

// WithReturn attaches the second leg, turning the wizard into the
// two-phase round-trip variant.
func (w *SeatWizard) WithReturn(capacity int, occupied []int, priceKz int64) *SeatWizard {
	w.Return = NewSeatSelection(capacity, occupied)
	w.returnPrice = priceKz
	return w
}

func (w *SeatWizard) Phase() string { return w.phase }

// Active returns the selection the current phase operates on.
func (w *SeatWizard) Active() *SeatSelection {
	if w.phase == PhaseReturn && w.Return != nil {
		return w.Return
	}
	return w.Outbound
}

// Advance moves from outbound to return. It refuses on an empty outbound
// selection and is only meaningful when a return leg exists.
func (w *SeatWizard) Advance() error {
	if w.Outbound.Count() == 0 {
		return domain.ValidationError{Field: "lugares", Msg: "selecione pelo menos um lugar de ida"}
	}
	if w.Return == nil {
		return nil
	}
	w.phase = PhaseReturn
	return nil
}

// Back returns to the outbound phase keeping both selections intact.
func (w *SeatWizard) Back() {
	w.phase = PhaseOutbound
}

// TotalPrice recomputes Σ |selection| × per-seat price over both legs.
func (w *SeatWizard) TotalPrice() int64 {
	total := int64(w.Outbound.Count()) * w.outboundPrice
	if w.Return != nil {
		total += int64(w.Return.Count()) * w.returnPrice
	}
	return total
}

// Finalize verifies every required leg has a non-empty selection; only
// then may the combined draft be built.
func (w *SeatWizard) Finalize() error {
	if w.Outbound.Count() == 0 {
		return domain.ValidationError{Field: "lugares", Msg: "selecione pelo menos um lugar de ida"}
	}
	if w.Return != nil && w.Return.Count() == 0 {
		return domain.ValidationError{Field: "lugares", Msg: "selecione pelo menos um lugar de volta"}
	}
	return nil
}

// selectAll applies a requested seat list against an empty selection,
// failing on the first seat that cannot be taken.
func selectAll(sel *SeatSelection, seats []int) error {
	if len(seats) == 0 {
		return domain.ValidationError{Field: "lugares", Msg: "nenhum lugar selecionado"}
	}
	seen := map[int]bool{}
	for _, n := range seats {
		if seen[n] {
			continue
		}
		seen[n] = true
		if !sel.Toggle(n) {
			if n >= 1 && n <= sel.capacity {
				return domain.ConflictError{Resource: "lugar", Msg: fmt.Sprintf("o lugar %d já está ocupado", n)}
			}
			return domain.ValidationError{Field: "lugares", Msg: fmt.Sprintf("lugar %d inválido", n)}
		}
	}
	return nil
}
