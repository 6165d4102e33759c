package models

import (
	"time"

	"nawabus/internal/domain"
)

// DraftLeg is one leg of a booking draft: the trip, the selected seats
// and the per-seat price captured at selection time.
type DraftLeg struct {
	TripID    int64  `json:"trip_id"`
	Seats     []int  `json:"selected_seats"`
	PriceKz   int64  `json:"price_kz"`
	SeatClass string `json:"seat_class"`
	RouteName string `json:"route_name"`
	Departure string `json:"departure_time"`
	TotalKz   int64  `json:"total_kz"`
}

// BookingDraft is the ephemeral record carried between seat selection
// and checkout. It lives only in the draft store, under an opaque id,
// until it is consumed or its TTL expires.
type BookingDraft struct {
	ID           string          `json:"id"`
	TripType     domain.TripType `json:"trip_type"`
	Outbound     DraftLeg        `json:"outbound_trip"`
	Return       *DraftLeg       `json:"return_trip,omitempty"`
	TotalPriceKz int64           `json:"total_price_kz"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Legs lists the draft's legs in booking order, outbound first.
func (d BookingDraft) Legs() []DraftLeg {
	legs := []DraftLeg{d.Outbound}
	if d.Return != nil {
		legs = append(legs, *d.Return)
	}
	return legs
}
