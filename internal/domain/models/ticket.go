package models

import "time"

// Ticket is one row per seat-group booked on one trip leg. SeatNumber
// holds the comma-joined list when several seats share one record.
type Ticket struct {
	ID            int64     `json:"id"`
	TripID        int64     `json:"trip_id"`
	PassengerID   int64     `json:"passenger_id"`
	SeatNumber    string    `json:"seat_number"`
	PricePaidKz   int64     `json:"price_paid_kz"`
	PaymentStatus string    `json:"payment_status"`
	PaymentMethod string    `json:"payment_method"`
	BookingSource string    `json:"booking_source"`
	SeatClass     string    `json:"seat_class"`
	TicketNumber  string    `json:"ticket_number"`
	Status        string    `json:"status"`
	BookingTime   time.Time `json:"booking_time"`
}
