package repositories

import (
	"database/sql"
	"errors"

	"nawabus/internal/domain"
	"nawabus/internal/domain/models"
	"nawabus/internal/utils"
)

type TicketRepository struct {
	DB *sql.DB
}

// queryer lets occupancy checks run on the pool or inside a transaction.
type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// OccupiedSeats returns every seat number covered by a ticket whose
// status marks the seat as taken. Comma-joined seat groups are expanded.
func (r TicketRepository) OccupiedSeats(tripID int64, statuses ...string) ([]int, error) {
	return occupiedSeats(r.DB, tripID, statuses...)
}

// OccupiedSeatsTx is the same check bound to an open transaction, used by
// checkout to re-validate right before inserting.
func (r TicketRepository) OccupiedSeatsTx(tx *sql.Tx, tripID int64, statuses ...string) ([]int, error) {
	return occupiedSeats(tx, tripID, statuses...)
}

func occupiedSeats(q queryer, tripID int64, statuses ...string) ([]int, error) {
	if len(statuses) == 0 {
		statuses = []string{domain.TicketStatusActive, domain.TicketStatusUsed}
	}
	placeholders := ""
	args := []any{tripID}
	for i, s := range statuses {
		if i > 0 {
			placeholders += ","
		}
		placeholders += "?"
		args = append(args, s)
	}

	rows, err := q.Query(`SELECT seat_number FROM tickets WHERE trip_id = ? AND status IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, utils.SplitSeatNumbers(raw)...)
	}
	return out, rows.Err()
}

// InsertPending writes one pending ticket row inside the checkout
// transaction and returns its id.
func (r TicketRepository) InsertPending(tx *sql.Tx, t models.Ticket) (int64, error) {
	res, err := tx.Exec(`INSERT INTO tickets
		(trip_id, passenger_id, seat_number, price_paid_kz, payment_status,
		 payment_method, booking_source, seat_class, ticket_number, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TripID, t.PassengerID, t.SeatNumber, t.PricePaidKz, t.PaymentStatus,
		t.PaymentMethod, t.BookingSource, t.SeatClass, t.TicketNumber, t.Status)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

// DeleteByID removes a ticket row; checkout uses it to compensate for a
// failed payment-reference call.
func (r TicketRepository) DeleteByID(id int64) error {
	if _, err := r.DB.Exec(`DELETE FROM tickets WHERE id = ?`, id); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// GetByID loads one ticket row.
func (r TicketRepository) GetByID(id int64) (models.Ticket, error) {
	var t models.Ticket
	err := r.DB.QueryRow(`SELECT id, trip_id, passenger_id, seat_number, price_paid_kz,
		payment_status, payment_method, booking_source, seat_class, ticket_number,
		status, booking_time
		FROM tickets WHERE id = ?`, id).Scan(
		&t.ID, &t.TripID, &t.PassengerID, &t.SeatNumber, &t.PricePaidKz,
		&t.PaymentStatus, &t.PaymentMethod, &t.BookingSource, &t.SeatClass,
		&t.TicketNumber, &t.Status, &t.BookingTime)
	if errors.Is(err, sql.ErrNoRows) {
		return t, domain.NotFoundError{Resource: "bilhete", Err: err}
	}
	if err != nil {
		return t, domain.InternalError{Err: err}
	}
	return t, nil
}
