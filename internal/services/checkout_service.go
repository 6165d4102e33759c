package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"nawabus/internal/domain"
	"nawabus/internal/domain/models"
	"nawabus/internal/repositories"
	"nawabus/internal/utils"
	"nawabus/pkg/multicaixa"
)

// ReferenceClient issues a MULTICAIXA payment reference for a booking.
type ReferenceClient interface {
	CreateReference(ctx context.Context, req multicaixa.ReferenceRequest) (multicaixa.ReferenceResponse, error)
}

// CheckoutService turns a consumed draft into pending tickets plus an
// issued payment reference. The draft is taken from the store before any
// write, so a duplicate submit of the same draft id cannot book twice.
type CheckoutService struct {
	DB        *sql.DB
	Tickets   repositories.TicketRepository
	Payments  repositories.PaymentRepository
	Profiles  repositories.ProfileRepository
	Drafts    DraftStore
	Gateway   ReferenceClient
	RequestID string
}

// CheckoutResult is everything the payment-instructions screen needs.
type CheckoutResult struct {
	ReferenceNumber string   `json:"reference_number"`
	Entity          string   `json:"entity"`
	TransactionID   string   `json:"transaction_id"`
	TicketIDs       []int64  `json:"ticket_ids"`
	TicketNumbers   []string `json:"ticket_numbers"`
	TotalKz         int64    `json:"total_kz"`
	TotalFormatted  string   `json:"total_formatted"`
}

// Checkout runs the full flow: consume draft, re-check seats inside a
// transaction, insert pending tickets, call the reference gateway, and
// record the pending payment. A gateway failure deletes every ticket the
// attempt created and surfaces the gateway's message unchanged.
func (s CheckoutService) Checkout(ctx context.Context, userID int64, draftID string) (CheckoutResult, error) {
	var result CheckoutResult

	if draftID == "" {
		return result, domain.ValidationError{Field: "draft_id", Msg: "identificador de reserva obrigatório"}
	}

	draft, ok, err := s.Drafts.Take(ctx, draftID)
	if err != nil {
		return result, err
	}
	if !ok {
		return result, domain.NotFoundError{Resource: "reserva"}
	}

	profile, err := s.Profiles.GetByUserID(userID)
	if err != nil {
		return result, err
	}

	tickets, err := s.insertPendingTickets(userID, draft)
	if err != nil {
		return result, err
	}

	req := multicaixa.ReferenceRequest{
		TicketID:       tickets[0].ID,
		AmountKz:       draft.TotalPriceKz,
		PassengerName:  profile.FullName(),
		PassengerEmail: profile.Email,
	}
	if draft.TripType == domain.TripRoundTrip && len(tickets) > 1 {
		req.ReturnTicketID = tickets[1].ID
		req.TripType = string(domain.TripRoundTrip)
	}

	resp, err := s.Gateway.CreateReference(ctx, req)
	if err != nil {
		s.compensate(tickets)
		return result, err
	}

	transactionID := resp.TransactionID
	if transactionID == "" {
		transactionID = resp.ReferenceNumber
	}

	payment := models.PaymentTransaction{
		TransactionID:   transactionID,
		ReferenceNumber: resp.ReferenceNumber,
		TicketID:        tickets[0].ID,
		Status:          domain.PaymentStatusPending,
		AmountKz:        draft.TotalPriceKz,
	}
	if len(tickets) > 1 {
		payment.ReturnTicketID = tickets[1].ID
	}
	if err := s.Payments.InsertPending(payment); err != nil {
		// The reference already exists at the bank; keep the tickets and
		// let the settlement side reconcile by reference number.
		utils.LogError(s.RequestID, "checkout", "payment_record", err)
	}

	result = CheckoutResult{
		ReferenceNumber: resp.ReferenceNumber,
		Entity:          domain.MulticaixaEntity,
		TransactionID:   transactionID,
		TotalKz:         draft.TotalPriceKz,
		TotalFormatted:  utils.FormatKwanza(draft.TotalPriceKz),
	}
	for _, t := range tickets {
		result.TicketIDs = append(result.TicketIDs, t.ID)
		result.TicketNumbers = append(result.TicketNumbers, t.TicketNumber)
	}

	utils.LogEvent(s.RequestID, "checkout", "reference_issued",
		fmt.Sprintf("referência %s emitida para %d bilhete(s)", resp.ReferenceNumber, len(tickets)))
	return result, nil
}

// insertPendingTickets writes one ticket row per leg inside a single
// transaction. Occupancy is re-checked against pending, active and used
// tickets right before each insert; any clash aborts the whole checkout.
func (s CheckoutService) insertPendingTickets(userID int64, draft models.BookingDraft) ([]models.Ticket, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}

	legs := draft.Legs()
	tickets := make([]models.Ticket, 0, len(legs))
	for _, leg := range legs {
		occupied, err := s.Tickets.OccupiedSeatsTx(tx, leg.TripID,
			domain.TicketStatusPending, domain.TicketStatusActive, domain.TicketStatusUsed)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		taken := map[int]bool{}
		for _, n := range occupied {
			taken[n] = true
		}
		for _, seat := range leg.Seats {
			if taken[seat] {
				tx.Rollback()
				return nil, domain.ConflictError{Resource: "lugar",
					Msg: fmt.Sprintf("o lugar %d já está ocupado", seat)}
			}
		}

		ticket := models.Ticket{
			TripID:        leg.TripID,
			PassengerID:   userID,
			SeatNumber:    utils.JoinSeatNumbers(leg.Seats),
			PricePaidKz:   leg.TotalKz,
			PaymentStatus: domain.PaymentStatusPending,
			PaymentMethod: "referencia",
			BookingSource: "online",
			SeatClass:     leg.SeatClass,
			TicketNumber:  newTicketNumber(time.Now()),
			Status:        domain.TicketStatusPending,
		}
		id, err := s.Tickets.InsertPending(tx, ticket)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		ticket.ID = id
		tickets = append(tickets, ticket)
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return tickets, nil
}

// compensate removes every ticket a failed checkout attempt created so
// the seats go back on sale immediately.
func (s CheckoutService) compensate(tickets []models.Ticket) {
	for _, t := range tickets {
		if err := s.Tickets.DeleteByID(t.ID); err != nil {
			utils.LogError(s.RequestID, "checkout", "compensate",
				fmt.Errorf("bilhete %d não removido: %w", t.ID, err))
		}
	}
}

// newTicketNumber yields NWB-<year>-<8 hex chars>; the prefix is exactly
// nine characters so display code can strip it uniformly.
func newTicketNumber(now time.Time) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return now.Format("NWB-2006-") + strings.ToUpper(raw[:8])
}
