package models

import "time"

// PaymentTransaction is the source of truth for whether a ticket is
// actually paid. Status transitions are written by the settlement side;
// this service only creates pending rows and reads them back.
type PaymentTransaction struct {
	ID              int64  `json:"id"`
	TransactionID   string `json:"transaction_id"`
	ReferenceNumber string `json:"reference_number"`
	TicketID        int64     `json:"ticket_id"`
	ReturnTicketID  int64     `json:"return_ticket_id,omitempty"`
	Status          string    `json:"status"`
	AmountKz        int64     `json:"amount_kz"`
	CreatedAt       time.Time `json:"created_at"`
}
