package repositories

import (
	"database/sql"
	"errors"

	"nawabus/internal/domain"
	"nawabus/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

// InsertPending records the issued reference so the settlement side has a
// row to complete. Failure here is logged by the caller, never fatal to
// the checkout (the reference already exists at the bank).
func (r PaymentRepository) InsertPending(p models.PaymentTransaction) error {
	_, err := r.DB.Exec(`INSERT INTO payment_transactions
		(transaction_id, reference_number, ticket_id, return_ticket_id, status, amount_kz)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.TransactionID, p.ReferenceNumber, p.TicketID, p.ReturnTicketID, p.Status, p.AmountKz)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

const paymentColumns = `id, transaction_id, reference_number, ticket_id, return_ticket_id, status, amount_kz, created_at`

// GetByTransactionID resolves the settlement record the download page is
// keyed by.
func (r PaymentRepository) GetByTransactionID(transactionID string) (models.PaymentTransaction, error) {
	row := r.DB.QueryRow(`SELECT `+paymentColumns+`
		FROM payment_transactions WHERE transaction_id = ?`, transactionID)
	return scanPayment(row)
}

// GetByReference resolves the record behind a MULTICAIXA reference, used
// by the pending-ticket download.
func (r PaymentRepository) GetByReference(reference string) (models.PaymentTransaction, error) {
	row := r.DB.QueryRow(`SELECT `+paymentColumns+`
		FROM payment_transactions WHERE reference_number = ?`, reference)
	return scanPayment(row)
}

func scanPayment(row *sql.Row) (models.PaymentTransaction, error) {
	var p models.PaymentTransaction
	err := row.Scan(&p.ID, &p.TransactionID, &p.ReferenceNumber, &p.TicketID,
		&p.ReturnTicketID, &p.Status, &p.AmountKz, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, domain.NotFoundError{Resource: "pagamento", Err: err}
	}
	if err != nil {
		return p, domain.InternalError{Err: err}
	}
	return p, nil
}
