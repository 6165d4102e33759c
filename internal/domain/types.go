package domain

// TripType distinguishes one-way from round-trip bookings.
type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

// Ticket lifecycle statuses. Only active and used seats count as occupied;
// pending tickets are awaiting payment settlement.
const (
	TicketStatusPending = "pending"
	TicketStatusActive  = "active"
	TicketStatusUsed    = "used"
)

// Payment transaction statuses as written by the settlement side.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Fixed MULTICAIXA payment entity for reference payments.
const MulticaixaEntity = "1219"
