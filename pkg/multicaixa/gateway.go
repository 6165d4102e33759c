// Package multicaixa talks to the external payment-reference API that
// issues MULTICAIXA bank references for a booking amount.
package multicaixa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nawabus/internal/domain"
)

// Gateway is the HTTP client for the reference-issuance service. One
// request per checkout attempt; failures are terminal, never retried.
type Gateway struct {
	apiURL string
	client *http.Client
}

func NewGateway(apiURL string) *Gateway {
	return &Gateway{
		apiURL: apiURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// ReferenceRequest is the issuance payload. ReturnTicketID and TripType
// are only set for round trips.
type ReferenceRequest struct {
	TicketID       int64  `json:"ticket_id"`
	ReturnTicketID int64  `json:"return_ticket_id,omitempty"`
	AmountKz       int64  `json:"amount"`
	PassengerName  string `json:"passenger_name"`
	PassengerEmail string `json:"passenger_email"`
	TripType       string `json:"trip_type,omitempty"`
}

// ReferenceResponse is the 201 body; only the reference number is
// contractual, anything else the service sends is ignored.
type ReferenceResponse struct {
	ReferenceNumber string `json:"reference_number"`
	TransactionID   string `json:"transaction_id,omitempty"`
	Error           string `json:"error,omitempty"`
}

// CreateReference posts the issuance request. Non-2xx responses surface
// the service's own error string verbatim.
func (g *Gateway) CreateReference(ctx context.Context, req ReferenceRequest) (ReferenceResponse, error) {
	var out ReferenceResponse

	if req.TicketID <= 0 || req.AmountKz <= 0 {
		return out, domain.ValidationError{Field: "amount", Msg: "ticket_id e amount são obrigatórios"}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewReader(payload))
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return out, domain.UpstreamError{Service: "pagamentos", Err: err, Msg: "Falha ao criar referência de pagamento."}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, domain.UpstreamError{Service: "pagamentos", Status: resp.StatusCode, Err: err, Msg: "Falha ao criar referência de pagamento."}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := "Falha ao criar referência de pagamento."
		var failure ReferenceResponse
		if jsonErr := json.Unmarshal(body, &failure); jsonErr == nil && failure.Error != "" {
			msg = failure.Error
		}
		return out, domain.UpstreamError{Service: "pagamentos", Status: resp.StatusCode, Msg: msg}
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, domain.UpstreamError{Service: "pagamentos", Status: resp.StatusCode, Err: err, Msg: "Falha ao criar referência de pagamento."}
	}
	if out.ReferenceNumber == "" {
		return out, domain.UpstreamError{Service: "pagamentos", Status: resp.StatusCode,
			Msg: fmt.Sprintf("resposta sem reference_number (HTTP %d)", resp.StatusCode)}
	}
	return out, nil
}
