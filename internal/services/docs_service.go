package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"nawabus/internal/domain"
	"nawabus/internal/domain/models"
	"nawabus/internal/repositories"
	"nawabus/internal/utils"
)

// DocsService renders the ticket PDF in its two variants: the paid
// document after settlement and the pending one carrying the payment
// instructions. Loader bypasses the repositories in tests.
type DocsService struct {
	Tickets   repositories.TicketRepository
	Trips     repositories.TripRepository
	Payments  repositories.PaymentRepository
	Profiles  repositories.ProfileRepository
	LogoURL   string
	RequestID string
	Loader    func(payment models.PaymentTransaction) (ticketDoc, error)
}

// Operator identification printed on every document.
const (
	operatorName  = "NawaBus - Transportes Interprovinciais, Lda."
	operatorNIF   = "NIF 5417038921"
	operatorPhone = "+244 923 000 000"
)

type ticketDoc struct {
	Paid          bool
	Reference     string
	TransactionID string
	Entity        string
	AmountKz      int64
	Passenger     string
	Phone         string
	Email         string
	Legs          []ticketLegData
}

type ticketLegData struct {
	Label         string
	TicketID      int64
	DisplayNumber string
	Route         string
	Company       string
	Vehicle       string
	Departure     time.Time
	Arrival       time.Time
	Seats         string
	SeatClass     string
	PriceKz       int64
	BookedAt      time.Time
}

// qrPayload is the machine-readable content embedded in each leg's code.
type qrPayload struct {
	TicketID  int64  `json:"ticket_id"`
	Number    string `json:"number"`
	Reference string `json:"reference"`
	Passenger string `json:"passenger"`
	Phone     string `json:"phone"`
	Route     string `json:"route"`
	Departure string `json:"departure"`
	Seats     string `json:"seats"`
	PriceKz   int64  `json:"price_kz"`
	Paid      bool   `json:"payment_confirmed"`
	BookedAt  string `json:"booked_at"`
}

// GenerateForTransaction is the post-settlement download. It refuses
// until the settlement side has marked the transaction completed.
func (s DocsService) GenerateForTransaction(transactionID string) ([]byte, string, error) {
	payment, err := s.Payments.GetByTransactionID(transactionID)
	if err != nil {
		return nil, "", err
	}
	if payment.Status != domain.PaymentStatusCompleted {
		return nil, "", domain.ValidationError{
			Msg: "Pagamento não foi confirmado. O bilhete ainda não está disponível."}
	}

	doc, err := s.loadDoc(payment, 0)
	if err != nil {
		return nil, "", err
	}
	doc.Paid = true

	utils.LogEvent(s.RequestID, "docs", "download", fmt.Sprintf("transaction_id=%s", transactionID))
	return s.buildTicketPDF(doc)
}

// GenerateForReference is the pending variant shown right after checkout.
// It belongs to the authenticated passenger only.
func (s DocsService) GenerateForReference(reference string, userID int64) ([]byte, string, error) {
	payment, err := s.Payments.GetByReference(reference)
	if err != nil {
		return nil, "", err
	}

	doc, err := s.loadDoc(payment, userID)
	if err != nil {
		return nil, "", err
	}
	doc.Paid = payment.Status == domain.PaymentStatusCompleted

	utils.LogEvent(s.RequestID, "docs", "pending_ticket", fmt.Sprintf("reference=%s", reference))
	return s.buildTicketPDF(doc)
}

// loadDoc resolves payment → tickets → trips → passenger. A non-zero
// ownerID must match the booking passenger, otherwise the caller learns
// nothing beyond "not found".
func (s DocsService) loadDoc(payment models.PaymentTransaction, ownerID int64) (ticketDoc, error) {
	if s.Loader != nil {
		return s.Loader(payment)
	}

	var doc ticketDoc
	doc.Reference = payment.ReferenceNumber
	if doc.Reference == "" {
		doc.Reference = payment.TransactionID
	}
	doc.TransactionID = payment.TransactionID
	doc.Entity = domain.MulticaixaEntity
	doc.AmountKz = payment.AmountKz

	ticketIDs := []int64{payment.TicketID}
	if payment.ReturnTicketID > 0 {
		ticketIDs = append(ticketIDs, payment.ReturnTicketID)
	}

	for i, id := range ticketIDs {
		ticket, err := s.Tickets.GetByID(id)
		if err != nil {
			return doc, err
		}
		if ownerID > 0 && ticket.PassengerID != ownerID {
			return doc, domain.NotFoundError{Resource: "pagamento"}
		}

		trip, err := s.Trips.GetByID(ticket.TripID)
		if err != nil {
			return doc, err
		}

		if i == 0 {
			profile, err := s.Profiles.GetByUserID(ticket.PassengerID)
			if err != nil {
				return doc, err
			}
			doc.Passenger = profile.FullName()
			doc.Phone = profile.PhoneNumber
			doc.Email = profile.Email
		}

		label := "Ida"
		if i == 1 {
			label = "Volta"
		}
		doc.Legs = append(doc.Legs, ticketLegData{
			Label:         label,
			TicketID:      ticket.ID,
			DisplayNumber: utils.DisplayTicketNumber(ticket.TicketNumber),
			Route:         trip.Route.Name(),
			Company:       trip.Bus.CompanyName,
			Vehicle:       fmt.Sprintf("%s %s (%s)", trip.Bus.Make, trip.Bus.Model, trip.Bus.LicensePlate),
			Departure:     trip.DepartureTime,
			Arrival:       trip.ArrivalTime,
			Seats:         ticket.SeatNumber,
			SeatClass:     ticket.SeatClass,
			PriceKz:       ticket.PricePaidKz,
			BookedAt:      ticket.BookingTime,
		})
	}
	return doc, nil
}

func (s DocsService) buildTicketPDF(doc ticketDoc) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bilhete NawaBus", false)
	pdf.AddPage()

	// Brand band.
	pdf.SetFillColor(234, 88, 12)
	pdf.Rect(0, 0, 210, 28, "F")
	s.drawLogo(pdf)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(12, 8)
	pdf.Cell(0, 12, "NawaBus")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(12, 18)
	pdf.Cell(0, 6, "Bilhete de viagem interprovincial")

	// Operator identification.
	pdf.SetTextColor(90, 90, 90)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(12, 30)
	pdf.Cell(0, 4, operatorName+"  ·  "+operatorNIF+"  ·  "+operatorPhone)

	y := 38.0
	y = drawStatusBlock(pdf, doc, y)

	pdf.SetTextColor(30, 30, 30)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(12, y)
	pdf.Cell(0, 6, "Passageiro: "+doc.Passenger)
	pdf.SetXY(12, y+6)
	pdf.Cell(0, 6, "Contacto: "+safeField(doc.Phone)+"  "+safeField(doc.Email))
	y += 18

	for _, leg := range doc.Legs {
		if y > 230 {
			pdf.AddPage()
			y = 20
		}
		y = s.drawLegBlock(pdf, doc, leg, y)
	}

	pdf.SetY(-22)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(0, 4,
		"Apresente este bilhete e um documento de identificação no embarque. "+
			"Emitido em "+utils.FormatPt(time.Now())+".", "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}

	suffix := "bilhete"
	if len(doc.Legs) > 0 {
		suffix = doc.Legs[0].DisplayNumber
	}
	filename := fmt.Sprintf("nawabus-%s-%s.pdf",
		utils.SafeFilenamePart(suffix), time.Now().Format("200601021504"))
	return buf.Bytes(), filename, nil
}

func drawStatusBlock(pdf *gofpdf.Fpdf, doc ticketDoc, y float64) float64 {
	if doc.Paid {
		pdf.SetFillColor(22, 163, 74)
		pdf.Rect(12, y, 186, 16, "F")
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(12, y+2)
		pdf.CellFormat(186, 6, "PAGAMENTO CONFIRMADO", "", 0, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(12, y+9)
		pdf.CellFormat(186, 5, "Transação: "+doc.TransactionID, "", 0, "C", false, 0, "")
		return y + 22
	}

	pdf.SetFillColor(234, 88, 12)
	pdf.Rect(12, y, 186, 30, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(12, y+3)
	pdf.CellFormat(186, 6, "AGUARDA PAGAMENTO", "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(18, y+11)
	pdf.Cell(0, 6, "Entidade: "+doc.Entity)
	pdf.SetXY(18, y+17)
	pdf.Cell(0, 6, "Referência: "+doc.Reference)
	pdf.SetXY(18, y+23)
	pdf.Cell(0, 6, "Montante: "+utils.FormatKwanza(doc.AmountKz))
	return y + 36
}

func (s DocsService) drawLegBlock(pdf *gofpdf.Fpdf, doc ticketDoc, leg ticketLegData, y float64) float64 {
	pdf.SetDrawColor(220, 220, 220)
	pdf.Rect(12, y, 186, 52, "D")

	pdf.SetTextColor(234, 88, 12)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(16, y+3)
	pdf.Cell(0, 6, fmt.Sprintf("%s  ·  %s", leg.Label, leg.Route))

	pdf.SetTextColor(30, 30, 30)
	pdf.SetFont("Helvetica", "", 10)
	lines := []string{
		"Bilhete: " + leg.DisplayNumber,
		"Partida: " + utils.FormatPt(leg.Departure),
		"Chegada: " + utils.FormatPt(leg.Arrival),
		"Lugares: " + leg.Seats + "  ·  Classe: " + leg.SeatClass,
		"Operadora: " + leg.Company + "  ·  " + leg.Vehicle,
		"Preço: " + utils.FormatKwanza(leg.PriceKz) + "  ·  Reservado em: " + utils.FormatPtDate(leg.BookedAt),
	}
	ly := y + 11
	for _, line := range lines {
		pdf.SetXY(16, ly)
		pdf.Cell(0, 5, line)
		ly += 6
	}

	s.drawQR(pdf, doc, leg, 160, y+8)
	return y + 58
}

// drawQR embeds the leg's machine-readable code; failures degrade to a
// ticket without the code rather than failing the download.
func (s DocsService) drawQR(pdf *gofpdf.Fpdf, doc ticketDoc, leg ticketLegData, x, y float64) {
	payload, err := json.Marshal(qrPayload{
		TicketID:  leg.TicketID,
		Number:    leg.DisplayNumber,
		Reference: doc.Reference,
		Passenger: doc.Passenger,
		Phone:     doc.Phone,
		Route:     leg.Route,
		Departure: leg.Departure.Format(time.RFC3339),
		Seats:     leg.Seats,
		PriceKz:   leg.PriceKz,
		Paid:      doc.Paid,
		BookedAt:  leg.BookedAt.Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		utils.LogError(s.RequestID, "docs", "qr", err)
		return
	}

	name := fmt.Sprintf("qr-%d", leg.TicketID)
	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, 34, 34, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

// drawLogo fetches the brand image with a short timeout; a slow or dead
// asset host must never block a ticket download.
func (s DocsService) drawLogo(pdf *gofpdf.Fpdf) {
	if s.LogoURL == "" {
		return
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(s.LogoURL)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return
	}
	pdf.RegisterImageOptionsReader("logo", gofpdf.ImageOptions{ImageType: "PNG"}, resp.Body)
	if pdf.Err() {
		pdf.ClearError()
		return
	}
	pdf.ImageOptions("logo", 182, 6, 16, 16, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

func safeField(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
