// Package receipt renders confirmed bookings into printable summaries.
package receipt

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/skywings/internal/currency"
	"github.com/Domenick1991/skywings/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	Title    = "SkyWings Airlines"
	Subtitle = "Booking Confirmation"

	timeLayout = "Jan 2, 2006, 3:04 PM"
)

var footer = []string{
	"Thank you for choosing SkyWings Airlines!",
	"Please arrive at the airport at least 2 hours before departure.",
}

type FlightSummary struct {
	Number      string `json:"number"`
	Airline     string `json:"airline"`
	FlightID    string `json:"flight_id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
	Duration    string `json:"duration"`
}

// PaymentSummary holds amounts converted into the booking currency,
// both raw and formatted.
type PaymentSummary struct {
	Currency       string  `json:"currency"`
	Method         string  `json:"method,omitempty"`
	Subtotal       string  `json:"subtotal"`
	Tax            string  `json:"tax"`
	Total          string  `json:"total"`
	SubtotalAmount float64 `json:"subtotal_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	TotalAmount    float64 `json:"total_amount"`
}

type Receipt struct {
	Title      string         `json:"title"`
	Subtitle   string         `json:"subtitle"`
	Reference  string         `json:"reference"`
	Flight     FlightSummary  `json:"flight"`
	Passengers int            `json:"passengers"`
	Class      string         `json:"class"`
	Email      string         `json:"email,omitempty"`
	Payment    PaymentSummary `json:"payment"`
	Footer     []string       `json:"footer"`
}

// Render fails with domain.ErrNotConfirmed until the booking carries a
// reference. Amounts use the currency frozen on the booking.
func Render(b *domain.Booking, conv *currency.Converter) (*Receipt, error) {
	if b == nil || b.Reference == "" {
		return nil, domain.ErrNotConfirmed
	}

	code := b.Currency
	if code == "" {
		code = currency.Base
	}
	info, err := conv.Lookup(code)
	if err != nil {
		return nil, err
	}

	pay := PaymentSummary{Currency: info.Code}
	if b.Payment != nil {
		pay.Method = describeMethod(*b.Payment)
	}
	amounts := []struct {
		base      float64
		amount    *float64
		formatted *string
	}{
		{b.Subtotal, &pay.SubtotalAmount, &pay.Subtotal},
		{b.Tax, &pay.TaxAmount, &pay.Tax},
		{b.Total, &pay.TotalAmount, &pay.Total},
	}
	for _, a := range amounts {
		converted, err := conv.Convert(a.base, info.Code)
		if err != nil {
			return nil, err
		}
		formatted, err := conv.Format(converted, info.Code)
		if err != nil {
			return nil, err
		}
		*a.amount = converted
		*a.formatted = formatted
	}

	f := b.Flight
	return &Receipt{
		Title:     Title,
		Subtitle:  Subtitle,
		Reference: b.Reference,
		Flight: FlightSummary{
			Number:      f.Airline + " " + f.ID,
			Airline:     f.Airline,
			FlightID:    f.ID,
			Origin:      f.Origin,
			Destination: f.Destination,
			Departure:   f.DepartureTime.Format(timeLayout),
			Arrival:     f.ArrivalTime.Format(timeLayout),
			Duration:    fmt.Sprintf("%.1f hours", f.DurationHours),
		},
		Passengers: b.Criteria.Passengers,
		Class:      cases.Title(language.English).String(string(b.Criteria.CabinClass)),
		Email:      b.Contact.Email,
		Payment:    pay,
		Footer:     append([]string(nil), footer...),
	}, nil
}

func describeMethod(m domain.PaymentMethod) string {
	switch m.Kind {
	case domain.PaymentCard:
		if m.Card != nil {
			return "Card " + m.Card.MaskedNumber()
		}
		return "Card"
	case domain.PaymentPayPal:
		return "PayPal"
	case domain.PaymentBankTransfer:
		return "Bank transfer"
	}
	return string(m.Kind)
}

// Text lays the receipt out as plain text for printing and e-mail.
func (r *Receipt) Text() string {
	var b strings.Builder
	row := func(label, value string) {
		fmt.Fprintf(&b, "  %-22s %s\n", label+":", value)
	}

	fmt.Fprintf(&b, "%s\n%s\n\n", r.Title, r.Subtitle)
	fmt.Fprintf(&b, "Booking Reference\n  %s\n\n", r.Reference)

	b.WriteString("Flight Details\n")
	row("Flight Number", r.Flight.Number)
	row("From", r.Flight.Origin)
	row("To", r.Flight.Destination)
	row("Departure", r.Flight.Departure)
	row("Arrival", r.Flight.Arrival)
	row("Duration", r.Flight.Duration)
	b.WriteString("\n")

	b.WriteString("Passenger Information\n")
	row("Number of Passengers", fmt.Sprint(r.Passengers))
	row("Class", r.Class)
	b.WriteString("\n")

	b.WriteString("Payment Summary\n")
	if r.Payment.Method != "" {
		row("Payment Method", r.Payment.Method)
	}
	row("Subtotal", r.Payment.Subtotal)
	row("Taxes & Fees", r.Payment.Tax)
	row("Total Paid", r.Payment.Total)
	b.WriteString("\n")

	for _, line := range r.Footer {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
