package api

import (
	"time"

	"github.com/Domenick1991/skywings/internal/currency"
	"github.com/Domenick1991/skywings/internal/domain"
)

// Views keep the stored base (USD) amounts next to the converted ones so
// a currency switch only needs a re-render.

type money struct {
	Base     float64 `json:"base"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Display  string  `json:"display"`
}

func newMoney(conv *currency.Converter, base float64, code string) money {
	info, err := conv.Lookup(code)
	if err != nil {
		info, _ = conv.Lookup(currency.Base)
	}
	amount := base * info.Rate
	display, _ := conv.Format(amount, info.Code)
	return money{Base: base, Amount: amount, Currency: info.Code, Display: display}
}

type flightView struct {
	domain.Flight
	Price        money  `json:"price"`
	DisplayPrice string `json:"display_price"`
}

func newFlightView(conv *currency.Converter, f domain.Flight, code string) flightView {
	price := newMoney(conv, f.BasePrice, code)
	return flightView{Flight: f, Price: price, DisplayPrice: price.Display}
}

func newFlightViews(conv *currency.Converter, flights []domain.Flight, code string) []flightView {
	out := make([]flightView, 0, len(flights))
	for _, f := range flights {
		out = append(out, newFlightView(conv, f, code))
	}
	return out
}

type cardView struct {
	Number     string `json:"number"`
	Expiry     string `json:"expiry"`
	HolderName string `json:"holder_name"`
}

type paymentView struct {
	Kind domain.PaymentKind `json:"kind"`
	Card *cardView          `json:"card,omitempty"`
}

type bookingView struct {
	Step        domain.BookingStep    `json:"step"`
	Flight      flightView            `json:"flight"`
	Criteria    domain.SearchCriteria `json:"criteria"`
	Passengers  []domain.Passenger    `json:"passengers"`
	Contact     domain.Contact        `json:"contact"`
	Subtotal    money                 `json:"subtotal"`
	Tax         money                 `json:"tax"`
	Total       money                 `json:"total"`
	Payment     *paymentView          `json:"payment,omitempty"`
	Reference   string                `json:"reference,omitempty"`
	Currency    string                `json:"currency"`
	CreatedAt   time.Time             `json:"created_at"`
	ConfirmedAt *time.Time            `json:"confirmed_at,omitempty"`
}

// newBookingView renders amounts in the frozen booking currency once
// confirmed, otherwise in the session currency.
func newBookingView(conv *currency.Converter, b *domain.Booking, sessionCurrency string) bookingView {
	code := sessionCurrency
	if b.IsConfirmed() && b.Currency != "" {
		code = b.Currency
	}

	v := bookingView{
		Step:        b.Step,
		Flight:      newFlightView(conv, b.Flight, code),
		Criteria:    b.Criteria,
		Passengers:  b.Passengers,
		Contact:     b.Contact,
		Subtotal:    newMoney(conv, b.Subtotal, code),
		Tax:         newMoney(conv, b.Tax, code),
		Total:       newMoney(conv, b.Total, code),
		Reference:   b.Reference,
		Currency:    code,
		CreatedAt:   b.CreatedAt,
		ConfirmedAt: b.ConfirmedAt,
	}
	if v.Passengers == nil {
		v.Passengers = []domain.Passenger{}
	}
	if b.Payment != nil {
		v.Payment = &paymentView{Kind: b.Payment.Kind}
		if card := b.Payment.Card; card != nil {
			v.Payment.Card = &cardView{Number: card.MaskedNumber(), Expiry: card.Expiry, HolderName: card.HolderName}
		}
	}
	return v
}

type sessionView struct {
	ID          string                 `json:"id"`
	Currency    string                 `json:"currency"`
	Search      *domain.SearchCriteria `json:"search,omitempty"`
	ResultCount int                    `json:"result_count"`
	BookingStep domain.BookingStep     `json:"booking_step,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

func newSessionView(s *domain.Session) sessionView {
	v := sessionView{
		ID:          s.ID,
		Currency:    s.Currency,
		Search:      s.Search,
		ResultCount: len(s.Flights),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Booking != nil {
		v.BookingStep = s.Booking.Step
	}
	return v
}
