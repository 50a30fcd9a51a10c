package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/skywings/internal/domain"
)

const taxRate = 0.10

// NewBooking starts the wizard for a flight picked from the results of
// criteria.
func NewBooking(criteria domain.SearchCriteria, flight domain.Flight, now time.Time) *domain.Booking {
	return &domain.Booking{
		Flight:    flight,
		Criteria:  criteria,
		Step:      domain.StepPassengers,
		CreatedAt: now,
	}
}

// SubmitPassengers moves the booking to the payment step and prices it.
// On a validation error the booking is left untouched.
func SubmitPassengers(b *domain.Booking, passengers []domain.Passenger, contact domain.Contact) error {
	switch b.Step {
	case domain.StepPassengers:
	case domain.StepConfirmed:
		return domain.ErrBookingFinalized
	default:
		return fmt.Errorf("%w: passengers are collected before payment", domain.ErrInvalidStep)
	}

	want := b.Criteria.Passengers
	verr := &domain.ValidationError{}
	if len(passengers) > want {
		verr.Add("passengers", fmt.Sprintf("must list exactly %d passengers", want))
	}
	for i := 0; i < want; i++ {
		var p domain.Passenger
		if i < len(passengers) {
			p = passengers[i]
		}
		required := []struct{ field, value string }{
			{"first_name", p.FirstName},
			{"last_name", p.LastName},
			{"date_of_birth", p.DateOfBirth},
			{"passport_number", p.PassportNumber},
		}
		for _, r := range required {
			if strings.TrimSpace(r.value) == "" {
				verr.Add(fmt.Sprintf("passengers[%d].%s", i, r.field), fmt.Sprintf("is required for passenger %d", i+1))
			}
		}
	}
	if strings.TrimSpace(contact.Email) == "" {
		verr.Add("contact.email", "is required")
	}
	if strings.TrimSpace(contact.Phone) == "" {
		verr.Add("contact.phone", "is required")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	b.Passengers = append([]domain.Passenger(nil), passengers...)
	b.Contact = contact
	b.Subtotal = b.Flight.BasePrice * float64(want)
	b.Tax = b.Subtotal * taxRate
	b.Total = b.Subtotal + b.Tax
	b.Step = domain.StepPayment
	return nil
}

// Back returns from payment to passenger entry without re-validating.
// It is a no-op on the passenger step.
func Back(b *domain.Booking) error {
	switch b.Step {
	case domain.StepConfirmed:
		return domain.ErrBookingFinalized
	case domain.StepPayment:
		b.Step = domain.StepPassengers
	}
	return nil
}

// NormalizePayment applies the card input formatting policy.
func NormalizePayment(m domain.PaymentMethod) domain.PaymentMethod {
	m.Kind = domain.PaymentKind(strings.ToLower(strings.TrimSpace(string(m.Kind))))
	if m.Kind != domain.PaymentCard {
		m.Card = nil
		return m
	}
	if m.Card != nil {
		card := *m.Card
		card.Number = domain.FormatCardNumber(card.Number)
		card.Expiry = domain.FormatExpiry(card.Expiry)
		card.CVV = domain.FormatCVV(card.CVV)
		card.HolderName = strings.TrimSpace(card.HolderName)
		m.Card = &card
	}
	return m
}

// ValidatePayment only checks presence: formatting is applied by
// NormalizePayment, not enforced here.
func ValidatePayment(m domain.PaymentMethod) error {
	verr := &domain.ValidationError{}
	if !m.Kind.Valid() {
		verr.Add("method", "must be one of: card paypal bank_transfer")
		return verr
	}
	if m.Kind != domain.PaymentCard {
		return nil
	}

	card := domain.Card{}
	if m.Card != nil {
		card = *m.Card
	}
	required := []struct{ field, value string }{
		{"card.number", card.Number},
		{"card.expiry", card.Expiry},
		{"card.cvv", card.CVV},
		{"card.holder_name", card.HolderName},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			verr.Add(r.field, "is required")
		}
	}
	return verr.OrNil()
}

// Confirm finalizes a booking on the payment step. The reference and
// currency are assigned once and never change afterwards.
func Confirm(b *domain.Booking, m domain.PaymentMethod, reference, currency string, now time.Time) error {
	switch b.Step {
	case domain.StepPayment:
	case domain.StepConfirmed:
		return domain.ErrBookingFinalized
	default:
		return fmt.Errorf("%w: passenger details must be submitted first", domain.ErrInvalidStep)
	}
	if err := ValidatePayment(m); err != nil {
		return err
	}

	if b.Reference == "" {
		b.Reference = reference
	}
	b.Payment = &m
	b.Currency = currency
	b.ConfirmedAt = &now
	b.Step = domain.StepConfirmed
	return nil
}
