package booking

import (
	"testing"
	"time"

	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

func testFlight() domain.Flight {
	dep := time.Date(2026, 11, 2, 8, 15, 0, 0, time.UTC)
	return domain.Flight{
		ID:            "SW1002",
		Airline:       "CloudNine",
		Origin:        "Lagos",
		Destination:   "London",
		DepartureTime: dep,
		ArrivalTime:   dep.Add(6 * time.Hour),
		DurationHours: 6,
		BasePrice:     500,
		TimeOfDay:     domain.TimeOfDayMorning,
		CabinClass:    domain.CabinEconomy,
	}
}

func testCriteria(passengers int) domain.SearchCriteria {
	return domain.SearchCriteria{
		Origin:      "Lagos",
		Destination: "London",
		DepartDate:  time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		Passengers:  passengers,
		CabinClass:  domain.CabinEconomy,
		TripType:    domain.TripOneWay,
	}
}

func fullPassenger(name string) domain.Passenger {
	return domain.Passenger{FirstName: name, LastName: "Obi", DateOfBirth: "1990-01-01", PassportNumber: "A1234567"}
}

var testContact = domain.Contact{Email: "ada@example.com", Phone: "+2348000000"}

func testCard() domain.PaymentMethod {
	return domain.PaymentMethod{
		Kind: domain.PaymentCard,
		Card: &domain.Card{Number: "4242424242424242", Expiry: "1228", CVV: "123", HolderName: "Ada Obi"},
	}
}

func TestSubmitPassengers_Totals(t *testing.T) {
	b := NewBooking(testCriteria(2), testFlight(), testNow)

	err := SubmitPassengers(b, []domain.Passenger{fullPassenger("Ada"), fullPassenger("Chidi")}, testContact)

	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, b.Step)
	assert.InDelta(t, 1000.0, b.Subtotal, 1e-9)
	assert.InDelta(t, 100.0, b.Tax, 1e-9)
	assert.InDelta(t, 1100.0, b.Total, 1e-9)
	assert.Len(t, b.Passengers, 2)
	assert.Equal(t, testContact, b.Contact)
}

func TestSubmitPassengers_SecondPassengerMissing(t *testing.T) {
	b := NewBooking(testCriteria(2), testFlight(), testNow)

	err := SubmitPassengers(b, []domain.Passenger{fullPassenger("Ada"), {}}, testContact)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
		assert.Equal(t, "is required for passenger 2", v.Description)
	}
	assert.Equal(t, []string{
		"passengers[1].first_name",
		"passengers[1].last_name",
		"passengers[1].date_of_birth",
		"passengers[1].passport_number",
	}, fields)
	assert.Equal(t, domain.StepPassengers, b.Step)
	assert.Zero(t, b.Total)
}

func TestSubmitPassengers_MissingSlotAndContact(t *testing.T) {
	b := NewBooking(testCriteria(2), testFlight(), testNow)

	err := SubmitPassengers(b, []domain.Passenger{fullPassenger("Ada")}, domain.Contact{Email: " "})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 6)
	assert.Equal(t, "contact.email", verr.Violations[4].Field)
	assert.Equal(t, "contact.phone", verr.Violations[5].Field)
}

func TestSubmitPassengers_TooMany(t *testing.T) {
	b := NewBooking(testCriteria(1), testFlight(), testNow)

	err := SubmitPassengers(b, []domain.Passenger{fullPassenger("Ada"), fullPassenger("Chidi")}, testContact)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "passengers", verr.Violations[0].Field)
}

func TestSubmitPassengers_WrongStep(t *testing.T) {
	b := NewBooking(testCriteria(1), testFlight(), testNow)
	require.NoError(t, SubmitPassengers(b, []domain.Passenger{fullPassenger("Ada")}, testContact))

	err := SubmitPassengers(b, []domain.Passenger{fullPassenger("Ada")}, testContact)
	assert.ErrorIs(t, err, domain.ErrInvalidStep)

	require.NoError(t, Confirm(b, testCard(), "SWAAAAAAAAA", "USD", testNow))
	err = SubmitPassengers(b, []domain.Passenger{fullPassenger("Ada")}, testContact)
	assert.ErrorIs(t, err, domain.ErrBookingFinalized)
}

func TestBack(t *testing.T) {
	b := NewBooking(testCriteria(1), testFlight(), testNow)

	require.NoError(t, Back(b))
	assert.Equal(t, domain.StepPassengers, b.Step)

	require.NoError(t, SubmitPassengers(b, []domain.Passenger{fullPassenger("Ada")}, testContact))
	require.NoError(t, Back(b))
	assert.Equal(t, domain.StepPassengers, b.Step)
	assert.Equal(t, "Ada", b.Passengers[0].FirstName)

	require.NoError(t, SubmitPassengers(b, []domain.Passenger{fullPassenger("Bola")}, testContact))
	require.NoError(t, Confirm(b, testCard(), "SWAAAAAAAAA", "USD", testNow))
	assert.ErrorIs(t, Back(b), domain.ErrBookingFinalized)
}

func TestNormalizePayment(t *testing.T) {
	m := NormalizePayment(domain.PaymentMethod{
		Kind: " CARD ",
		Card: &domain.Card{Number: "4242-4242 42424242", Expiry: "12/285", CVV: "12a34", HolderName: " Ada "},
	})

	assert.Equal(t, domain.PaymentCard, m.Kind)
	assert.Equal(t, "4242 4242 4242 4242", m.Card.Number)
	assert.Equal(t, "12/28", m.Card.Expiry)
	assert.Equal(t, "123", m.Card.CVV)
	assert.Equal(t, "Ada", m.Card.HolderName)

	paypal := NormalizePayment(domain.PaymentMethod{Kind: "paypal", Card: &domain.Card{Number: "1"}})
	assert.Nil(t, paypal.Card)
}

func TestValidatePayment(t *testing.T) {
	assert.NoError(t, ValidatePayment(testCard()))
	assert.NoError(t, ValidatePayment(domain.PaymentMethod{Kind: domain.PaymentPayPal}))
	assert.NoError(t, ValidatePayment(domain.PaymentMethod{Kind: domain.PaymentBankTransfer}))

	var verr *domain.ValidationError
	require.ErrorAs(t, ValidatePayment(domain.PaymentMethod{Kind: domain.PaymentCard}), &verr)
	assert.Len(t, verr.Violations, 4)

	require.ErrorAs(t, ValidatePayment(domain.PaymentMethod{Kind: "cash"}), &verr)
	assert.Equal(t, "method", verr.Violations[0].Field)
}

func TestConfirm(t *testing.T) {
	b := NewBooking(testCriteria(1), testFlight(), testNow)

	err := Confirm(b, testCard(), "SWAAAAAAAAA", "USD", testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidStep)

	require.NoError(t, SubmitPassengers(b, []domain.Passenger{fullPassenger("Ada")}, testContact))
	total := b.Total

	require.NoError(t, Confirm(b, testCard(), "SWAB12CD34E", "EUR", testNow))
	assert.True(t, b.IsConfirmed())
	assert.Equal(t, "SWAB12CD34E", b.Reference)
	assert.Equal(t, "EUR", b.Currency)
	assert.Equal(t, total, b.Total)
	require.NotNil(t, b.ConfirmedAt)

	err = Confirm(b, testCard(), "SWZZZZZZZZZ", "GBP", testNow)
	assert.ErrorIs(t, err, domain.ErrBookingFinalized)
	assert.Equal(t, "SWAB12CD34E", b.Reference)
	assert.Equal(t, "EUR", b.Currency)
}
