package domain

import "time"

type BookingStep string

const (
	StepPassengers BookingStep = "COLLECTING_PASSENGERS"
	StepPayment    BookingStep = "REVIEWING_PAYMENT"
	StepConfirmed  BookingStep = "CONFIRMED"
)

type Passenger struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DateOfBirth    string `json:"date_of_birth"`
	PassportNumber string `json:"passport_number"`
}

type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Booking is created when a flight is selected and mutated across the
// wizard steps. Reference is assigned once, on confirmation.
type Booking struct {
	Flight      Flight         `json:"flight"`
	Criteria    SearchCriteria `json:"criteria"`
	Step        BookingStep    `json:"step"`
	Passengers  []Passenger    `json:"passengers,omitempty"`
	Contact     Contact        `json:"contact"`
	Subtotal    float64        `json:"subtotal"`
	Tax         float64        `json:"tax"`
	Total       float64        `json:"total"`
	Payment     *PaymentMethod `json:"payment,omitempty"`
	Reference   string         `json:"reference,omitempty"`
	Currency    string         `json:"currency,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	ConfirmedAt *time.Time     `json:"confirmed_at,omitempty"`
}

func (b *Booking) IsConfirmed() bool {
	return b != nil && b.Step == StepConfirmed && b.Reference != ""
}
