package kafka

import "time"

const (
	EventBookingConfirmed      = "booking_confirmed"
	EventBookingAbandoned      = "booking_abandoned"
	EventReceiptEmailRequested = "receipt_email_requested"
)

// BookingEvent is published on the booking topic. Total is expressed in
// Currency.
type BookingEvent struct {
	Type       string    `json:"type"`
	Reference  string    `json:"reference,omitempty"`
	FlightID   string    `json:"flight_id"`
	Email      string    `json:"email,omitempty"`
	Total      float64   `json:"total"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ReceiptEmailEvent is published on the notifications topic and carries
// the rendered plain-text receipt.
type ReceiptEmailEvent struct {
	Type       string    `json:"type"`
	Reference  string    `json:"reference"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	OccurredAt time.Time `json:"occurred_at"`
}
