package domain

import (
	"errors"
	"strings"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrNoSearch            = errors.New("no flight search in session")
	ErrFlightNotFound      = errors.New("flight not found in search results")
	ErrNoActiveBooking     = errors.New("no active booking")
	ErrInvalidStep         = errors.New("operation not allowed at current booking step")
	ErrBookingFinalized    = errors.New("booking is already confirmed")
	ErrNotConfirmed        = errors.New("booking is not confirmed")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrOperationInFlight   = errors.New("another operation is in progress for this session")
)

type FieldViolation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationError lists every missing or malformed field of a submission.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Add(field, description string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Description: description})
}

// OrNil returns nil when nothing was recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Violations) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+" "+v.Description)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
