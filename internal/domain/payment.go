package domain

import "strings"

type PaymentKind string

const (
	PaymentCard         PaymentKind = "card"
	PaymentPayPal       PaymentKind = "paypal"
	PaymentBankTransfer PaymentKind = "bank_transfer"
)

func (k PaymentKind) Valid() bool {
	switch k {
	case PaymentCard, PaymentPayPal, PaymentBankTransfer:
		return true
	}
	return false
}

type Card struct {
	Number     string `json:"number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"-"`
	HolderName string `json:"holder_name"`
}

// PaymentMethod is a tagged union; Card is set only for PaymentCard.
type PaymentMethod struct {
	Kind PaymentKind `json:"kind"`
	Card *Card       `json:"card,omitempty"`
}

// MaskedNumber keeps the last four digits of the card number.
func (c Card) MaskedNumber() string {
	digits := onlyDigits(c.Number)
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

// FormatCardNumber groups the digits of raw in blocks of four.
func FormatCardNumber(raw string) string {
	digits := onlyDigits(raw)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiry turns digit input into MM/YY.
func FormatExpiry(raw string) string {
	digits := onlyDigits(raw)
	if len(digits) < 2 {
		return digits
	}
	if len(digits) > 4 {
		digits = digits[:4]
	}
	return digits[:2] + "/" + digits[2:]
}

// FormatCVV keeps at most three digits.
func FormatCVV(raw string) string {
	digits := onlyDigits(raw)
	if len(digits) > 3 {
		return digits[:3]
	}
	return digits
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
