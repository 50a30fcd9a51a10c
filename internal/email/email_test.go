package email

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Domenick1991/skywings/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSender_Send(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewSender(zap.New(core))

	err := s.Send(context.Background(), kafka.ReceiptEmailEvent{
		Type:      kafka.EventReceiptEmailRequested,
		Reference: "SWAB12CD34E",
		Email:     "ada@example.com",
		Subject:   "Your SkyWings booking SWAB12CD34E",
		Body:      "receipt body",
	})

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "receipt e-mail delivered", entry.Message)
	assert.Equal(t, "ada@example.com", entry.ContextMap()["to"])
}

func TestSender_Send_NoRecipient(t *testing.T) {
	s := NewSender(nil)

	err := s.Send(context.Background(), kafka.ReceiptEmailEvent{Reference: "SWAB12CD34E"})

	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestSender_HandleMessage(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewSender(zap.New(core))

	payload, err := json.Marshal(kafka.ReceiptEmailEvent{
		Type:      kafka.EventReceiptEmailRequested,
		Reference: "SWAB12CD34E",
		Email:     "ada@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, s.HandleMessage(context.Background(), kafkago.Message{Value: payload}))
	assert.Equal(t, 1, logs.FilterMessage("receipt e-mail delivered").Len())
}

func TestSender_HandleMessage_Skips(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewSender(zap.New(core))
	ctx := context.Background()

	other, err := json.Marshal(kafka.BookingEvent{Type: kafka.EventBookingConfirmed, Reference: "SWAB12CD34E"})
	require.NoError(t, err)
	noRecipient, err := json.Marshal(kafka.ReceiptEmailEvent{Type: kafka.EventReceiptEmailRequested, Reference: "SWAB12CD34E"})
	require.NoError(t, err)

	assert.NoError(t, s.HandleMessage(ctx, kafkago.Message{Value: []byte("{not json")}))
	assert.NoError(t, s.HandleMessage(ctx, kafkago.Message{Value: other}))
	assert.NoError(t, s.HandleMessage(ctx, kafkago.Message{Value: noRecipient}))

	assert.Equal(t, 0, logs.FilterMessage("receipt e-mail delivered").Len())
	assert.Equal(t, 1, logs.FilterMessage("skipping malformed notification").Len())
	assert.Equal(t, 1, logs.FilterMessage("receipt e-mail not delivered").Len())
}
