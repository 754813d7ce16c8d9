package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutURLIsNop(t *testing.T) {
	p, err := New("")
	require.NoError(t, err)
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), BookingCreated, BookingEvent{BookingID: 1}))
	assert.NoError(t, p.Close())
}

func TestNewNATSPublisher_Unreachable(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1")
	assert.Error(t, err)
}

func TestBookingEvent_JSON(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	raw, err := json.Marshal(BookingEvent{BookingID: 3, GuestID: 9, CheckinDate: "2026-03-01", OccurredAt: at})
	require.NoError(t, err)
	assert.JSONEq(t, `{"booking_id":3,"guest_id":9,"checkin_date":"2026-03-01","occurred_at":"2026-03-01T12:00:00Z"}`, string(raw))
}
