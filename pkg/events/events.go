package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/samber/oops"

	"github.com/diagnosis/local-hotel/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
	Close() error
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("local-hotel-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, oops.Code("NATS_CONNECT_FAILED").Wrap(err)
	}

	return &NATSPublisher{conn: conn}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return oops.Code("EVENT_ENCODE_FAILED").With("subject", subject).Wrap(err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	if err := n.conn.Publish(subject, payload); err != nil {
		return oops.Code("EVENT_PUBLISH_FAILED").With("subject", subject).Wrap(err)
	}
	return nil
}

// Close flushes buffered messages before closing the connection.
func (n *NATSPublisher) Close() error {
	return n.conn.Drain()
}

// NopPublisher drops every event. Used when no NATS URL is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                               { return nil }

// New connects to NATS when url is set and falls back to NopPublisher.
func New(url string) (Publisher, error) {
	if url == "" {
		logger.Info("NATS not configured, events disabled")
		return NopPublisher{}, nil
	}
	return NewNATSPublisher(url)
}

const (
	GuestRegistered = "guest.registered"
	BookingCreated  = "booking.created"
	BookingUpdated  = "booking.updated"
	BookingDeleted  = "booking.deleted"
)

type GuestRegisteredEvent struct {
	GuestID      int64     `json:"guest_id"`
	EmailAddress string    `json:"email_address"`
	RegisteredAt time.Time `json:"registered_at"`
}

type BookingEvent struct {
	BookingID    int64     `json:"booking_id"`
	GuestID      int64     `json:"guest_id"`
	CheckinDate  string    `json:"checkin_date,omitempty"`
	CheckoutDate string    `json:"checkout_date,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
