package booking

import (
	"context"
	"time"
)

const RoutingKeyBookingCreated = "booking.created"

// BookingCreated is published after a booking row has been stored.
type BookingCreated struct {
	BookingID     string    `json:"booking_id"`
	UserID        string    `json:"user_id"`
	RoomID        string    `json:"room_id"`
	CustomerCount int       `json:"customer_count"`
	Amount        float64   `json:"amount"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	CreatedAt     time.Time `json:"created_at"`
}

func newBookingCreated(b *Booking) BookingCreated {
	return BookingCreated{
		BookingID:     b.ID,
		UserID:        b.UserID,
		RoomID:        b.RoomID,
		CustomerCount: b.CustomerCount,
		Amount:        b.Amount,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		CreatedAt:     b.CreatedAt,
	}
}

// EventPublisher is satisfied by *mq.Publisher.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishJSON(context.Context, string, any) error { return nil }
