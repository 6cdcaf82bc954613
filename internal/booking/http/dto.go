package http

import (
	"github.com/nekogravitycat/reservation-service/internal/booking"
)

// CreateBookingBody is the JSON body of POST /api/booking.
// Fields are pointers so a missing key and an explicit null both read as absent.
type CreateBookingBody struct {
	UserID        *string  `json:"userId"`
	RoomID        *string  `json:"roomId"`
	CustomerCount *int     `json:"customerCount"`
	Amount        *float64 `json:"amount"`
	CheckIn       *int64   `json:"checkIn"`  // epoch millis
	CheckOut      *int64   `json:"checkOut"` // epoch millis
}

func (b CreateBookingBody) ToRequest() booking.Request {
	return booking.Request{
		UserID:        b.UserID,
		RoomID:        b.RoomID,
		CustomerCount: b.CustomerCount,
		Amount:        b.Amount,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
	}
}
