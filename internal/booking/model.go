package booking

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/nekogravitycat/reservation-service/internal/pkg/apperror"
	"github.com/nekogravitycat/reservation-service/internal/pkg/message"
)

var (
	ErrMissingRequiredFields = apperror.New(http.StatusBadRequest, message.MissingRequiredFields.Message())
	ErrInvalidDates          = apperror.New(http.StatusBadRequest, message.InvalidDates.Message())
	ErrInvalidBooking        = apperror.New(http.StatusBadRequest, "booking violates storage constraints")
	ErrNotFound              = apperror.New(http.StatusNotFound, "booking not found")
	ErrCreateFailed          = apperror.New(http.StatusInternalServerError, "failed to add booking")
)

// Request is an inbound booking submission. A nil field means the client did not send it.
type Request struct {
	UserID        *string
	RoomID        *string
	CustomerCount *int
	Amount        *float64
	CheckIn       *int64 // epoch millis
	CheckOut      *int64 // epoch millis
}

// HasRequiredFields reports whether every field is present and the ids are not blank.
func (r Request) HasRequiredFields() bool {
	return present(r.UserID) &&
		present(r.RoomID) &&
		r.CustomerCount != nil &&
		r.Amount != nil &&
		r.CheckIn != nil &&
		r.CheckOut != nil
}

// HasValidDates reports whether both dates are present and check-in is strictly before check-out.
func (r Request) HasValidDates() bool {
	if r.CheckIn == nil || r.CheckOut == nil {
		return false
	}
	return r.CheckInTime().Before(r.CheckOutTime())
}

// Validate returns the first failed check in submission order, or nil.
func (r Request) Validate() error {
	if !r.HasRequiredFields() {
		return ErrMissingRequiredFields
	}
	if !r.HasValidDates() {
		return ErrInvalidDates
	}
	return nil
}

// CheckInTime returns the check-in instant in UTC. It returns the zero time when absent.
func (r Request) CheckInTime() time.Time {
	return millisToTime(r.CheckIn)
}

// CheckOutTime returns the check-out instant in UTC. It returns the zero time when absent.
func (r Request) CheckOutTime() time.Time {
	return millisToTime(r.CheckOut)
}

// MarshalLogObject lets the request be logged with zap.Object; absent fields are omitted.
func (r Request) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if r.UserID != nil {
		enc.AddString("userId", *r.UserID)
	}
	if r.RoomID != nil {
		enc.AddString("roomId", *r.RoomID)
	}
	if r.CustomerCount != nil {
		enc.AddInt("customerCount", *r.CustomerCount)
	}
	if r.Amount != nil {
		enc.AddFloat64("amount", *r.Amount)
	}
	if r.CheckIn != nil {
		enc.AddInt64("checkIn", *r.CheckIn)
	}
	if r.CheckOut != nil {
		enc.AddInt64("checkOut", *r.CheckOut)
	}
	return nil
}

// Booking is a stored reservation.
type Booking struct {
	ID            string
	UserID        string
	RoomID        string
	CustomerCount int
	Amount        float64
	CheckIn       time.Time
	CheckOut      time.Time
	CreatedAt     time.Time
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func millisToTime(ms *int64) time.Time {
	if ms == nil {
		return time.Time{}
	}
	return time.UnixMilli(*ms).UTC()
}
