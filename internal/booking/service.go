package booking

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/reservation-service/internal/pkg/apperror"
)

// Service stores bookings. Every error it returns is an *apperror.AppError.
type Service interface {
	Create(ctx context.Context, req Request) error
	GetByID(ctx context.Context, id string) (*Booking, error)
}

type service struct {
	repo      Repository
	publisher EventPublisher
	logger    *zap.Logger
	newID     func() string
}

// NewService wires the booking collaborator. A nil publisher disables events.
func NewService(repo Repository, publisher EventPublisher, logger *zap.Logger) Service {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

func (s *service) Create(ctx context.Context, req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	b := &Booking{
		ID:            s.newID(),
		UserID:        *req.UserID,
		RoomID:        *req.RoomID,
		CustomerCount: *req.CustomerCount,
		Amount:        *req.Amount,
		CheckIn:       req.CheckInTime(),
		CheckOut:      req.CheckOutTime(),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return ErrCreateFailed.WithErr(err)
	}

	// The row is committed at this point, so a lost event must not fail the booking.
	if err := s.publisher.PublishJSON(ctx, RoutingKeyBookingCreated, newBookingCreated(b)); err != nil {
		s.logger.Warn("failed to publish booking event",
			zap.String("booking_id", b.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("booking added",
		zap.String("booking_id", b.ID),
		zap.String("room_id", b.RoomID),
	)
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.Wrap(err, http.StatusInternalServerError, "failed to get booking")
	}
	return b, nil
}
