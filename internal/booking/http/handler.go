package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/reservation-service/internal/booking"
	"github.com/nekogravitycat/reservation-service/internal/pkg/message"
	"github.com/nekogravitycat/reservation-service/internal/pkg/response"
)

type Handler struct {
	service booking.Service
	logger  *zap.Logger
}

func NewHandler(service booking.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create validates a booking submission and hands it to the booking service.
// Any service failure is reported as a plain 500; its type is not inspected.
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Debug("Invalid booking body.", zap.Error(err))
		response.Fail(c, http.StatusBadRequest, message.InvalidRequestBody)
		return
	}

	req := body.ToRequest()

	if !req.HasRequiredFields() {
		h.logger.Debug("Required fields missing.", zap.Object("data", req))
		response.Error(c, booking.ErrMissingRequiredFields)
		return
	}
	if !req.HasValidDates() {
		h.logger.Debug("Invalid date fields.", zap.Object("data", req))
		response.Error(c, booking.ErrInvalidDates)
		return
	}

	if err := h.service.Create(c.Request.Context(), req); err != nil {
		h.logger.Error("Failed to make booking.", zap.Object("data", req), zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, message.InternalServerError)
		return
	}

	response.Success(c, message.SuccessfullyAdded)
}
