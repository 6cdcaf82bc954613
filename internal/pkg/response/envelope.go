package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/reservation-service/internal/pkg/apperror"
	"github.com/nekogravitycat/reservation-service/internal/pkg/message"
)

// Envelope is the body of every JSON response.
// Data is a pointer so that status-only responses serialize "data": null explicitly.
type Envelope[T any] struct {
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

// New builds an envelope without a payload.
func New(msg string) Envelope[any] {
	return Envelope[any]{Message: msg}
}

// WithData builds an envelope carrying data. It is the payload path for responses
// that return a body; the booking endpoints currently answer with New only.
func WithData[T any](msg string, data T) Envelope[T] {
	return Envelope[T]{Message: msg, Data: &data}
}

// Success writes a 200 envelope with the given success message and no payload.
func Success(c *gin.Context, msg message.SuccessMessage) {
	c.JSON(http.StatusOK, New(msg.Message()))
}

// Fail writes an envelope with the given status and error message and no payload.
func Fail(c *gin.Context, status int, msg message.ErrorMessage) {
	c.JSON(status, New(msg.Message()))
}

// AbortFail is Fail for middleware: it also stops the handler chain.
func AbortFail(c *gin.Context, status int, msg message.ErrorMessage) {
	c.AbortWithStatusJSON(status, New(msg.Message()))
}

// Error sends an error envelope.
// It checks if the error is an AppError to determine the status code and message.
// Anything else is reported as 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, New(appErr.Message))
		return
	}
	Fail(c, http.StatusInternalServerError, message.InternalServerError)
}
