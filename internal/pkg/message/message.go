// Package message holds the fixed, human-readable texts returned to API clients.
package message

// ErrorMessage is the symbolic key of a client-facing error text.
type ErrorMessage string

// SuccessMessage is the symbolic key of a client-facing success text.
type SuccessMessage string

const (
	MissingRequiredFields ErrorMessage = "MISSING_REQUIRED_FIELDS"
	InvalidDates          ErrorMessage = "INVALID_DATES"
	InvalidRequestBody    ErrorMessage = "INVALID_REQUEST_BODY"
	InternalServerError   ErrorMessage = "INTERNAL_SERVER_ERROR"
	TooManyRequests       ErrorMessage = "TOO_MANY_REQUESTS"
)

const (
	SuccessfullyAdded SuccessMessage = "SUCCESSFULLY_ADDED"
)

var errorMessages = map[ErrorMessage]string{
	MissingRequiredFields: "Required fields are missing.",
	InvalidDates:          "Invalid check-in or check-out dates.",
	InvalidRequestBody:    "Invalid request body.",
	InternalServerError:   "Internal server error.",
	TooManyRequests:       "Too many requests.",
}

var successMessages = map[SuccessMessage]string{
	SuccessfullyAdded: "Successfully added.",
}

// Message returns the display text for the key.
// Unknown keys fall back to the generic internal error text.
func (m ErrorMessage) Message() string {
	if s, ok := errorMessages[m]; ok {
		return s
	}
	return errorMessages[InternalServerError]
}

// Message returns the display text for the key, or the key itself if it is unknown.
func (m SuccessMessage) Message() string {
	if s, ok := successMessages[m]; ok {
		return s
	}
	return string(m)
}
