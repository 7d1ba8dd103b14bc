// Package response is the single wire envelope for this API. Every endpoint,
// success or failure, answers with an Envelope carrying one of the stable
// error codes below so clients can switch on Code instead of parsing messages.
package response

import "github.com/gin-gonic/gin"

// Stable error codes of the booking API.
const (
	CodeValidation              = "VALIDATION_ERROR"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeForbidden               = "FORBIDDEN"
	CodeNotFound                = "NOT_FOUND"
	CodeBookingConflict         = "BOOKING_CONFLICT"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeTutorNotEligible        = "TUTOR_NOT_ELIGIBLE"
	CodeStudentNotEligible      = "STUDENT_NOT_ELIGIBLE"
	CodeSubjectNotTaught        = "SUBJECT_NOT_TAUGHT"
	CodeInternal                = "INTERNAL_ERROR"
)

type Envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, Envelope{Success: true, Data: data})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, Envelope{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, Envelope{
		Success: false,
		Error:   &APIError{Code: code, Message: message, Details: details},
	})
}
