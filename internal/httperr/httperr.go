package httperr

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an application error that already knows its HTTP status.
type Error struct {
	Status  int
	Code    string
	Message string
	Fields  []FieldError
	Err     error
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Body is the failure envelope shared by every endpoint.
type Body struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Code    string       `json:"code,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func BadRequest(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}

func Unauthorized(code, message string) *Error {
	return New(http.StatusUnauthorized, code, message)
}

func Forbidden(code, message string) *Error {
	return New(http.StatusForbidden, code, message)
}

func NotFound(code, message string) *Error {
	return New(http.StatusNotFound, code, message)
}

func TooManyRequests(message string) *Error {
	return New(http.StatusTooManyRequests, "rate_limited", message)
}

// Internal hides the cause from the client; it is kept for logging.
func Internal(err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    "server_error",
		Message: "Server Error",
		Err:     err,
	}
}

func Validation(fields []FieldError) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    "validation_failed",
		Message: "Validation failed",
		Fields:  fields,
	}
}

// Write renders err immediately and stops the handler chain.
func Write(c *gin.Context, err *Error) {
	c.AbortWithStatusJSON(err.Status, Body{
		Success: false,
		Message: err.Message,
		Code:    err.Code,
		Errors:  err.Fields,
	})
}

// Abort records err for the central error handler and stops the chain.
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
