package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap attaches a cause to a sentinel error without mutating the sentinel.
func Wrap(sentinel *Error, err error) *Error {
	return &Error{
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Err:     err,
	}
}

// WithMessage returns a copy of a sentinel error carrying a specific message.
func WithMessage(sentinel *Error, message string) *Error {
	return &Error{
		Code:    sentinel.Code,
		Message: message,
	}
}

// Common error types
var (
	ErrBadRequest         = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthenticated    = New(http.StatusUnauthorized, "Unauthenticated", nil)
	ErrForbidden          = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound           = New(http.StatusNotFound, "Not found", nil)
	ErrConflict           = New(http.StatusConflict, "Conflict", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
)

// Validation error types
var (
	ErrValidation   = New(http.StatusBadRequest, "Validation error", nil)
	ErrInvalidInput = New(http.StatusBadRequest, "Invalid input", nil)
)

// Checkout error types. NetworkError is a transport failure talking to a
// remote collaborator (store, gateway); it is always retryable and never
// implies a state change on the remote side was or was not applied.
var (
	ErrNetwork            = New(http.StatusBadGateway, "Upstream request failed", nil)
	ErrStockExceeded      = New(http.StatusConflict, "Requested quantity exceeds available stock", nil)
	ErrDeclined           = New(http.StatusPaymentRequired, "Payment declined", nil)
	ErrIntentNotSucceeded = New(http.StatusPaymentRequired, "Payment not completed", nil)
	ErrEmptyCart          = New(http.StatusBadRequest, "Cart is empty", nil)
	ErrRequestInFlight    = New(http.StatusConflict, "Another request for this checkout is still in progress", nil)
)

// AsError returns err as *Error, wrapping unknown errors as internal.
func AsError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return Wrap(ErrInternalServer, err)
}

// Respond writes an error to a Gin context with its mapped status code and
// attaches it so ErrorMiddleware can log it with the request ID.
func Respond(c *gin.Context, err error) {
	appErr := AsError(err)
	_ = c.Error(appErr)
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}

// ErrorMiddleware is the tail of the chain for handler errors: it logs every
// error attached to the Gin context, and renders the last one when a handler
// attached it without writing a response itself.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		appErr := AsError(c.Errors.Last().Err)
		logger.Error(c, "Request failed", appErr.Err,
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", appErr.Code),
			zap.String("message", appErr.Message),
		)

		if !c.Writer.Written() {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		}
	}
}
