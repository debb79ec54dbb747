package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an application error carrying the HTTP status it maps to.
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

// Is reports whether target is the same kind of application error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// Wrap returns a copy of e with err attached as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Err: err}
}

// Wrapf returns a copy of e with a formatted cause.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Checkout and payment errors.
var (
	ErrInsufficientStock = New(http.StatusConflict, "insufficient stock", nil)
	ErrEmptyCart         = New(http.StatusBadRequest, "cart is empty", nil)
	ErrProductNotFound   = New(http.StatusNotFound, "product not found", nil)
	ErrOrderNotFound     = New(http.StatusNotFound, "order not found", nil)
	ErrMethodRequired    = New(http.StatusBadRequest, "payment method is required", nil)
	ErrPersistence       = New(http.StatusInternalServerError, "persistence failure", nil)
)

// Order lifecycle errors.
var (
	ErrInvalidQuantity   = New(http.StatusBadRequest, "quantity must be positive", nil)
	ErrInvalidTransition = New(http.StatusConflict, "invalid order status transition", nil)
	ErrDeliveryExists    = New(http.StatusConflict, "delivery already scheduled", nil)
	ErrDeliveryNotFound  = New(http.StatusNotFound, "delivery not found", nil)
)

// Account errors.
var (
	ErrEmailTaken         = New(http.StatusConflict, "email already registered", nil)
	ErrInvalidCredentials = New(http.StatusUnauthorized, "invalid credentials", nil)
	ErrUserNotFound       = New(http.StatusNotFound, "user not found", nil)
	ErrValidation         = New(http.StatusBadRequest, "validation failed", nil)
)

// Persistence wraps err as a persistence failure unless it already is an application error.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return ErrPersistence.Wrap(err)
}

// StatusCode returns the HTTP status for err, defaulting to 500.
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
