package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}

	ErrMissingInvoiceID = &AppError{Code: http.StatusBadRequest, Message: "Missing invoice_id"}
	ErrInvoiceNotFound  = &AppError{Code: http.StatusNotFound, Message: "Invoice not found"}
	ErrMethodAlreadySet = &AppError{Code: http.StatusForbidden, Message: "Payment method has already been set and cannot be changed"}
	ErrInvalidMethod    = &AppError{Code: http.StatusBadRequest, Message: "Invalid payment method"}
	ErrInvalidStore     = &AppError{Code: http.StatusBadRequest, Message: "Invalid convenience store"}

	ErrGatewayUnavailable     = &AppError{Code: http.StatusBadGateway, Message: "Payment gateway unavailable"}
	ErrGatewayResponseInvalid = &AppError{Code: http.StatusBadGateway, Message: "Payment gateway returned an invalid response"}
	ErrInstrumentNotIssued    = &AppError{Code: http.StatusBadGateway, Message: "Payment gateway did not issue a payment code"}

	ErrChecksumMismatch = &AppError{Code: http.StatusForbidden, Message: "Callback checksum verification failed"}
	ErrNotifyFailed     = &AppError{Code: http.StatusBadGateway, Message: "Downstream payment notification failed"}
	ErrPersistence      = &AppError{Code: http.StatusInternalServerError, Message: "Failed to persist invoice state"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
