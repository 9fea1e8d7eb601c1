// Package errors provides standardized error handling for the lead-generation core.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeLeadNotFound     ErrorCode = "LEAD_NOT_FOUND"
	ErrCodeOTPExpired       ErrorCode = "OTP_EXPIRED"
	ErrCodeOTPInvalid       ErrorCode = "OTP_INVALID"
	ErrCodeRateLimited      ErrorCode = "RATE_LIMITED"
	ErrCodeInvalidEMIInput  ErrorCode = "INVALID_EMI_INPUT"
	ErrCodeOTPSendFailed    ErrorCode = "OTP_SEND_FAILED"
	ErrCodeStorageFailure   ErrorCode = "STORAGE_FAILURE"
	ErrCodeOfferSeedInvalid ErrorCode = "OFFER_SEED_INVALID"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StandardError represents a structured application error.
type StandardError struct {
	Code        ErrorCode    `json:"code"`
	Message     string       `json:"message"`
	Details     string       `json:"details,omitempty"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
	Retryable   bool         `json:"retryable"`
	Timestamp   time.Time    `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable input validation error
// carrying per-field messages.
func NewValidationFailedError(fieldErrors []FieldError) *StandardError {
	fields := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		fields = append(fields, fe.Field)
	}
	return &StandardError{
		Code:        ErrCodeValidationFailed,
		Message:     "Lead data validation failed",
		Details:     fmt.Sprintf("invalid fields: %s", strings.Join(fields, ", ")),
		FieldErrors: fieldErrors,
		Retryable:   false,
		Timestamp:   time.Now().UTC(),
	}
}

// NewLeadNotFoundError creates a non-retryable missing-lead error.
func NewLeadNotFoundError(leadID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLeadNotFound,
		Message:   "Lead not found",
		Details:   fmt.Sprintf("leadId: %s", leadID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOTPExpiredError creates a non-retryable expired-passcode error. The
// caller recovers by requesting a resend.
func NewOTPExpiredError(leadID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOTPExpired,
		Message:   "OTP has expired",
		Details:   fmt.Sprintf("leadId: %s", leadID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOTPInvalidError creates a non-retryable passcode mismatch error.
func NewOTPInvalidError(leadID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOTPInvalid,
		Message:   "Invalid OTP",
		Details:   fmt.Sprintf("leadId: %s", leadID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError creates a non-retryable throttling error.
func NewRateLimitedError(operation, leadID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many attempts, try again later",
		Details:   fmt.Sprintf("operation: %s, leadId: %s", operation, leadID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidEMIInputError creates a non-retryable financial-input error.
func NewInvalidEMIInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidEMIInput,
		Message:   "EMI inputs out of range",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOTPSendFailedError creates a retryable delivery error.
func NewOTPSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOTPSendFailed,
		Message:   "OTP delivery failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageFailureError creates a retryable backing-store error.
func NewStorageFailureError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageFailure,
		Message:   "Storage operation failed",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOfferSeedInvalidError creates a non-retryable seed file error.
func NewOfferSeedInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOfferSeedInvalid,
		Message:   "Bank offer seed data rejected",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError unwraps err into a *StandardError if possible.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err is a StandardError with the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// HTTPStatus maps error codes to HTTP status codes for the presentation layer.
func HTTPStatus(err error) int {
	stdErr, ok := AsStandardError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch stdErr.Code {
	case ErrCodeValidationFailed, ErrCodeOTPExpired, ErrCodeOTPInvalid, ErrCodeInvalidEMIInput, ErrCodeOfferSeedInvalid:
		return http.StatusBadRequest
	case ErrCodeLeadNotFound:
		return http.StatusNotFound
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
