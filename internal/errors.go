package internal

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	// ErrorTypeValidation marks bad user input; the operation is aborted
	// before any mutation.
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	// ErrorTypeSoftLimit marks a budget breach; the operation still
	// completes, the caller only surfaces a warning.
	ErrorTypeSoftLimit ErrorType = "SOFT_LIMIT_WARNING"
	ErrorTypeNotFound  ErrorType = "NOT_FOUND"
	// ErrorTypeExternal marks a failed external dependency; callers degrade
	// silently instead of blocking.
	ErrorTypeExternal ErrorType = "EXTERNAL_ERROR"
	ErrorTypeInternal ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeInvalidType        ErrorCode = "INVALID_TYPE"
	ErrCodeInvalidAmount      ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidDate        ErrorCode = "INVALID_DATE"
	ErrCodeInvalidDescription ErrorCode = "INVALID_DESCRIPTION"
	ErrCodeInvalidBudget      ErrorCode = "INVALID_BUDGET"
	ErrCodeUnknownCategory    ErrorCode = "UNKNOWN_CATEGORY"

	ErrCodeCategoryExists   ErrorCode = "CATEGORY_EXISTS"
	ErrCodeEmptyCategory    ErrorCode = "EMPTY_CATEGORY_NAME"
	ErrCodeCategoryBudget   ErrorCode = "INVALID_CATEGORY_BUDGET"
	ErrCodeCategoryNotFound ErrorCode = "CATEGORY_NOT_FOUND"

	ErrCodeTransactionNotFound ErrorCode = "TRANSACTION_NOT_FOUND"
	ErrCodeNoTransactions      ErrorCode = "NO_TRANSACTIONS"

	ErrCodeBudgetExceeded         ErrorCode = "BUDGET_EXCEEDED"
	ErrCodeCategoryBudgetExceeded ErrorCode = "CATEGORY_BUDGET_EXCEEDED"

	ErrCodeRateLookupFailed ErrorCode = "RATE_LOOKUP_FAILED"
)

type AppError struct {
	Type    ErrorType   `json:"type"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Cause   error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// IsWarning reports whether the error should be surfaced as a non-blocking
// user-facing warning rather than a fault.
func (e *AppError) IsWarning() bool {
	return e.Type == ErrorTypeValidation || e.Type == ErrorTypeSoftLimit
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Code:    code,
		Message: message,
	}
}

func NewSoftLimitWarning(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeSoftLimit,
		Code:    code,
		Message: message,
	}
}

func NewExternalError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Code:    ErrCodeRateLookupFailed,
		Message: message,
		Cause:   cause,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Code:    "INTERNAL_ERROR",
		Message: message,
		Cause:   cause,
	}
}

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
